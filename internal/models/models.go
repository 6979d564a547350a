// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and relationships.
//
// The data model represents a Ryder-cup style golf competition:
//   - A Tournament owns a collection of Games
//   - A Game pairs one USA player against one EUROPE player, head to head
//   - A Game owns an ordered set of Holes, each recording raw strokes per side
//   - Score aggregates (stroke play, match play, points) are derived columns,
//     always recomputed by the scoring engine from the raw hole data
//
// "USA" and "EUROPE" are historical side labels — depending on the tournament's
// team config both rosters may be drawn from the same pool. The scoring rules
// never care which roster a side came from.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants. This gives us type safety while keeping the values human-readable
// in the database.

// Team identifies one of the two sides in a game.
type Team string

const (
	TeamUSA    Team = "USA"
	TeamEurope Team = "EUROPE"
)

// Opponent returns the other side.
func (t Team) Opponent() Team {
	if t == TeamUSA {
		return TeamEurope
	}
	return TeamUSA
}

// Valid reports whether t is one of the two known sides.
func (t Team) Valid() bool {
	return t == TeamUSA || t == TeamEurope
}

// GameStatus tracks the lifecycle of a game. It mirrors the IsStarted/IsComplete
// booleans on Game: the booleans are authoritative for scoring decisions, the
// status string is what list endpoints filter on. StatusFromFlags reconciles them.
type GameStatus string

const (
	GameStatusNotStarted GameStatus = "not_started" // Created, no hole scores recorded yet
	GameStatusInProgress GameStatus = "in_progress" // At least one hole scored, or explicitly started
	GameStatusComplete   GameStatus = "complete"    // Every hole has both raw scores; points are final
)

// StatusFromFlags derives the status enum from the authoritative booleans.
func StatusFromFlags(isStarted, isComplete bool) GameStatus {
	switch {
	case isComplete:
		return GameStatusComplete
	case isStarted:
		return GameStatusInProgress
	default:
		return GameStatusNotStarted
	}
}

// CanTransition reports whether an explicit status change from one state to
// another is legal. The lifecycle is strictly linear in both directions:
//
//	not_started → in_progress → complete
//	complete → in_progress → not_started   (admin reverts)
//
// No transition may skip a state, and a no-op transition is rejected so callers
// don't silently "succeed" without changing anything.
func CanTransition(from, to GameStatus) bool {
	switch from {
	case GameStatusNotStarted:
		return to == GameStatusInProgress
	case GameStatusInProgress:
		return to == GameStatusComplete || to == GameStatusNotStarted
	case GameStatusComplete:
		return to == GameStatusInProgress
	}
	return false
}

// TeamConfig describes which roster each side of a tournament is drawn from.
// It affects matchup creation only — the scoring rules are side-label-agnostic.
type TeamConfig string

const (
	TeamConfigUSAvsEurope    TeamConfig = "USA_VS_EUROPE"
	TeamConfigUSAvsUSA       TeamConfig = "USA_VS_USA"
	TeamConfigEuropeVsEurope TeamConfig = "EUROPE_VS_EUROPE"
)

// Valid reports whether tc is one of the known team configurations.
func (tc TeamConfig) Valid() bool {
	switch tc {
	case TeamConfigUSAvsEurope, TeamConfigUSAvsUSA, TeamConfigEuropeVsEurope:
		return true
	}
	return false
}

// --- Embedded value types ---
// These are not tables of their own. GORM's "embedded" tag flattens them into
// the owning row with a column prefix, so a Game row ends up with columns like
// stroke_play_usa, stroke_play_adjusted_usa, points_raw_usa, and so on.

// TeamTotals holds one aggregate (stroke-play strokes or match-play holes won)
// for both sides, in raw and handicap-adjusted form.
type TeamTotals struct {
	USA            int `gorm:"not null;default:0" json:"usa"`
	Europe         int `gorm:"not null;default:0" json:"europe"`
	AdjustedUSA    int `gorm:"not null;default:0" json:"adjusted_usa"`
	AdjustedEurope int `gorm:"not null;default:0" json:"adjusted_europe"`
}

// PointsPair holds fractional tournament points for both sides.
// Per game and mode a side earns 1 (win), 0.5 (tie), or 0 (loss) — so a whole
// game is worth at most 2 points per side (stroke play + match play).
type PointsPair struct {
	USA    float64 `gorm:"not null;default:0" json:"usa"`
	Europe float64 `gorm:"not null;default:0" json:"europe"`
}

// Add returns the element-wise sum of two pairs.
func (p PointsPair) Add(o PointsPair) PointsPair {
	return PointsPair{USA: p.USA + o.USA, Europe: p.Europe + o.Europe}
}

// GamePoints carries a points pair under both scoring rules. Which one a
// leaderboard displays is decided by the tournament's UseHandicaps flag;
// both are always computed so the flag can be flipped without a backfill.
type GamePoints struct {
	Raw      PointsPair `gorm:"embedded;embeddedPrefix:raw_" json:"raw"`
	Adjusted PointsPair `gorm:"embedded;embeddedPrefix:adjusted_" json:"adjusted"`
}

// Add returns the element-wise sum of two point sets.
func (g GamePoints) Add(o GamePoints) GamePoints {
	return GamePoints{Raw: g.Raw.Add(o.Raw), Adjusted: g.Adjusted.Add(o.Adjusted)}
}

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name
// (snake_cased and pluralized) as the table name: Tournament -> tournaments, etc.

// Tournament is the top-level container. At most one tournament is active at a
// time — the activate endpoint enforces that by deactivating all others in the
// same transaction.
//
// TotalScore and ProjectedScore are derived columns: the aggregator recomputes
// them from the games after every scoring write. They are never hand-edited.
type Tournament struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Year           int        `gorm:"not null" json:"year"`
	UseHandicaps   bool       `gorm:"not null;default:false" json:"use_handicaps"`
	TeamConfig     TeamConfig `gorm:"type:team_config;not null;default:'USA_VS_EUROPE'" json:"team_config"`
	IsActive       bool       `gorm:"not null;default:false" json:"is_active"`
	TotalScore     GamePoints `gorm:"embedded;embeddedPrefix:total_" json:"total_score"`
	ProjectedScore GamePoints `gorm:"embedded;embeddedPrefix:projected_" json:"projected_score"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Deleting a tournament cascades to its games (and through them to holes)
	// and to its progress entries — see the FK constraints in the migration.
	Games    []Game          `gorm:"foreignKey:TournamentID" json:"games,omitempty"`
	Progress []ProgressEntry `gorm:"foreignKey:TournamentID" json:"progress,omitempty"`
}

// Game is a single head-to-head match within a tournament.
//
// HandicapStrokes is the total number of strokes the weaker side receives over
// the round. HigherHandicapTeam names the side whose player has the worse
// handicap — that side does NOT receive strokes, its opponent does. A nil
// HigherHandicapTeam means the handicaps are tied and nobody receives strokes.
//
// StrokePlayScore, MatchPlayScore and Points are cached aggregates written by
// the scoring engine; they must always equal a pure function of the holes and
// the handicap metadata.
type Game struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TournamentID     uuid.UUID `gorm:"type:uuid;not null;index" json:"tournament_id"`
	USAPlayerID      uuid.UUID `gorm:"type:uuid;not null" json:"usa_player_id"`
	USAPlayerName    string    `gorm:"not null" json:"usa_player_name"`
	EuropePlayerID   uuid.UUID `gorm:"type:uuid;not null" json:"europe_player_id"`
	EuropePlayerName string    `gorm:"not null" json:"europe_player_name"`

	HandicapStrokes    int   `gorm:"not null;default:0" json:"handicap_strokes"`
	HigherHandicapTeam *Team `gorm:"type:team" json:"higher_handicap_team"` // nil = handicaps tied, no strokes given

	StrokePlayScore TeamTotals `gorm:"embedded;embeddedPrefix:stroke_play_" json:"stroke_play_score"`
	MatchPlayScore  TeamTotals `gorm:"embedded;embeddedPrefix:match_play_" json:"match_play_score"`
	Points          GamePoints `gorm:"embedded;embeddedPrefix:points_" json:"points"`

	IsStarted  bool       `gorm:"not null;default:false" json:"is_started"`
	IsComplete bool       `gorm:"not null;default:false" json:"is_complete"`
	Status     GameStatus `gorm:"type:game_status;not null;default:'not_started'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Holes []Hole `gorm:"foreignKey:GameID" json:"holes,omitempty"`
}

// HoleCount returns the round length (normally 18).
func (g *Game) HoleCount() int {
	return len(g.Holes)
}

// AllHolesScored reports whether every hole has both raw scores recorded —
// the precondition for marking the game complete.
func (g *Game) AllHolesScored() bool {
	if len(g.Holes) == 0 {
		return false
	}
	for i := range g.Holes {
		if g.Holes[i].USAScore == nil || g.Holes[i].EuropeScore == nil {
			return false
		}
	}
	return true
}

// AnyHoleScored reports whether at least one raw score has been recorded on
// either side — the implicit not_started → in_progress trigger.
func (g *Game) AnyHoleScored() bool {
	for i := range g.Holes {
		if g.Holes[i].USAScore != nil || g.Holes[i].EuropeScore != nil {
			return true
		}
	}
	return false
}

// Hole records one hole of a game.
//
// The raw scores are nullable (*int) until a scorer records them. The adjusted
// scores and match-play fields are derived by the engine: an adjusted score is
// nil exactly when the raw score is nil, and the match-play fields for a hole
// are 0 for both sides until both raw scores are present.
type Hole struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GameID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_hole" json:"game_id"`
	HoleNumber  int       `gorm:"not null;uniqueIndex:idx_game_hole" json:"hole_number"` // 1–18
	StrokeIndex int       `gorm:"not null" json:"stroke_index"`                          // Difficulty rank 1..N; stroke index 1 receives a handicap stroke first
	Par         int       `gorm:"not null" json:"par"`

	USAScore    *int `json:"usa_score"`
	EuropeScore *int `json:"europe_score"`

	USAAdjusted    *int `json:"usa_adjusted"`
	EuropeAdjusted *int `json:"europe_adjusted"`

	USAMatchPlay            int `gorm:"not null;default:0" json:"usa_match_play"`
	EuropeMatchPlay         int `gorm:"not null;default:0" json:"europe_match_play"`
	USAMatchPlayAdjusted    int `gorm:"not null;default:0" json:"usa_match_play_adjusted"`
	EuropeMatchPlayAdjusted int `gorm:"not null;default:0" json:"europe_match_play_adjusted"`
}

// ProgressEntry is one point in a tournament's progress time series — an
// append-only log used to render the progress chart. Entries are only ever
// appended, never mutated, and the series is sorted by Timestamp.
//
// Score and ProjectedScore hold the pair the tournament displays (raw or
// adjusted, per its UseHandicaps flag at the time of the append).
type ProgressEntry struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TournamentID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"tournament_id"`
	Timestamp      time.Time  `gorm:"not null;index" json:"timestamp"`
	Score          PointsPair `gorm:"embedded;embeddedPrefix:score_" json:"score"`
	ProjectedScore PointsPair `gorm:"embedded;embeddedPrefix:projected_" json:"projected_score"`
	CompletedGames int        `gorm:"not null;default:0" json:"completed_games"`
}
