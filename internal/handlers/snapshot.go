package handlers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/12ian34/ruffryder-api/internal/models"
	"github.com/12ian34/ruffryder-api/internal/scoring"
	"github.com/12ian34/ruffryder-api/internal/websocket"
)

// LeaderboardSnapshot is the read model the presentation layer consumes. It is
// the single source of truth for "who is winning": every number in it comes
// straight from the scoring engine, so no consumer ever re-derives scores with
// its own rules.
type LeaderboardSnapshot struct {
	TournamentID   string            `json:"tournament_id"`
	Name           string            `json:"name"`
	UseHandicaps   bool              `json:"use_handicaps"`
	TotalScore     models.GamePoints `json:"total_score"`
	ProjectedScore models.GamePoints `json:"projected_score"`
	// Display pairs are pre-selected by the tournament's UseHandicaps flag so
	// dumb clients don't have to know the rule.
	DisplayScore     models.PointsPair `json:"display_score"`
	DisplayProjected models.PointsPair `json:"display_projected"`
	CompletedGames   int               `json:"completed_games"`
	Games            []GameSnapshot    `json:"games"`
	// FailedGames lists ids of games excluded from the rollup because their
	// hole configuration was invalid. The leaderboard still renders without them.
	FailedGames []string `json:"failed_games,omitempty"`
}

// GameSnapshot is one game's row in the leaderboard.
type GameSnapshot struct {
	ID               string            `json:"id"`
	USAPlayerName    string            `json:"usa_player_name"`
	EuropePlayerName string            `json:"europe_player_name"`
	Status           models.GameStatus `json:"status"`
	IsStarted        bool              `json:"is_started"`
	IsComplete       bool              `json:"is_complete"`
	StrokePlayScore  models.TeamTotals `json:"stroke_play_score"`
	MatchPlayScore   models.TeamTotals `json:"match_play_score"`
	Points           models.GamePoints `json:"points"`
	// Leaders under the displayed rule; nil means a draw so far.
	StrokePlayLeader *models.Team `json:"stroke_play_leader"`
	MatchPlayLeader  *models.Team `json:"match_play_leader"`
}

// buildSnapshot assembles the read model from an already-aggregated tournament.
func buildSnapshot(t *models.Tournament, s scoring.Summary) *LeaderboardSnapshot {
	snap := &LeaderboardSnapshot{
		TournamentID:   t.ID.String(),
		Name:           t.Name,
		UseHandicaps:   t.UseHandicaps,
		TotalScore:     s.Total,
		ProjectedScore: s.Projected,
		CompletedGames: s.CompletedGames,
		Games:          make([]GameSnapshot, 0, len(t.Games)),
	}
	if t.UseHandicaps {
		snap.DisplayScore = s.Total.Adjusted
		snap.DisplayProjected = s.Projected.Adjusted
	} else {
		snap.DisplayScore = s.Total.Raw
		snap.DisplayProjected = s.Projected.Raw
	}

	failed := make(map[uuid.UUID]bool, len(s.Failed))
	for _, f := range s.Failed {
		failed[f.GameID] = true
		snap.FailedGames = append(snap.FailedGames, f.GameID.String())
	}

	for i := range t.Games {
		g := &t.Games[i]
		if failed[g.ID] {
			continue
		}

		spUSA, spEurope := g.StrokePlayScore.USA, g.StrokePlayScore.Europe
		mpUSA, mpEurope := g.MatchPlayScore.USA, g.MatchPlayScore.Europe
		if t.UseHandicaps {
			spUSA, spEurope = g.StrokePlayScore.AdjustedUSA, g.StrokePlayScore.AdjustedEurope
			mpUSA, mpEurope = g.MatchPlayScore.AdjustedUSA, g.MatchPlayScore.AdjustedEurope
		}

		snap.Games = append(snap.Games, GameSnapshot{
			ID:               g.ID.String(),
			USAPlayerName:    g.USAPlayerName,
			EuropePlayerName: g.EuropePlayerName,
			Status:           g.Status,
			IsStarted:        g.IsStarted,
			IsComplete:       g.IsComplete,
			StrokePlayScore:  g.StrokePlayScore,
			MatchPlayScore:   g.MatchPlayScore,
			Points:           g.Points,
			StrokePlayLeader: scoring.StrokePlayLeader(spUSA, spEurope),
			MatchPlayLeader:  scoring.MatchPlayLeader(mpUSA, mpEurope),
		})
	}
	return snap
}

// timeNow supplies the clock for progress entries; tests pin it.
type timeNow func() time.Time

// loadSnapshot builds the leaderboard read model without persisting anything:
// it loads the tournament with all games and holes and runs the engine over
// the in-memory copy. Read paths use this; write paths go through
// refreshTournament so the cached columns and progress series stay current.
func loadSnapshot(db *gorm.DB, tournamentID uuid.UUID) (*LeaderboardSnapshot, error) {
	var tour models.Tournament
	if err := db.Preload("Games.Holes").First(&tour, "id = ?", tournamentID).Error; err != nil {
		return nil, err
	}
	s := scoring.Aggregate(tour.Games)
	return buildSnapshot(&tour, s), nil
}

// progressEntryToAppend decides whether a refresh should add a point to the
// progress series: the engine enforces the series' ordering, and entries that
// would just repeat the previous point are suppressed so a burst of writes
// with no scoring effect doesn't pad the chart.
func progressEntryToAppend(t *models.Tournament, s scoring.Summary, last *models.ProgressEntry, now time.Time) *models.ProgressEntry {
	entry := scoring.NextProgressEntry(t, s, last, now)
	if entry == nil {
		return nil
	}
	if last != nil &&
		last.Score == entry.Score &&
		last.ProjectedScore == entry.ProjectedScore &&
		last.CompletedGames == entry.CompletedGames {
		return nil
	}
	return entry
}

// refreshTournament is the one write path for derived state. It reloads the
// tournament with all games and holes, runs the scoring engine over the lot,
// persists the recomputed aggregates (games, holes, tournament totals) in a
// single transaction, appends a progress entry when the series allows it, and
// returns the fresh snapshot.
//
// Everything derived is overwritten whole from the engine's output — never
// patched incrementally — so the cached columns can't drift from the raw
// hole data.
func refreshTournament(db *gorm.DB, tournamentID uuid.UUID, now timeNow) (*LeaderboardSnapshot, error) {
	var snap *LeaderboardSnapshot

	err := db.Transaction(func(tx *gorm.DB) error {
		var tour models.Tournament
		if err := tx.Preload("Games.Holes").First(&tour, "id = ?", tournamentID).Error; err != nil {
			return err
		}

		s := scoring.Aggregate(tour.Games)

		failed := make(map[uuid.UUID]bool, len(s.Failed))
		for _, f := range s.Failed {
			failed[f.GameID] = true
		}

		for i := range tour.Games {
			g := &tour.Games[i]
			if failed[g.ID] {
				// Leave a malformed game's rows untouched; it is excluded
				// from the rollup and reported in the snapshot.
				continue
			}
			if err := tx.Omit(clause.Associations).Save(g).Error; err != nil {
				return err
			}
			for j := range g.Holes {
				if err := tx.Save(&g.Holes[j]).Error; err != nil {
					return err
				}
			}
		}

		tour.TotalScore = s.Total
		tour.ProjectedScore = s.Projected
		if err := tx.Omit(clause.Associations).Save(&tour).Error; err != nil {
			return err
		}

		// Append a progress entry unless it would break the series' ordering
		// or just repeat the previous point.
		var last *models.ProgressEntry
		var prev models.ProgressEntry
		res := tx.Where("tournament_id = ?", tour.ID).Order("timestamp DESC").Limit(1).Find(&prev)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			last = &prev
		}

		if entry := progressEntryToAppend(&tour, s, last, now()); entry != nil {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}

		snap = buildSnapshot(&tour, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// broadcastSnapshot pushes a snapshot to everyone watching the tournament.
func broadcastSnapshot(hub *websocket.Hub, snap *LeaderboardSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	hub.BroadcastToTournament(snap.TournamentID, data)
}
