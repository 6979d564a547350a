package scoring

import (
	"time"

	"github.com/12ian34/ruffryder-api/internal/models"
)

// Summary is the rollup of a tournament's games: the current total (completed
// games only), the projected final score (in-progress games count at their
// current partial points), and any games that could not be scored.
type Summary struct {
	Total          models.GamePoints
	Projected      models.GamePoints
	CompletedGames int
	// Failed lists games excluded from the rollup because their hole
	// configuration was invalid. The rest of the tournament still aggregates
	// so a leaderboard can render around the broken game.
	Failed []*GameError
}

// Aggregate recomputes a tournament's scores from scratch over the given
// games. Every game is re-scored from its raw holes (never trusted from its
// cached columns) so the totals can't drift from the underlying data.
//
// The games slice is mutated: each game comes back with its derived fields
// recomputed, ready to be persisted alongside the tournament totals.
//
// An empty game list yields a zero Summary — nothing to render, not an error.
func Aggregate(games []models.Game) Summary {
	var s Summary
	for i := range games {
		g := &games[i]
		if err := ScoreGame(g); err != nil {
			s.Failed = append(s.Failed, &GameError{GameID: g.ID, Err: err})
			continue
		}

		// Projection counts every started or completed game at its current
		// points; completed games contribute their final points unchanged.
		s.Projected = s.Projected.Add(g.Points)

		if g.IsComplete {
			s.Total = s.Total.Add(g.Points)
			s.CompletedGames++
		}
	}
	return s
}

// NextProgressEntry builds the progress-series entry for a tournament after a
// scoring update, or nil when appending it would break the series' ordering
// guarantees (monotonically non-decreasing in both Timestamp and
// CompletedGames).
//
// last is the most recent existing entry, or nil for an empty series. The
// entry records the pair the tournament displays: adjusted points when
// UseHandicaps is set, raw otherwise.
func NextProgressEntry(t *models.Tournament, s Summary, last *models.ProgressEntry, now time.Time) *models.ProgressEntry {
	score := s.Total.Raw
	projected := s.Projected.Raw
	if t.UseHandicaps {
		score = s.Total.Adjusted
		projected = s.Projected.Adjusted
	}

	if last != nil {
		if now.Before(last.Timestamp) {
			return nil
		}
		// A revert can legitimately lower CompletedGames; the series skips
		// the entry rather than record a decreasing value.
		if s.CompletedGames < last.CompletedGames {
			return nil
		}
	}

	return &models.ProgressEntry{
		TournamentID:   t.ID,
		Timestamp:      now,
		Score:          score,
		ProjectedScore: projected,
		CompletedGames: s.CompletedGames,
	}
}
