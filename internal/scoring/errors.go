// Package scoring is the scoring and handicap-adjustment engine. It turns a
// game's raw per-hole strokes into adjusted strokes, stroke-play and
// match-play totals (raw and handicap-adjusted), and tournament points, and
// rolls a tournament's games up into total/projected scores and a progress
// time series.
//
// Everything here is a pure, synchronous computation over the snapshot it is
// given: no I/O, no shared state, no context plumbing. Persistence and live
// update fan-out are the callers' job (see internal/handlers).
package scoring

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidHoleConfiguration is returned when a game's stroke-index table is
// corrupt (duplicates, gaps, values outside 1..N). There is no safe default
// for a broken table — guessing would silently hand out handicap strokes on
// the wrong holes — so the computation is rejected instead.
var ErrInvalidHoleConfiguration = errors.New("invalid hole configuration")

// HoleConfigError wraps ErrInvalidHoleConfiguration with the specific defect
// found, so callers can log something actionable. Matches errors.Is against
// ErrInvalidHoleConfiguration.
type HoleConfigError struct {
	Reason string
}

func (e *HoleConfigError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidHoleConfiguration, e.Reason)
}

func (e *HoleConfigError) Unwrap() error {
	return ErrInvalidHoleConfiguration
}

// GameError records that one game could not be scored during a tournament
// rollup. The aggregator excludes the game and reports it by id rather than
// failing the whole aggregation, so a leaderboard can still render the rest.
type GameError struct {
	GameID uuid.UUID
	Err    error
}

func (e *GameError) Error() string {
	return fmt.Sprintf("game %s: %v", e.GameID, e.Err)
}

func (e *GameError) Unwrap() error {
	return e.Err
}
