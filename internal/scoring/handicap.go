package scoring

import (
	"fmt"

	"github.com/12ian34/ruffryder-api/internal/models"
)

// StrokesReceived returns how many handicap strokes the receiving side gets on
// a hole with the given stroke index, out of an allowance of handicapStrokes
// over holeCount holes.
//
// Strokes are handed out hardest hole first: stroke index 1 gets the first
// stroke, index 2 the second, and so on. An allowance larger than the course
// wraps around — with 20 strokes on 18 holes, every hole gets one stroke and
// the two hardest get a second. This models handicap gaps above course length
// (e.g. a 36-stroke allowance is exactly two strokes on every hole).
func StrokesReceived(strokeIndex, handicapStrokes, holeCount int) int {
	if handicapStrokes <= 0 || holeCount <= 0 {
		return 0
	}
	strokes := handicapStrokes / holeCount
	if strokeIndex <= handicapStrokes%holeCount {
		strokes++
	}
	return strokes
}

// ApplyHandicap fills in the per-hole adjusted scores for a game.
//
// The side that is NOT g.HigherHandicapTeam receives StrokesReceived strokes
// off its raw score on each hole; the higher-handicap side's adjusted score
// always equals its raw score. When HigherHandicapTeam is nil (handicaps
// tied) or the allowance is zero, adjusted equals raw for both sides.
//
// A hole with no raw score gets no adjusted score either (nil, not zero) —
// unplayed holes must stay invisible to the totals.
//
// The stroke-index table is validated first: indices must form a permutation
// of 1..N or the whole computation is rejected with ErrInvalidHoleConfiguration.
func ApplyHandicap(g *models.Game) error {
	if err := ValidateHoles(g.Holes); err != nil {
		return err
	}

	// Which side receives strokes. Nobody does when handicaps are tied.
	var receiver models.Team
	receiving := false
	if g.HigherHandicapTeam != nil && g.HandicapStrokes > 0 {
		if !g.HigherHandicapTeam.Valid() {
			return &HoleConfigError{Reason: fmt.Sprintf("unknown higher handicap team %q", *g.HigherHandicapTeam)}
		}
		receiver = g.HigherHandicapTeam.Opponent()
		receiving = true
	}

	n := len(g.Holes)
	for i := range g.Holes {
		h := &g.Holes[i]

		usaOff, europeOff := 0, 0
		if receiving {
			off := StrokesReceived(h.StrokeIndex, g.HandicapStrokes, n)
			if receiver == models.TeamUSA {
				usaOff = off
			} else {
				europeOff = off
			}
		}

		h.USAAdjusted = adjusted(h.USAScore, usaOff)
		h.EuropeAdjusted = adjusted(h.EuropeScore, europeOff)
	}
	return nil
}

// adjusted applies a stroke deduction to a raw score, preserving nil-ness.
func adjusted(raw *int, off int) *int {
	if raw == nil {
		return nil
	}
	v := *raw - off
	return &v
}

// ValidateHoles checks that the holes' stroke indices form a permutation of
// 1..N. Duplicates, gaps, or out-of-range values mean the handicap allocation
// would be wrong on some hole, so they are reported as a HoleConfigError
// rather than guessed around.
func ValidateHoles(holes []models.Hole) error {
	n := len(holes)
	if n == 0 {
		return &HoleConfigError{Reason: "game has no holes"}
	}
	seen := make([]bool, n+1)
	for i := range holes {
		si := holes[i].StrokeIndex
		if si < 1 || si > n {
			return &HoleConfigError{Reason: fmt.Sprintf("hole %d has stroke index %d, want 1..%d", holes[i].HoleNumber, si, n)}
		}
		if seen[si] {
			return &HoleConfigError{Reason: fmt.Sprintf("stroke index %d appears more than once", si)}
		}
		seen[si] = true
	}
	return nil
}
