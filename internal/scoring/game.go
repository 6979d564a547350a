package scoring

import (
	"github.com/12ian34/ruffryder-api/internal/models"
)

// ScoreGame recomputes every derived field on a game from its raw hole scores
// and handicap metadata: per-hole adjusted scores, per-hole match-play
// results, the stroke-play and match-play totals, the game's points under
// both scoring rules, and the status enum (reconciled from the booleans).
//
// It is idempotent — running it twice over the same holes yields identical
// aggregates — and it never writes partial results: on a validation error the
// game is left untouched.
func ScoreGame(g *models.Game) error {
	// ApplyHandicap validates the stroke-index table before touching anything.
	if err := ApplyHandicap(g); err != nil {
		return err
	}

	scoreHolesMatchPlay(g.Holes)
	g.StrokePlayScore = strokePlayTotals(g.Holes)
	g.MatchPlayScore = matchPlayTotals(g.Holes)
	g.Points = gamePoints(g)
	g.Status = models.StatusFromFlags(g.IsStarted, g.IsComplete)
	return nil
}

// scoreHolesMatchPlay fills in the per-hole match-play results. A hole's
// result is defined only once both raw scores are present; until then both
// sides hold 0 (not an "undefined win"). Ties also leave both at 0.
func scoreHolesMatchPlay(holes []models.Hole) {
	for i := range holes {
		h := &holes[i]
		h.USAMatchPlay, h.EuropeMatchPlay = holeWin(h.USAScore, h.EuropeScore)
		h.USAMatchPlayAdjusted, h.EuropeMatchPlayAdjusted = holeWin(h.USAAdjusted, h.EuropeAdjusted)
	}
}

// holeWin compares two nullable hole scores. Lower strokes wins the hole.
func holeWin(usa, europe *int) (usaWin, europeWin int) {
	if usa == nil || europe == nil {
		return 0, 0
	}
	switch {
	case *usa < *europe:
		return 1, 0
	case *europe < *usa:
		return 0, 1
	}
	return 0, 0
}

// strokePlayTotals sums each side's strokes over the holes it has actually
// recorded. A side with no recorded holes totals 0 — callers gate on
// IsStarted before reading meaning into that.
func strokePlayTotals(holes []models.Hole) models.TeamTotals {
	var t models.TeamTotals
	for i := range holes {
		h := &holes[i]
		if h.USAScore != nil {
			t.USA += *h.USAScore
		}
		if h.EuropeScore != nil {
			t.Europe += *h.EuropeScore
		}
		if h.USAAdjusted != nil {
			t.AdjustedUSA += *h.USAAdjusted
		}
		if h.EuropeAdjusted != nil {
			t.AdjustedEurope += *h.EuropeAdjusted
		}
	}
	return t
}

// matchPlayTotals counts holes won per side, raw and adjusted.
func matchPlayTotals(holes []models.Hole) models.TeamTotals {
	var t models.TeamTotals
	for i := range holes {
		h := &holes[i]
		t.USA += h.USAMatchPlay
		t.Europe += h.EuropeMatchPlay
		t.AdjustedUSA += h.USAMatchPlayAdjusted
		t.AdjustedEurope += h.EuropeMatchPlayAdjusted
	}
	return t
}

// gamePoints computes the points a game contributes to the tournament under
// both scoring rules, gated on the lifecycle booleans:
//
//   - complete: final points — 1 to the winner of each mode, 0.5 each on a
//     tie, summed over stroke play and match play (0–2 per side).
//   - started but not complete: the same comparison applied to the current
//     partial totals, used for projections. A mode with no data on either
//     side contributes 0 to both — no projection from no data.
//   - neither: all zeroes.
func gamePoints(g *models.Game) models.GamePoints {
	if !g.IsStarted && !g.IsComplete {
		return models.GamePoints{}
	}

	// How much data each mode has. Stroke play needs each side to have at
	// least one recorded hole; match play needs at least one hole with both
	// scores present.
	usaHoles, europeHoles, decidedHoles := 0, 0, 0
	for i := range g.Holes {
		h := &g.Holes[i]
		if h.USAScore != nil {
			usaHoles++
		}
		if h.EuropeScore != nil {
			europeHoles++
		}
		if h.USAScore != nil && h.EuropeScore != nil {
			decidedHoles++
		}
	}
	strokeHasData := usaHoles > 0 && europeHoles > 0
	matchHasData := decidedHoles > 0

	sp := g.StrokePlayScore
	mp := g.MatchPlayScore

	var pts models.GamePoints
	pts.Raw = modePoints(sp.USA, sp.Europe, lowerWins, strokeHasData).
		Add(modePoints(mp.USA, mp.Europe, higherWins, matchHasData))
	pts.Adjusted = modePoints(sp.AdjustedUSA, sp.AdjustedEurope, lowerWins, strokeHasData).
		Add(modePoints(mp.AdjustedUSA, mp.AdjustedEurope, higherWins, matchHasData))
	return pts
}

// direction says which way a mode's comparison runs: stroke play is won by
// the lower total, match play by the higher.
type direction int

const (
	lowerWins direction = iota
	higherWins
)

// modePoints splits one mode's point between the sides: 1/0 to the winner,
// 0.5/0.5 on an exact tie, 0/0 when the mode has no data to compare.
func modePoints(usa, europe int, dir direction, hasData bool) models.PointsPair {
	if !hasData {
		return models.PointsPair{}
	}
	if usa == europe {
		return models.PointsPair{USA: 0.5, Europe: 0.5}
	}
	usaWins := usa < europe
	if dir == higherWins {
		usaWins = !usaWins
	}
	if usaWins {
		return models.PointsPair{USA: 1}
	}
	return models.PointsPair{Europe: 1}
}

// leader returns the side currently ahead on the given totals, or nil for a
// draw. Display layers use this for win/draw styling; it is the same
// comparison modePoints makes, generalized to allow the draw state.
func leader(usa, europe int, dir direction) *models.Team {
	if usa == europe {
		return nil
	}
	usaWins := usa < europe
	if dir == higherWins {
		usaWins = !usaWins
	}
	t := models.TeamEurope
	if usaWins {
		t = models.TeamUSA
	}
	return &t
}

// StrokePlayLeader returns the side with the lower stroke total, or nil on a tie.
func StrokePlayLeader(usa, europe int) *models.Team {
	return leader(usa, europe, lowerWins)
}

// MatchPlayLeader returns the side with more holes won, or nil on a tie.
func MatchPlayLeader(usa, europe int) *models.Team {
	return leader(usa, europe, higherWins)
}
