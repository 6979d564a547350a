package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/12ian34/ruffryder-api/internal/models"
)

// A completed game where one side wins both modes is worth the full two
// points: USA takes stroke play (71 v 74) and match play (2 holes to 1).
func TestScoreGame_WinsBothModes(t *testing.T) {
	usa := append([]int{3, 3, 5}, repeat(4, 15)...)
	europe := append([]int{5, 5, 4}, repeat(4, 15)...)
	g := completeGame(usa, europe)

	require.NoError(t, ScoreGame(&g))

	assert.Equal(t, 71, g.StrokePlayScore.USA)
	assert.Equal(t, 74, g.StrokePlayScore.Europe)
	assert.Equal(t, 2, g.MatchPlayScore.USA)
	assert.Equal(t, 1, g.MatchPlayScore.Europe)
	assert.Equal(t, models.PointsPair{USA: 2, Europe: 0}, g.Points.Raw)
	// No handicap metadata: adjusted mirrors raw.
	assert.Equal(t, g.Points.Raw, g.Points.Adjusted)
	assert.Equal(t, models.GameStatusComplete, g.Status)
}

// Stroke play tied, match play to Europe: the tied mode splits 0.5/0.5 and
// the decided mode pays its full point, giving 0.5 v 1.5.
func TestScoreGame_SplitModes(t *testing.T) {
	usa := append([]int{3, 3, 5, 5, 5}, repeat(4, 13)...)
	europe := append([]int{5, 4, 4, 4, 4}, repeat(4, 13)...)
	g := completeGame(usa, europe)

	require.NoError(t, ScoreGame(&g))

	require.Equal(t, g.StrokePlayScore.USA, g.StrokePlayScore.Europe)
	assert.Equal(t, 2, g.MatchPlayScore.USA)
	assert.Equal(t, 3, g.MatchPlayScore.Europe)
	assert.Equal(t, models.PointsPair{USA: 0.5, Europe: 1.5}, g.Points.Raw)
}

// An exactly tied complete game splits both modes: one point each.
func TestScoreGame_FullTie(t *testing.T) {
	g := completeGame(repeat(4, 18), repeat(4, 18))
	require.NoError(t, ScoreGame(&g))

	assert.Equal(t, g.StrokePlayScore.USA, g.StrokePlayScore.Europe)
	assert.Zero(t, g.MatchPlayScore.USA)
	assert.Zero(t, g.MatchPlayScore.Europe)
	assert.Equal(t, models.PointsPair{USA: 1, Europe: 1}, g.Points.Raw)
}

// Per-hole match play results exist only once both raw scores are present;
// ties award neither side.
func TestScoreGame_HoleResults(t *testing.T) {
	g := models.Game{
		IsStarted: true,
		Holes: buildHoles(18,
			[]*int{ip(3), ip(4), ip(5), ip(4)},
			[]*int{ip(4), ip(4), ip(4), nil},
		),
	}
	require.NoError(t, ScoreGame(&g))

	assert.Equal(t, 1, g.Holes[0].USAMatchPlay)
	assert.Equal(t, 0, g.Holes[0].EuropeMatchPlay)
	// Tied hole: nobody wins it.
	assert.Equal(t, 0, g.Holes[1].USAMatchPlay)
	assert.Equal(t, 0, g.Holes[1].EuropeMatchPlay)
	assert.Equal(t, 1, g.Holes[2].EuropeMatchPlay)
	// One score missing: not an "undefined win", both zero.
	assert.Equal(t, 0, g.Holes[3].USAMatchPlay)
	assert.Equal(t, 0, g.Holes[3].EuropeMatchPlay)

	assert.Equal(t, 1, g.MatchPlayScore.USA)
	assert.Equal(t, 1, g.MatchPlayScore.Europe)
}

// A game that has never started contributes nothing, in every mode and under
// both rules.
func TestScoreGame_NotStarted(t *testing.T) {
	g := models.Game{Holes: buildHoles(18, nil, nil)}
	require.NoError(t, ScoreGame(&g))

	assert.Equal(t, models.GamePoints{}, g.Points)
	assert.Equal(t, models.TeamTotals{}, g.StrokePlayScore)
	assert.Equal(t, models.TeamTotals{}, g.MatchPlayScore)
	assert.Equal(t, models.GameStatusNotStarted, g.Status)
}

// In-progress points project from the current partial totals. A mode with no
// data on one side contributes nothing to either side — no projection from
// no data.
func TestScoreGame_InProgressPoints(t *testing.T) {
	tests := []struct {
		name    string
		usa     []*int
		europe  []*int
		wantRaw models.PointsPair
	}{
		{
			name:    "usa ahead on both partial modes",
			usa:     []*int{ip(3), ip(3)},
			europe:  []*int{ip(5), ip(5)},
			wantRaw: models.PointsPair{USA: 2, Europe: 0},
		},
		{
			name:    "tied on both partial modes",
			usa:     []*int{ip(4), ip(3), ip(5)},
			europe:  []*int{ip(4), ip(5), ip(3)},
			wantRaw: models.PointsPair{USA: 1, Europe: 1},
		},
		{
			name: "only usa has recorded holes",
			usa:  []*int{ip(4), ip(4)},
			// Stroke play needs both sides scored; match play needs a hole
			// with both scores. Neither mode has data.
			europe:  nil,
			wantRaw: models.PointsPair{},
		},
		{
			name:    "disjoint holes: stroke play ties, match play has no data",
			usa:     []*int{ip(4), ip(4), nil, nil},
			europe:  []*int{nil, nil, ip(4), ip(4)},
			wantRaw: models.PointsPair{USA: 0.5, Europe: 0.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := models.Game{
				IsStarted: true,
				Holes:     buildHoles(18, tt.usa, tt.europe),
			}
			require.NoError(t, ScoreGame(&g))
			assert.Equal(t, tt.wantRaw, g.Points.Raw)
			assert.Equal(t, models.GameStatusInProgress, g.Status)
		})
	}
}

// The handicap can flip a mode: raw and adjusted points are computed
// independently, and only the receiving side's scores move.
func TestScoreGame_HandicapFlipsOutcome(t *testing.T) {
	// Europe shoots one stroke better on every hole, but USA receives 36
	// strokes (two per hole), so USA wins every adjusted hole.
	g := completeGame(repeat(5, 18), repeat(4, 18))
	g.HandicapStrokes = 36
	g.HigherHandicapTeam = tp(models.TeamEurope)

	require.NoError(t, ScoreGame(&g))

	assert.Equal(t, models.PointsPair{USA: 0, Europe: 2}, g.Points.Raw)
	assert.Equal(t, models.PointsPair{USA: 2, Europe: 0}, g.Points.Adjusted)
	assert.Equal(t, 90, g.StrokePlayScore.USA)
	assert.Equal(t, 54, g.StrokePlayScore.AdjustedUSA)
	assert.Equal(t, 72, g.StrokePlayScore.Europe)
	assert.Equal(t, 72, g.StrokePlayScore.AdjustedEurope)
	assert.Equal(t, 18, g.MatchPlayScore.AdjustedUSA)
	assert.Equal(t, 0, g.MatchPlayScore.AdjustedEurope)
}

// Recomputing from the same holes must not change anything.
func TestScoreGame_Idempotent(t *testing.T) {
	usa := append([]int{3, 6, 4}, repeat(4, 15)...)
	europe := append([]int{4, 4, 5}, repeat(5, 15)...)
	g := completeGame(usa, europe)
	g.HandicapStrokes = 7
	g.HigherHandicapTeam = tp(models.TeamUSA)

	require.NoError(t, ScoreGame(&g))
	first := g
	firstHoles := append([]models.Hole(nil), g.Holes...)

	require.NoError(t, ScoreGame(&g))
	assert.Equal(t, first.StrokePlayScore, g.StrokePlayScore)
	assert.Equal(t, first.MatchPlayScore, g.MatchPlayScore)
	assert.Equal(t, first.Points, g.Points)
	assert.Equal(t, firstHoles, g.Holes)
}

func TestScoreGame_InvalidConfigPropagates(t *testing.T) {
	g := completeGame(repeat(4, 18), repeat(4, 18))
	g.Holes[0].StrokeIndex = 18 // duplicate

	err := ScoreGame(&g)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidHoleConfiguration)
}

func TestLeaders(t *testing.T) {
	assert.Equal(t, models.TeamUSA, *StrokePlayLeader(70, 75))
	assert.Equal(t, models.TeamEurope, *StrokePlayLeader(75, 70))
	assert.Nil(t, StrokePlayLeader(72, 72))

	assert.Equal(t, models.TeamUSA, *MatchPlayLeader(5, 3))
	assert.Equal(t, models.TeamEurope, *MatchPlayLeader(3, 5))
	assert.Nil(t, MatchPlayLeader(4, 4))
}
