package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromFlags(t *testing.T) {
	assert.Equal(t, GameStatusNotStarted, StatusFromFlags(false, false))
	assert.Equal(t, GameStatusInProgress, StatusFromFlags(true, false))
	assert.Equal(t, GameStatusComplete, StatusFromFlags(true, true))
	// IsComplete implies IsStarted; a divergent pair still reads as complete
	// because the complete flag is the stronger claim.
	assert.Equal(t, GameStatusComplete, StatusFromFlags(false, true))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to GameStatus
		want     bool
	}{
		{GameStatusNotStarted, GameStatusInProgress, true},
		{GameStatusInProgress, GameStatusComplete, true},
		{GameStatusComplete, GameStatusInProgress, true},
		{GameStatusInProgress, GameStatusNotStarted, true},

		// No skipping a state in either direction.
		{GameStatusNotStarted, GameStatusComplete, false},
		{GameStatusComplete, GameStatusNotStarted, false},

		// No-op transitions are rejected.
		{GameStatusNotStarted, GameStatusNotStarted, false},
		{GameStatusInProgress, GameStatusInProgress, false},
		{GameStatusComplete, GameStatusComplete, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTeamOpponent(t *testing.T) {
	assert.Equal(t, TeamEurope, TeamUSA.Opponent())
	assert.Equal(t, TeamUSA, TeamEurope.Opponent())
}

func TestGameHoleInspection(t *testing.T) {
	four := 4
	g := Game{Holes: []Hole{
		{HoleNumber: 1, USAScore: &four, EuropeScore: &four},
		{HoleNumber: 2},
	}}

	assert.True(t, g.AnyHoleScored())
	assert.False(t, g.AllHolesScored())

	g.Holes[1].USAScore = &four
	g.Holes[1].EuropeScore = &four
	assert.True(t, g.AllHolesScored())

	empty := Game{}
	assert.False(t, empty.AnyHoleScored())
	// A game with no holes at all can never be complete.
	assert.False(t, empty.AllHolesScored())
}

func TestPointsArithmetic(t *testing.T) {
	a := GamePoints{Raw: PointsPair{USA: 1.5, Europe: 0.5}, Adjusted: PointsPair{USA: 1, Europe: 1}}
	b := GamePoints{Raw: PointsPair{USA: 0.5, Europe: 1.5}, Adjusted: PointsPair{Europe: 2}}

	sum := a.Add(b)
	assert.Equal(t, PointsPair{USA: 2, Europe: 2}, sum.Raw)
	assert.Equal(t, PointsPair{USA: 1, Europe: 3}, sum.Adjusted)
}
