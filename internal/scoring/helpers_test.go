package scoring

import (
	"github.com/12ian34/ruffryder-api/internal/models"
	"github.com/google/uuid"
)

// ip returns a pointer to v, for filling nullable hole scores.
func ip(v int) *int {
	return &v
}

// tp returns a pointer to a team.
func tp(t models.Team) *models.Team {
	return &t
}

// buildHoles builds n holes where hole i has number and stroke index i+1 and
// par 4. usa/europe supply the raw scores per hole; a nil entry leaves the
// hole unscored on that side. Slices shorter than n leave the tail unscored.
func buildHoles(n int, usa, europe []*int) []models.Hole {
	holes := make([]models.Hole, n)
	for i := range holes {
		holes[i] = models.Hole{
			HoleNumber:  i + 1,
			StrokeIndex: i + 1,
			Par:         4,
		}
		if i < len(usa) {
			holes[i].USAScore = usa[i]
		}
		if i < len(europe) {
			holes[i].EuropeScore = europe[i]
		}
	}
	return holes
}

// scoredHoles builds fully-scored holes from two equal-length score slices.
func scoredHoles(usa, europe []int) []models.Hole {
	up := make([]*int, len(usa))
	ep := make([]*int, len(europe))
	for i := range usa {
		up[i] = ip(usa[i])
	}
	for i := range europe {
		ep[i] = ip(europe[i])
	}
	return buildHoles(len(usa), up, ep)
}

// completeGame builds a complete game over fully-scored holes with no
// handicap metadata.
func completeGame(usa, europe []int) models.Game {
	return models.Game{
		ID:         uuid.New(),
		IsStarted:  true,
		IsComplete: true,
		Holes:      scoredHoles(usa, europe),
	}
}

// repeat returns a slice of n copies of v.
func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}
