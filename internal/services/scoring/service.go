package scoring

import (
	"math"

	"github.com/mcoot/memorymatch-go/internal/model"
)

// Scoring constants
const (
	// BasePoints is the starting score before the time penalty
	BasePoints = 1000
	// TimePenaltyRate is points lost per second of play
	TimePenaltyRate = 10
	// MinBasePoints is the floor for the time-based component. A completed
	// run always earns at least this much, which also guarantees completed
	// entries outrank never-completed ones (points 0) on the leaderboard.
	MinBasePoints = 100
)

// CalculatePoints converts an elapsed time and the achievements newly
// unlocked this session into a point total. It is a pure function: no side
// effects, same inputs always give the same result, and the result is a
// non-negative integer.
func CalculatePoints(elapsed float64, unlocked []model.Achievement) int {
	base := BasePoints - int(math.Round(elapsed*TimePenaltyRate))
	if base < MinBasePoints {
		base = MinBasePoints
	}

	total := base
	for _, a := range unlocked {
		total += a.Points
	}

	if total < 0 {
		total = 0
	}
	return total
}
