package searcher

import (
	"errors"
	"fmt"
	"math"
	"thud/experiments/metrics"
	"thud/game"
)

// Searcher picks an action for the side to move.
type Searcher interface {
	Search(state *game.GameState) (game.Action, error)
	// Metric describes the most recent search.
	Metric() metrics.SearchMetric
}

// ucb1 scores a child for selection. An unvisited child always goes first.
func ucb1(mean float64, visits int, c, lnN float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	return mean + c*math.Sqrt(lnN/float64(visits))
}

var ErrInvalidOption = errors.New("invalid search option")

func errInvalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOption, fmt.Sprintf(format, args...))
}
