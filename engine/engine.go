package engine

import "thud/experiments/metrics"

// Engine plays one game to the end.
type Engine interface {
	// Run plays until the game is over or the side to move is blocked.
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
