package searcher

import (
	"math"
	"thud/experiments/metrics"
	"thud/game"
	"thud/meta"
	"time"

	"github.com/rs/zerolog/log"
)

type MinimaxOption func(m *Minimax)

// Minimax is a depth-limited minimax search with optional alpha-beta
// pruning. Values are taken from the point of view of the side to move at
// the root. Once the budget is spent every unexpanded node is scored
// statically, so a search always completes with an answer.
type Minimax struct {
	maxDepth int
	budget   time.Duration
	pruning  bool
	evaluate game.Evaluate
	metrics  metrics.Collector

	tree     *Tree
	side     game.Piece
	start    time.Time
	visited  int
	pruned   int
	timedOut bool
}

func WithBudget(budget time.Duration) MinimaxOption {
	return func(m *Minimax) {
		if budget > 0 {
			m.budget = budget
		}
	}
}

func WithPruning(pruning bool) MinimaxOption {
	return func(m *Minimax) {
		m.pruning = pruning
	}
}

func WithEvaluation(evaluate game.Evaluate) MinimaxOption {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func NewMinimax(maxDepth int, options ...MinimaxOption) (*Minimax, error) {
	if maxDepth < 1 {
		return nil, errInvalid("minimax depth must be positive, got %d", maxDepth)
	}
	m := &Minimax{ // Default values
		maxDepth: maxDepth,
		budget:   meta.MINIMAX_BUDGET,
		pruning:  true,
		evaluate: game.EvaluateResult,
		metrics:  metrics.NewCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

func (m *Minimax) Search(state *game.GameState) (game.Action, error) {
	m.tree = NewTree(state)
	m.side = state.Player()
	m.start = time.Now()
	m.visited, m.pruned, m.timedOut = 0, 0, false
	m.metrics.Start("minimax", 1, m.maxDepth)

	root := m.tree.Root()
	if m.tree.IsFullyExpanded(root) {
		return game.Action{}, game.ErrNoLegalActions
	}

	value, best := m.maxi(root, math.Inf(-1), math.Inf(1))
	action, _ := m.tree.Action(best)

	m.metrics.SetTree(m.tree.Size(), m.tree.BestDepth())
	log.Debug().Msgf("minimax chose %v with value %.2f after visiting %d nodes (%d pruned, timed out: %t) in %v",
		action, value, m.visited, m.pruned, m.timedOut, time.Since(m.start))
	return action, nil
}

func (m *Minimax) NodesVisited() int { return m.visited }
func (m *Minimax) Pruned() int       { return m.pruned }
func (m *Minimax) TimedOut() bool    { return m.timedOut }

func (m *Minimax) Metric() metrics.SearchMetric {
	return m.metrics.Complete()
}

// leaf visits id and decides whether it is scored without looking further.
// The root is always expanded.
func (m *Minimax) leaf(id NodeID) (float64, bool) {
	m.visited++
	m.metrics.AddNode()
	if id == m.tree.Root() {
		return 0, false
	}
	if time.Since(m.start) >= m.budget {
		if !m.timedOut {
			m.timedOut = true
			m.metrics.SetTimedOut()
		}
		return m.value(id), true
	}
	if m.tree.Depth(id) >= m.maxDepth || m.tree.IsTerminal(id) {
		return m.value(id), true
	}
	// blocked
	if m.tree.IsFullyExpanded(id) && len(m.tree.Children(id)) == 0 {
		return m.value(id), true
	}
	return 0, false
}

func (m *Minimax) value(id NodeID) float64 {
	return m.evaluate(m.tree.State(id), m.side)
}

// maxi returns the value of id and the child it was taken from. Only the
// first child reaching the best value is kept.
func (m *Minimax) maxi(id NodeID, alpha, beta float64) (float64, NodeID) {
	if v, ok := m.leaf(id); ok {
		return v, NoNode
	}
	best, bestChild := math.Inf(-1), NoNode
	for !m.tree.IsFullyExpanded(id) {
		child := m.tree.ExpandOne(id)
		v, _ := m.mini(child, alpha, beta)
		m.tree.Discard(child)
		if v > best {
			best, bestChild = v, child
		}
		if m.pruning {
			alpha = max(alpha, v)
			if alpha >= beta {
				m.prune()
				break
			}
		}
	}
	return best, bestChild
}

func (m *Minimax) mini(id NodeID, alpha, beta float64) (float64, NodeID) {
	if v, ok := m.leaf(id); ok {
		return v, NoNode
	}
	best, bestChild := math.Inf(1), NoNode
	for !m.tree.IsFullyExpanded(id) {
		child := m.tree.ExpandOne(id)
		v, _ := m.maxi(child, alpha, beta)
		m.tree.Discard(child)
		if v < best {
			best, bestChild = v, child
		}
		if m.pruning {
			beta = min(beta, v)
			if alpha >= beta {
				m.prune()
				break
			}
		}
	}
	return best, bestChild
}

func (m *Minimax) prune() {
	m.pruned++
	m.metrics.AddPruned()
}
