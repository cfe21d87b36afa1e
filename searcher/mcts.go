package searcher

import (
	"math"
	"thud/experiments/metrics"
	"thud/game"
	"thud/meta"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(mcts *MCTS)

// MCTS is a single-tree Monte Carlo tree search with UCB1 selection. Between
// calls it keeps its tree, and a later search for a position already in the
// tree continues from that node instead of starting over.
type MCTS struct {
	duration    time.Duration
	episodes    int
	cutoff      int
	exploration float64
	policy      Policy
	reuse       bool
	tree        *Tree
	metrics     metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff stops playouts after depth actions. Zero plays to the end.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithRollout(policy Policy) Option {
	return func(m *MCTS) {
		if policy != nil {
			m.policy = policy
		}
	}
}

func WithTreeReuse(reuse bool) Option {
	return func(m *MCTS) {
		m.reuse = reuse
	}
}

func NewMCTS(options ...Option) (*MCTS, error) {
	m := &MCTS{ // Default values
		exploration: meta.EXPLORATION,
		policy:      RandomPolicy(nil),
		reuse:       true,
		metrics:     metrics.NewCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		return nil, errInvalid("must specify search episodes or duration")
	}
	return m, nil
}

func (m *MCTS) Search(state *game.GameState) (game.Action, error) {
	if err := m.run(state); err != nil {
		return game.Action{}, err
	}
	return m.best(), nil
}

func (m *MCTS) Metric() metrics.SearchMetric {
	return m.metrics.Complete()
}

// TreeSize and BestDepth describe the tree as the last search left it.
func (m *MCTS) TreeSize() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.Size()
}

func (m *MCTS) BestDepth() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.BestDepth()
}

func (m *MCTS) run(state *game.GameState) error {
	if len(state.ValidActions()) == 0 {
		return game.ErrNoLegalActions
	}
	m.metrics.Start("mcts", 1, m.cutoff)
	m.findRoot(state)

	// Run simulations to collect statistics
	if m.episodes > 0 {
		m.iterate()
	} else {
		m.countdown()
	}
	m.metrics.SetTree(m.tree.Size(), m.tree.BestDepth())
	return nil
}

// iterate runs the episode budget, stopping early if a duration is also set and runs out.
func (m *MCTS) iterate() {
	start := time.Now()
	for i := 0; i < m.episodes; i++ {
		if m.duration > 0 && time.Since(start) >= m.duration {
			return
		}
		m.simulate()
		m.metrics.AddEpisode()
	}
}

func (m *MCTS) countdown() {
	deadline := time.Now().Add(m.duration)
	for time.Now().Before(deadline) {
		m.simulate()
		m.metrics.AddEpisode()
	}
}

func (m *MCTS) findRoot(state *game.GameState) {
	if m.reuse && m.tree != nil {
		if id, ok := m.tree.Find(state, meta.REUSE_DEPTH); ok {
			m.tree.Reroot(id)
			m.metrics.SetTreeReset(false)
			return
		}
		log.Debug().Msgf("turn %d not found in previous tree, starting a new one", state.Turn())
	}
	m.tree = NewTree(state, WithShuffledExpansion())
	m.metrics.SetTreeReset(true)
}

func (m *MCTS) simulate() {
	id := m.selectThenExpand()
	final, full := Rollout(m.tree.State(id), m.policy, m.cutoff)
	if full {
		m.metrics.AddFullPlayout()
	}
	m.tree.Backpropagate(id, final.Score(game.Dwarf), final.Score(game.Troll))
}

// selectThenExpand descends through fully expanded nodes by UCB1 and expands
// one child of the first node that still has unexpanded actions.
func (m *MCTS) selectThenExpand() NodeID {
	t := m.tree
	id := t.Root()
	for !t.IsTerminal(id) && t.IsFullyExpanded(id) && len(t.Children(id)) > 0 {
		id = m.pickChild(id)
	}
	if !t.IsTerminal(id) && !t.IsFullyExpanded(id) {
		id = t.ExpandOne(id)
	}
	return id
}

// pickChild returns the child with the highest UCB1 score for the side to
// move at id, the first one on ties.
func (m *MCTS) pickChild(id NodeID) NodeID {
	t := m.tree
	side := t.State(id).Player()
	lnN := math.Log(float64(t.Visits(id)))

	best, bestScore := NoNode, math.Inf(-1)
	for _, child := range t.Children(id) {
		score := ucb1(t.MeanValue(child, side), t.Visits(child), m.exploration, lnN)
		if score == math.Inf(1) {
			return child
		}
		if best == NoNode || score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

// best is the most visited child of the root. A root that was never
// expanded falls back to its first legal action.
func (m *MCTS) best() game.Action {
	t := m.tree
	best, visits := NoNode, -1
	for _, child := range t.Children(t.Root()) {
		if v := t.Visits(child); v > visits {
			best, visits = child, v
		}
	}
	if best == NoNode {
		return t.State(t.Root()).ValidActions()[0]
	}
	action, _ := t.Action(best)
	log.Debug().Msgf("mcts chose %v with %d of %d visits", action, visits, t.Visits(t.Root()))
	return action
}

// Policy is the visit count of every expanded action at the root.
func (m *MCTS) Policy() map[game.Action]int {
	t := m.tree
	policy := make(map[game.Action]int, len(t.Children(t.Root())))
	for _, child := range t.Children(t.Root()) {
		action, _ := t.Action(child)
		policy[action] = t.Visits(child)
	}
	return policy
}
