package searcher

import (
	"thud/experiments/metrics"
	"thud/game"

	"golang.org/x/sync/errgroup"
)

// Ensemble searches the same position with several independent trees in
// parallel and plays the action with the most visits summed over all trees.
// Workers share nothing but the position, which each receives as its own copy.
type Ensemble struct {
	workers []*MCTS
	metric  metrics.SearchMetric
}

// NewEnsemble builds workers trees with the same options. Rollout policies
// must be safe for concurrent use; the default one is.
func NewEnsemble(workers int, options ...Option) (*Ensemble, error) {
	if workers < 1 {
		return nil, errInvalid("ensemble needs at least one worker, got %d", workers)
	}
	e := &Ensemble{workers: make([]*MCTS, workers)}
	for i := range e.workers {
		m, err := NewMCTS(options...)
		if err != nil {
			return nil, err
		}
		e.workers[i] = m
	}
	return e, nil
}

func (e *Ensemble) Search(state *game.GameState) (game.Action, error) {
	actions := state.ValidActions()
	if len(actions) == 0 {
		return game.Action{}, game.ErrNoLegalActions
	}

	policies := make([]map[game.Action]int, len(e.workers))
	parts := make([]metrics.SearchMetric, len(e.workers))
	var g errgroup.Group
	for i, m := range e.workers {
		g.Go(func() error {
			if err := m.run(state.Clone()); err != nil {
				return err
			}
			policies[i] = m.Policy()
			parts[i] = m.Metric()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return game.Action{}, err
	}
	e.metric = metrics.Merge("ensemble", parts)

	// Sum in generation order so that ties resolve the same way every time.
	best, bestVisits := actions[0], -1
	for _, a := range actions {
		visits := 0
		for _, p := range policies {
			visits += p[a]
		}
		if visits > bestVisits {
			best, bestVisits = a, visits
		}
	}
	return best, nil
}

func (e *Ensemble) Metric() metrics.SearchMetric {
	return e.metric
}
