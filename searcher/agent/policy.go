package agent

import (
	"thud/experiments/metrics"
	"thud/game"
	"thud/searcher"
	"time"
)

// policyAgent plays a rollout policy directly, without looking ahead.
type policyAgent struct {
	name   string
	kind   Kind
	policy searcher.Policy
	metric metrics.SearchMetric
}

func (a *policyAgent) Name() string { return a.name }
func (a *policyAgent) Kind() Kind   { return a.kind }

func (a *policyAgent) ChooseAction(state *game.GameState) (game.Action, error) {
	start := time.Now()
	actions := state.ValidActions()
	if len(actions) == 0 {
		return game.Action{}, game.ErrNoLegalActions
	}
	action := a.policy(state, actions)
	a.metric = metrics.SearchMetric{Algorithm: a.kind.String(), Workers: 1, Duration: time.Since(start)}
	return action, nil
}

func (a *policyAgent) Metric() metrics.SearchMetric { return a.metric }

type searchAgent struct {
	name     string
	kind     Kind
	searcher searcher.Searcher
}

func (a *searchAgent) Name() string { return a.name }
func (a *searchAgent) Kind() Kind   { return a.kind }

func (a *searchAgent) ChooseAction(state *game.GameState) (game.Action, error) {
	return a.searcher.Search(state)
}

func (a *searchAgent) Metric() metrics.SearchMetric { return a.searcher.Metric() }
