package experiments

import (
	"fmt"
	"thud/engine"
	"thud/experiments/metrics"
	"thud/game"
	"thud/searcher/agent"

	"github.com/rs/zerolog/log"
)

// NewState builds the starting position of each game.
type NewState func() (*game.GameState, error)

type MatchResult struct {
	Players [2]string
	Wins    [2]int
	Draws   int
	Games   []metrics.GameMetric
	Moves   [][]metrics.MoveMetric // per game
}

// Leader is the index of the player with more wins, or -1 when level.
func (r *MatchResult) Leader() int {
	switch {
	case r.Wins[0] > r.Wins[1]:
		return 0
	case r.Wins[1] > r.Wins[0]:
		return 1
	}
	return -1
}

// RunMatch plays a best-of-n match. Players swap sides every game, the first
// player starting as the dwarves, and the match stops as soon as one player
// holds a majority of the decisive games still possible.
func RunMatch(bestOf int, newState NewState, first, second agent.Agent) (*MatchResult, error) {
	if bestOf < 1 {
		return nil, fmt.Errorf("best of %d: need at least one game", bestOf)
	}
	players := [2]agent.Agent{first, second}
	result := &MatchResult{Players: [2]string{first.Name(), second.Name()}}

	log.Info().Msgf("starting best of %d between %s and %s...", bestOf, first.Name(), second.Name())

	for i := 0; i < bestOf && !matchOver(bestOf, result); i++ {
		dwarf := i % 2
		troll := 1 - dwarf
		state, err := newState()
		if err != nil {
			return result, fmt.Errorf("game %d: %w", i+1, err)
		}
		e, err := engine.LocalEngine(state, players[dwarf], players[troll])
		if err != nil {
			return result, err
		}

		gameMetric, moveMetrics, err := e.Run()
		if err != nil {
			return result, fmt.Errorf("game %d: %w", i+1, err)
		}
		result.Games = append(result.Games, gameMetric)
		result.Moves = append(result.Moves, moveMetrics)

		switch gameMetric.Winner {
		case game.Dwarf:
			result.Wins[dwarf]++
		case game.Troll:
			result.Wins[troll]++
		default:
			result.Draws++
		}
		log.Info().Msgf("completed game %d of %d with winner: %v (%.0f-%.0f)",
			i+1, bestOf, gameMetric.Winner, gameMetric.DwarfScore, gameMetric.TrollScore)
	}

	log.Info().Msgf("completed match: %s %d, %s %d, %d drawn",
		result.Players[0], result.Wins[0], result.Players[1], result.Wins[1], result.Draws)
	return result, nil
}

// matchOver reports whether a player has won more than half of the games
// that can still be decisive.
func matchOver(bestOf int, r *MatchResult) bool {
	decisive := bestOf - r.Draws
	return r.Wins[0] > decisive/2 || r.Wins[1] > decisive/2
}
