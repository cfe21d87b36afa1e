package engine

import (
	"errors"
	"fmt"
	"thud/experiments/metrics"
	"thud/game"
	"thud/searcher/agent"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrMissingAgent = errors.New("both sides need an agent")

// Local runs both agents in this process, alternating as the turn dictates.
type Local struct {
	id     uuid.UUID
	state  *game.GameState
	agents map[game.Piece]agent.Agent
}

func LocalEngine(state *game.GameState, dwarf, troll agent.Agent) (*Local, error) {
	if dwarf == nil || troll == nil {
		return nil, ErrMissingAgent
	}
	return &Local{
		id:    uuid.New(),
		state: state,
		agents: map[game.Piece]agent.Agent{
			game.Dwarf: dwarf,
			game.Troll: troll,
		},
	}, nil
}

func (e *Local) ID() uuid.UUID { return e.id }

// State is the current position; after Run it is the final one.
func (e *Local) State() *game.GameState { return e.state }

// Run executes the game loop. Every chosen action is validated before it is
// applied; an agent returning an illegal action aborts the game.
func (e *Local) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gm := metrics.GameMetric{
		ID:         e.id,
		DwarfAgent: e.agents[game.Dwarf].Name(),
		TrollAgent: e.agents[game.Troll].Name(),
		StartTime:  time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("game %s: %s (dwarves) against %s (trolls) from turn %d", e.id, gm.DwarfAgent, gm.TrollAgent, e.state.Turn())

	for !e.state.IsTerminal() {
		side := e.state.Player()
		a := e.agents[side]
		action, err := a.ChooseAction(e.state)
		if errors.Is(err, game.ErrNoLegalActions) {
			log.Warn().Msgf("game %s: %v cannot move on turn %d", e.id, side, e.state.Turn())
			break
		}
		if err != nil {
			return gm, moveMetrics, fmt.Errorf("game %s: %s on turn %d: %w", e.id, a.Name(), e.state.Turn(), err)
		}
		if err := e.state.Validate(action); err != nil {
			return gm, moveMetrics, fmt.Errorf("game %s: %s: %w", e.id, a.Name(), err)
		}

		sm := a.Metric()
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         e.state.Turn(),
			Player:       side,
			Action:       action,
			Hash:         e.state.Hash(),
			SearchMetric: sm,
		})
		if side == game.Dwarf {
			gm.DwarfTime += sm.Duration
		} else {
			gm.TrollTime += sm.Duration
		}
		log.Debug().Msgf("game %s turn %d: %v plays %v", e.id, e.state.Turn(), side, action)

		e.state = e.state.Apply(action)
	}

	gm.EndTime = time.Now()
	gm.Duration = gm.EndTime.Sub(gm.StartTime)
	gm.TotalMoves = len(moveMetrics)
	gm.Status = e.state.Status()
	gm.Winner = e.state.Winner()
	gm.DwarfScore = e.state.Score(game.Dwarf)
	gm.TrollScore = e.state.Score(game.Troll)

	log.Info().Msgf("game %s ended on turn %d (%v): %s, winner %v",
		e.id, e.state.Turn(), gm.Status, e.state.PlayerInfo(game.Dwarf)+"; "+e.state.PlayerInfo(game.Troll), gm.Winner)
	return gm, moveMetrics, nil
}
