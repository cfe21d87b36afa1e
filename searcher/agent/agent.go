package agent

import (
	"fmt"
	"strings"
	"thud/experiments/metrics"
	"thud/game"
	"thud/searcher"
	"time"

	"golang.org/x/exp/rand"
)

// Kind names one of the built-in decision makers.
type Kind int

const (
	Random Kind = iota
	CapturePreferring
	Minimax
	MCTS
)

var kindNames = map[Kind]string{
	Random:            "random",
	CapturePreferring: "capture",
	Minimax:           "minimax",
	MCTS:              "mcts",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown agent kind %q", s)
}

type Agent interface {
	Name() string
	Kind() Kind
	// ChooseAction returns one of state's legal actions.
	ChooseAction(state *game.GameState) (game.Action, error)
	// Metric describes the most recent choice.
	Metric() metrics.SearchMetric
}

type Config struct {
	Kind Kind
	// Seed fixes the random stream of the agent. Zero draws from frand.
	Seed uint64

	MinimaxDepth   int
	MinimaxBudget  time.Duration
	MinimaxPruning bool

	MCTSBudget      time.Duration
	MCTSEpisodes    int
	MCTSExploration float64
	MCTSCutoff      int
	MCTSWorkers     int
	MCTSReuse       bool
}

func (c Config) rng() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(c.Seed))
}

func New(name string, cfg Config) (Agent, error) {
	switch cfg.Kind {
	case Random:
		return &policyAgent{name: name, kind: Random, policy: searcher.RandomPolicy(cfg.rng())}, nil
	case CapturePreferring:
		return &policyAgent{name: name, kind: CapturePreferring, policy: searcher.CapturePolicy(cfg.rng())}, nil
	case Minimax:
		m, err := searcher.NewMinimax(cfg.MinimaxDepth,
			searcher.WithBudget(cfg.MinimaxBudget),
			searcher.WithPruning(cfg.MinimaxPruning),
		)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", name, err)
		}
		return &searchAgent{name: name, kind: Minimax, searcher: m}, nil
	case MCTS:
		s, err := newMCTS(cfg)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", name, err)
		}
		return &searchAgent{name: name, kind: MCTS, searcher: s}, nil
	}
	return nil, fmt.Errorf("agent %s: unknown kind %v", name, cfg.Kind)
}

func newMCTS(cfg Config) (searcher.Searcher, error) {
	options := []searcher.Option{
		searcher.WithDuration(cfg.MCTSBudget),
		searcher.WithEpisodes(cfg.MCTSEpisodes),
		searcher.WithExploration(cfg.MCTSExploration),
		searcher.WithCutoff(cfg.MCTSCutoff),
		searcher.WithTreeReuse(cfg.MCTSReuse),
	}
	if cfg.MCTSWorkers > 1 {
		return searcher.NewEnsemble(cfg.MCTSWorkers, options...)
	}
	options = append(options, searcher.WithRollout(searcher.RandomPolicy(cfg.rng())))
	return searcher.NewMCTS(options...)
}
