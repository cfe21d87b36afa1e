package config

import (
	"errors"
	"fmt"
	"strings"
	"thud/game"
	"thud/meta"
	"thud/searcher/agent"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Side struct {
	Agent agent.Kind
}

type Config struct {
	TurnLimit int
	BoardPath string
	Rules     game.Rules
	Games     int
	Seed      uint64
	LogLevel  zerolog.Level
	Dwarf     Side
	Troll     Side

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

func defaults(v *viper.Viper) {
	v.SetDefault("turn_limit", meta.DEFAULT_TURN_LIMIT)
	v.SetDefault("board_path", "")
	v.SetDefault("rules.troll_move_multi_capture", false)
	v.SetDefault("match.games", meta.DEFAULT_GAMES)
	v.SetDefault("seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("dwarf.agent", "mcts")
	v.SetDefault("troll.agent", "minimax")
	v.SetDefault("minimax.depth", meta.MINIMAX_DEPTH)
	v.SetDefault("minimax.budget", meta.MINIMAX_BUDGET)
	v.SetDefault("minimax.pruning", true)
	v.SetDefault("mcts.budget", meta.MCTS_BUDGET)
	v.SetDefault("mcts.episodes", 0)
	v.SetDefault("mcts.exploration", meta.EXPLORATION)
	v.SetDefault("mcts.cutoff", 0)
	v.SetDefault("mcts.workers", 1)
	v.SetDefault("mcts.reuse", true)
}

// Load reads the configuration from defaults, an optional YAML file at path
// and THUD_* environment variables, in increasing order of precedence.
// Nested keys map to variables with dots replaced by underscores, so
// mcts.budget is read from THUD_MCTS_BUDGET.
func Load(path string) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("thud")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	c := &Config{
		TurnLimit: v.GetInt("turn_limit"),
		BoardPath: v.GetString("board_path"),
		Rules:     game.Rules{TrollMoveMultiCapture: v.GetBool("rules.troll_move_multi_capture")},
		Games:     v.GetInt("match.games"),
		Seed:      v.GetUint64("seed"),

		MinimaxDepth:   v.GetInt("minimax.depth"),
		MinimaxBudget:  v.GetDuration("minimax.budget"),
		MinimaxPruning: v.GetBool("minimax.pruning"),

		MCTSBudget:      v.GetDuration("mcts.budget"),
		MCTSEpisodes:    v.GetInt("mcts.episodes"),
		MCTSExploration: v.GetFloat64("mcts.exploration"),
		MCTSCutoff:      v.GetInt("mcts.cutoff"),
		MCTSWorkers:     v.GetInt("mcts.workers"),
		MCTSReuse:       v.GetBool("mcts.reuse"),
	}

	var err error
	if c.LogLevel, err = zerolog.ParseLevel(v.GetString("log.level")); err != nil {
		return nil, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if c.Dwarf.Agent, err = agent.ParseKind(v.GetString("dwarf.agent")); err != nil {
		return nil, fmt.Errorf("%w: dwarf.agent: %v", ErrInvalidConfig, err)
	}
	if c.Troll.Agent, err = agent.ParseKind(v.GetString("troll.agent")); err != nil {
		return nil, fmt.Errorf("%w: troll.agent: %v", ErrInvalidConfig, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case c.TurnLimit < 1:
		return invalid("turn_limit must be positive, got %d", c.TurnLimit)
	case c.Games < 1:
		return invalid("match.games must be positive, got %d", c.Games)
	case c.MinimaxDepth < 1:
		return invalid("minimax.depth must be positive, got %d", c.MinimaxDepth)
	case c.MinimaxBudget <= 0:
		return invalid("minimax.budget must be positive, got %v", c.MinimaxBudget)
	case c.MCTSBudget <= 0 && c.MCTSEpisodes <= 0:
		return invalid("mcts needs a positive budget or episode count")
	case c.MCTSExploration < 0:
		return invalid("mcts.exploration must not be negative, got %v", c.MCTSExploration)
	case c.MCTSCutoff < 0:
		return invalid("mcts.cutoff must not be negative, got %d", c.MCTSCutoff)
	case c.MCTSWorkers < 1:
		return invalid("mcts.workers must be positive, got %d", c.MCTSWorkers)
	}
	return nil
}

// Agent returns the settings of the agent playing side. The troll agent's
// seed is offset so that two random agents do not mirror each other.
func (c *Config) Agent(side game.Piece) agent.Config {
	cfg := agent.Config{
		Kind:            c.Dwarf.Agent,
		Seed:            c.Seed,
		MinimaxDepth:    c.MinimaxDepth,
		MinimaxBudget:   c.MinimaxBudget,
		MinimaxPruning:  c.MinimaxPruning,
		MCTSBudget:      c.MCTSBudget,
		MCTSEpisodes:    c.MCTSEpisodes,
		MCTSExploration: c.MCTSExploration,
		MCTSCutoff:      c.MCTSCutoff,
		MCTSWorkers:     c.MCTSWorkers,
		MCTSReuse:       c.MCTSReuse,
	}
	if side == game.Troll {
		cfg.Kind = c.Troll.Agent
		if cfg.Seed != 0 {
			cfg.Seed++
		}
	}
	return cfg
}

// NewState builds the starting position: the board template at BoardPath if
// set, the standard board otherwise.
func (c *Config) NewState() (*game.GameState, error) {
	options := []game.StateOption{game.WithRules(c.Rules)}
	if c.BoardPath != "" {
		t, err := game.LoadTemplateFile(c.BoardPath)
		if err != nil {
			return nil, err
		}
		templateOptions, err := t.Options()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.BoardPath, err)
		}
		options = append(options, templateOptions...)
	}
	return game.NewGameState(c.TurnLimit, options...)
}
