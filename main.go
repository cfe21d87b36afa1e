package main

import (
	"os"
	"thud/config"
	"thud/experiments"
	"thud/game"
	"thud/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// THUD_CONFIG names an optional YAML file; THUD_* variables override it.
	cfg, err := config.Load(os.Getenv("THUD_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	dwarf, err := agent.New("dwarf-"+cfg.Dwarf.Agent.String(), cfg.Agent(game.Dwarf))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create the dwarf agent")
	}
	troll, err := agent.New("troll-"+cfg.Troll.Agent.String(), cfg.Agent(game.Troll))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create the troll agent")
	}

	result, err := experiments.RunMatch(cfg.Games, cfg.NewState, dwarf, troll)
	if err != nil {
		log.Fatal().Err(err).Msg("match aborted")
	}
	for i, g := range result.Games {
		log.Info().Msgf("game %d (%s): %s as dwarves, %s as trolls, %v after %d moves, %.0f-%.0f, thinking %v/%v",
			i+1, g.ID, g.DwarfAgent, g.TrollAgent, g.Status, g.TotalMoves, g.DwarfScore, g.TrollScore, g.DwarfTime, g.TrollTime)
	}
	if leader := result.Leader(); leader >= 0 {
		log.Info().Msgf("%s wins the match %d-%d", result.Players[leader], result.Wins[leader], result.Wins[1-leader])
	} else {
		log.Info().Msgf("match drawn %d-%d with %d drawn games", result.Wins[0], result.Wins[1], result.Draws)
	}
}
