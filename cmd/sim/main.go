package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/territorial-rl/territorial/internal/ai"
	"github.com/territorial-rl/territorial/internal/config"
	"github.com/territorial-rl/territorial/internal/game"
	"github.com/territorial-rl/territorial/internal/game/core"
	"github.com/territorial-rl/territorial/internal/game/events"
	"github.com/territorial-rl/territorial/internal/game/events/subscribers"
)

// sim runs a headless match between rule-based agents and renders the
// board to the terminal after every growth interval.
func main() {
	configPath := flag.String("config", "", "Path to config file")
	players := flag.Int("players", -1, "Number of players (-1 to use config default)")
	ticks := flag.Int("ticks", -1, "Maximum ticks (-1 to use config default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 for time-based)")
	delay := flag.Duration("delay", 200*time.Millisecond, "Delay between rendered frames")
	logLevel := flag.String("log-level", "", "Log level (empty to use config default)")
	flag.Parse()

	cfg, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *players == -1 {
		*players = cfg.Training.Players
	}
	if *ticks == -1 {
		*ticks = cfg.Training.MaxTicks
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	logger := setupLogging(*logLevel, cfg.Logging.Format)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	specs := make([]game.PlayerSpec, *players)
	for i := range specs {
		specs[i] = game.PlayerSpec{
			Name:        fmt.Sprintf("bot-%d", i),
			Personality: game.Personality(i % (int(game.PersonalityDefensive) + 1)),
		}
	}

	bus := events.NewEventBus(logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber(logger))

	engine := game.NewEngine(cfg.Game, specs, rng, bus, logger)
	strategist := ai.NewStrategist(rng, logger)

	logger.Info().
		Int("players", *players).
		Int("max_ticks", *ticks).
		Int64("seed", *seed).
		Msg("Starting simulation")

	gs := engine.State()
	for tick := 1; tick <= *ticks; tick++ {
		var actions []core.Action
		for i := range gs.Players {
			p := &gs.Players[i]
			if !p.Alive {
				continue
			}
			if a := strategist.Decide(gs, p.ID); a != nil {
				actions = append(actions, a)
			}
		}
		if err := engine.Step(actions); err != nil {
			logger.Fatal().Err(err).Msg("Step failed")
		}

		if gs.Tick%cfg.Game.Growth.IntervalTicks == 0 {
			fmt.Print("\033[H\033[2J")
			fmt.Println(engine.Board())
			time.Sleep(*delay)
		}
		if engine.IsGameOver() {
			break
		}
	}

	fmt.Println(engine.Board())
	if engine.IsGameOver() {
		logger.Info().Int("winner", engine.Winner()).Int("ticks", gs.Tick).Msg("Game over")
	} else {
		logger.Info().Int("leader", engine.Leader()).Int("ticks", gs.Tick).Msg("Tick limit reached")
	}
}

func setupLogging(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}
