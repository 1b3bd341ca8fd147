package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/territorial-rl/territorial/internal/ai"
	"github.com/territorial-rl/territorial/internal/config"
	"github.com/territorial-rl/territorial/internal/game/core"
	"github.com/territorial-rl/territorial/internal/rl"
)

// train runs the self-play training loop: a learning agent against
// rule-based opponents, with weights and metrics persisted to the
// configured SQLite store.
func main() {
	configPath := flag.String("config", "", "Path to config file")
	episodes := flag.Int("episodes", -1, "Number of episodes (-1 to use config default)")
	storePath := flag.String("store", "", "SQLite store path (empty to use config default)")
	resume := flag.Bool("resume", false, "Resume from weights saved under training.model_name")
	seed := flag.Int64("seed", 0, "RNG seed (0 for time-based)")
	logLevel := flag.String("log-level", "", "Log level (empty to use config default)")
	flag.Parse()

	cfg, v, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *episodes != -1 {
		cfg.Training.Episodes = *episodes
	}
	if *storePath != "" {
		cfg.Training.StorePath = *storePath
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	logger := setupLogging(*logLevel, cfg.Logging.Format)

	// Hot reload only touches knobs that are safe to change mid-run.
	config.Watch(v, logger, func(next *config.Config) {
		cfg.Training.SimSpeed = next.Training.SimSpeed
		cfg.Training.TickDelayMs = next.Training.TickDelayMs
		logger.Info().
			Float64("sim_speed", cfg.Training.SimSpeed).
			Int("tick_delay_ms", cfg.Training.TickDelayMs).
			Msg("Config reloaded")
	})

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	// Feature and action dimensions are fixed by the map size.
	dims := core.NewGrid(cfg.Game.Map.Width, cfg.Game.Map.Height)
	space := rl.NewActionSpace(dims)
	online := rl.NewLinear(rl.FeatureSize(dims), space.Size(), cfg.RL.LearningRate, rng)
	target := rl.NewLinear(rl.FeatureSize(dims), space.Size(), cfg.RL.LearningRate, rng)

	store, err := rl.OpenStore(cfg.Training.StorePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Training.StorePath).Msg("Failed to open store")
	}
	defer store.Close()

	if *resume {
		payload, err := store.LoadModel(context.Background(), cfg.Training.ModelName)
		switch {
		case errors.Is(err, rl.ErrModelNotFound):
			logger.Warn().Str("model", cfg.Training.ModelName).Msg("No saved weights, starting fresh")
		case err != nil:
			logger.Fatal().Err(err).Msg("Failed to load saved weights")
		default:
			if err := online.UnmarshalWeights(payload); err != nil {
				logger.Fatal().Err(err).Msg("Saved weights do not match the configured map size")
			}
			logger.Info().Str("model", cfg.Training.ModelName).Msg("Resumed from saved weights")
		}
	}

	agent := rl.NewAgent(cfg.RL, online, target, space, rng, logger)
	strategist := ai.NewStrategist(rng, logger)
	trainer := rl.NewTrainer(cfg, agent, strategist, store, rng, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal, finishing current tick")
		cancel()
	}()

	logger.Info().
		Int("episodes", cfg.Training.Episodes).
		Int("players", cfg.Training.Players).
		Int64("seed", *seed).
		Str("store", cfg.Training.StorePath).
		Msg("Starting training")

	if err := trainer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("Training failed")
	}
	logger.Info().Float64("epsilon", agent.Epsilon()).Msg("Training stopped")
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
