package rl

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/territorial-rl/territorial/internal/ai"
	"github.com/territorial-rl/territorial/internal/config"
	"github.com/territorial-rl/territorial/internal/game"
	"github.com/territorial-rl/territorial/internal/game/core"
)

// learnerID is the player slot the learning agent occupies in every
// self-play episode.
const learnerID = 0

// Trainer runs the self-play training loop: fresh map and players per
// episode, one learning agent against rule-based opponents, batch
// updates on the configured cadence, metrics and weights persisted to
// the store.
type Trainer struct {
	cfg        *config.Config
	agent      *Agent
	strategist *ai.Strategist
	store      *Store // nil disables persistence
	reward     RewardConfig
	rng        *rand.Rand
	logger     zerolog.Logger
}

// NewTrainer wires a trainer. A nil store disables persistence.
func NewTrainer(cfg *config.Config, agent *Agent, strategist *ai.Strategist, store *Store, rng *rand.Rand, logger zerolog.Logger) *Trainer {
	return &Trainer{
		cfg:        cfg,
		agent:      agent,
		strategist: strategist,
		store:      store,
		reward:     DefaultRewardConfig(),
		rng:        rng,
		logger:     logger.With().Str("component", "trainer").Logger(),
	}
}

// Run executes the configured number of episodes. Cancellation is
// cooperative: the context is checked at every episode and tick
// boundary, never mid-resolution.
func (t *Trainer) Run(ctx context.Context) error {
	for ep := 1; ep <= t.cfg.Training.Episodes; ep++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		stats, err := t.runEpisode(ctx, ep)
		if err != nil {
			return err
		}

		if ep%t.cfg.Training.EpisodesPerUpdate == 0 {
			if err := t.agent.Train(); err != nil {
				return fmt.Errorf("batch update after episode %d: %w", ep, err)
			}
		}
		stats.Epsilon = t.agent.Epsilon()

		t.logger.Info().
			Int("episode", ep).
			Int("ticks", stats.Ticks).
			Int("winner", stats.Winner).
			Float32("reward", stats.Reward).
			Float64("epsilon", stats.Epsilon).
			Int("buffer", t.agent.BufferLen()).
			Msg("Episode finished")

		if t.store != nil {
			if err := t.store.RecordEpisode(ctx, stats); err != nil {
				return fmt.Errorf("recording episode %d: %w", ep, err)
			}
			if err := t.saveModel(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Trainer) runEpisode(ctx context.Context, episode int) (EpisodeStats, error) {
	specs := make([]game.PlayerSpec, t.cfg.Training.Players)
	specs[learnerID] = game.PlayerSpec{Name: "learner"}
	for i := 1; i < len(specs); i++ {
		specs[i] = game.PlayerSpec{
			Name:        fmt.Sprintf("bot-%d", i),
			Personality: game.Personality(t.rng.Intn(int(game.PersonalityDefensive) + 1)),
		}
	}

	engine := game.NewEngine(t.cfg.Game, specs, t.rng, nil, t.logger)
	gs := engine.State()

	delay := t.tickDelay()
	prev := SnapshotPlayer(gs, learnerID)
	var cumReward float32
	ticks := 0

	for tick := 1; tick <= t.cfg.Training.MaxTicks; tick++ {
		if err := ctx.Err(); err != nil {
			return EpisodeStats{}, err
		}

		stateVec := Featurize(gs, learnerID)
		act, actIdx, err := t.agent.SelectAction(gs, learnerID)
		if err != nil {
			return EpisodeStats{}, fmt.Errorf("selecting action at tick %d: %w", tick, err)
		}

		var actions []core.Action
		if act != nil {
			actions = append(actions, act)
		}
		for i := range gs.Players {
			p := &gs.Players[i]
			if p.ID == learnerID || !p.Alive {
				continue
			}
			if a := t.strategist.Decide(gs, p.ID); a != nil {
				actions = append(actions, a)
			}
		}

		if err := engine.Step(actions); err != nil {
			return EpisodeStats{}, err
		}
		ticks = tick

		done := engine.IsGameOver() || tick == t.cfg.Training.MaxTicks
		curr := SnapshotPlayer(gs, learnerID)
		r := Reward(t.reward, prev, curr, done, engine.Leader() == learnerID)
		cumReward += r
		prev = curr

		if actIdx >= 0 {
			t.agent.Observe(Transition{
				State:       stateVec,
				ActionIndex: actIdx,
				Reward:      r,
				NextState:   Featurize(gs, learnerID),
				Done:        done,
			})
		}

		if done {
			break
		}
		if delay > 0 {
			select {
			case <-ctx.Done():
				return EpisodeStats{}, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return EpisodeStats{
		GameID:  gs.ID,
		Episode: episode,
		Ticks:   ticks,
		Winner:  engine.Winner(),
		Reward:  cumReward,
	}, nil
}

// tickDelay scales the configured per-tick delay by the sim speed.
// Speed 2.0 halves the delay; zero delay disables sleeping entirely.
func (t *Trainer) tickDelay() time.Duration {
	if t.cfg.Training.TickDelayMs <= 0 {
		return 0
	}
	ms := float64(t.cfg.Training.TickDelayMs) / t.cfg.Training.SimSpeed
	return time.Duration(ms * float64(time.Millisecond))
}

func (t *Trainer) saveModel(ctx context.Context) error {
	payload, err := t.agent.Model().MarshalWeights()
	if err != nil {
		return fmt.Errorf("marshalling model weights: %w", err)
	}
	if err := t.store.SaveModel(ctx, t.cfg.Training.ModelName, payload); err != nil {
		return fmt.Errorf("saving model weights: %w", err)
	}
	return nil
}
