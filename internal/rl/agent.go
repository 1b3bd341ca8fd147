package rl

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/territorial-rl/territorial/internal/config"
	"github.com/territorial-rl/territorial/internal/game"
	"github.com/territorial-rl/territorial/internal/game/core"
	"github.com/territorial-rl/territorial/internal/game/rules"
)

// Agent is an epsilon-greedy learner over the fixed action index space.
// It masks the model's output to the legal set before choosing, stores
// transitions in a replay buffer, and fits the online model against
// Bellman targets computed from a lagging target copy.
type Agent struct {
	online Approximator
	target Approximator
	space  ActionSpace
	buffer *ReplayBuffer

	epsilon    float64
	decay      float64
	epsilonMin float64
	gamma      float32
	batchSize  int
	syncEvery  int
	updates    int

	rng    *rand.Rand
	logger zerolog.Logger
}

// NewAgent wires an agent from config. online and target must share
// dimensions; the target is overwritten with the online weights before
// first use.
func NewAgent(cfg config.RLConfig, online, target Approximator, space ActionSpace, rng *rand.Rand, logger zerolog.Logger) *Agent {
	target.Restore(online.Snapshot())
	return &Agent{
		online:     online,
		target:     target,
		space:      space,
		buffer:     NewReplayBuffer(cfg.BufferCapacity, logger),
		epsilon:    cfg.EpsilonStart,
		decay:      cfg.EpsilonDecay,
		epsilonMin: cfg.EpsilonMin,
		gamma:      float32(cfg.Gamma),
		batchSize:  cfg.BatchSize,
		syncEvery:  cfg.TargetSyncEvery,
		rng:        rng,
		logger:     logger.With().Str("component", "agent").Logger(),
	}
}

// SelectAction picks an action for the player: with probability epsilon
// a uniform legal action, otherwise the legal action with the highest
// predicted value. Ties keep the earliest action in enumeration order.
// A nil action with index -1 means pass (empty legal set).
func (a *Agent) SelectAction(gs *game.GameState, playerID int) (core.Action, int, error) {
	p := gs.Player(playerID)
	if p == nil || !p.Alive {
		return nil, -1, nil
	}
	legal := rules.LegalActions(gs.Grid, playerID, p.Gold)
	if len(legal) == 0 {
		return nil, -1, nil
	}

	if a.rng.Float64() < a.epsilon {
		act := legal[a.rng.Intn(len(legal))]
		return act, a.space.Index(gs.Grid, act), nil
	}

	q, err := a.online.Predict(Featurize(gs, playerID))
	if err != nil {
		return nil, -1, err
	}
	var best core.Action
	bestIdx := -1
	var bestQ float32
	for _, act := range legal {
		idx := a.space.Index(gs.Grid, act)
		if idx < 0 || idx >= len(q) {
			continue
		}
		if bestIdx == -1 || q[idx] > bestQ {
			best, bestIdx, bestQ = act, idx, q[idx]
		}
	}
	return best, bestIdx, nil
}

// Observe records a transition for later batch updates.
func (a *Agent) Observe(t Transition) {
	a.buffer.Add(t)
}

// Train runs one batch update when the buffer holds at least a batch.
// Targets follow the Bellman backup against the lagging target model;
// terminal transitions use the raw reward. Each update decays epsilon
// and periodically syncs the target copy.
func (a *Agent) Train() error {
	if a.buffer.Len() < a.batchSize {
		return nil
	}
	batch, err := a.buffer.Sample(a.rng, a.batchSize)
	if err != nil {
		return err
	}

	states := make([][]float32, len(batch))
	targets := make([][]float32, len(batch))
	for i, t := range batch {
		current, err := a.online.Predict(t.State)
		if err != nil {
			return err
		}
		y := t.Reward
		if !t.Done {
			next, err := a.target.Predict(t.NextState)
			if err != nil {
				return err
			}
			y += a.gamma * maxOf(next)
		}
		current[t.ActionIndex] = y
		states[i] = t.State
		targets[i] = current
	}
	if err := a.online.Fit(states, targets); err != nil {
		return err
	}

	a.updates++
	a.epsilon *= a.decay
	if a.epsilon < a.epsilonMin {
		a.epsilon = a.epsilonMin
	}
	if a.updates%a.syncEvery == 0 {
		a.target.Restore(a.online.Snapshot())
		a.logger.Debug().Int("updates", a.updates).Msg("Synced target network")
	}
	return nil
}

// Epsilon returns the current exploration rate.
func (a *Agent) Epsilon() float64 { return a.epsilon }

// BufferLen returns the number of buffered transitions.
func (a *Agent) BufferLen() int { return a.buffer.Len() }

// Model exposes the online model for persistence.
func (a *Agent) Model() Approximator { return a.online }

func maxOf(xs []float32) float32 {
	if len(xs) == 0 {
		return 0
	}
	best := xs[0]
	for _, x := range xs[1:] {
		if x > best {
			best = x
		}
	}
	return best
}
