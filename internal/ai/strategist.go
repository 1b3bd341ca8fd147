// Package ai implements the rule-based strategy selector. A Strategist
// proposes at most one action per agent per tick; a nil proposal means
// the agent passes, which is a routine outcome rather than an error.
package ai

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/territorial-rl/territorial/internal/game"
	"github.com/territorial-rl/territorial/internal/game/core"
	"github.com/territorial-rl/territorial/internal/game/rules"
)

const (
	// threatThreshold forces the defensive strategy regardless of
	// personality.
	threatThreshold = 0.7
	// earlyGameDays is the window during which everyone expands.
	earlyGameDays = 5
	// builderTerritoryCount pushes wide empires into the building
	// strategy even without the Builder personality.
	builderTerritoryCount = 15
	// goldReserve keeps ratio-driven construction from draining the
	// treasury to zero.
	goldReserve = 50
)

// Strategist picks actions for rule-based agents. Decisions are
// memoryless across ticks; the only persistent input is the player's
// personality tag fixed at creation.
type Strategist struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewStrategist creates a strategist sharing the session's RNG.
func NewStrategist(rng *rand.Rand, logger zerolog.Logger) *Strategist {
	return &Strategist{
		rng:    rng,
		logger: logger.With().Str("component", "strategist").Logger(),
	}
}

// Decide dispatches to a sub-strategy by threat level, game day, and
// personality, in strict priority order.
func (s *Strategist) Decide(gs *game.GameState, playerID int) core.Action {
	p := gs.Player(playerID)
	if p == nil || !p.Alive {
		return nil
	}

	threat := rules.ThreatLevel(gs.Grid, playerID)

	switch {
	case threat > threatThreshold:
		return s.defensive(gs, p)
	case gs.Day < earlyGameDays || p.Personality == game.PersonalityExpansionist:
		return s.expansion(gs, p)
	case p.Personality == game.PersonalityBuilder || p.TerritoryCount > builderTerritoryCount:
		return s.building(gs, p)
	case p.Personality == game.PersonalityAggressive:
		return s.aggressive(gs, p)
	default:
		return s.balanced(gs, p, threat)
	}
}
