package ai

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/territorial-rl/territorial/internal/game"
	"github.com/territorial-rl/territorial/internal/game/core"
)

func newTestStrategist(seed int64) *Strategist {
	return NewStrategist(rand.New(rand.NewSource(seed)), zerolog.Nop())
}

// aiState: player 0 at (1,1) with troops, player 1 (human) at (3,1).
func aiState() *game.GameState {
	grid := core.NewGrid(8, 8)
	a := grid.At(1, 1)
	a.Owner = 0
	a.Troops = 10
	h := grid.At(3, 1)
	h.Owner = 1
	h.Troops = 3

	return &game.GameState{
		Grid: grid,
		Players: []game.Player{
			{ID: 0, Gold: 300, Alive: true, TerritoryCount: 1},
			{ID: 1, Gold: 300, Alive: true, Human: true, TerritoryCount: 1},
		},
		Day: 10,
	}
}

func TestDecide_DeadPlayerPasses(t *testing.T) {
	gs := aiState()
	gs.Players[0].Alive = false

	assert.Nil(t, newTestStrategist(1).Decide(gs, 0))
	assert.Nil(t, newTestStrategist(1).Decide(gs, 99))
}

func TestDecide_HighThreatForcesDefense(t *testing.T) {
	gs := aiState()
	// A massive stack next door makes every border weaker.
	gs.Grid.At(3, 1).Troops = 100
	gs.Players[0].Personality = game.PersonalityExpansionist

	action := newTestStrategist(1).Decide(gs, 0)
	require.NotNil(t, action)
	switch a := action.(type) {
	case *core.BuildAction:
		assert.Equal(t, core.BuildingFort, a.Kind)
		assert.Equal(t, 1, a.X)
		assert.Equal(t, 1, a.Y)
	case *core.DefendAction:
		assert.Equal(t, 1, a.X)
		assert.Equal(t, 1, a.Y)
	default:
		t.Fatalf("expected a defensive action, got %T", action)
	}
}

func TestDecide_EarlyGameAlwaysExpands(t *testing.T) {
	gs := aiState()
	gs.Day = 2
	gs.Players[0].Personality = game.PersonalityBuilder

	action := newTestStrategist(1).Decide(gs, 0)
	atk, ok := action.(*core.AttackAction)
	require.True(t, ok, "early game must attack when a weak target is in range")
	assert.Equal(t, 3, atk.ToX)
	assert.Equal(t, 1, atk.ToY)
}

func TestExpansion_PrefersWeakestTarget(t *testing.T) {
	gs := aiState()
	gs.Players[0].Personality = game.PersonalityExpansionist
	weaker := gs.Grid.At(1, 2)
	weaker.Owner = 1
	weaker.Troops = 1

	action := newTestStrategist(1).Decide(gs, 0)
	atk, ok := action.(*core.AttackAction)
	require.True(t, ok)
	assert.Equal(t, 1, atk.ToX)
	assert.Equal(t, 2, atk.ToY)
}

func TestExpansion_FallsBackToBuilding(t *testing.T) {
	gs := aiState()
	gs.Players[0].Personality = game.PersonalityExpansionist
	// No weaker target anywhere: equal troops never qualify.
	gs.Grid.At(3, 1).Troops = 10

	action := newTestStrategist(1).Decide(gs, 0)
	b, ok := action.(*core.BuildAction)
	require.True(t, ok, "with no viable attack, expansion builds")
	assert.Equal(t, core.BuildingBarracks, b.Kind)
}

func TestDecide_AggressiveTargetsHuman(t *testing.T) {
	gs := aiState()
	gs.Players[0].Personality = game.PersonalityAggressive
	// A weaker neutral-adjacent enemy exists, but the human is the target.
	other := gs.Grid.At(1, 3)
	other.Owner = 2
	other.Troops = 1
	gs.Players = append(gs.Players, game.Player{ID: 2, Alive: true})

	action := newTestStrategist(1).Decide(gs, 0)
	atk, ok := action.(*core.AttackAction)
	require.True(t, ok)
	human := gs.Grid.At(atk.ToX, atk.ToY)
	assert.Equal(t, 1, human.Owner)
}

func TestDecide_BuilderFollowsPlan(t *testing.T) {
	gs := aiState()
	gs.Players[0].Personality = game.PersonalityBuilder
	// Take the target out of range so no attack short-circuits anything.
	gs.Grid.At(3, 1).Owner = core.NeutralID
	gs.Grid.At(3, 1).Troops = 0

	action := newTestStrategist(1).Decide(gs, 0)
	b, ok := action.(*core.BuildAction)
	require.True(t, ok)
	// First unmet ratio in the plan with 300 gold is barracks.
	assert.Equal(t, core.BuildingBarracks, b.Kind)
}

func TestBuilding_RespectsGoldReserve(t *testing.T) {
	gs := aiState()
	gs.Players[0].Personality = game.PersonalityBuilder
	gs.Grid.At(3, 1).Owner = core.NeutralID
	gs.Grid.At(3, 1).Troops = 0
	// Barracks cost 100; with 120 gold the 50 reserve blocks it but the
	// fallback tier can still afford a farm.
	gs.Players[0].Gold = 120

	action := newTestStrategist(1).Decide(gs, 0)
	if b, ok := action.(*core.BuildAction); ok {
		assert.LessOrEqual(t, core.Cost(b.Kind), 120)
	}
}

func TestBuilding_NoSitesMeansPass(t *testing.T) {
	gs := aiState()
	gs.Players[0].Personality = game.PersonalityBuilder
	gs.Grid.At(3, 1).Owner = core.NeutralID
	gs.Grid.At(3, 1).Troops = 0
	gs.Grid.At(1, 1).Building = core.Building{Kind: core.BuildingMine, Level: 1}

	assert.Nil(t, newTestStrategist(1).Decide(gs, 0))
}

func TestBalanced_AlwaysReturnsSomethingOrPasses(t *testing.T) {
	gs := aiState()
	gs.Players[0].Personality = game.PersonalityBalanced

	// Over many seeds the balanced roll must never panic and any action
	// it proposes must belong to the acting player.
	for seed := int64(0); seed < 20; seed++ {
		action := newTestStrategist(seed).Decide(gs, 0)
		if action != nil {
			assert.Equal(t, 0, action.GetPlayerID())
		}
	}
}
