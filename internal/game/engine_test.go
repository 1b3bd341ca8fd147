package game

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/territorial-rl/territorial/internal/config"
	"github.com/territorial-rl/territorial/internal/game/core"
	"github.com/territorial-rl/territorial/internal/game/events"
)

func testGrowth() config.GrowthConfig {
	return config.GrowthConfig{
		IntervalTicks:    3,
		TroopBase:        5,
		GoldBase:         10,
		GoldPerTerritory: 0.5,
		StartGold:        150,
		BoomChance:       0, // deterministic tests
		BoomDurationDays: 3,
	}
}

// twoPlayerState builds a flat 6x6 map with players 0 and 1 on opposite
// corners plus whatever the test mutates afterwards.
func twoPlayerState() *GameState {
	grid := core.NewGrid(6, 6)
	a := grid.At(0, 0)
	a.Owner = 0
	a.Troops = 10
	b := grid.At(5, 5)
	b.Owner = 1
	b.Troops = 10

	return &GameState{
		Grid: grid,
		Players: []Player{
			{ID: 0, Name: "alpha", Gold: 150, Alive: true},
			{ID: 1, Name: "beta", Gold: 150, Alive: true},
		},
	}
}

func newTestEngine(gs *GameState) *Engine {
	return NewEngineWithState(gs, testGrowth(), rand.New(rand.NewSource(1)), nil, zerolog.Nop())
}

func TestStep_GrowthIsStrictlyPeriodic(t *testing.T) {
	gs := twoPlayerState()
	e := newTestEngine(gs)

	goldBefore := gs.Players[0].Gold
	troopsBefore := gs.Players[0].TroopCount

	// Ticks 1 and 2: inside the interval, no growth.
	require.NoError(t, e.Step(nil))
	require.NoError(t, e.Step(nil))
	assert.Equal(t, goldBefore, gs.Players[0].Gold)
	assert.Equal(t, troopsBefore, gs.Players[0].TroopCount)
	assert.Equal(t, 0, gs.Day)

	// Tick 3: exactly one growth application.
	require.NoError(t, e.Step(nil))
	assert.Equal(t, 1, gs.Day)
	// 1 territory, no buildings: troops +5, gold +floor(10 + 0.5).
	assert.Equal(t, troopsBefore+5, gs.Players[0].TroopCount)
	assert.Equal(t, goldBefore+10, gs.Players[0].Gold)

	// Ticks 4, 5: no further growth until the next interval.
	require.NoError(t, e.Step(nil))
	require.NoError(t, e.Step(nil))
	assert.Equal(t, troopsBefore+5, gs.Players[0].TroopCount)
}

func TestStep_GrowthUsesBuildingBonuses(t *testing.T) {
	gs := twoPlayerState()
	grid := gs.Grid
	// Player 0 holds 4 territories: barracks, farm, mine, market.
	for i, kind := range []core.BuildingKind{core.BuildingBarracks, core.BuildingFarm, core.BuildingMine, core.BuildingMarket} {
		tr := grid.At(i, 1)
		tr.Owner = 0
		tr.Building = core.Building{Kind: kind, Level: 1}
	}
	e := newTestEngine(gs)
	goldBefore := gs.Players[0].Gold
	troopsBefore := gs.Players[0].TroopCount

	for i := 0; i < 3; i++ {
		require.NoError(t, e.Step(nil))
	}

	// 5 territories, 1 barracks level, 1 farm:
	// troops = floor((5 + 3) * (1 + 1*0.01*5)) = floor(8.4) = 8.
	assert.Equal(t, troopsBefore+8, gs.Players[0].TroopCount)
	// gold = floor(10 + 0.5*5 + 8 + 12) = 32.
	assert.Equal(t, goldBefore+32, gs.Players[0].Gold)
}

func TestStep_ResourceBoomDoublesTroopGrowth(t *testing.T) {
	gs := twoPlayerState()
	gs.BoomDaysLeft = 2
	e := newTestEngine(gs)
	troopsBefore := gs.Players[0].TroopCount

	for i := 0; i < 3; i++ {
		require.NoError(t, e.Step(nil))
	}
	// Base 5 doubled by the boom.
	assert.Equal(t, troopsBefore+10, gs.Players[0].TroopCount)
	assert.Equal(t, 1, gs.BoomDaysLeft)
}

func TestStep_AttackResolvesAndPublishes(t *testing.T) {
	gs := twoPlayerState()
	tgt := gs.Grid.At(1, 0)
	tgt.Owner = 1
	tgt.Troops = 3

	bus := events.NewEventBus(zerolog.Nop())
	var captures []*events.TerritoryCapturedEvent
	bus.SubscribeFunc(events.TypeTerritoryCaptured, func(e events.Event) {
		captures = append(captures, e.(*events.TerritoryCapturedEvent))
	})

	e := NewEngineWithState(gs, testGrowth(), rand.New(rand.NewSource(1)), bus, zerolog.Nop())
	require.NoError(t, e.Step([]core.Action{
		&core.AttackAction{PlayerID: 0, FromX: 0, FromY: 0, ToX: 1, ToY: 0},
	}))

	assert.Equal(t, 0, gs.Grid.At(1, 0).Owner)
	require.Len(t, captures, 1)
	assert.Equal(t, 5, captures[0].Force)
	assert.Equal(t, 1, captures[0].DefenderID)
}

func TestStep_IllegalActionIsSilentNoop(t *testing.T) {
	gs := twoPlayerState()
	e := newTestEngine(gs)
	before := gs.Grid.Clone()

	// Out-of-range attack proposal; resolves to nothing.
	require.NoError(t, e.Step([]core.Action{
		&core.AttackAction{PlayerID: 0, FromX: 0, FromY: 0, ToX: 5, ToY: 5},
	}))
	assert.Equal(t, before.T, gs.Grid.T)
}

func TestStep_NilActionsArePasses(t *testing.T) {
	gs := twoPlayerState()
	e := newTestEngine(gs)

	// Agents pass by proposing nil; mixed with real actions the nils
	// must be dropped, not dereferenced.
	require.NoError(t, e.Step([]core.Action{
		nil,
		&core.DefendAction{PlayerID: 0, X: 0, Y: 0},
		nil,
	}))
	assert.Equal(t, 10+core.DefendBonus, gs.Grid.At(0, 0).Troops)

	require.NoError(t, e.Step([]core.Action{nil, nil}))
}

func TestStep_BuildDeductsGold(t *testing.T) {
	gs := twoPlayerState()
	e := newTestEngine(gs)

	require.NoError(t, e.Step([]core.Action{
		&core.BuildAction{PlayerID: 0, X: 0, Y: 0, Kind: core.BuildingMine},
	}))

	assert.Equal(t, 150-core.Cost(core.BuildingMine), gs.Players[0].Gold)
	assert.Equal(t, core.BuildingMine, gs.Grid.At(0, 0).Building.Kind)
}

func TestStep_EliminationAndGameOver(t *testing.T) {
	gs := twoPlayerState()
	// Leave player 1 with a single weak territory next to player 0.
	gs.Grid.At(5, 5).Owner = core.NeutralID
	gs.Grid.At(5, 5).Troops = 0
	weak := gs.Grid.At(1, 0)
	weak.Owner = 1
	weak.Troops = 1

	e := newTestEngine(gs)
	require.NoError(t, e.Step([]core.Action{
		&core.AttackAction{PlayerID: 0, FromX: 0, FromY: 0, ToX: 1, ToY: 0},
	}))

	assert.False(t, gs.Players[1].Alive)
	assert.True(t, e.IsGameOver())
	assert.Equal(t, 0, e.Winner())

	assert.ErrorIs(t, e.Step(nil), core.ErrGameOver)
}

func TestStep_ThreePlayerSingleCapture(t *testing.T) {
	// End-to-end property: on a map with no water, one fully legal
	// attack changes exactly one owner and the attacker pays the full
	// committed force.
	grid := core.NewGrid(6, 6)
	setup := []struct {
		x, y, owner, troops int
	}{
		{0, 0, 0, 12}, {1, 0, 0, 4},
		{3, 0, 1, 6}, {5, 5, 2, 9},
		{2, 0, 1, 2},
	}
	for _, s := range setup {
		tr := grid.At(s.x, s.y)
		tr.Owner = s.owner
		tr.Troops = s.troops
	}
	gs := &GameState{
		Grid: grid,
		Players: []Player{
			{ID: 0, Gold: 100, Alive: true},
			{ID: 1, Gold: 100, Alive: true},
			{ID: 2, Gold: 100, Alive: true},
		},
	}
	e := newTestEngine(gs)

	ownersBefore := make([]int, len(grid.T))
	for i := range grid.T {
		ownersBefore[i] = grid.T[i].Owner
	}
	troopsBefore := grid.At(0, 0).Troops

	require.NoError(t, e.Step([]core.Action{
		&core.AttackAction{PlayerID: 0, FromX: 0, FromY: 0, ToX: 2, ToY: 0},
	}))

	changed := 0
	for i := range grid.T {
		if grid.T[i].Owner != ownersBefore[i] {
			changed++
		}
	}
	assert.Equal(t, 1, changed)

	force := int(float64(troopsBefore) * core.AttackFraction)
	assert.Equal(t, troopsBefore-force, grid.At(0, 0).Troops)
}

func TestSoleOwnerWinCondition(t *testing.T) {
	grid := core.NewGrid(2, 2)
	for i := range grid.T {
		grid.T[i].Owner = 0
		grid.T[i].Troops = 1
	}
	gs := &GameState{
		Grid: grid,
		Players: []Player{
			{ID: 0, Alive: true},
			{ID: 1, Alive: true},
		},
	}
	e := newTestEngine(gs)

	// Player 1 is eliminated on the first stat refresh; player 0 owns
	// everything.
	require.NoError(t, e.Step(nil))
	assert.True(t, e.IsGameOver())
	assert.Equal(t, 0, e.Winner())
}
