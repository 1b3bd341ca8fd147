package rl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/territorial-rl/territorial/internal/game"
	"github.com/territorial-rl/territorial/internal/game/core"
)

func featState() *game.GameState {
	grid := core.NewGrid(3, 3)
	self := grid.At(0, 0)
	self.Owner = 0
	self.Troops = 100
	self.Building = core.Building{Kind: core.BuildingBarracks, Level: 1}
	enemy := grid.At(2, 2)
	enemy.Owner = 1
	enemy.Troops = 50
	walled := grid.At(1, 1)
	walled.Wall = true

	return &game.GameState{
		Grid: grid,
		Players: []game.Player{
			{ID: 0, Gold: 1000, Alive: true, TroopCount: 100, TerritoryCount: 1},
			{ID: 1, Gold: 0, Alive: true},
		},
	}
}

func TestFeaturize_LayoutAndLength(t *testing.T) {
	gs := featState()
	v := Featurize(gs, 0)

	require.Len(t, v, 9*10+3)
	assert.Equal(t, len(v), FeatureSize(gs.Grid))

	// Cell (0,0): self-owned, 100 troops, barracks one-hot.
	assert.Equal(t, float32(1), v[0])
	assert.InDelta(t, 100.0/MaxTroopValue, v[1], 1e-6)
	assert.Equal(t, float32(1), v[2+core.KindSlot(core.BuildingBarracks)])

	// Cell (1,1): walled, neutral.
	base := gs.Grid.Idx(1, 1) * 10
	assert.Equal(t, float32(0), v[base])
	assert.Equal(t, float32(1), v[base+9])

	// Cell (2,2): enemy.
	base = gs.Grid.Idx(2, 2) * 10
	assert.Equal(t, float32(-1), v[base])

	// Globals: gold 1000/10000, troops 100/1000, territories 1/9.
	g := 9 * 10
	assert.InDelta(t, 0.1, v[g], 1e-6)
	assert.InDelta(t, 0.1, v[g+1], 1e-6)
	assert.InDelta(t, 1.0/9.0, v[g+2], 1e-6)
}

func TestFeaturize_PerspectiveFlips(t *testing.T) {
	gs := featState()
	mine := Featurize(gs, 0)
	theirs := Featurize(gs, 1)

	assert.Equal(t, float32(1), mine[0])
	assert.Equal(t, float32(-1), theirs[0])
}

func TestFeaturize_TroopsClampAtMax(t *testing.T) {
	gs := featState()
	gs.Grid.At(0, 0).Troops = MaxTroopValue * 5

	v := Featurize(gs, 0)
	assert.Equal(t, float32(1), v[1])
}

func TestActionSpace_Size(t *testing.T) {
	g := core.NewGrid(3, 3)
	s := NewActionSpace(g)
	// 81 attacks + 9 defends + 63 builds.
	assert.Equal(t, 153, s.Size())
}

func TestActionSpace_SegmentBoundaries(t *testing.T) {
	g := core.NewGrid(3, 3)
	s := NewActionSpace(g)

	atk := &core.AttackAction{PlayerID: 0, FromX: 0, FromY: 0, ToX: 1, ToY: 0}
	def := &core.DefendAction{PlayerID: 0, X: 0, Y: 0}
	bld := &core.BuildAction{PlayerID: 0, X: 0, Y: 0, Kind: core.BuildingBarracks}

	assert.Less(t, s.Index(g, atk), 81)
	assert.GreaterOrEqual(t, s.Index(g, def), 81)
	assert.Less(t, s.Index(g, def), 90)
	assert.GreaterOrEqual(t, s.Index(g, bld), 90)

	// Moves live outside the learnable space.
	mv := &core.MoveAction{PlayerID: 0, FromX: 0, FromY: 0, ToX: 1, ToY: 0}
	assert.Equal(t, -1, s.Index(g, mv))
}

func TestActionSpace_RoundTrip(t *testing.T) {
	g := core.NewGrid(3, 3)
	s := NewActionSpace(g)

	cases := []core.Action{
		&core.AttackAction{PlayerID: 2, FromX: 1, FromY: 2, ToX: 0, ToY: 1},
		&core.DefendAction{PlayerID: 2, X: 2, Y: 0},
		&core.BuildAction{PlayerID: 2, X: 1, Y: 1, Kind: core.BuildingTower},
		&core.BuildAction{PlayerID: 2, X: 0, Y: 2, Kind: core.BuildingWall},
	}
	for _, want := range cases {
		idx := s.Index(g, want)
		require.GreaterOrEqual(t, idx, 0)
		assert.Equal(t, want, s.Decode(g, 2, idx))
	}

	assert.Nil(t, s.Decode(g, 0, -1))
	assert.Nil(t, s.Decode(g, 0, s.Size()))
}
