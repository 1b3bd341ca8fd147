// Package rl holds everything the learning agent needs: the state
// featurizer and fixed action index space, an experience replay buffer,
// the reward function, an epsilon-greedy agent with a lagging target
// network, the self-play trainer, and a SQLite-backed model store.
package rl

import (
	"github.com/territorial-rl/territorial/internal/common"
	"github.com/territorial-rl/territorial/internal/game"
	"github.com/territorial-rl/territorial/internal/game/core"
)

const (
	// MaxTroopValue caps per-cell troop normalization. Stacks above it
	// featurize identically.
	MaxTroopValue = 1000
	// MaxGoldValue caps gold normalization in the global features.
	MaxGoldValue = 10000

	featuresPerCell = 10 // owner flag, troops, 7 building slots, wall
	globalFeatures  = 3  // gold, total troops, territory count
)

// FeatureSize returns the feature vector length for a grid. Constant
// for a given map size, so weight shapes stay valid across episodes.
func FeatureSize(g *core.Grid) int {
	return len(g.T)*featuresPerCell + globalFeatures
}

// Featurize encodes the full game state from one player's perspective.
// Layout per cell, row-major: owner flag (1 self, -1 enemy, 0 neutral),
// troops normalized and clamped to [0,1], a 7-slot building one-hot,
// wall flag. The tail holds normalized gold, troop total, and territory
// count for the player.
func Featurize(gs *game.GameState, playerID int) []float32 {
	g := gs.Grid
	out := make([]float32, FeatureSize(g))

	for i := range g.T {
		t := &g.T[i]
		base := i * featuresPerCell

		switch {
		case t.Owner == playerID:
			out[base] = 1
		case t.Owner != core.NeutralID:
			out[base] = -1
		}
		out[base+1] = float32(common.Clamp(t.Troops, 0, MaxTroopValue)) / MaxTroopValue
		if t.HasBuilding() {
			out[base+2+core.KindSlot(t.Building.Kind)] = 1
		}
		if t.Wall {
			out[base+9] = 1
		}
	}

	p := gs.Player(playerID)
	if p != nil {
		base := len(g.T) * featuresPerCell
		out[base] = float32(common.Clamp(p.Gold, 0, MaxGoldValue)) / MaxGoldValue
		out[base+1] = float32(common.Clamp(p.TroopCount, 0, MaxTroopValue)) / MaxTroopValue
		out[base+2] = float32(p.TerritoryCount) / float32(len(g.T))
	}
	return out
}

// ActionSpace maps between actions and output indices. The layout is
// fixed per map size with N = cell count:
//
//	attacks  src*N + tgt   in [0, N*N)
//	defends  tgt           in [N*N, N*N+N)
//	builds   tgt*7 + slot  in [N*N+N, N*N+N+7*N)
type ActionSpace struct {
	cells int
}

// NewActionSpace derives the index space for a grid.
func NewActionSpace(g *core.Grid) ActionSpace {
	return ActionSpace{cells: len(g.T)}
}

// Size is the number of distinct action indices, legal or not.
func (s ActionSpace) Size() int {
	return s.cells*s.cells + s.cells + core.NumBuildingKinds*s.cells
}

// Index returns the fixed index for an action, or -1 for action types
// outside the learnable space (moves, nil).
func (s ActionSpace) Index(g *core.Grid, a core.Action) int {
	switch act := a.(type) {
	case *core.AttackAction:
		return g.Idx(act.FromX, act.FromY)*s.cells + g.Idx(act.ToX, act.ToY)
	case *core.DefendAction:
		return s.cells*s.cells + g.Idx(act.X, act.Y)
	case *core.BuildAction:
		return s.cells*s.cells + s.cells +
			g.Idx(act.X, act.Y)*core.NumBuildingKinds + core.KindSlot(act.Kind)
	default:
		return -1
	}
}

// Decode reconstructs the action at an index for a player. The result
// is structurally well formed but not necessarily legal; legality is
// the enumerator's concern.
func (s ActionSpace) Decode(g *core.Grid, playerID, idx int) core.Action {
	n := s.cells
	switch {
	case idx < 0 || idx >= s.Size():
		return nil
	case idx < n*n:
		sx, sy := g.XY(idx / n)
		tx, ty := g.XY(idx % n)
		return &core.AttackAction{PlayerID: playerID, FromX: sx, FromY: sy, ToX: tx, ToY: ty}
	case idx < n*n+n:
		x, y := g.XY(idx - n*n)
		return &core.DefendAction{PlayerID: playerID, X: x, Y: y}
	default:
		rel := idx - n*n - n
		x, y := g.XY(rel / core.NumBuildingKinds)
		kind := core.BuildingKind(rel%core.NumBuildingKinds + 1)
		return &core.BuildAction{PlayerID: playerID, X: x, Y: y, Kind: kind}
	}
}
