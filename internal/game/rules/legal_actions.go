// Package rules computes legality over a grid: which territories sit on
// a border, what threatens them, and the full legal action set used by
// learning agents.
package rules

import (
	"github.com/territorial-rl/territorial/internal/game/core"
)

// BorderTerritories returns the player's territories that have at least
// one enemy territory within adjacency range. Neutral neighbors do not
// make a border; only another player's presence does.
func BorderTerritories(g *core.Grid, playerID int) []*core.Territory {
	var out []*core.Territory
	for _, t := range g.OwnedBy(playerID) {
		if StrongestThreat(g, t) >= 0 {
			out = append(out, t)
		}
	}
	return out
}

// StrongestThreat returns the highest troop count among enemy
// territories within range of t, or -1 when no enemy is in range.
func StrongestThreat(g *core.Grid, t *core.Territory) int {
	strongest := -1
	for _, n := range g.FindAdjacent(t, g.AttackRange(t)) {
		if n.Owner == core.NeutralID || n.Owner == t.Owner {
			continue
		}
		if n.Troops > strongest {
			strongest = n.Troops
		}
	}
	return strongest
}

// ThreatLevel is the ratio of border territories whose effective
// defense is weaker than the strongest enemy in range, over all border
// territories. 0 when the player has no borders.
func ThreatLevel(g *core.Grid, playerID int) float64 {
	borders := BorderTerritories(g, playerID)
	if len(borders) == 0 {
		return 0
	}
	weaker := 0
	for _, t := range borders {
		if t.EffectiveDefense() < StrongestThreat(g, t) {
			weaker++
		}
	}
	return float64(weaker) / float64(len(borders))
}

// LegalActions enumerates every action the player could legally take
// against the current grid, in a stable grid-scan order:
//
//   - attacks from every owned territory with at least
//     core.MinAttackTroops troops that strictly outnumbers an in-range
//     non-wall, non-owned target;
//   - defends on every border territory;
//   - builds of every affordable kind on every un-built owned
//     territory;
//   - wall builds on unowned empty cells within range of a border
//     territory.
//
// An empty result is a normal outcome; the agent passes.
func LegalActions(g *core.Grid, playerID int, gold int) []core.Action {
	var actions []core.Action
	owned := g.OwnedBy(playerID)

	for _, src := range owned {
		if src.Troops < core.MinAttackTroops {
			continue
		}
		for _, tgt := range g.FindAdjacent(src, g.AttackRange(src)) {
			if tgt.Owner == playerID {
				continue
			}
			if src.Troops > tgt.Troops {
				actions = append(actions, &core.AttackAction{
					PlayerID: playerID,
					FromX:    src.X, FromY: src.Y,
					ToX: tgt.X, ToY: tgt.Y,
				})
			}
		}
	}

	borders := BorderTerritories(g, playerID)
	for _, t := range borders {
		actions = append(actions, &core.DefendAction{PlayerID: playerID, X: t.X, Y: t.Y})
	}

	for _, t := range owned {
		if t.HasBuilding() {
			continue
		}
		for _, kind := range core.BuildableKinds() {
			if kind == core.BuildingWall {
				continue
			}
			if gold >= core.Cost(kind) {
				actions = append(actions, &core.BuildAction{PlayerID: playerID, X: t.X, Y: t.Y, Kind: kind})
			}
		}
	}

	if gold >= core.Cost(core.BuildingWall) {
		seen := make(map[int]bool)
		for _, t := range borders {
			for _, empty := range g.FindNearbyEmpty(t, g.AttackRange(t)) {
				idx := g.Idx(empty.X, empty.Y)
				if seen[idx] {
					continue
				}
				seen[idx] = true
				actions = append(actions, &core.BuildAction{PlayerID: playerID, X: empty.X, Y: empty.Y, Kind: core.BuildingWall})
			}
		}
	}

	return actions
}
