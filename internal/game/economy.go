package game

import (
	"github.com/territorial-rl/territorial/internal/game/core"
	"github.com/territorial-rl/territorial/internal/game/events"
)

// buildingTally counts a player's production buildings in one grid scan.
type buildingTally struct {
	barracksLevels int
	farms          int
	mines          int
	markets        int
	barracksCells  []*core.Territory
}

func tallyBuildings(owned []*core.Territory) buildingTally {
	var tally buildingTally
	for _, t := range owned {
		switch t.Building.Kind {
		case core.BuildingBarracks:
			tally.barracksLevels += t.Building.Level
			tally.barracksCells = append(tally.barracksCells, t)
		case core.BuildingFarm:
			tally.farms++
		case core.BuildingMine:
			tally.mines++
		case core.BuildingMarket:
			tally.markets++
		}
	}
	return tally
}

// applyGrowth credits every living player with one interval of troop
// and gold growth. Troop growth is
// (base + barracks bonus) * (1 + farmBonus) * eventMult, where
// farmBonus = farms * 0.01 * territoryCount; the farm term scaling with
// territory count is intentional, it rewards wide empires aggressively.
// Gold growth is base + 0.5/territory + mine and market bonuses. Both
// are floored to integers.
func (e *Engine) applyGrowth() {
	eventMult := 1.0
	if e.gs.IsBoomActive() {
		eventMult = 2.0
	}

	for i := range e.gs.Players {
		p := &e.gs.Players[i]
		if !p.Alive {
			continue
		}
		owned := e.gs.Grid.OwnedBy(p.ID)
		if len(owned) == 0 {
			continue
		}
		tally := tallyBuildings(owned)

		farmBonus := float64(tally.farms) * core.Spec(core.BuildingFarm).GrowthMult * float64(len(owned))
		base := e.growth.TroopBase + core.Spec(core.BuildingBarracks).TroopGrowth*tally.barracksLevels
		troops := int(float64(base) * (1 + farmBonus) * eventMult)

		gold := int(float64(e.growth.GoldBase) +
			e.growth.GoldPerTerritory*float64(len(owned)) +
			float64(tally.mines*core.Spec(core.BuildingMine).GoldBonus) +
			float64(tally.markets*core.Spec(core.BuildingMarket).GoldBonus))

		distributeTroops(owned, tally.barracksCells, troops)
		p.Gold += gold

		e.bus.Publish(events.NewGrowthApplied(e.gs.ID, p.ID, e.gs.Day, troops, gold))
	}
}

// distributeTroops spreads new troops round-robin over the player's
// barracks territories, falling back to all owned territories when
// there are no barracks.
func distributeTroops(owned, barracks []*core.Territory, troops int) {
	targets := barracks
	if len(targets) == 0 {
		targets = owned
	}
	if len(targets) == 0 || troops <= 0 {
		return
	}
	per := troops / len(targets)
	rem := troops % len(targets)
	for i, t := range targets {
		t.Troops += per
		if i < rem {
			t.Troops++
		}
	}
}
