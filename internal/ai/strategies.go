package ai

import (
	"github.com/territorial-rl/territorial/internal/game"
	"github.com/territorial-rl/territorial/internal/game/core"
	"github.com/territorial-rl/territorial/internal/game/rules"
)

// defensive shores up the border territory that is most outmatched:
// fort it if possible, otherwise reinforce it.
func (s *Strategist) defensive(gs *game.GameState, p *game.Player) core.Action {
	g := gs.Grid
	var worst *core.Territory
	worstGap := 0
	for _, t := range rules.BorderTerritories(g, p.ID) {
		gap := rules.StrongestThreat(g, t) - t.EffectiveDefense()
		if worst == nil || gap > worstGap {
			worst = t
			worstGap = gap
		}
	}
	if worst == nil {
		return nil
	}
	if !worst.HasBuilding() && p.Gold >= core.Cost(core.BuildingFort) {
		return &core.BuildAction{PlayerID: p.ID, X: worst.X, Y: worst.Y, Kind: core.BuildingFort}
	}
	return &core.DefendAction{PlayerID: p.ID, X: worst.X, Y: worst.Y}
}

// expansion attacks the weakest in-range target with fewer troops than
// the source. With no viable target it proposes a barracks, then a
// mine, then hands over to the building strategy.
func (s *Strategist) expansion(gs *game.GameState, p *game.Player) core.Action {
	if atk := s.weakestTargetAttack(gs, p, core.NeutralID); atk != nil {
		return atk
	}
	for _, kind := range []core.BuildingKind{core.BuildingBarracks, core.BuildingMine} {
		if p.Gold < core.Cost(kind) {
			continue
		}
		if site := s.freeSite(gs, p); site != nil {
			return &core.BuildAction{PlayerID: p.ID, X: site.X, Y: site.Y, Kind: kind}
		}
	}
	return s.building(gs, p)
}

// aggressive hunts the human player's territories specifically, falling
// back to plain expansion when no human territory is reachable.
func (s *Strategist) aggressive(gs *game.GameState, p *game.Player) core.Action {
	humanID := gs.HumanID()
	if humanID == core.NeutralID {
		return s.expansion(gs, p)
	}
	if atk := s.weakestTargetAttack(gs, p, humanID); atk != nil {
		return atk
	}
	return s.expansion(gs, p)
}

// balanced draws one of defense, expansion, or building with weights
// shifted by threat level and game day.
func (s *Strategist) balanced(gs *game.GameState, p *game.Player, threat float64) core.Action {
	defenseW := 0.2 + 0.5*threat
	expansionW := 0.4 - 0.005*float64(gs.Day)
	if expansionW < 0.1 {
		expansionW = 0.1
	}
	buildingW := 0.4

	roll := s.rng.Float64() * (defenseW + expansionW + buildingW)
	switch {
	case roll < defenseW:
		return s.defensive(gs, p)
	case roll < defenseW+expansionW:
		return s.expansion(gs, p)
	default:
		return s.building(gs, p)
	}
}

// weakestTargetAttack scans the player's territories for the weakest
// attackable target. onlyOwner restricts targets to one owner
// (core.NeutralID means any non-self owner, neutral included).
func (s *Strategist) weakestTargetAttack(gs *game.GameState, p *game.Player, onlyOwner int) *core.AttackAction {
	g := gs.Grid
	var bestSrc, bestTgt *core.Territory
	for _, src := range g.OwnedBy(p.ID) {
		if src.Troops < core.MinAttackTroops {
			continue
		}
		for _, tgt := range g.FindAdjacent(src, g.AttackRange(src)) {
			if tgt.Owner == p.ID {
				continue
			}
			if onlyOwner != core.NeutralID && tgt.Owner != onlyOwner {
				continue
			}
			if src.Troops <= tgt.Troops {
				continue
			}
			if bestTgt == nil || tgt.Troops < bestTgt.Troops {
				bestSrc, bestTgt = src, tgt
			}
		}
	}
	if bestTgt == nil {
		return nil
	}
	return &core.AttackAction{
		PlayerID: p.ID,
		FromX:    bestSrc.X, FromY: bestSrc.Y,
		ToX: bestTgt.X, ToY: bestTgt.Y,
	}
}

// ratioTarget describes one entry of the construction plan: keep at
// least Ratio of the base count covered by Kind.
type ratioTarget struct {
	kind     core.BuildingKind
	ratio    float64
	onBorder bool // count and place against border territories
}

// constructionPlan is checked in order; the first unmet ratio wins.
var constructionPlan = []ratioTarget{
	{kind: core.BuildingBarracks, ratio: 0.40},
	{kind: core.BuildingFarm, ratio: 0.30},
	{kind: core.BuildingMarket, ratio: 0.25},
	{kind: core.BuildingTower, ratio: 0.20},
	{kind: core.BuildingMine, ratio: 0.15},
	{kind: core.BuildingFort, ratio: 0.40, onBorder: true},
}

// building keeps building counts near the plan's target ratios, gated
// by gold, then falls back to a randomized gold-tier pick once every
// ratio is satisfied.
func (s *Strategist) building(gs *game.GameState, p *game.Player) core.Action {
	g := gs.Grid
	owned := g.OwnedBy(p.ID)
	if len(owned) == 0 {
		return nil
	}
	borders := rules.BorderTerritories(g, p.ID)

	counts := make(map[core.BuildingKind]int)
	for _, t := range owned {
		if t.HasBuilding() {
			counts[t.Building.Kind]++
		}
	}

	for _, target := range constructionPlan {
		base := len(owned)
		if target.onBorder {
			base = len(borders)
		}
		if base == 0 {
			continue
		}
		if float64(counts[target.kind]) >= target.ratio*float64(base) {
			continue
		}
		if p.Gold < core.Cost(target.kind)+goldReserve {
			continue
		}
		var site *core.Territory
		if target.onBorder {
			site = firstUnbuilt(borders)
		}
		if site == nil {
			site = firstUnbuilt(owned)
		}
		if site == nil {
			return nil
		}
		return &core.BuildAction{PlayerID: p.ID, X: site.X, Y: site.Y, Kind: target.kind}
	}

	return s.goldTierFallback(gs, p)
}

// goldTierFallback picks a random building appropriate to the size of
// the treasury once the ratio plan is satisfied.
func (s *Strategist) goldTierFallback(gs *game.GameState, p *game.Player) core.Action {
	var pool []core.BuildingKind
	switch {
	case p.Gold >= 400:
		pool = []core.BuildingKind{core.BuildingFort, core.BuildingTower, core.BuildingMarket}
	case p.Gold >= 200:
		pool = []core.BuildingKind{core.BuildingMine, core.BuildingMarket, core.BuildingBarracks}
	default:
		pool = []core.BuildingKind{core.BuildingFarm, core.BuildingBarracks}
	}

	var affordable []core.BuildingKind
	for _, kind := range pool {
		if p.Gold >= core.Cost(kind) {
			affordable = append(affordable, kind)
		}
	}
	if len(affordable) == 0 {
		return nil
	}
	site := s.freeSite(gs, p)
	if site == nil {
		return nil
	}
	kind := affordable[s.rng.Intn(len(affordable))]
	return &core.BuildAction{PlayerID: p.ID, X: site.X, Y: site.Y, Kind: kind}
}

// freeSite returns the first owned territory without a building.
func (s *Strategist) freeSite(gs *game.GameState, p *game.Player) *core.Territory {
	return firstUnbuilt(gs.Grid.OwnedBy(p.ID))
}

func firstUnbuilt(ts []*core.Territory) *core.Territory {
	for _, t := range ts {
		if !t.HasBuilding() {
			return t
		}
	}
	return nil
}
