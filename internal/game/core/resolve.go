package core

// Canonical action constants. The attacking-force fraction varied
// between 0.5 and 0.8 across earlier prototypes; 0.5 is the canonical
// value here for every attack path.
const (
	AttackFraction  = 0.5
	MoveFraction    = 0.8
	DefendBonus     = 5
	MinAttackTroops = 5 // minimum source troops for a legal learned attack
)

// AttackOutcome reports what a resolved attack did to the grid.
type AttackOutcome struct {
	Captured       bool
	AttackingForce int
	DefenderLosses int
	BuildingRazed  BuildingKind
}

// ApplyAttackAction resolves an attack in place.
//
// The attacking force is floor(source troops * AttackFraction) and is
// always deducted from the source, win or lose. Effective defense is
// target troops * (1 + fort level). On capture the target keeps the raw
// troop difference (force - troops, not the fort-adjusted value) and
// any building is razed. On a failed attack the defender loses
// floor(force / (1 + fort level)).
func ApplyAttackAction(g *Grid, a *AttackAction) (*AttackOutcome, error) {
	if err := a.Validate(g); err != nil {
		return nil, err
	}

	src := g.At(a.FromX, a.FromY)
	tgt := g.At(a.ToX, a.ToY)

	force := int(float64(src.Troops) * AttackFraction)
	if force < 1 {
		return nil, ErrInsufficientTroops
	}
	src.Troops -= force

	fortLevel := tgt.FortLevel()
	defense := tgt.EffectiveDefense()

	out := &AttackOutcome{AttackingForce: force}
	if force > defense {
		out.Captured = true
		out.DefenderLosses = tgt.Troops
		out.BuildingRazed = tgt.Building.Kind
		tgt.Owner = a.PlayerID
		tgt.Troops = force - tgt.Troops
		tgt.Building = Building{}
	} else {
		losses := force / (1 + fortLevel)
		if losses > tgt.Troops {
			losses = tgt.Troops
		}
		tgt.Troops -= losses
		out.DefenderLosses = losses
	}
	return out, nil
}

// ApplyDefendAction adds the flat defend bonus to an owned territory.
func ApplyDefendAction(g *Grid, a *DefendAction) error {
	if err := a.Validate(g); err != nil {
		return err
	}
	g.At(a.X, a.Y).Troops += DefendBonus
	return nil
}

// ApplyBuildAction constructs a building and returns the gold cost
// deducted. Walls take cosmetic ownership, hold zero troops, and never
// hold a building.
func ApplyBuildAction(g *Grid, a *BuildAction, gold int) (int, error) {
	if err := a.Validate(g); err != nil {
		return 0, err
	}
	cost := Cost(a.Kind)
	if gold < cost {
		return 0, ErrInsufficientGold
	}

	t := g.At(a.X, a.Y)
	if a.Kind == BuildingWall {
		t.Wall = true
		t.Troops = 0
		t.Building = Building{}
		t.Owner = a.PlayerID // color only; never a real territory
	} else {
		t.Building = Building{Kind: a.Kind, Level: 1}
	}
	return cost, nil
}

// ApplyMoveAction transfers floor(source troops * MoveFraction) between
// two owned territories.
func ApplyMoveAction(g *Grid, a *MoveAction) (int, error) {
	if err := a.Validate(g); err != nil {
		return 0, err
	}

	src := g.At(a.FromX, a.FromY)
	tgt := g.At(a.ToX, a.ToY)

	moved := int(float64(src.Troops) * MoveFraction)
	if moved < 1 {
		return 0, ErrInsufficientTroops
	}
	src.Troops -= moved
	tgt.Troops += moved
	return moved, nil
}
