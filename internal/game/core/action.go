package core

// ActionType discriminates the action tagged union.
type ActionType int

const (
	ActionAttack ActionType = iota
	ActionDefend
	ActionBuild
	ActionMove
)

func (t ActionType) String() string {
	switch t {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionBuild:
		return "build"
	case ActionMove:
		return "move"
	default:
		return "unknown"
	}
}

// Action is a player action evaluated against a specific grid snapshot.
// Actions are never queued or deferred. Each variant carries only the
// fields valid for its tag.
type Action interface {
	GetPlayerID() int
	GetType() ActionType
	Validate(g *Grid) error
}

// AttackAction sends troops from an owned territory against a target
// within adjacency range.
type AttackAction struct {
	PlayerID int
	FromX    int
	FromY    int
	ToX      int
	ToY      int
}

func (a *AttackAction) GetPlayerID() int    { return a.PlayerID }
func (a *AttackAction) GetType() ActionType { return ActionAttack }

func (a *AttackAction) Validate(g *Grid) error {
	src := g.At(a.FromX, a.FromY)
	tgt := g.At(a.ToX, a.ToY)
	if src == nil || tgt == nil {
		return ErrInvalidCoordinates
	}
	if src == tgt {
		return ErrSelfTarget
	}
	if src.Owner != a.PlayerID || src.Wall {
		return ErrNotOwned
	}
	// Walls are never captured through the attack path.
	if !tgt.IsPassable() {
		return ErrTargetImpassable
	}
	if tgt.Owner == a.PlayerID {
		return ErrTargetOwned
	}
	if !InRange(src.X, src.Y, tgt.X, tgt.Y, g.AttackRange(src)) {
		return ErrOutOfRange
	}
	if src.Troops < 2 {
		return ErrInsufficientTroops
	}
	return nil
}

// DefendAction reinforces an owned territory. No cost, no precondition
// beyond ownership.
type DefendAction struct {
	PlayerID int
	X, Y     int
}

func (a *DefendAction) GetPlayerID() int    { return a.PlayerID }
func (a *DefendAction) GetType() ActionType { return ActionDefend }

func (a *DefendAction) Validate(g *Grid) error {
	t := g.At(a.X, a.Y)
	if t == nil {
		return ErrInvalidCoordinates
	}
	if t.Owner != a.PlayerID || t.Wall {
		return ErrNotOwned
	}
	return nil
}

// BuildAction constructs a building on an owned territory, or a wall on
// an unowned one. Build has no range constraint; the gold check happens
// at apply time since gold is player state, not grid state.
type BuildAction struct {
	PlayerID int
	X, Y     int
	Kind     BuildingKind
}

func (a *BuildAction) GetPlayerID() int    { return a.PlayerID }
func (a *BuildAction) GetType() ActionType { return ActionBuild }

func (a *BuildAction) Validate(g *Grid) error {
	t := g.At(a.X, a.Y)
	if t == nil {
		return ErrInvalidCoordinates
	}
	if t.Wall || t.IsWater() {
		return ErrTargetImpassable
	}
	if a.Kind == BuildingWall {
		if !t.IsNeutral() {
			return ErrWallOnOwned
		}
		return nil
	}
	if t.Owner != a.PlayerID {
		return ErrNotOwned
	}
	if t.HasBuilding() {
		return ErrBuildingPresent
	}
	return nil
}

// MoveAction transfers troops between two owned territories within
// adjacency range. No combat occurs.
type MoveAction struct {
	PlayerID int
	FromX    int
	FromY    int
	ToX      int
	ToY      int
}

func (a *MoveAction) GetPlayerID() int    { return a.PlayerID }
func (a *MoveAction) GetType() ActionType { return ActionMove }

func (a *MoveAction) Validate(g *Grid) error {
	src := g.At(a.FromX, a.FromY)
	tgt := g.At(a.ToX, a.ToY)
	if src == nil || tgt == nil {
		return ErrInvalidCoordinates
	}
	if src == tgt {
		return ErrSelfTarget
	}
	if src.Owner != a.PlayerID || src.Wall {
		return ErrNotOwned
	}
	if tgt.Owner != a.PlayerID || tgt.Wall {
		return ErrNotOwned
	}
	if !InRange(src.X, src.Y, tgt.X, tgt.Y, g.AttackRange(src)) {
		return ErrOutOfRange
	}
	if src.Troops < 2 {
		return ErrInsufficientTroops
	}
	return nil
}
