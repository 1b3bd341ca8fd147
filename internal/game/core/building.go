package core

// BuildingKind identifies an entry in the static building catalog.
type BuildingKind int

const (
	BuildingNone BuildingKind = iota
	BuildingBarracks
	BuildingFarm
	BuildingMine
	BuildingMarket
	BuildingFort
	BuildingTower
	BuildingWall
)

// NumBuildingKinds counts the buildable kinds (excludes BuildingNone).
// The featurizer reserves one one-hot slot per kind.
const NumBuildingKinds = 7

// Building is a constructed structure on a territory. Level starts at 1
// and is informational for everything except Fort (defense multiplier)
// and Tower (range extension).
type Building struct {
	Kind  BuildingKind
	Level int
}

func (k BuildingKind) String() string {
	switch k {
	case BuildingNone:
		return "none"
	case BuildingBarracks:
		return "barracks"
	case BuildingFarm:
		return "farm"
	case BuildingMine:
		return "mine"
	case BuildingMarket:
		return "market"
	case BuildingFort:
		return "fort"
	case BuildingTower:
		return "tower"
	case BuildingWall:
		return "wall"
	default:
		return "unknown"
	}
}

// BuildingSpec describes one catalog entry. Exactly one of the bonus
// fields is meaningful per kind; the rest stay zero.
type BuildingSpec struct {
	Kind        BuildingKind
	Cost        int
	TroopGrowth int     // barracks: flat troop growth per level
	GrowthMult  float64 // farm: multiplier contribution (scaled by territory count)
	GoldBonus   int     // mine/market: flat gold per interval
	DefenseMult int     // fort: defense multiplier per level
	RangeBonus  int     // tower: attack range extension per level
}

// catalog is static configuration, never mutated at runtime.
var catalog = map[BuildingKind]BuildingSpec{
	BuildingBarracks: {Kind: BuildingBarracks, Cost: 100, TroopGrowth: 3},
	BuildingFarm:     {Kind: BuildingFarm, Cost: 80, GrowthMult: 0.01},
	BuildingMine:     {Kind: BuildingMine, Cost: 120, GoldBonus: 8},
	BuildingMarket:   {Kind: BuildingMarket, Cost: 150, GoldBonus: 12},
	BuildingFort:     {Kind: BuildingFort, Cost: 200, DefenseMult: 1},
	BuildingTower:    {Kind: BuildingTower, Cost: 180, RangeBonus: 1},
	BuildingWall:     {Kind: BuildingWall, Cost: 50},
}

// Spec returns the catalog entry for a kind. The zero BuildingSpec is
// returned for BuildingNone or unknown kinds.
func Spec(kind BuildingKind) BuildingSpec {
	return catalog[kind]
}

// Cost returns the gold cost of constructing a building kind.
func Cost(kind BuildingKind) int {
	return catalog[kind].Cost
}

// BuildableKinds lists every constructible kind in catalog order.
func BuildableKinds() []BuildingKind {
	return []BuildingKind{
		BuildingBarracks,
		BuildingFarm,
		BuildingMine,
		BuildingMarket,
		BuildingFort,
		BuildingTower,
		BuildingWall,
	}
}

// KindSlot maps a kind to its one-hot feature slot [0, NumBuildingKinds).
func KindSlot(kind BuildingKind) int {
	return int(kind) - 1
}
