package core

// Terrain describes the base land type of a territory. Terrain affects
// troop capacity seeding during map generation but carries no combat
// logic of its own; water is the one terrain that is never passable.
type Terrain int

const (
	TerrainPlains Terrain = iota
	TerrainForest
	TerrainMountains
	TerrainWater
)

func (t Terrain) String() string {
	switch t {
	case TerrainPlains:
		return "plains"
	case TerrainForest:
		return "forest"
	case TerrainMountains:
		return "mountains"
	case TerrainWater:
		return "water"
	default:
		return "unknown"
	}
}

// NeutralID marks an unowned territory.
const NeutralID = -1

// Territory is a single cell on the grid.
// Owner: NeutralID means unowned; 0..N-1 are player IDs.
// Wall: impassable, zero troops, no building; ownership on a walled
// cell is cosmetic (color only) and never counts as real territory.
type Territory struct {
	X, Y     int
	Terrain  Terrain
	Owner    int
	Troops   int
	Capacity int // soft cap, informational only
	Building Building
	Wall     bool
}

func (t *Territory) IsNeutral() bool  { return t.Owner == NeutralID }
func (t *Territory) IsWater() bool    { return t.Terrain == TerrainWater }
func (t *Territory) IsPassable() bool { return !t.Wall && !t.IsWater() }
func (t *Territory) HasBuilding() bool {
	return t.Building.Kind != BuildingNone
}

// FortLevel returns the level of a Fort on this territory, 0 if none.
func (t *Territory) FortLevel() int {
	if t.Building.Kind == BuildingFort {
		return t.Building.Level
	}
	return 0
}

// TowerLevel returns the level of a Tower on this territory, 0 if none.
func (t *Territory) TowerLevel() int {
	if t.Building.Kind == BuildingTower {
		return t.Building.Level
	}
	return 0
}

// EffectiveDefense is the defending strength used in combat:
// troops scaled by (1 + fort level).
func (t *Territory) EffectiveDefense() int {
	return t.Troops * (1 + t.FortLevel())
}
