package mapgen

import (
	"math/rand"

	"github.com/territorial-rl/territorial/internal/config"
	"github.com/territorial-rl/territorial/internal/game/core"
)

// Config holds map generation settings.
type Config struct {
	Width         int
	Height        int
	PlayerCount   int
	WaterRatio    float64
	ForestRatio   float64
	MountainRatio float64
	StartTroops   int
	MinSpawnDist  float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig(w, h, players int) Config {
	return Config{
		Width:         w,
		Height:        h,
		PlayerCount:   players,
		WaterRatio:    0.08,
		ForestRatio:   0.15,
		MountainRatio: 0.1,
		StartTroops:   10,
		MinSpawnDist:  4,
	}
}

// FromMapConfig adapts the application map config.
func FromMapConfig(mc config.MapConfig, players int) Config {
	c := DefaultConfig(mc.Width, mc.Height, players)
	c.WaterRatio = mc.WaterRatio
	c.ForestRatio = mc.ForestRatio
	c.MountainRatio = mc.MountainRatio
	c.StartTroops = mc.StartTroops
	return c
}

// Generator builds initial grids with a deterministic RNG.
type Generator struct {
	config Config
	rng    *rand.Rand
}

// NewGenerator creates a new map generator.
func NewGenerator(config Config, rng *rand.Rand) *Generator {
	return &Generator{config: config, rng: rng}
}

// Generate creates a grid with terrain scattered by ratio and one spawn
// territory claimed per player. Terrain only affects capacity seeding;
// water is impassable.
func (g *Generator) Generate() *core.Grid {
	grid := core.NewGrid(g.config.Width, g.config.Height)

	g.scatterTerrain(grid, core.TerrainWater, g.config.WaterRatio)
	g.scatterTerrain(grid, core.TerrainForest, g.config.ForestRatio)
	g.scatterTerrain(grid, core.TerrainMountains, g.config.MountainRatio)

	for i := range grid.T {
		grid.T[i].Capacity = capacityFor(grid.T[i].Terrain)
		if grid.T[i].IsWater() {
			grid.T[i].Troops = 0
		}
	}

	g.placeSpawns(grid)
	return grid
}

func (g *Generator) scatterTerrain(grid *core.Grid, terrain core.Terrain, ratio float64) {
	want := int(float64(grid.W*grid.H) * ratio)
	placed := 0
	attempts := 0
	maxAttempts := want * 10

	for placed < want && attempts < maxAttempts {
		x, y := g.rng.Intn(grid.W), g.rng.Intn(grid.H)
		t := grid.At(x, y)
		if t.Terrain == core.TerrainPlains {
			t.Terrain = terrain
			placed++
		}
		attempts++
	}
}

// capacityFor seeds the soft troop capacity per terrain kind. The cap
// is informational; growth does not enforce it.
func capacityFor(terrain core.Terrain) int {
	switch terrain {
	case core.TerrainForest:
		return 80
	case core.TerrainMountains:
		return 60
	case core.TerrainWater:
		return 0
	default:
		return 100
	}
}

// placeSpawns claims one starting territory per player, keeping spawns
// spaced apart where the map allows it.
func (g *Generator) placeSpawns(grid *core.Grid) {
	type spawn struct{ x, y int }
	var spawns []spawn

	maxAttempts := grid.W * grid.H
	for pid := 0; pid < g.config.PlayerCount; pid++ {
		placed := false
		for attempts := 0; attempts < maxAttempts; attempts++ {
			x, y := g.rng.Intn(grid.W), g.rng.Intn(grid.H)
			t := grid.At(x, y)
			if !t.IsNeutral() || !t.IsPassable() {
				continue
			}
			tooClose := false
			for _, s := range spawns {
				if core.Distance(x, y, s.x, s.y) < g.config.MinSpawnDist {
					tooClose = true
					break
				}
			}
			if tooClose {
				continue
			}
			g.claim(t, pid)
			spawns = append(spawns, spawn{x, y})
			placed = true
			break
		}
		if !placed {
			// Dense or tiny maps: take the first free passable cell.
			for i := range grid.T {
				t := &grid.T[i]
				if t.IsNeutral() && t.IsPassable() {
					g.claim(t, pid)
					spawns = append(spawns, spawn{t.X, t.Y})
					placed = true
					break
				}
			}
		}
		if !placed {
			panic("mapgen: no valid spawn locations")
		}
	}
}

func (g *Generator) claim(t *core.Territory, pid int) {
	t.Owner = pid
	t.Troops = g.config.StartTroops
}
