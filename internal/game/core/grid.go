package core

import "math"

// BaseRange is the default adjacency range for attacks, defends and
// moves. A Tower on the acting territory extends it by its level.
const BaseRange = 2

// Grid is the territory map: a flat row-major slice of Territories.
type Grid struct {
	W, H int
	T    []Territory // length = W*H
}

// NewGrid creates a grid of unowned plains territories.
func NewGrid(w, h int) *Grid {
	g := &Grid{W: w, H: h, T: make([]Territory, w*h)}
	for i := range g.T {
		x, y := g.XY(i)
		g.T[i] = Territory{
			X:        x,
			Y:        y,
			Terrain:  TerrainPlains,
			Owner:    NeutralID,
			Capacity: 100,
		}
	}
	return g
}

func (g *Grid) Idx(x, y int) int      { return y*g.W + x }
func (g *Grid) XY(idx int) (int, int) { return idx % g.W, idx / g.W }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the territory at (x, y), or nil when out of bounds.
// Lookups off the grid degrade to nil so stale agent proposals become
// no-ops rather than faults.
func (g *Grid) At(x, y int) *Territory {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.T[g.Idx(x, y)]
}

// Distance is the Euclidean distance between two cells. Attack
// adjacency is Euclidean, not Manhattan or Chebyshev.
func Distance(x1, y1, x2, y2 int) float64 {
	dx := float64(x1 - x2)
	dy := float64(y1 - y2)
	return math.Sqrt(dx*dx + dy*dy)
}

// InRange reports whether (x2, y2) is within rng of (x1, y1),
// excluding the cell itself (distance must be strictly positive).
func InRange(x1, y1, x2, y2 int, rng float64) bool {
	d := Distance(x1, y1, x2, y2)
	return d > 0 && d <= rng
}

// FindAdjacent returns all passable cells within Euclidean distance rng
// of t, excluding t itself. Walls and water never appear in the result.
func (g *Grid) FindAdjacent(t *Territory, rng float64) []*Territory {
	return g.collectInRange(t, rng, func(c *Territory) bool {
		return c.IsPassable()
	})
}

// FindNearbyEmpty restricts FindAdjacent to unowned cells. Used for
// wall placement.
func (g *Grid) FindNearbyEmpty(t *Territory, rng float64) []*Territory {
	return g.collectInRange(t, rng, func(c *Territory) bool {
		return c.IsPassable() && c.IsNeutral()
	})
}

func (g *Grid) collectInRange(t *Territory, rng float64, keep func(*Territory) bool) []*Territory {
	var out []*Territory
	r := int(math.Ceil(rng))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			x, y := t.X+dx, t.Y+dy
			if !g.InBounds(x, y) {
				continue
			}
			if !InRange(t.X, t.Y, x, y, rng) {
				continue
			}
			c := &g.T[g.Idx(x, y)]
			if keep(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// OwnedBy returns every real territory owned by a player. Walled cells
// carry cosmetic ownership only and are excluded.
func (g *Grid) OwnedBy(playerID int) []*Territory {
	var out []*Territory
	for i := range g.T {
		t := &g.T[i]
		if t.Owner == playerID && !t.Wall {
			out = append(out, t)
		}
	}
	return out
}

// CountOwned counts real territories owned by a player without
// allocating.
func (g *Grid) CountOwned(playerID int) int {
	n := 0
	for i := range g.T {
		if g.T[i].Owner == playerID && !g.T[i].Wall {
			n++
		}
	}
	return n
}

// AttackRange is the adjacency range when acting from t: the base
// range extended by the territory's tower level.
func (g *Grid) AttackRange(t *Territory) float64 {
	return float64(BaseRange + t.TowerLevel())
}

// Clone deep-copies the grid. Snapshots are taken only where a
// before/after diff is needed (reward computation), never as the
// default mutation strategy.
func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H, T: make([]Territory, len(g.T))}
	copy(c.T, g.T)
	return c
}
