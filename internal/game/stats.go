package game

import "github.com/territorial-rl/territorial/internal/game/events"

// updatePlayerStats recomputes the cached per-player counts from the
// grid. A living player with zero territories is eliminated; elimination
// is permanent since there is no territory to act from.
func (e *Engine) updatePlayerStats() {
	for i := range e.gs.Players {
		e.gs.Players[i].TerritoryCount = 0
		e.gs.Players[i].TroopCount = 0
		e.gs.Players[i].BuildingCount = 0
	}

	for i := range e.gs.Grid.T {
		t := &e.gs.Grid.T[i]
		if t.IsNeutral() || t.Wall {
			continue
		}
		p := e.gs.Player(t.Owner)
		if p == nil {
			continue
		}
		p.TerritoryCount++
		p.TroopCount += t.Troops
		if t.HasBuilding() {
			p.BuildingCount++
		}
	}

	for i := range e.gs.Players {
		p := &e.gs.Players[i]
		if p.Alive && p.TerritoryCount == 0 {
			p.Alive = false
			e.bus.Publish(events.NewPlayerEliminated(e.gs.ID, p.ID, e.gs.Tick))
		}
	}
}
