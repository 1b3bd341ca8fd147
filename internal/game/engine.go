package game

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/territorial-rl/territorial/internal/config"
	"github.com/territorial-rl/territorial/internal/game/core"
	"github.com/territorial-rl/territorial/internal/game/events"
	"github.com/territorial-rl/territorial/internal/game/mapgen"
)

// Engine owns a GameState and advances it one tick at a time. It is
// explicitly constructed per session or episode; there is no shared
// engine instance. Exactly one loop drives an Engine at a time, so no
// locking is needed.
type Engine struct {
	gs       *GameState
	growth   config.GrowthConfig
	rng      *rand.Rand
	bus      events.Publisher
	logger   zerolog.Logger
	gameOver bool
	winner   int
}

// NewEngine generates a fresh map, seeds the players, and returns an
// engine ready to Step.
func NewEngine(cfg config.GameConfig, specs []PlayerSpec, rng *rand.Rand, bus events.Publisher, logger zerolog.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if bus == nil {
		bus = events.NopBus{}
	}

	gen := mapgen.NewGenerator(mapgen.FromMapConfig(cfg.Map, len(specs)), rng)
	grid := gen.Generate()

	players := make([]Player, len(specs))
	for i, spec := range specs {
		players[i] = Player{
			ID:          i,
			Name:        spec.Name,
			Color:       spec.Color,
			Human:       spec.Human,
			Personality: spec.Personality,
			Gold:        cfg.Growth.StartGold,
			Alive:       true,
		}
	}

	e := &Engine{
		gs: &GameState{
			ID:      uuid.New().String(),
			Grid:    grid,
			Players: players,
		},
		growth: cfg.Growth,
		rng:    rng,
		bus:    bus,
		logger: logger.With().Str("component", "engine").Logger(),
		winner: core.NeutralID,
	}
	e.updatePlayerStats()
	return e
}

// NewEngineWithState wraps an existing state, bypassing map generation.
// Used by tests and by hosts that supply their own grid.
func NewEngineWithState(gs *GameState, growth config.GrowthConfig, rng *rand.Rand, bus events.Publisher, logger zerolog.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if bus == nil {
		bus = events.NopBus{}
	}
	if gs.ID == "" {
		gs.ID = uuid.New().String()
	}
	e := &Engine{
		gs:     gs,
		growth: growth,
		rng:    rng,
		bus:    bus,
		logger: logger.With().Str("component", "engine").Logger(),
		winner: core.NeutralID,
	}
	e.updatePlayerStats()
	return e
}

// Step advances the simulation by one tick: resolve the proposed
// actions, apply growth if a growth interval elapsed, refresh cached
// player stats, and check the win condition. Illegal actions leave the
// grid unchanged and are logged at debug level only.
func (e *Engine) Step(actions []core.Action) error {
	if e.gameOver {
		return core.ErrGameOver
	}
	e.gs.Tick++

	e.processActions(actions)

	// Growth is strictly periodic: exactly once per interval, never
	// per tick, to avoid runaway compounding.
	if e.gs.Tick%e.growth.IntervalTicks == 0 {
		e.gs.Day++
		e.updateResourceBoom()
		e.applyGrowth()
	}

	e.updatePlayerStats()
	e.checkGameOver()
	return nil
}

// processActions resolves all actions for this tick, sorted by player
// ID for deterministic processing. Nil entries are passes and are
// dropped before sorting.
func (e *Engine) processActions(actions []core.Action) {
	proposed := actions[:0:0]
	for _, action := range actions {
		if action != nil {
			proposed = append(proposed, action)
		}
	}
	sort.SliceStable(proposed, func(i, j int) bool {
		return proposed[i].GetPlayerID() < proposed[j].GetPlayerID()
	})

	for _, action := range proposed {
		playerID := action.GetPlayerID()
		p := e.gs.Player(playerID)
		if p == nil || !p.Alive {
			continue
		}
		e.resolve(action, p)
	}
}

func (e *Engine) resolve(action core.Action, p *Player) {
	g := e.gs.Grid

	switch act := action.(type) {
	case *core.AttackAction:
		defender := core.NeutralID
		if tgt := g.At(act.ToX, act.ToY); tgt != nil {
			defender = tgt.Owner
		}
		out, err := core.ApplyAttackAction(g, act)
		if err != nil {
			e.logIllegal(action, err)
			return
		}
		if out.Captured {
			e.bus.Publish(events.NewTerritoryCaptured(e.gs.ID, act.ToX, act.ToY, p.ID, defender, out.AttackingForce, out.BuildingRazed))
		} else {
			e.bus.Publish(events.NewAttackRepelled(e.gs.ID, act.ToX, act.ToY, p.ID, defender, out.AttackingForce, out.DefenderLosses))
		}

	case *core.DefendAction:
		if err := core.ApplyDefendAction(g, act); err != nil {
			e.logIllegal(action, err)
		}

	case *core.BuildAction:
		cost, err := core.ApplyBuildAction(g, act, p.Gold)
		if err != nil {
			e.logIllegal(action, err)
			return
		}
		p.Gold -= cost
		e.bus.Publish(events.NewBuildingConstructed(e.gs.ID, act.X, act.Y, p.ID, act.Kind, cost))

	case *core.MoveAction:
		if _, err := core.ApplyMoveAction(g, act); err != nil {
			e.logIllegal(action, err)
		}
	}
}

func (e *Engine) logIllegal(action core.Action, err error) {
	// Stale proposals against a just-mutated grid are routine, not
	// faults. The grid stays unchanged.
	e.logger.Debug().
		Int("player", action.GetPlayerID()).
		Stringer("action", action.GetType()).
		Err(err).
		Msg("Rejected illegal action")
}

// updateResourceBoom ticks the boom countdown and occasionally starts a
// new boom. Runs once per growth day.
func (e *Engine) updateResourceBoom() {
	if e.gs.BoomDaysLeft > 0 {
		e.gs.BoomDaysLeft--
		if e.gs.BoomDaysLeft == 0 {
			e.bus.Publish(events.NewResourceBoomEnded(e.gs.ID, e.gs.Day))
		}
		return
	}
	if e.growth.BoomChance > 0 && e.rng.Float64() < e.growth.BoomChance {
		e.gs.BoomDaysLeft = e.growth.BoomDurationDays
		e.bus.Publish(events.NewResourceBoomStarted(e.gs.ID, e.gs.Day, e.growth.BoomDurationDays))
	}
}

// checkGameOver ends the game when at most one player remains alive or
// one player holds every passable territory.
func (e *Engine) checkGameOver() {
	aliveCount := 0
	lastAlive := core.NeutralID
	for i := range e.gs.Players {
		if e.gs.Players[i].Alive {
			aliveCount++
			lastAlive = e.gs.Players[i].ID
		}
	}
	if aliveCount <= 1 {
		e.gameOver = true
		e.winner = lastAlive
		e.bus.Publish(events.NewGameOver(e.gs.ID, e.winner, e.gs.Tick))
		return
	}

	if owner, ok := soleOwner(e.gs.Grid); ok {
		e.gameOver = true
		e.winner = owner
		e.bus.Publish(events.NewGameOver(e.gs.ID, e.winner, e.gs.Tick))
	}
}

// soleOwner reports whether a single player owns every passable
// territory on the grid.
func soleOwner(g *core.Grid) (int, bool) {
	owner := core.NeutralID
	for i := range g.T {
		t := &g.T[i]
		if !t.IsPassable() {
			continue
		}
		if t.IsNeutral() {
			return core.NeutralID, false
		}
		if owner == core.NeutralID {
			owner = t.Owner
		} else if owner != t.Owner {
			return core.NeutralID, false
		}
	}
	return owner, owner != core.NeutralID
}

// State returns the engine's game state. Callers must treat it as
// read-only outside the engine's own loop.
func (e *Engine) State() *GameState { return e.gs }

func (e *Engine) IsGameOver() bool { return e.gameOver }

// Winner returns the winning player ID, or core.NeutralID while the
// game is still running.
func (e *Engine) Winner() int { return e.winner }

// Leader returns the player currently holding the most territories.
func (e *Engine) Leader() int {
	best, bestCount := core.NeutralID, -1
	for i := range e.gs.Players {
		if e.gs.Players[i].TerritoryCount > bestCount {
			best = e.gs.Players[i].ID
			bestCount = e.gs.Players[i].TerritoryCount
		}
	}
	return best
}
