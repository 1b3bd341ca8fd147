package game

import (
	"github.com/territorial-rl/territorial/internal/game/core"
)

// Personality selects which rule-based strategy family an AI agent
// leans on. Assigned once at episode start and stable for the episode.
type Personality int

const (
	PersonalityBalanced Personality = iota
	PersonalityExpansionist
	PersonalityBuilder
	PersonalityAggressive
	PersonalityDefensive
)

func (p Personality) String() string {
	switch p {
	case PersonalityBalanced:
		return "balanced"
	case PersonalityExpansionist:
		return "expansionist"
	case PersonalityBuilder:
		return "builder"
	case PersonalityAggressive:
		return "aggressive"
	case PersonalityDefensive:
		return "defensive"
	default:
		return "unknown"
	}
}

// Player is one agent in an episode. Counts are caches recomputed from
// the grid every tick; gold is authoritative player state.
type Player struct {
	ID          int
	Name        string
	Color       string
	Human       bool
	Personality Personality

	Gold  int
	Alive bool

	TerritoryCount int
	TroopCount     int
	BuildingCount  int
}

// PlayerSpec describes a player to create at episode start.
type PlayerSpec struct {
	Name        string
	Color       string
	Human       bool
	Personality Personality
}

// GameState is the complete simulation state for one episode.
type GameState struct {
	ID      string
	Tick    int
	Day     int // growth intervals elapsed
	Grid    *core.Grid
	Players []Player

	// BoomDaysLeft > 0 means the Resource Boom growth doubler is active.
	BoomDaysLeft int
}

// IsBoomActive reports whether the Resource Boom event is running.
func (gs *GameState) IsBoomActive() bool { return gs.BoomDaysLeft > 0 }

// HumanID returns the id of the human player, or core.NeutralID when
// the episode has none (all-AI self-play).
func (gs *GameState) HumanID() int {
	for i := range gs.Players {
		if gs.Players[i].Human {
			return gs.Players[i].ID
		}
	}
	return core.NeutralID
}

// Player returns the player with the given id, or nil.
func (gs *GameState) Player(id int) *Player {
	if id < 0 || id >= len(gs.Players) {
		return nil
	}
	return &gs.Players[id]
}
