package events

import (
	"time"

	"github.com/territorial-rl/territorial/internal/game/core"
)

// Event type strings, used for subscription filtering.
const (
	TypeTerritoryCaptured   = "territory.captured"
	TypeAttackRepelled      = "attack.repelled"
	TypeBuildingConstructed = "building.constructed"
	TypeGrowthApplied       = "growth.applied"
	TypeResourceBoomStarted = "resource_boom.started"
	TypeResourceBoomEnded   = "resource_boom.ended"
	TypePlayerEliminated    = "player.eliminated"
	TypeGameOver            = "game.over"
)

// TerritoryCapturedEvent fires when an attack flips a territory.
type TerritoryCapturedEvent struct {
	BaseEvent
	X, Y          int
	AttackerID    int
	DefenderID    int
	Force         int
	BuildingRazed core.BuildingKind
}

// AttackRepelledEvent fires when an attack fails against the defense.
type AttackRepelledEvent struct {
	BaseEvent
	X, Y           int
	AttackerID     int
	DefenderID     int
	Force          int
	DefenderLosses int
}

// BuildingConstructedEvent fires on a successful build.
type BuildingConstructedEvent struct {
	BaseEvent
	X, Y     int
	PlayerID int
	Kind     core.BuildingKind
	Cost     int
}

// GrowthAppliedEvent fires once per growth interval per player.
type GrowthAppliedEvent struct {
	BaseEvent
	PlayerID int
	Day      int
	Troops   int
	Gold     int
}

// ResourceBoomStartedEvent fires when the growth doubler activates.
type ResourceBoomStartedEvent struct {
	BaseEvent
	Day          int
	DurationDays int
}

// ResourceBoomEndedEvent fires when the growth doubler expires.
type ResourceBoomEndedEvent struct {
	BaseEvent
	Day int
}

// PlayerEliminatedEvent fires when a player loses their last territory.
type PlayerEliminatedEvent struct {
	BaseEvent
	PlayerID int
	Tick     int
}

// GameOverEvent fires when one player controls every territory.
type GameOverEvent struct {
	BaseEvent
	WinnerID int
	Tick     int
}

func base(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}

func NewTerritoryCaptured(gameID string, x, y, attacker, defender, force int, razed core.BuildingKind) *TerritoryCapturedEvent {
	return &TerritoryCapturedEvent{
		BaseEvent:     base(TypeTerritoryCaptured, gameID),
		X:             x,
		Y:             y,
		AttackerID:    attacker,
		DefenderID:    defender,
		Force:         force,
		BuildingRazed: razed,
	}
}

func NewAttackRepelled(gameID string, x, y, attacker, defender, force, losses int) *AttackRepelledEvent {
	return &AttackRepelledEvent{
		BaseEvent:      base(TypeAttackRepelled, gameID),
		X:              x,
		Y:              y,
		AttackerID:     attacker,
		DefenderID:     defender,
		Force:          force,
		DefenderLosses: losses,
	}
}

func NewBuildingConstructed(gameID string, x, y, playerID int, kind core.BuildingKind, cost int) *BuildingConstructedEvent {
	return &BuildingConstructedEvent{
		BaseEvent: base(TypeBuildingConstructed, gameID),
		X:         x,
		Y:         y,
		PlayerID:  playerID,
		Kind:      kind,
		Cost:      cost,
	}
}

func NewGrowthApplied(gameID string, playerID, day, troops, gold int) *GrowthAppliedEvent {
	return &GrowthAppliedEvent{
		BaseEvent: base(TypeGrowthApplied, gameID),
		PlayerID:  playerID,
		Day:       day,
		Troops:    troops,
		Gold:      gold,
	}
}

func NewResourceBoomStarted(gameID string, day, duration int) *ResourceBoomStartedEvent {
	return &ResourceBoomStartedEvent{BaseEvent: base(TypeResourceBoomStarted, gameID), Day: day, DurationDays: duration}
}

func NewResourceBoomEnded(gameID string, day int) *ResourceBoomEndedEvent {
	return &ResourceBoomEndedEvent{BaseEvent: base(TypeResourceBoomEnded, gameID), Day: day}
}

func NewPlayerEliminated(gameID string, playerID, tick int) *PlayerEliminatedEvent {
	return &PlayerEliminatedEvent{BaseEvent: base(TypePlayerEliminated, gameID), PlayerID: playerID, Tick: tick}
}

func NewGameOver(gameID string, winnerID, tick int) *GameOverEvent {
	return &GameOverEvent{BaseEvent: base(TypeGameOver, gameID), WinnerID: winnerID, Tick: tick}
}
