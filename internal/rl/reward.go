package rl

import (
	"github.com/territorial-rl/territorial/internal/game"
)

// RewardConfig holds the per-delta reward weights.
type RewardConfig struct {
	TerritoryDelta float32
	GoldDelta      float32
	TroopDelta     float32
	BuildingDelta  float32
	TerminalLeader float32 // bonus when the episode ends with the most territories
}

// DefaultRewardConfig returns the standard weights.
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		TerritoryDelta: 10,
		GoldDelta:      0.1,
		TroopDelta:     0.5,
		BuildingDelta:  5,
		TerminalLeader: 100,
	}
}

// PlayerSnapshot captures the stat counters the reward compares across
// one tick.
type PlayerSnapshot struct {
	Territories int
	Gold        int
	Troops      int
	Buildings   int
}

// SnapshotPlayer reads the cached stat counters for a player. Call
// after the engine's stat refresh, so the numbers match the grid.
func SnapshotPlayer(gs *game.GameState, playerID int) PlayerSnapshot {
	p := gs.Player(playerID)
	if p == nil {
		return PlayerSnapshot{}
	}
	return PlayerSnapshot{
		Territories: p.TerritoryCount,
		Gold:        p.Gold,
		Troops:      p.TroopCount,
		Buildings:   p.BuildingCount,
	}
}

// Reward computes the shaped reward for one transition. leader reports
// whether the player holds the most territories at episode end; it is
// ignored unless done is true.
func Reward(cfg RewardConfig, prev, curr PlayerSnapshot, done, leader bool) float32 {
	r := cfg.TerritoryDelta*float32(curr.Territories-prev.Territories) +
		cfg.GoldDelta*float32(curr.Gold-prev.Gold) +
		cfg.TroopDelta*float32(curr.Troops-prev.Troops) +
		cfg.BuildingDelta*float32(curr.Buildings-prev.Buildings)
	if done && leader {
		r += cfg.TerminalLeader
	}
	return r
}
