package core

import "errors"

// Illegal-action sentinels. These arise routinely from stale agent
// proposals against a just-mutated grid; callers treat them as no-ops,
// not faults.
var (
	ErrInvalidCoordinates = errors.New("coordinates out of bounds")
	ErrNotOwned           = errors.New("territory not owned by player")
	ErrTargetOwned        = errors.New("target territory already owned")
	ErrSelfTarget         = errors.New("source and target are the same territory")
	ErrOutOfRange         = errors.New("target out of adjacency range")
	ErrTargetImpassable   = errors.New("target is a wall or water")
	ErrInsufficientTroops = errors.New("not enough troops")
	ErrInsufficientGold   = errors.New("not enough gold")
	ErrBuildingPresent    = errors.New("building already present")
	ErrWallOnOwned        = errors.New("wall target must be unowned")
	ErrGameOver           = errors.New("game is over")
)
