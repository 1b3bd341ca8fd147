package rl

import "errors"

var (
	// ErrShapeMismatch is returned when a feature or target vector does
	// not match the model's configured dimensions. Callers treat this as
	// fatal: shapes are fixed per map size and a mismatch means the run
	// is wired wrong.
	ErrShapeMismatch = errors.New("feature shape does not match model dimensions")
)

// Approximator is the pluggable action-value function. Predict maps a
// feature vector to one Q estimate per action index; Fit performs one
// update step toward the given targets.
type Approximator interface {
	Predict(features []float32) ([]float32, error)
	Fit(features [][]float32, targets [][]float32) error

	// Snapshot and Restore deep-copy the weights, used to maintain the
	// lagging target network.
	Snapshot() [][]float32
	Restore(weights [][]float32)

	// MarshalWeights and UnmarshalWeights round-trip the weights as an
	// opaque payload for the model store.
	MarshalWeights() ([]byte, error)
	UnmarshalWeights(data []byte) error
}
