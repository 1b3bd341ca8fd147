package rl

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// Linear is a single-layer linear action-value model with one weight
// row (plus bias) per action index. It is the in-repo baseline so
// self-play training runs without an external network.
type Linear struct {
	in  int
	out int
	lr  float32
	w   [][]float32 // out rows of in+1 (bias last)
}

// NewLinear creates a model with small random weights.
func NewLinear(in, out int, learningRate float64, rng *rand.Rand) *Linear {
	w := make([][]float32, out)
	for i := range w {
		row := make([]float32, in+1)
		for j := range row {
			row[j] = float32(rng.Float64()-0.5) * 0.01
		}
		w[i] = row
	}
	return &Linear{in: in, out: out, lr: float32(learningRate), w: w}
}

// Predict returns one Q estimate per action index.
func (m *Linear) Predict(features []float32) ([]float32, error) {
	if len(features) != m.in {
		return nil, fmt.Errorf("%w: got %d features, want %d", ErrShapeMismatch, len(features), m.in)
	}
	out := make([]float32, m.out)
	for i, row := range m.w {
		sum := row[m.in] // bias
		for j, f := range features {
			sum += row[j] * f
		}
		out[i] = sum
	}
	return out, nil
}

// Fit runs one SGD step per sample toward the targets.
func (m *Linear) Fit(features [][]float32, targets [][]float32) error {
	if len(features) != len(targets) {
		return fmt.Errorf("%w: %d feature rows vs %d target rows", ErrShapeMismatch, len(features), len(targets))
	}
	for s := range features {
		x := features[s]
		t := targets[s]
		if len(x) != m.in || len(t) != m.out {
			return fmt.Errorf("%w: sample %d has shape %dx%d, want %dx%d",
				ErrShapeMismatch, s, len(x), len(t), m.in, m.out)
		}
		pred, err := m.Predict(x)
		if err != nil {
			return err
		}
		for i, row := range m.w {
			grad := m.lr * (t[i] - pred[i])
			if grad == 0 {
				continue
			}
			for j, f := range x {
				row[j] += grad * f
			}
			row[m.in] += grad
		}
	}
	return nil
}

// Snapshot deep-copies the weights.
func (m *Linear) Snapshot() [][]float32 {
	out := make([][]float32, len(m.w))
	for i, row := range m.w {
		cp := make([]float32, len(row))
		copy(cp, row)
		out[i] = cp
	}
	return out
}

// Restore replaces the weights with a deep copy of the snapshot.
func (m *Linear) Restore(weights [][]float32) {
	for i := range m.w {
		if i < len(weights) {
			copy(m.w[i], weights[i])
		}
	}
}

type linearPayload struct {
	In      int         `json:"in"`
	Out     int         `json:"out"`
	Weights [][]float32 `json:"weights"`
}

// MarshalWeights serializes the weights for the model store.
func (m *Linear) MarshalWeights() ([]byte, error) {
	return json.Marshal(linearPayload{In: m.in, Out: m.out, Weights: m.w})
}

// UnmarshalWeights restores weights saved by MarshalWeights. The stored
// dimensions must match the model's.
func (m *Linear) UnmarshalWeights(data []byte) error {
	var p linearPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding weights: %w", err)
	}
	if p.In != m.in || p.Out != m.out {
		return fmt.Errorf("%w: stored %dx%d, model %dx%d", ErrShapeMismatch, p.In, p.Out, m.in, m.out)
	}
	m.Restore(p.Weights)
	return nil
}
