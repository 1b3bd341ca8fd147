package rl

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/rs/zerolog"
)

var (
	// ErrBufferEmpty is returned when sampling from an empty buffer.
	ErrBufferEmpty = errors.New("replay buffer is empty")
)

// Transition is one step of experience: state, chosen action index,
// observed reward, resulting state, and whether the episode ended there.
type Transition struct {
	State       []float32
	ActionIndex int
	Reward      float32
	NextState   []float32
	Done        bool
}

// ReplayBuffer is a fixed-capacity ring of transitions. When full, the
// oldest transition is evicted. Sampling is uniform with replacement.
// Safe for concurrent use, though the training loop is single-threaded.
type ReplayBuffer struct {
	mu       sync.RWMutex
	buf      []Transition
	capacity int
	size     int
	head     int

	totalAdded   int64
	totalDropped int64

	logger zerolog.Logger
}

// NewReplayBuffer creates a buffer with the given capacity.
func NewReplayBuffer(capacity int, logger zerolog.Logger) *ReplayBuffer {
	if capacity <= 0 {
		capacity = 10000
	}
	return &ReplayBuffer{
		buf:      make([]Transition, capacity),
		capacity: capacity,
		logger:   logger.With().Str("component", "replay_buffer").Logger(),
	}
}

// Add appends a transition, evicting the oldest when at capacity.
func (b *ReplayBuffer) Add(t Transition) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size >= b.capacity {
		b.totalDropped++
		if b.totalDropped == 1 {
			b.logger.Debug().Int("capacity", b.capacity).Msg("Buffer full, evicting oldest transitions")
		}
	} else {
		b.size++
	}
	b.buf[b.head] = t
	b.head = (b.head + 1) % b.capacity
	b.totalAdded++
}

// Len returns the number of stored transitions.
func (b *ReplayBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Capacity returns the fixed capacity.
func (b *ReplayBuffer) Capacity() int { return b.capacity }

// Sample draws batchSize transitions uniformly with replacement. The
// same transition may appear more than once in a batch.
func (b *ReplayBuffer) Sample(rng *rand.Rand, batchSize int) ([]Transition, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.size == 0 {
		return nil, ErrBufferEmpty
	}
	out := make([]Transition, batchSize)
	for i := range out {
		out[i] = b.buf[rng.Intn(b.size)]
	}
	return out, nil
}
