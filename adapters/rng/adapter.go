package rng

import (
	"context"
	"hash/fnv"
	"math/rand"
)

// Adapter implements ports.RNGPort on math/rand with derived sub-streams.
// Each stream is an independent *rand.Rand, so callers own their stream
// exclusively and parallel trials never contend on shared generator state.
type Adapter struct{}

// New creates an RNG adapter
func New() *Adapter {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(deriveSeed(name, seed, -1))), nil
}

// TrialStream creates a deterministic RNG stream for a single Monte Carlo trial.
// The same (name, seed, trial) triple always yields the same stream, and
// distinct trials yield distinct streams.
func (a *Adapter) TrialStream(ctx context.Context, name string, seed int64, trial int) (*rand.Rand, error) {
	return rand.New(rand.NewSource(deriveSeed(name, seed, trial))), nil
}

// deriveSeed mixes the operation name, base seed and trial index into one
// seed so that named streams don't collide across operations.
func deriveSeed(name string, seed int64, trial int) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(seed >> (8 * i))
		buf[8+i] = byte(int64(trial) >> (8 * i))
	}
	h.Write(buf[:])
	return int64(h.Sum64())
}
