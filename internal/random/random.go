// Package random provides the seedable random source used for scatter
// placement and jitter.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source yields uniformly distributed floats in [0, 1).
//
// *rand.Rand satisfies Source. Implementations need not be safe for
// concurrent use; callers create one Source per generation.
type Source interface {
	Float64() float64
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSeeded returns a deterministic source for seed. Identical seeds yield
// identical streams.
func NewSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Resolve returns seed unchanged when it is non-zero, otherwise a fresh
// crypto seed. The resolved seed should be reported so a run can be replayed.
func Resolve(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return NewSeed()
}

// Between returns a uniform value in [min, max).
func Between(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// Fixed is a Source that replays values in order and then repeats the last
// one. It is intended for tests that need exact placements.
type Fixed struct {
	values []float64
	next   int
}

// NewFixed returns a Fixed source over values. With no values it always
// returns 0.
func NewFixed(values ...float64) *Fixed {
	return &Fixed{values: values}
}

// Float64 implements Source.
func (f *Fixed) Float64() float64 {
	if len(f.values) == 0 {
		return 0
	}
	if f.next >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.next]
	f.next++
	return v
}
