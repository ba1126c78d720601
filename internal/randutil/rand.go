package randutil

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// MinWeight is the floor applied to non-positive or non-finite weights so
// that every item keeps a nonzero chance of being drawn.
const MinWeight = 1e-4

// ErrEmptyPool is returned when a weighted pick is attempted on no items.
var ErrEmptyPool = errors.New("weighted pick from empty pool")

// New returns a deterministic source seeded with seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeeded returns a source seeded from the wall clock.
func NewTimeSeeded() *rand.Rand {
	return New(uint64(time.Now().UnixNano()))
}

// Shuffle returns a uniformly random permutation of items.
// The input slice is never modified.
func Shuffle[T any](r *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Perm returns a random permutation of [0, n).
func Perm(r *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return Shuffle(r, idx)
}

// WeightedPick selects one item with probability proportional to weightFn.
// It leaves items untouched, so repeated calls may return the same item;
// exam building draws without replacement through Sampler instead.
func WeightedPick[T any](r *rand.Rand, items []T, weightFn func(T) float64) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyPool
	}

	weights := make([]float64, len(items))
	var total float64
	for i, it := range items {
		weights[i] = floor(weightFn(it))
		total += weights[i]
	}

	target := r.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return items[i], nil
		}
	}
	// Rounding can leave target at exactly zero after the loop.
	return items[len(items)-1], nil
}

// floor coerces a weight into the valid positive range.
func floor(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return MinWeight
	}
	return w
}
