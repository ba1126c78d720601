package randutil

import (
	"math/rand/v2"
	"sort"
)

// Sampler draws items by weight without replacement.
//
// It keeps a cumulative-weight index over the remaining items. Each draw
// binary-searches the index and removes the chosen item, so n draws finish
// in exactly min(n, Len()) steps.
type Sampler[T any] struct {
	items   []T
	weights []float64
	cum     []float64
}

// NewSampler builds a sampler over items. Weights are floored as in WeightedPick.
func NewSampler[T any](items []T, weightFn func(T) float64) *Sampler[T] {
	s := &Sampler[T]{
		items:   make([]T, len(items)),
		weights: make([]float64, len(items)),
	}
	copy(s.items, items)
	for i, it := range s.items {
		s.weights[i] = floor(weightFn(it))
	}
	s.reindex()
	return s
}

// Len returns the number of items not yet drawn.
func (s *Sampler[T]) Len() int {
	return len(s.items)
}

// Draw removes and returns one item. ok is false once the sampler is empty.
func (s *Sampler[T]) Draw(r *rand.Rand) (item T, ok bool) {
	if len(s.items) == 0 {
		return item, false
	}

	total := s.cum[len(s.cum)-1]
	target := r.Float64() * total
	i := sort.Search(len(s.cum), func(k int) bool { return s.cum[k] > target })
	if i >= len(s.items) {
		i = len(s.items) - 1
	}

	item = s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.weights = append(s.weights[:i], s.weights[i+1:]...)
	s.reindex()
	return item, true
}

func (s *Sampler[T]) reindex() {
	s.cum = s.cum[:0]
	var acc float64
	for _, w := range s.weights {
		acc += w
		s.cum = append(s.cum, acc)
	}
}
