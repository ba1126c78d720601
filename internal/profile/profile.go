// Package profile tracks per-category performance and the persisted stats blob.
package profile

import (
	"math"

	"github.com/abhisek/examiz/internal/bank"
)

// Weight bounds for weakness weighting.
const (
	MinWeight    = 0.6
	MaxWeight    = 1.6
	weightOffset = 1.8
	neutralRatio = 0.5
)

// CategoryStat is a cumulative correct/total tally. Correct never exceeds Total.
type CategoryStat struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Ratio returns correct/total, or the neutral midpoint when there is no history.
func (s CategoryStat) Ratio() float64 {
	if s.Total <= 0 {
		return neutralRatio
	}
	return float64(s.Correct) / float64(s.Total)
}

// Accuracy returns the ratio as a percentage, or 0 with no history.
func (s CategoryStat) Accuracy() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}

// Valid reports whether the tally is internally consistent.
func (s CategoryStat) Valid() bool {
	return s.Correct >= 0 && s.Total >= 0 && s.Correct <= s.Total
}

// WeaknessWeight maps a category's history to a sampling weight.
// A perfect record weighs 0.8, no history 1.3, and an all-wrong record 1.6.
func WeaknessWeight(s CategoryStat) float64 {
	w := weightOffset - s.Ratio()
	return math.Max(MinWeight, math.Min(MaxWeight, w))
}

// Profile maps categories to their cumulative stats.
// Missing categories read as zero.
type Profile map[bank.Category]CategoryStat

// Get returns the stat for a category, zero if absent.
func (p Profile) Get(c bank.Category) CategoryStat {
	return p[c]
}

// Weights computes the weakness weight of every listed category.
func (p Profile) Weights(categories []bank.Category) map[bank.Category]float64 {
	out := make(map[bank.Category]float64, len(categories))
	for _, c := range categories {
		out[c] = WeaknessWeight(p[c])
	}
	return out
}

// Clone returns an independent copy.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// AnswerLike is anything that records a category and whether it was correct.
type AnswerLike interface {
	AnswerCategory() bank.Category
	IsCorrect() bool
}

// RecordAnswers folds answers into the profile, creating missing categories.
// This is the only path that mutates a profile.
func RecordAnswers[A AnswerLike](p Profile, answers []A) {
	for _, a := range answers {
		s := p[a.AnswerCategory()]
		s.Total++
		if a.IsCorrect() {
			s.Correct++
		}
		p[a.AnswerCategory()] = s
	}
}

// DefaultBaseline is the seed profile used when neither the store nor the
// bank supplies one.
func DefaultBaseline() Profile {
	return Profile{
		"network":  {Correct: 6, Total: 10},
		"security": {Correct: 4, Total: 10},
		"hardware": {Correct: 7, Total: 10},
		"software": {Correct: 5, Total: 10},
		"cloud":    {Correct: 3, Total: 10},
	}
}

// BaselineFromBank converts a bank baseline, falling back to DefaultBaseline
// when the bank has none.
func BaselineFromBank(b *bank.Bank) Profile {
	if b == nil || len(b.Baseline) == 0 {
		return DefaultBaseline()
	}
	p := make(Profile, len(b.Baseline))
	for c, s := range b.Baseline {
		st := CategoryStat{Correct: s.Correct, Total: s.Total}
		if !st.Valid() {
			continue
		}
		p[c] = st
	}
	return p
}
