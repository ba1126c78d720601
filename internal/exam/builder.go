// Package exam assembles personalized question sets from a bank.
package exam

import (
	"math/rand/v2"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/logging"
	"github.com/abhisek/examiz/internal/profile"
	"github.com/abhisek/examiz/internal/randutil"
)

// Picker draws weighted items without replacement.
type Picker interface {
	Draw(r *rand.Rand) (bank.Question, bool)
}

// Builder draws exams from a bank.
type Builder struct {
	Bank   *bank.Bank
	Rand   *rand.Rand
	Logger *logging.Logger

	// NewPicker overrides the sampler; nil uses randutil.NewSampler.
	NewPicker func(pool []bank.Question, weight func(bank.Question) float64) Picker
}

// NewBuilder returns a Builder with a time-seeded source.
func NewBuilder(b *bank.Bank, logger *logging.Logger) *Builder {
	return &Builder{Bank: b, Rand: randutil.NewTimeSeeded(), Logger: logging.OrNop(logger)}
}

// Build draws up to count questions for the given focus, biased toward the
// categories where prof is weakest when focus is smart. Each returned
// question has its choices shuffled. A bank smaller than count yields every
// question.
func (bd *Builder) Build(count int, focus bank.Focus, prof profile.Profile) []bank.Question {
	if count <= 0 || bd.Bank == nil || bd.Bank.Len() == 0 {
		return []bank.Question{}
	}
	log := logging.OrNop(bd.Logger)

	pool := bd.Bank.Questions
	if cat, ok := focus.Category(); ok {
		pool = bd.Bank.ByCategory(cat)
	}
	if len(pool) < count && len(pool) < bd.Bank.Len() {
		// A narrow category must never block an exam.
		log.Info("focus pool too small, widening to full bank",
			"focus", string(focus), "pool", len(pool), "count", count)
		pool = bd.Bank.Questions
	}

	weight := func(bank.Question) float64 { return 1 }
	if focus == bank.FocusSmart {
		weights := prof.Weights(bd.Bank.CategoryKeys())
		weight = func(q bank.Question) float64 { return weights[q.Category] }
	}

	var picker Picker
	if bd.NewPicker != nil {
		picker = bd.NewPicker(pool, weight)
	} else {
		picker = randutil.NewSampler(pool, weight)
	}

	picked := make([]bank.Question, 0, min(count, len(pool)))
	seen := make(map[string]bool, cap(picked))
	for draws := 0; len(picked) < count && draws < maxDraws(len(pool)); draws++ {
		q, ok := picker.Draw(bd.Rand)
		if !ok {
			break
		}
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		picked = append(picked, q)
	}

	// Fill from the pool in bank order if the picker stopped early.
	for _, q := range pool {
		if len(picked) >= count {
			break
		}
		if !seen[q.ID] {
			seen[q.ID] = true
			picked = append(picked, q)
		}
	}

	out := make([]bank.Question, len(picked))
	for i, q := range picked {
		out[i] = ShuffleChoices(bd.Rand, q)
	}
	return out
}

// maxDraws caps picker calls so a misbehaving picker cannot loop forever.
func maxDraws(pool int) int {
	return pool*4 + 16
}

// ShuffleChoices returns a copy of q with its choices permuted and
// AnswerIndex remapped so the correct text is unchanged. q is not modified.
func ShuffleChoices(r *rand.Rand, q bank.Question) bank.Question {
	out := q.Clone()
	perm := randutil.Perm(r, len(q.Choices))
	for newPos, oldPos := range perm {
		out.Choices[newPos] = q.Choices[oldPos]
		if oldPos == q.AnswerIndex {
			out.AnswerIndex = newPos
		}
	}
	return out
}
