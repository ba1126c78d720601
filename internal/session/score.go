package session

import (
	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/profile"
)

// Score counts correct answers, clamped to [0, total].
func Score(answers []Answer, total int) int {
	n := 0
	for _, a := range answers {
		if a.Correct {
			n++
		}
	}
	return max(0, min(n, total))
}

// Breakdown tallies this session's answers per category. Every category in
// categories is present, with zero counts if unanswered.
func Breakdown(answers []Answer, categories []bank.Category) map[bank.Category]profile.CategoryStat {
	out := make(map[bank.Category]profile.CategoryStat, len(categories))
	for _, c := range categories {
		out[c] = profile.CategoryStat{}
	}
	for _, a := range answers {
		st := out[a.Category]
		st.Total++
		if a.Correct {
			st.Correct++
		}
		out[a.Category] = st
	}
	return out
}

// CategoryResult is one row of the results breakdown.
type CategoryResult struct {
	Category bank.Category
	Label    string
	Stat     profile.CategoryStat
}

// Summary holds the data displayed on the results screen.
type Summary struct {
	Score     int
	Total     int
	Answered  int
	Accuracy  float64
	Mode      Mode
	Focus     bank.Focus
	NewBest   bool
	Best      *profile.Best
	Breakdown []CategoryResult
}

// BuildSummary creates a Summary from a finished session. Breakdown rows
// follow the bank's category order and skip categories with no questions
// in this session.
func BuildSummary(s *Session, stats *profile.Stats, newBest bool) *Summary {
	answers := s.Answers()
	sum := &Summary{
		Score:    Score(answers, s.Total),
		Total:    s.Total,
		Answered: len(answers),
		Mode:     s.Mode,
		Focus:    s.Focus,
		NewBest:  newBest,
	}
	if s.Total > 0 {
		sum.Accuracy = float64(sum.Score) / float64(s.Total)
	}
	if stats != nil && stats.Best != nil {
		b := *stats.Best
		sum.Best = &b
	}

	cats := s.Categories()
	if len(cats) == 0 {
		cats = sessionCategories(s)
	}
	bd := Breakdown(answers, cats)
	for _, c := range cats {
		st := bd[c]
		if st.Total == 0 && !hasCategory(s.Questions, c) {
			continue
		}
		sum.Breakdown = append(sum.Breakdown, CategoryResult{Category: c, Label: s.Label(c), Stat: st})
	}
	return sum
}

func sessionCategories(s *Session) []bank.Category {
	var out []bank.Category
	seen := map[bank.Category]bool{}
	for _, q := range s.Questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}

func hasCategory(qs []bank.Question, c bank.Category) bool {
	for _, q := range qs {
		if q.Category == c {
			return true
		}
	}
	return false
}
