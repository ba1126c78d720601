// Package screentest builds screen.Services backed by an in-memory store
// and a small fixed bank for screen tests.
package screentest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/logging"
	"github.com/abhisek/examiz/internal/profile"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/store"
)

// Now is the fixed clock used by Services.
var Now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// FixedSource serves bank questions in table order without shuffling, so
// tests know where the correct answer is.
type FixedSource struct {
	Bank *bank.Bank
}

func (f FixedSource) Build(count int, focus bank.Focus, _ profile.Profile) []bank.Question {
	pool := f.Bank.Questions
	if c, ok := focus.Category(); ok {
		pool = f.Bank.ByCategory(c)
	}
	out := make([]bank.Question, 0, count)
	for _, q := range pool {
		if len(out) == count {
			break
		}
		out = append(out, q.Clone())
	}
	return out
}

// Bank returns a two-category bank of four questions. The correct answer
// of question n (1-based) is choice n-1 modulo 4.
func Bank(t testing.TB) *bank.Bank {
	t.Helper()
	cats := []bank.CategoryInfo{
		{Key: "net", Label: "Networking"},
		{Key: "sec", Label: "Security"},
	}
	var qs []bank.Question
	for i := range 4 {
		cat := bank.Category("net")
		if i >= 2 {
			cat = "sec"
		}
		qs = append(qs, bank.Question{
			ID:          fmt.Sprintf("q%d", i+1),
			Category:    cat,
			Difficulty:  bank.DifficultyEasy,
			Text:        fmt.Sprintf("Question %d?", i+1),
			Choices:     []string{"alpha", "beta", "gamma", "delta"},
			AnswerIndex: i % 4,
			Explanation: fmt.Sprintf("Because %d.", i+1),
		})
	}
	b, err := bank.New("1.0.0", cats, nil, qs)
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	return b
}

// Services returns services wired to a fresh in-memory store.
func Services(t testing.TB) *screen.Services {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), logging.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	b := Bank(t)
	return &screen.Services{
		Bank:     b,
		Source:   FixedSource{Bank: b},
		Stats:    st.StatsRepo(),
		Events:   st.EventRepo(),
		Logger:   logging.Nop(),
		Defaults: session.Options{Mode: session.ModeExam, Focus: bank.FocusAll, Count: 4},
		Baseline: profile.BaselineFromBank(b),
		Clock:    func() time.Time { return Now },
	}
}
