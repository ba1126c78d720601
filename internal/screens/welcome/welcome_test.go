package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func containsBanner(s string) bool {
	return strings.Contains(s, "exam day")
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()

	if containsBanner(w.View(80, 24)) {
		t.Error("banner should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != phase1End {
		t.Errorf("expected elapsed %v, got %v", phase1End, w.elapsed)
	}
	if containsBanner(w.View(80, 24)) {
		t.Error("banner should not be visible before phase 2 ends")
	}

	sendTicks(w, 10)
	if !containsBanner(w.View(80, 24)) {
		t.Error("banner should be visible after phase 2")
	}
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestAutoTransitionAtEnd(t *testing.T) {
	w, callCount := newTestWelcome()

	cmd := sendTicks(w, int(totalDur/tickInterval))
	if cmd == nil {
		t.Fatal("expected transition when the animation ends")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen == nil {
		t.Fatalf("expected ReplaceScreenMsg with a screen, got %T", msg)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed %v, got %v", totalDur, w.elapsed)
	}

	if cmd := sendTicks(w, 3); cmd != nil {
		t.Error("ticks after the transition should stop")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func TestHighlightSettlesOnAnswer(t *testing.T) {
	w, _ := newTestWelcome()
	if got := w.lit(); got != -1 {
		t.Errorf("expected no highlight at start, got %d", got)
	}

	seen := map[int]bool{}
	for range int((phase2End - phase1End) / tickInterval) {
		sendTicks(w, 1)
		seen[w.lit()] = true
	}
	if len(seen) < 2 {
		t.Errorf("highlight should cycle while shuffling, saw %v", seen)
	}

	sendTicks(w, 5)
	if got := w.lit(); got != 2 {
		t.Errorf("expected highlight to settle on C, got %d", got)
	}
}
