package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/logging"
	"github.com/abhisek/examiz/internal/profile"
	"github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/tutor"
	"github.com/abhisek/examiz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when they become active
// again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// StatsLoadedMsg carries freshly loaded or saved stats. The app uses it to
// refresh the header; screens may use it to refresh their own view.
type StatsLoadedMsg struct {
	Stats *profile.Stats
	Err   error
}

// Services bundles the dependencies screens share.
type Services struct {
	Bank   *bank.Bank
	Source session.QuestionSource
	Stats  store.StatsRepo

	// Events is nil when the event log is unavailable.
	Events store.EventRepo

	// Explainer is nil when no LLM provider is configured.
	Explainer *tutor.Explainer

	Logger   *logging.Logger
	Defaults session.Options
	Baseline profile.Profile

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Now returns the current time from Clock.
func (s *Services) Now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Log returns Logger, or a no-op logger when unset.
func (s *Services) Log() *logging.Logger {
	return logging.OrNop(s.Logger)
}
