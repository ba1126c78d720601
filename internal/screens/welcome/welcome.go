// Package welcome shows the startup splash.
package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const cardArt = `╭─────────────────────────╮
│  Q.  Which one is it?   │
│                         │
%s
╰─────────────────────────╯`

var choiceLabels = []string{"A", "B", "C", "D"}

// choiceRow renders the four choice boxes with one of them lit.
func choiceRow(lit int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	on := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	cells := make([]string, len(choiceLabels))
	for i, l := range choiceLabels {
		if i == lit {
			cells[i] = on.Render("[" + l + "]")
		} else {
			cells[i] = dim.Render(" " + l + " ")
		}
	}
	return "│    " + strings.Join(cells, "  ") + "   │"
}

type tickMsg time.Time

// WelcomeScreen shows a splash animation, then hands over to the screen
// produced by homeFactory on a keypress or when the animation ends.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.tickCount++
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// lit picks the highlighted choice: it cycles while the card is shuffling,
// then settles on the answer.
func (w *WelcomeScreen) lit() int {
	switch {
	case w.elapsed < phase1End:
		return -1
	case w.elapsed < phase2End:
		return w.tickCount % len(choiceLabels)
	}
	return 2
}

func (w *WelcomeScreen) View(width, height int) string {
	card := fmt.Sprintf(cardArt, choiceRow(w.lit()))
	sections := []string{lipgloss.NewStyle().Foreground(theme.Primary).Render(card)}

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Sharpen up before exam day."),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, sections...))
}
