package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examiz/internal/profile"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/screens/history"
	"github.com/abhisek/examiz/internal/screens/reset"
	"github.com/abhisek/examiz/internal/screens/setup"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// HomeScreen is the main menu.
type HomeScreen struct {
	svc    *screen.Services
	menu   components.Menu
	stats  *profile.Stats
	errMsg string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ screen.Resumer         = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(svc *screen.Services) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START SESSION", Hotkey: "s", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(svc)}
			}
		}},
		{Label: "HISTORY", Hotkey: "h", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(svc)}
			}
		}},
		{Label: "RESET STATS", Hotkey: "r", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: reset.New(svc)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		svc:  svc,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads stats after a session, reset or history visit.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	svc := h.svc
	return func() tea.Msg {
		stats, err := svc.Stats.Load(context.Background(), svc.Baseline)
		return screen.StatsLoadedMsg{Stats: stats, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StatsLoadedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			h.svc.Log().Warn("load stats", "error", msg.Err)
			return h, nil
		}
		h.errMsg = ""
		h.stats = msg.Stats
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "esc" || msg.String() == "q" {
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.stats), cw))
	}
	sections = append(sections, renderStatsBar(h.summarize(), cw, compact))
	if h.errMsg != "" {
		sections = append(sections, renderError(h.errMsg, cw))
	}
	sections = append(sections, centered(h.menu.View(buttonWidth), cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "S/H/R", Description: "Shortcut"},
		{Key: "Q", Description: "Quit"},
	}
}

// statsSummary is what the stats bar shows.
type statsSummary struct {
	loaded   bool
	best     *profile.Best
	attempts int
	weakest  string
}

func (h *HomeScreen) summarize() statsSummary {
	if h.stats == nil {
		return statsSummary{}
	}
	out := statsSummary{
		loaded:   true,
		best:     h.stats.Best,
		attempts: len(h.stats.History),
	}
	if h.svc.Bank == nil {
		return out
	}

	// Weakest is the category with the highest sampling weight, i.e. the
	// one smart focus would favour next.
	weights := h.stats.PerCategory.Weights(h.svc.Bank.CategoryKeys())
	top := -1.0
	for _, c := range h.svc.Bank.CategoryKeys() {
		if w := weights[c]; w > top {
			top = w
			out.weakest = h.svc.Bank.Label(c)
		}
	}
	return out
}
