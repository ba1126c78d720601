// Package app hosts the root Bubble Tea model.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/screens/home"
	"github.com/abhisek/examiz/internal/screens/quiz"
	"github.com/abhisek/examiz/internal/screens/welcome"
	"github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/ui/layout"
)

// Options controls how the TUI starts.
type Options struct {
	// Splash shows the welcome animation before the home menu.
	Splash bool

	// Start, when set, opens a session with these options on top of the
	// home menu.
	Start *session.Options
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  *session.Options
	svc    *screen.Services
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at the home screen.
func newAppModel(svc *screen.Services, opts Options) AppModel {
	var root screen.Screen = home.New(svc)
	if opts.Splash && opts.Start == nil {
		root = welcome.New(func() screen.Screen { return home.New(svc) })
	}
	return AppModel{
		router: router.New(root, svc.Log()),
		start:  opts.Start,
		svc:    svc,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.start != nil {
		next := quiz.New(m.svc, *m.start)
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: next} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Screens own esc so they can confirm before leaving.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.StatsLoadedMsg:
		if msg.Err == nil && msg.Stats != nil {
			m.status = statusLine(msg)
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func statusLine(msg screen.StatsLoadedMsg) string {
	best := msg.Stats.Best
	if best == nil {
		return "Best --  "
	}
	return fmt.Sprintf("Best %d/%d  ", best.Score, best.Total)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(svc *screen.Services, opts Options) error {
	p := tea.NewProgram(newAppModel(svc, opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
