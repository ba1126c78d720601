// Package router keeps the stack of TUI screens and applies navigation
// messages to it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examiz/internal/logging"
	"github.com/abhisek/examiz/internal/screen"
)

// Navigation messages. Screens return them from commands; the router
// consumes them before anything reaches the active screen.
type (
	// PushScreenMsg opens Screen on top of the current one.
	PushScreenMsg struct{ Screen screen.Screen }
	// PopScreenMsg closes the active screen.
	PopScreenMsg struct{}
	// ReplaceScreenMsg swaps the active screen at the same depth.
	ReplaceScreenMsg struct{ Screen screen.Screen }
	// PopToRootMsg closes every screen above the root.
	PopToRootMsg struct{}
)

// Router is a non-empty stack of screens. The root is never popped.
type Router struct {
	stack []screen.Screen
	log   *logging.Logger
}

// New returns a router rooted at root. logger may be nil.
func New(root screen.Screen, logger *logging.Logger) *Router {
	return &Router{stack: []screen.Screen{root}, log: logging.OrNop(logger)}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	r.log.Debug("screen pushed", "screen", s.Title(), "depth", len(r.stack))
	return s.Init()
}

// Pop closes the active screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	return r.truncate(len(r.stack) - 1)
}

// PopToRoot closes everything above the root.
func (r *Router) PopToRoot() tea.Cmd {
	return r.truncate(1)
}

// truncate shrinks the stack to depth n (at least 1) and resumes the
// screen that becomes active.
func (r *Router) truncate(n int) tea.Cmd {
	n = max(n, 1)
	if n >= len(r.stack) {
		return nil
	}
	clear(r.stack[n:])
	r.stack = r.stack[:n]

	top := r.Active()
	r.log.Debug("screen resumed", "screen", top.Title(), "depth", n)
	if res, ok := top.(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Replace swaps the active screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	r.log.Debug("screen replaced", "screen", s.Title(), "depth", len(r.stack))
	return s.Init()
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of open screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards anything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
