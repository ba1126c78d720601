package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examiz/internal/screen"
)

// stubScreen records lifecycle calls.
type stubScreen struct {
	title   string
	inits   int
	resumes int
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return "view:" + s.title }
func (s *stubScreen) Title() string        { return s.title }

// resumingScreen also implements screen.Resumer.
type resumingScreen struct{ stubScreen }

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumes++
	return nil
}

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func TestNavigationMessages(t *testing.T) {
	root := &resumingScreen{stubScreen{title: "home"}}
	setup := &stubScreen{title: "setup"}
	quiz := &stubScreen{title: "quiz"}
	results := &stubScreen{title: "results"}
	review := &stubScreen{title: "review"}

	r := New(root, nil)

	r.Update(PushScreenMsg{Screen: setup})
	r.Update(ReplaceScreenMsg{Screen: quiz})
	assert.Equal(t, []string{"home", "quiz"}, titles(r))
	assert.Equal(t, 1, setup.inits)
	assert.Equal(t, 1, quiz.inits)

	r.Update(ReplaceScreenMsg{Screen: results})
	r.Update(PushScreenMsg{Screen: review})
	assert.Equal(t, []string{"home", "results", "review"}, titles(r))
	assert.Equal(t, "view:review", r.View(80, 24))

	r.Update(PopScreenMsg{})
	assert.Equal(t, "results", r.Active().Title())
	assert.Zero(t, root.resumes, "only the exposed screen is resumed")

	r.Update(PopToRootMsg{})
	assert.Equal(t, []string{"home"}, titles(r))
	assert.Equal(t, 1, root.resumes)
}

func TestRootIsNeverPopped(t *testing.T) {
	root := &resumingScreen{stubScreen{title: "home"}}
	r := New(root, nil)

	assert.Nil(t, r.Pop())
	assert.Nil(t, r.PopToRoot())
	assert.Equal(t, 1, r.Depth())
	assert.Zero(t, root.resumes)
}

func TestPopResumesRoot(t *testing.T) {
	root := &resumingScreen{stubScreen{title: "home"}}
	r := New(root, nil)
	r.Push(&stubScreen{title: "history"})
	r.Pop()
	assert.Equal(t, 1, root.resumes)
}

func TestOtherMessagesReachActiveScreen(t *testing.T) {
	root := &stubScreen{title: "home"}
	top := &stubScreen{title: "quiz"}
	r := New(root, nil)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Len(t, top.got, 1)
	assert.Empty(t, root.got)
}
