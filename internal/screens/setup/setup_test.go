package setup

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen/screentest"
	"github.com/abhisek/examiz/internal/screens/quiz"
	"github.com/abhisek/examiz/internal/session"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestSetupScreen_Defaults(t *testing.T) {
	s := New(screentest.Services(t))
	opts, err := s.Options()
	require.NoError(t, err)
	assert.Equal(t, session.Options{Mode: session.ModeExam, Focus: bank.FocusAll, Count: 4}, opts)
}

func TestSetupScreen_CycleFields(t *testing.T) {
	s := New(screentest.Services(t))

	s.Update(key(tea.KeyRight))
	s.Update(key(tea.KeyDown))
	s.Update(key(tea.KeyRight))
	s.Update(key(tea.KeyRight))

	opts, err := s.Options()
	require.NoError(t, err)
	assert.Equal(t, session.ModePractice, opts.Mode)
	assert.Equal(t, bank.Focus("sec"), opts.Focus, "focus order is smart, all, then categories")
	assert.Contains(t, s.View(100, 30), "Security")

	s.Update(key(tea.KeyLeft))
	s.Update(key(tea.KeyLeft))
	s.Update(key(tea.KeyLeft))
	opts, _ = s.Options()
	assert.Equal(t, bank.FocusSmart, opts.Focus)
}

func TestSetupScreen_InvalidCount(t *testing.T) {
	s := New(screentest.Services(t))
	s.count.SetValue("0")

	_, cmd := s.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, fieldCount, s.cursor)
	assert.Contains(t, s.View(100, 30), "between 1 and")
}

func TestSetupScreen_StartReplacesWithQuiz(t *testing.T) {
	s := New(screentest.Services(t))

	_, cmd := s.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &quiz.QuizScreen{}, msg.Screen)
}

func TestSetupScreen_EscPops(t *testing.T) {
	s := New(screentest.Services(t))
	_, cmd := s.Update(key(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}
