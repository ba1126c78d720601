package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/profile"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/screen/screentest"
	"github.com/abhisek/examiz/internal/screens/home"
	"github.com/abhisek/examiz/internal/screens/quiz"
	"github.com/abhisek/examiz/internal/screens/welcome"
	"github.com/abhisek/examiz/internal/session"
)

func TestNewAppModel_Roots(t *testing.T) {
	svc := screentest.Services(t)

	m := newAppModel(svc, Options{})
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())

	m = newAppModel(svc, Options{Splash: true})
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())

	start := session.Options{Mode: session.ModePractice, Focus: bank.FocusAll, Count: 2}
	m = newAppModel(svc, Options{Splash: true, Start: &start})
	assert.IsType(t, &home.HomeScreen{}, m.router.Active(), "play skips the splash")
}

func TestAppModel_InitPushesQuiz(t *testing.T) {
	svc := screentest.Services(t)
	start := session.Options{Mode: session.ModeExam, Focus: bank.FocusAll, Count: 2}
	m := newAppModel(svc, Options{Start: &start})

	batch, ok := m.Init()().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)

	push, ok := batch[1]().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &quiz.QuizScreen{}, push.Screen)
}

func TestAppModel_StatusFromStats(t *testing.T) {
	m := newAppModel(screentest.Services(t), Options{})

	stats := profile.DefaultStats(nil)
	updated, _ := m.Update(screen.StatsLoadedMsg{Stats: stats})
	assert.Equal(t, "Best --  ", updated.(AppModel).status)

	stats.RecordBest(3, 5)
	updated, _ = updated.Update(screen.StatsLoadedMsg{Stats: stats})
	assert.Equal(t, "Best 3/5  ", updated.(AppModel).status)
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(screentest.Services(t), Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppModel_FooterHints(t *testing.T) {
	m := newAppModel(screentest.Services(t), Options{})

	hints := m.footerHints(m.router.Active())
	require.NotEmpty(t, hints)
	assert.Equal(t, "Navigate", hints[0].Description)
	assert.Equal(t, "Ctrl+C", hints[len(hints)-1].Key)

	m = newAppModel(screentest.Services(t), Options{Splash: true})
	hints = m.footerHints(m.router.Active())
	assert.Len(t, hints, 1, "splash has no hints of its own")
}
