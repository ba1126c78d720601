package quiz

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/profile"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/screen/screentest"
	"github.com/abhisek/examiz/internal/screens/results"
	sess "github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// started runs Init and feeds its message back.
func started(t *testing.T, svc *screen.Services, mode sess.Mode) *QuizScreen {
	t.Helper()
	s := New(svc, sess.Options{Mode: mode, Focus: bank.FocusAll, Count: 4})
	msg := s.Init()()
	_, _ = s.Update(msg)
	require.Empty(t, s.errMsg)
	require.NotNil(t, s.state)
	return s
}

func press(s *QuizScreen, msg tea.Msg) tea.Cmd {
	_, cmd := s.Update(msg)
	return cmd
}

// collect runs cmd and flattens batches into messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func TestQuizScreen_InitStartsSession(t *testing.T) {
	svc := screentest.Services(t)
	s := started(t, svc, sess.ModeExam)

	assert.Equal(t, 4, s.state.Total)
	assert.Equal(t, "Exam", s.Title())
	assert.False(t, s.choices.Locked)

	got, err := svc.Events.QuerySessionSummaries(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, got, "start event alone is not a finished session")
}

func TestQuizScreen_InitNoQuestions(t *testing.T) {
	svc := screentest.Services(t)
	s := New(svc, sess.Options{Mode: sess.ModeExam, Focus: bank.FocusAll, Count: 0})
	_, _ = s.Update(s.Init()())

	assert.Equal(t, ErrNoQuestions.Error(), s.errMsg)
	assert.NotEmpty(t, s.View(80, 24))

	msgs := collect(press(s, keyPress('x')))
	require.Len(t, msgs, 1)
	assert.IsType(t, router.PopScreenMsg{}, msgs[0])
}

func TestQuizScreen_ExamRequiresAnswer(t *testing.T) {
	s := started(t, screentest.Services(t), sess.ModeExam)

	press(s, specialKey(tea.KeyRight))
	assert.Equal(t, 0, s.state.Index, "next is blocked until answered")

	cmd := press(s, keyPress('3'))
	require.NotNil(t, cmd, "answer is persisted in the background")
	assert.True(t, s.choices.Locked)
	assert.Equal(t, 2, s.choices.Chosen)
	assert.Equal(t, -1, s.choices.Correct, "exam mode hides the verdict")

	press(s, keyPress('1'))
	a, _ := s.state.AnswerFor("q1")
	assert.Equal(t, 2, a.ChosenIndex, "answers are final")

	press(s, specialKey(tea.KeyEnter))
	assert.Equal(t, 1, s.state.Index)
}

func TestQuizScreen_AnswerEventRecorded(t *testing.T) {
	svc := screentest.Services(t)
	s := started(t, svc, sess.ModeExam)

	msgs := collect(press(s, keyPress('1')))
	require.Len(t, msgs, 1)
	assert.Equal(t, persistAnswerMsg{}, msgs[0])

	acc, err := svc.Events.CategoryAccuracy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []store.CategoryAccuracyRecord{{Category: "net", Correct: 1, Total: 1}}, acc)
}

func TestQuizScreen_PracticeShowsFeedback(t *testing.T) {
	s := started(t, screentest.Services(t), sess.ModePractice)
	assert.Equal(t, "Practice", s.Title())

	press(s, specialKey(tea.KeyRight))
	assert.Equal(t, 1, s.state.Index, "practice allows skipping")

	press(s, keyPress('1'))
	assert.Equal(t, 1, s.choices.Correct)
	assert.Contains(t, s.View(100, 30), "Not quite")
	assert.Contains(t, s.View(100, 30), "Because 2.")
}

func TestQuizScreen_CursorAndEnterSubmit(t *testing.T) {
	s := started(t, screentest.Services(t), sess.ModeExam)

	press(s, specialKey(tea.KeyDown))
	press(s, specialKey(tea.KeyDown))
	assert.Equal(t, 2, s.choices.Cursor)

	press(s, specialKey(tea.KeyEnter))
	a, ok := s.state.AnswerFor("q1")
	require.True(t, ok)
	assert.Equal(t, 2, a.ChosenIndex)
}

func TestQuizScreen_FinishSavesStats(t *testing.T) {
	svc := screentest.Services(t)
	s := started(t, svc, sess.ModeExam)

	for i, key := range []rune{'1', '2', '3', '4'} {
		press(s, keyPress(key))
		cmd := press(s, specialKey(tea.KeyEnter))
		if i < 3 {
			assert.Nil(t, cmd)
			continue
		}
		require.NotNil(t, cmd)
		assert.True(t, s.saving)

		msgs := collect(cmd)
		require.Len(t, msgs, 1)
		saved, ok := msgs[0].(sessionSavedMsg)
		require.True(t, ok)
		require.NoError(t, saved.Err)

		var replaced bool
		for _, m := range collect(press(s, saved)) {
			switch m := m.(type) {
			case router.ReplaceScreenMsg:
				assert.IsType(t, &results.ResultsScreen{}, m.Screen)
				replaced = true
			case screen.StatsLoadedMsg:
				assert.Len(t, m.Stats.History, 1)
			}
		}
		assert.True(t, replaced)
	}

	stats, err := svc.Stats.Load(context.Background(), svc.Baseline)
	require.NoError(t, err)
	require.NotNil(t, stats.Best)
	assert.Equal(t, 4, stats.Best.Score)
	require.Len(t, stats.History, 1)
	assert.Equal(t, profile.CategoryStat{Correct: 2, Total: 2}, stats.PerCategory.Get("net"))

	got, err := svc.Events.QuerySessionSummaries(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].CorrectAnswers)
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	svc := screentest.Services(t)
	s := started(t, svc, sess.ModeExam)
	press(s, keyPress('1'))

	press(s, specialKey(tea.KeyEscape))
	assert.True(t, s.confirmQuit)
	assert.Len(t, s.KeyHints(), 2)

	press(s, keyPress('n'))
	assert.False(t, s.confirmQuit)

	press(s, specialKey(tea.KeyEscape))
	msgs := collect(press(s, keyPress('y')))
	require.Len(t, msgs, 1)
	assert.IsType(t, router.PopScreenMsg{}, msgs[0])

	stats, err := svc.Stats.Load(context.Background(), svc.Baseline)
	require.NoError(t, err)
	assert.Empty(t, stats.History, "abandoned sessions are not recorded")
}

func TestQuizScreen_BackNavigation(t *testing.T) {
	s := started(t, screentest.Services(t), sess.ModePractice)

	press(s, specialKey(tea.KeyLeft))
	assert.Equal(t, 0, s.state.Index)

	press(s, keyPress('1'))
	press(s, specialKey(tea.KeyRight))
	press(s, specialKey(tea.KeyLeft))
	assert.Equal(t, 0, s.state.Index)
	assert.True(t, s.choices.Locked, "revisited answers stay locked")
	assert.Equal(t, 0, s.choices.Chosen)
}
