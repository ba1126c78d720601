// Package quiz is the screen that serves questions for one session.
package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examiz/internal/profile"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/screens/results"
	sess "github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
)

// ErrNoQuestions is reported when the bank has nothing to draw from.
var ErrNoQuestions = errors.New("no questions available for this focus")

// QuizScreen implements screen.Screen for the active session.
type QuizScreen struct {
	svc   *screen.Services
	opts  sess.Options
	state *sess.Session
	stats *profile.Stats

	choices     components.ChoiceList
	shownAt     time.Time
	confirmQuit bool
	saving      bool
	errMsg      string
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
)

// New creates a quiz screen that starts a session with opts on Init.
func New(svc *screen.Services, opts sess.Options) *QuizScreen {
	return &QuizScreen{svc: svc, opts: opts}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.initSession()
}

func (s *QuizScreen) Title() string {
	if s.state != nil && s.state.Mode == sess.ModePractice {
		return "Practice"
	}
	return "Exam"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return nil
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon"},
			{Key: "N", Description: "Keep going"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "1-9", Description: "Answer"},
		{Key: "←", Description: "Back"},
	}
	if s.state.CanAdvance() {
		hints = append(hints, layout.KeyHint{Key: "→", Description: "Next"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

// initSession loads stats and draws the questions.
func (s *QuizScreen) initSession() tea.Cmd {
	svc, opts := s.svc, s.opts
	return func() tea.Msg {
		ctx := context.Background()

		stats, err := svc.Stats.Load(ctx, svc.Baseline)
		if err != nil {
			return sessionInitMsg{Err: err}
		}

		state := sess.Start(opts, svc.Source, svc.Bank, stats.PerCategory, svc.Now())
		if state.Total == 0 {
			return sessionInitMsg{Err: ErrNoQuestions}
		}

		if svc.Events != nil {
			if err := svc.Events.AppendSessionEvent(ctx, store.SessionEventData{
				SessionID:     state.ID,
				Action:        "start",
				Mode:          string(state.Mode),
				Focus:         string(state.Focus),
				QuestionCount: state.Total,
			}); err != nil {
				svc.Log().Warn("record session start", "session", state.ID, "error", err)
			}
		}

		svc.Log().Info("session started",
			"session", state.ID, "mode", state.Mode, "focus", state.Focus,
			"requested", state.Requested, "drawn", state.Total)
		return sessionInitMsg{Session: state, Stats: stats}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.state = msg.Session
		s.stats = msg.Stats
		s.syncChoices()
		return s, nil

	case persistAnswerMsg:
		if msg.Err != nil {
			s.svc.Log().Warn("record answer", "error", msg.Err)
		}
		return s, nil

	case sessionSavedMsg:
		return s.handleSaved(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil || s.saving {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.svc.Log().Info("session abandoned", "session", s.state.ID, "answered", s.state.Answered())
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "left", "h", "p":
		return s.navigate(sess.Back)
	case "right", "l", "n":
		return s.navigate(sess.Next)
	case "enter":
		if !s.choices.Locked {
			return s.submit(s.choices.Cursor)
		}
		return s.navigate(sess.Next)
	}

	if i, ok := s.choices.KeyIndex(key); ok {
		return s.submit(i)
	}

	s.choices = s.choices.Update(msg)
	return s, nil
}

func (s *QuizScreen) submit(choice int) (screen.Screen, tea.Cmd) {
	v, _ := s.state.Current()
	a, ok := s.state.SubmitAnswer(choice)
	if !ok {
		return s, nil
	}
	s.syncChoices()

	svc := s.svc
	if svc.Events == nil {
		return s, nil
	}
	data := store.AnswerEventData{
		SessionID:   s.state.ID,
		QuestionID:  a.QuestionID,
		Category:    string(a.Category),
		Difficulty:  string(v.Difficulty),
		ChosenIndex: a.ChosenIndex,
		Correct:     a.Correct,
		TimeMs:      svc.Now().Sub(s.shownAt).Milliseconds(),
	}
	return s, func() tea.Msg {
		return persistAnswerMsg{Err: svc.Events.AppendAnswerEvent(context.Background(), data)}
	}
}

func (s *QuizScreen) navigate(dir sess.Direction) (screen.Screen, tea.Cmd) {
	t := s.state.Advance(dir)
	if !t.Moved {
		return s, nil
	}
	if t.Finished {
		return s.finish()
	}
	s.syncChoices()
	return s, nil
}

// finish folds the session into stats on the update goroutine, then
// persists a copy in the background.
func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	attempt, err := s.state.Finalize(s.stats, s.svc.Now())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.saving = true

	svc := s.svc
	stats := s.stats.Clone()
	end := store.SessionEventData{
		SessionID:      s.state.ID,
		Action:         "end",
		Mode:           attempt.Mode,
		Focus:          attempt.Focus,
		QuestionCount:  attempt.Total,
		CorrectAnswers: attempt.Score,
		DurationSecs:   int(attempt.Timestamp.Sub(s.state.StartTime).Seconds()),
	}
	svc.Log().Info("session finished",
		"session", s.state.ID, "score", attempt.Score, "total", attempt.Total,
		"new_best", s.state.NewBest())

	return s, func() tea.Msg {
		ctx := context.Background()
		if svc.Events != nil {
			if err := svc.Events.AppendSessionEvent(ctx, end); err != nil {
				svc.Log().Warn("record session end", "session", end.SessionID, "error", err)
			}
		}
		return sessionSavedMsg{Stats: stats, Err: svc.Stats.Save(ctx, stats)}
	}
}

func (s *QuizScreen) handleSaved(msg sessionSavedMsg) (screen.Screen, tea.Cmd) {
	s.saving = false
	if msg.Err != nil {
		s.svc.Log().Error("save stats", "session", s.state.ID, "error", msg.Err)
	}

	summary := sess.BuildSummary(s.state, s.stats, s.state.NewBest())
	next := results.New(s.svc, s.state, summary, msg.Err)
	return s, tea.Batch(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
		func() tea.Msg { return screen.StatsLoadedMsg{Stats: msg.Stats} },
	)
}

// syncChoices rebuilds the choice list from the current question.
func (s *QuizScreen) syncChoices() {
	v, ok := s.state.Current()
	if !ok {
		return
	}
	if v.Locked {
		s.choices = components.ChoiceList{
			Options: v.Choices,
			Cursor:  v.ChosenIndex,
			Locked:  true,
			Chosen:  v.ChosenIndex,
			Correct: v.CorrectIndex,
		}
		return
	}
	s.choices = components.NewChoiceList(v.Choices)
	s.shownAt = s.svc.Now()
}
