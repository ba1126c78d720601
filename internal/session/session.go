package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/profile"
)

var (
	// ErrNotFinished is returned by Finalize before the last question is passed.
	ErrNotFinished = errors.New("session not finished")
	// ErrAlreadyFinalized is returned by a second Finalize call.
	ErrAlreadyFinalized = errors.New("session already finalized")
)

// QuestionSource draws the questions for a new session.
type QuestionSource interface {
	Build(count int, focus bank.Focus, prof profile.Profile) []bank.Question
}

// Start draws questions and returns a session positioned on the first one.
// The bank supplies category labels for presentation; it may be nil.
func Start(opts Options, src QuestionSource, b *bank.Bank, prof profile.Profile, now time.Time) *Session {
	if opts.Mode == "" {
		opts.Mode = ModeExam
	}
	if opts.Focus == "" {
		opts.Focus = bank.FocusSmart
	}

	s := &Session{
		ID:        uuid.NewString(),
		Mode:      opts.Mode,
		Focus:     opts.Focus,
		Requested: opts.Count,
		Phase:     PhaseBuilding,
		answers:   make(map[string]Answer),
	}
	if b != nil {
		s.labels = b.Label
		s.cats = b.CategoryKeys()
	}

	s.Questions = src.Build(opts.Count, opts.Focus, prof)
	s.Total = len(s.Questions)
	s.StartTime = now
	s.Phase = PhaseInProgress
	if s.Total == 0 {
		s.Phase = PhaseResults
	}
	return s
}

// current returns the question at Index.
func (s *Session) current() (bank.Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return bank.Question{}, false
	}
	return s.Questions[s.Index], true
}

// SubmitAnswer records choice for the current question.
// It is a no-op returning false when the session is not in progress, the
// question already has an answer, or the choice is out of range.
func (s *Session) SubmitAnswer(choice int) (Answer, bool) {
	if s.Phase != PhaseInProgress {
		return Answer{}, false
	}
	q, ok := s.current()
	if !ok {
		return Answer{}, false
	}
	if _, dup := s.answers[q.ID]; dup {
		return Answer{}, false
	}
	if choice < 0 || choice >= len(q.Choices) {
		return Answer{}, false
	}

	a := Answer{
		QuestionID:  q.ID,
		ChosenIndex: choice,
		Correct:     choice == q.AnswerIndex,
		Category:    q.Category,
	}
	s.answers[q.ID] = a
	s.order = append(s.order, q.ID)
	return a, true
}

// Direction is a navigation request.
type Direction int

const (
	Back Direction = iota
	Next
)

// Transition describes the effect of an Advance call.
type Transition struct {
	// Moved is true if the index or phase changed.
	Moved bool
	// Finished is true if this call moved past the last question.
	Finished bool
	// Index is the position after the call.
	Index int
}

// Advance moves between questions. Back stops at the first question. In exam
// mode Next requires the current question to be answered. Moving Next from
// the last question ends the session.
func (s *Session) Advance(dir Direction) Transition {
	if s.Phase != PhaseInProgress {
		return Transition{Index: s.Index}
	}

	switch dir {
	case Back:
		if s.Index == 0 {
			return Transition{Index: s.Index}
		}
		s.Index--
		return Transition{Moved: true, Index: s.Index}

	case Next:
		q, ok := s.current()
		if !ok {
			return Transition{Index: s.Index}
		}
		if _, answered := s.answers[q.ID]; s.Mode == ModeExam && !answered {
			return Transition{Index: s.Index}
		}
		if s.Index >= s.Total-1 {
			s.Phase = PhaseResults
			return Transition{Moved: true, Finished: true, Index: s.Index}
		}
		s.Index++
		if s.Index > s.highWater {
			s.highWater = s.Index
		}
		return Transition{Moved: true, Index: s.Index}
	}
	return Transition{Index: s.Index}
}

// CanAdvance reports whether Next would move in the current state.
func (s *Session) CanAdvance() bool {
	if s.Phase != PhaseInProgress {
		return false
	}
	q, ok := s.current()
	if !ok {
		return false
	}
	_, answered := s.answers[q.ID]
	return s.Mode == ModePractice || answered
}

// QuestionView is the presentation projection of the current question.
type QuestionView struct {
	Number        int // 1-based
	Total         int
	ID            string
	CategoryLabel string
	Difficulty    bank.Difficulty
	Text          string
	Choices       []string

	// Locked is true once the question has an answer.
	Locked      bool
	ChosenIndex int // -1 when unanswered
	// CorrectIndex is the correct choice when revealed, else -1.
	CorrectIndex int
	// ShowFeedback is true when the correctness verdict and explanation
	// should be shown, i.e. in practice mode after answering.
	ShowFeedback bool
	Correct      bool
	Explanation  string
}

// Current projects the current question for display. ok is false when there
// is no question to show.
func (s *Session) Current() (QuestionView, bool) {
	q, ok := s.current()
	if !ok {
		return QuestionView{}, false
	}
	return s.view(s.Index, q), true
}

func (s *Session) view(idx int, q bank.Question) QuestionView {
	v := QuestionView{
		Number:        idx + 1,
		Total:         s.Total,
		ID:            q.ID,
		CategoryLabel: s.Label(q.Category),
		Difficulty:    q.Difficulty,
		Text:          q.Text,
		Choices:       append([]string(nil), q.Choices...),
		ChosenIndex:   -1,
		CorrectIndex:  -1,
	}

	a, answered := s.answers[q.ID]
	if !answered {
		return v
	}
	v.Locked = true
	v.ChosenIndex = a.ChosenIndex
	v.Correct = a.Correct

	// Exam mode hides the verdict until the question is left behind.
	revealed := s.Mode == ModePractice || s.Finished() || idx < s.highWater
	if revealed {
		v.CorrectIndex = q.AnswerIndex
	}
	if s.Mode == ModePractice {
		v.ShowFeedback = true
		v.Explanation = q.Explanation
	}
	return v
}

// ToggleReview switches between the results and review phases.
// It returns false in any other phase.
func (s *Session) ToggleReview() bool {
	switch s.Phase {
	case PhaseResults:
		s.Phase = PhaseReview
	case PhaseReview:
		s.Phase = PhaseResults
	default:
		return false
	}
	return true
}

// ReviewItem is a read-only view of one question after the session ends.
type ReviewItem struct {
	Question      bank.Question
	CategoryLabel string
	Answered      bool
	ChosenIndex   int
	Correct       bool
}

// ReviewItems lists every question with its outcome. Empty until finished.
func (s *Session) ReviewItems() []ReviewItem {
	if !s.Finished() {
		return nil
	}
	items := make([]ReviewItem, len(s.Questions))
	for i, q := range s.Questions {
		item := ReviewItem{
			Question:      q.Clone(),
			CategoryLabel: s.Label(q.Category),
			ChosenIndex:   -1,
		}
		if a, ok := s.answers[q.ID]; ok {
			item.Answered = true
			item.ChosenIndex = a.ChosenIndex
			item.Correct = a.Correct
		}
		items[i] = item
	}
	return items
}

// Finalize folds the session into stats: it records the attempt, updates
// the best score and adds this session's answers to the per-category
// profile. It runs at most once, and only after the session is finished.
func (s *Session) Finalize(stats *profile.Stats, now time.Time) (profile.Attempt, error) {
	if s.finalized {
		return profile.Attempt{}, ErrAlreadyFinalized
	}
	if !s.Finished() {
		return profile.Attempt{}, ErrNotFinished
	}

	answers := s.Answers()
	attempt := profile.Attempt{
		ID:        s.ID,
		Timestamp: now,
		Score:     Score(answers, s.Total),
		Total:     s.Total,
		Mode:      string(s.Mode),
		Focus:     string(s.Focus),
	}

	if stats.PerCategory == nil {
		stats.PerCategory = profile.Profile{}
	}
	s.newBest = stats.RecordBest(attempt.Score, attempt.Total)
	profile.RecordAnswers(stats.PerCategory, answers)
	stats.History = append(stats.History, attempt)

	s.finalized = true
	return attempt, nil
}
