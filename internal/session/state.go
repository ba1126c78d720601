package session

import (
	"fmt"
	"time"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/profile"
)

// Mode controls navigation and feedback rules.
type Mode string

const (
	// ModeExam requires an answer before moving on and hides feedback.
	ModeExam Mode = "exam"
	// ModePractice allows skipping and shows feedback after each answer.
	ModePractice Mode = "practice"
)

// ParseMode validates a mode name. Empty means exam.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeExam, "":
		return ModeExam, nil
	case ModePractice:
		return ModePractice, nil
	}
	return "", fmt.Errorf("unknown mode %q (want exam or practice)", s)
}

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseBuilding   Phase = iota // Drawing questions
	PhaseInProgress              // Serving questions
	PhaseResults                 // Showing the score
	PhaseReview                  // Walking through answered questions
)

func (p Phase) String() string {
	switch p {
	case PhaseBuilding:
		return "building"
	case PhaseInProgress:
		return "in_progress"
	case PhaseResults:
		return "results"
	case PhaseReview:
		return "review"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// DefaultCount is the question count used when none is configured.
const DefaultCount = 10

// Options configures a new session.
type Options struct {
	Mode  Mode
	Focus bank.Focus
	Count int
}

// Answer records one submitted choice. At most one exists per question.
type Answer struct {
	QuestionID  string
	ChosenIndex int
	Correct     bool
	Category    bank.Category
}

func (a Answer) AnswerCategory() bank.Category { return a.Category }
func (a Answer) IsCorrect() bool { return a.Correct }

// Session tracks the runtime state of one exam or practice run.
// It is owned by a single goroutine and is not safe for concurrent use.
type Session struct {
	// ID uniquely identifies the session in the event log.
	ID string

	// Mode and Focus are fixed at start.
	Mode  Mode
	Focus bank.Focus

	// Requested is the question count asked for; Total is what was drawn.
	Requested int
	Total     int

	// Questions are the drawn questions with choices already shuffled.
	Questions []bank.Question

	// Index is the position of the current question.
	Index int

	// Phase is the current session phase.
	Phase Phase

	// StartTime is when questions were first served.
	StartTime time.Time

	answers   map[string]Answer
	order     []string
	highWater int
	finalized bool
	newBest   bool
	labels    func(bank.Category) string
	cats      []bank.Category
}

// Answers returns the recorded answers in submission order.
func (s *Session) Answers() []Answer {
	out := make([]Answer, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.answers[id])
	}
	return out
}

// AnswerFor returns the answer recorded for a question.
func (s *Session) AnswerFor(questionID string) (Answer, bool) {
	a, ok := s.answers[questionID]
	return a, ok
}

// Answered returns the number of answered questions.
func (s *Session) Answered() int {
	return len(s.answers)
}

// Finished reports whether the session has moved past the last question.
func (s *Session) Finished() bool {
	return s.Phase == PhaseResults || s.Phase == PhaseReview
}

// NewBest reports whether Finalize set a new best score.
func (s *Session) NewBest() bool {
	return s.newBest
}

// Finalized reports whether Finalize has already run.
func (s *Session) Finalized() bool {
	return s.finalized
}

// Categories returns the bank's category keys in table order.
func (s *Session) Categories() []bank.Category {
	return s.cats
}

// Label returns the display label for a category.
func (s *Session) Label(c bank.Category) string {
	if s.labels == nil {
		return string(c)
	}
	return s.labels(c)
}

var _ profile.AnswerLike = Answer{}
