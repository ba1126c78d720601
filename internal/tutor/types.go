// Package tutor generates answer explanations and new bank questions with
// an LLM provider.
package tutor

import "github.com/abhisek/examiz/internal/bank"

// Explanation is an LLM-written explanation for one question.
type Explanation struct {
	QuestionID string
	Summary    string
	WhyWrong   string
	KeyPoint   string
}

// ExplainInput holds the context for explaining one question.
type ExplainInput struct {
	Question      bank.Question
	CategoryLabel string

	// ChosenIndex is the learner's choice, or -1 when unanswered.
	ChosenIndex int
}

// DraftInput describes a batch of questions to draft.
type DraftInput struct {
	Category      bank.Category
	CategoryLabel string
	Difficulty    bank.Difficulty
	Count         int

	// Existing holds question texts already in the bank.
	Existing []string
}
