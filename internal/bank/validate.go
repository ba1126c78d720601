package bank

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a bank.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question bank validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Validate performs the structural checks on a category table and question list.
// It returns a *ValidationError describing all problems found, or nil.
func Validate(categories []CategoryInfo, questions []Question) error {
	var errs []string

	if len(categories) == 0 {
		errs = append(errs, "no categories declared")
	}
	catSet := make(map[Category]bool, len(categories))
	for _, c := range categories {
		if c.Key == "" {
			errs = append(errs, "category with empty key")
			continue
		}
		if c.Key == Category(FocusSmart) || c.Key == Category(FocusAll) {
			errs = append(errs, fmt.Sprintf("category key %q is reserved", c.Key))
		}
		if catSet[c.Key] {
			errs = append(errs, fmt.Sprintf("duplicate category key: %q", c.Key))
		}
		catSet[c.Key] = true
	}

	if len(questions) == 0 {
		errs = append(errs, "no questions in bank")
	}

	idSet := make(map[string]bool, len(questions))
	for i, q := range questions {
		prefix := fmt.Sprintf("question %q", q.ID)
		if q.ID == "" {
			prefix = fmt.Sprintf("question #%d", i)
			errs = append(errs, prefix+": empty id")
		} else if idSet[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		idSet[q.ID] = true

		errs = append(errs, ValidateQuestion(q, catSet)...)
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

// ValidateQuestion returns the problems with a single question.
// When known is nil the category is not checked against a table.
func ValidateQuestion(q Question, known map[Category]bool) []string {
	var errs []string
	prefix := fmt.Sprintf("question %q", q.ID)

	if known != nil && !known[q.Category] {
		errs = append(errs, fmt.Sprintf("%s: unknown category %q", prefix, q.Category))
	}
	if strings.TrimSpace(q.Text) == "" {
		errs = append(errs, prefix+": empty question text")
	}
	if len(q.Choices) < 2 {
		errs = append(errs, fmt.Sprintf("%s: needs at least 2 choices, got %d", prefix, len(q.Choices)))
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
		errs = append(errs, fmt.Sprintf("%s: answer_index %d out of range [0, %d)", prefix, q.AnswerIndex, len(q.Choices)))
	}
	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		errs = append(errs, fmt.Sprintf("%s: unknown difficulty %q", prefix, q.Difficulty))
	}
	return errs
}
