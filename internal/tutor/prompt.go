package tutor

import (
	"fmt"
	"strings"
)

const explainSystemPrompt = `You are a concise IT certification tutor. A learner is reviewing a multiple-choice question. Explain the correct answer plainly and, if they chose wrong, name the misconception without scolding.`

func buildExplainUserMessage(in ExplainInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category: %s\n", in.CategoryLabel)
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Question.Difficulty)
	fmt.Fprintf(&b, "Question: %s\n", in.Question.Text)
	b.WriteString("Choices:\n")
	for i, c := range in.Question.Choices {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	fmt.Fprintf(&b, "Correct: %d. %s\n", in.Question.AnswerIndex+1, in.Question.CorrectChoice())

	if in.ChosenIndex >= 0 && in.ChosenIndex < len(in.Question.Choices) {
		fmt.Fprintf(&b, "Learner chose: %d. %s\n", in.ChosenIndex+1, in.Question.Choices[in.ChosenIndex])
	} else {
		b.WriteString("Learner chose: (no answer)\n")
	}
	if in.Question.Explanation != "" {
		fmt.Fprintf(&b, "Bank note: %s\n", in.Question.Explanation)
	}
	return b.String()
}

const draftSystemPrompt = `You write multiple-choice questions for IT certification practice. Each question has exactly four options and one unambiguous correct answer. Distractors must be plausible. Do not repeat questions the learner already has.`

func buildDraftUserMessage(in DraftInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category: %s (%s)\n", in.CategoryLabel, in.Category)
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", in.Count)

	b.WriteString("\nExisting questions (do not duplicate):\n")
	if len(in.Existing) == 0 {
		b.WriteString("None\n")
	}
	for _, text := range in.Existing {
		fmt.Fprintf(&b, "- %s\n", text)
	}
	return b.String()
}
