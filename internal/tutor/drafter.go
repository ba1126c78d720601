package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/llm"
	"github.com/abhisek/examiz/internal/logging"
)

// Drafter generates new bank questions.
type Drafter struct {
	provider llm.Provider
	cfg      Config
	logger   *logging.Logger
}

// NewDrafter creates a question drafter.
func NewDrafter(provider llm.Provider, cfg Config, logger *logging.Logger) *Drafter {
	return &Drafter{provider: provider, cfg: cfg, logger: logging.OrNop(logger)}
}

// DraftResult holds accepted drafts and the reasons others were dropped.
type DraftResult struct {
	Questions []bank.Question
	Rejected  []string
}

type draftOutput struct {
	Questions []draftItem `json:"questions"`
}

type draftItem struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}

// Draft asks the LLM for in.Count new questions. Every returned question
// passes bank.ValidateQuestion, has distinct choices and does not repeat
// an existing question text.
func (d *Drafter) Draft(ctx context.Context, in DraftInput) (*DraftResult, error) {
	if in.Count <= 0 || in.Count > MaxDraftCount {
		return nil, fmt.Errorf("draft count must be between 1 and %d, got %d", MaxDraftCount, in.Count)
	}
	if in.Category == "" {
		return nil, fmt.Errorf("draft category is required")
	}
	if in.Difficulty == "" {
		in.Difficulty = bank.DifficultyMedium
	}
	if in.CategoryLabel == "" {
		in.CategoryLabel = string(in.Category)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeDraft)
	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	req := llm.UserPrompt(draftSystemPrompt, buildDraftUserMessage(in), DraftSchema, d.cfg.MaxTokens*in.Count)
	req.Temperature = d.cfg.Temperature

	resp, err := d.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("draft questions: %w", err)
	}

	var out draftOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse draft response: %w", err)
	}

	seen := make(map[string]bool, len(in.Existing)+len(out.Questions))
	for _, text := range in.Existing {
		seen[normalize(text)] = true
	}
	known := map[bank.Category]bool{in.Category: true}

	res := &DraftResult{}
	for i, item := range out.Questions {
		if len(res.Questions) == in.Count {
			break
		}
		q := bank.Question{
			ID:          fmt.Sprintf("%s-ai-%s", in.Category, uuid.NewString()[:8]),
			Category:    in.Category,
			Difficulty:  in.Difficulty,
			Text:        strings.TrimSpace(item.Question),
			Choices:     trimAll(item.Choices),
			AnswerIndex: item.AnswerIndex,
			Explanation: strings.TrimSpace(item.Explanation),
		}

		problems := bank.ValidateQuestion(q, known)
		if hasDuplicate(q.Choices) {
			problems = append(problems, "duplicate choices")
		}
		if seen[normalize(q.Text)] {
			problems = append(problems, "repeats an existing question")
		}
		if len(problems) > 0 {
			reason := fmt.Sprintf("draft %d: %s", i+1, strings.Join(problems, "; "))
			d.logger.Debug("draft rejected", "reason", reason)
			res.Rejected = append(res.Rejected, reason)
			continue
		}

		seen[normalize(q.Text)] = true
		res.Questions = append(res.Questions, q)
	}

	d.logger.Info("drafted questions",
		"category", in.Category, "accepted", len(res.Questions), "rejected", len(res.Rejected))
	return res, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func hasDuplicate(choices []string) bool {
	seen := make(map[string]bool, len(choices))
	for _, c := range choices {
		k := normalize(c)
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}
