package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/examiz/internal/llm"
	"github.com/abhisek/examiz/internal/logging"
)

// Explainer generates answer explanations asynchronously. One request is
// in flight at a time; a newer request supersedes an older one.
type Explainer struct {
	provider llm.Provider
	cfg      Config
	logger   *logging.Logger

	mu      sync.Mutex
	seq     int
	pending *Explanation
	err     error
	ready   bool
	busy    bool
}

// NewExplainer creates an explainer. A nil provider yields an explainer
// whose requests fail immediately.
func NewExplainer(provider llm.Provider, cfg Config, logger *logging.Logger) *Explainer {
	return &Explainer{provider: provider, cfg: cfg, logger: logging.OrNop(logger)}
}

// Available reports whether an LLM provider is configured.
func (e *Explainer) Available() bool {
	return e != nil && e.provider != nil
}

// Request starts generating an explanation in the background.
func (e *Explainer) Request(ctx context.Context, in ExplainInput) {
	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.pending, e.err, e.ready, e.busy = nil, nil, false, true
	e.mu.Unlock()

	go func() {
		exp, err := e.Explain(ctx, in)
		if err != nil {
			e.logger.Warn("explanation failed", "question", in.Question.ID, "error", err)
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		if seq != e.seq {
			return
		}
		e.pending, e.err, e.ready, e.busy = exp, err, true, false
	}()
}

// Busy reports whether a request is in flight.
func (e *Explainer) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Result is the outcome of an asynchronous explanation request.
type Result struct {
	Explanation *Explanation
	Err         error
}

// Consume returns the finished result, clearing the slot. It returns false
// while the request is still running or when none was made.
func (e *Explainer) Consume() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return Result{}, false
	}
	res := Result{Explanation: e.pending, Err: e.err}
	e.pending, e.err, e.ready = nil, nil, false
	return res, true
}

type explanationOutput struct {
	Summary  string `json:"summary"`
	WhyWrong string `json:"why_wrong"`
	KeyPoint string `json:"key_point"`
}

// Explain generates an explanation synchronously.
func (e *Explainer) Explain(ctx context.Context, in ExplainInput) (*Explanation, error) {
	if !e.Available() {
		return nil, fmt.Errorf("explain question: no LLM provider configured")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	req := llm.UserPrompt(explainSystemPrompt, buildExplainUserMessage(in), ExplanationSchema, e.cfg.MaxTokens)
	req.Temperature = e.cfg.Temperature

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explain question: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}

	return &Explanation{
		QuestionID: in.Question.ID,
		Summary:    out.Summary,
		WhyWrong:   out.WhyWrong,
		KeyPoint:   out.KeyPoint,
	}, nil
}
