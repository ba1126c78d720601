package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/examiz/internal/logging"
	"github.com/abhisek/examiz/internal/store"
)

// EventRecorder is the slice of store.EventRepo the event decorator needs.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// EventProvider is a decorator that records every LLM request as an event.
type EventProvider struct {
	inner    Provider
	recorder EventRecorder
	logger   *logging.Logger
}

// WithEvents wraps a Provider with event recording. A nil recorder
// disables recording.
func WithEvents(p Provider, recorder EventRecorder, logger *logging.Logger) Provider {
	if recorder == nil {
		return p
	}
	return &EventProvider{inner: p, recorder: recorder, logger: logging.OrNop(logger)}
}

func (e *EventProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := e.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    e.inner.Name(),
		Model:       e.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Recording never fails the request.
	if recErr := e.recorder.AppendLLMRequest(context.WithoutCancel(ctx), data); recErr != nil {
		e.logger.Warn("record llm request event", "error", recErr, "purpose", data.Purpose)
	}
	return resp, err
}

func (e *EventProvider) ModelID() string { return e.inner.ModelID() }

func (e *EventProvider) Name() string { return e.inner.Name() }

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(def)
			b.WriteString("\n")
		}
	}
	return b.String()
}
