package store

import (
	"context"
	"time"

	"github.com/abhisek/examiz/internal/profile"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// StatsRepo persists the stats blob under one logical key.
type StatsRepo interface {
	// Load returns the saved stats. A missing or unreadable blob yields
	// profile.DefaultStats(baseline); only I/O failures are errors.
	Load(ctx context.Context, baseline profile.Profile) (*profile.Stats, error)

	// Save replaces the stored blob.
	Save(ctx context.Context, stats *profile.Stats) error

	// Reset overwrites the blob with seeded defaults and returns them.
	Reset(ctx context.Context, baseline profile.Profile) (*profile.Stats, error)
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID      string
	Action         string // "start" or "end"
	Mode           string
	Focus          string
	QuestionCount  int
	CorrectAnswers int
	DurationSecs   int
}

// AnswerEventData captures a single submitted answer.
type AnswerEventData struct {
	SessionID   string
	QuestionID  string
	Category    string
	Difficulty  string
	ChosenIndex int
	Correct     bool
	TimeMs      int64
}

// SessionSummaryRecord is a finished session as read back from the event log.
type SessionSummaryRecord struct {
	SessionID      string
	Timestamp      time.Time
	Mode           string
	Focus          string
	QuestionCount  int
	CorrectAnswers int
	DurationSecs   int
}

// CategoryAccuracyRecord aggregates answer events for one category.
type CategoryAccuracyRecord struct {
	Category string
	Correct  int
	Total    int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a submitted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// CategoryAccuracy aggregates all answer events by category.
	CategoryAccuracy(ctx context.Context) ([]CategoryAccuracyRecord, error)

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
