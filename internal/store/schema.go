package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	kvTable         = "kv"
	sessionTable    = "session_events"
	answerTable     = "answer_events"
	llmRequestTable = "llm_request_events"
)

var (
	// KVColumns holds the columns of the "kv" table.
	KVColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeBytes},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// KVTable stores small named blobs such as the stats document.
	KVTable = &schema.Table{
		Name:       kvTable,
		Columns:    KVColumns,
		PrimaryKey: []*schema.Column{KVColumns[0]},
	}

	// eventColumns are shared by every event table.
	eventColumns = func() []*schema.Column {
		return []*schema.Column{
			{Name: "id", Type: field.TypeInt, Increment: true},
			{Name: "sequence", Type: field.TypeInt64, Unique: true},
			{Name: "timestamp", Type: field.TypeTime},
		}
	}

	// SessionEventsColumns holds the columns of the "session_events" table.
	SessionEventsColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "focus", Type: field.TypeString},
		&schema.Column{Name: "question_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)
	// SessionEventsTable records session start and end.
	SessionEventsTable = &schema.Table{
		Name:       sessionTable,
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[3]}},
			{Name: "sessionevent_action", Columns: []*schema.Column{SessionEventsColumns[4]}},
		},
	}

	// AnswerEventsColumns holds the columns of the "answer_events" table.
	AnswerEventsColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_id", Type: field.TypeString},
		&schema.Column{Name: "category", Type: field.TypeString},
		&schema.Column{Name: "difficulty", Type: field.TypeString},
		&schema.Column{Name: "chosen_index", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	)
	// AnswerEventsTable records every submitted answer.
	AnswerEventsTable = &schema.Table{
		Name:       answerTable,
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{AnswerEventsColumns[3]}},
			{Name: "answerevent_category", Columns: []*schema.Column{AnswerEventsColumns[5]}},
		},
	}

	// LLMRequestEventsColumns holds the columns of the "llm_request_events" table.
	LLMRequestEventsColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	// LLMRequestEventsTable records every LLM API call for cost tracking and debugging.
	LLMRequestEventsTable = &schema.Table{
		Name:       llmRequestTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[5]}},
		},
	}

	// Tables holds all the tables managed by auto-migration.
	Tables = []*schema.Table{
		KVTable,
		SessionEventsTable,
		AnswerEventsTable,
		LLMRequestEventsTable,
	}
)
