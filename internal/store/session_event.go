package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.insertEvent(ctx, sessionTable,
		[]string{"session_id", "action", "mode", "focus", "question_count", "correct_answers", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Mode, data.Focus, data.QuestionCount, data.CorrectAnswers, data.DurationSecs},
	)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.insertEvent(ctx, answerTable,
		[]string{"session_id", "question_id", "category", "difficulty", "chosen_index", "correct", "time_ms"},
		[]any{data.SessionID, data.QuestionID, data.Category, data.Difficulty, data.ChosenIndex, data.Correct, data.TimeMs},
	)
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().Select("session_id", "timestamp", "mode", "focus", "question_count", "correct_answers", "duration_secs").
		From(entsql.Table(sessionTable)).
		Where(entsql.EQ("action", "end"))
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		if err := rows.Scan(&rec.SessionID, &rec.Timestamp, &rec.Mode, &rec.Focus,
			&rec.QuestionCount, &rec.CorrectAnswers, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session summaries: %w", err)
	}
	return records, nil
}

func (r *eventRepo) CategoryAccuracy(ctx context.Context) ([]CategoryAccuracyRecord, error) {
	query, args := builder().Select(
		"category",
		entsql.As("SUM(CASE WHEN `correct` THEN 1 ELSE 0 END)", "correct_count"),
		entsql.As(entsql.Count("*"), "total"),
	).
		From(entsql.Table(answerTable)).
		GroupBy("category").
		OrderBy("category").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category accuracy: %w", err)
	}
	defer rows.Close()

	var records []CategoryAccuracyRecord
	for rows.Next() {
		var rec CategoryAccuracyRecord
		if err := rows.Scan(&rec.Category, &rec.Correct, &rec.Total); err != nil {
			return nil, fmt.Errorf("scan category accuracy: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category accuracy: %w", err)
	}
	return records, nil
}
