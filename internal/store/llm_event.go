package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLEventRepo implements EventRepo and EventReader on SQLite with the
// global sequence counter.
type SQLEventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var (
	_ EventRepo   = (*SQLEventRepo)(nil)
	_ EventReader = (*SQLEventRepo)(nil)
)

func (r *SQLEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO llm_request_events (
		sequence, timestamp_ms, request_id, channel, provider, model,
		input_tokens, output_tokens, latency_ms, success,
		finish_reason, error_message, request_body, response_body
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC().UnixMilli(), data.RequestID, data.Channel, data.Provider, data.Model,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
		data.FinishReason, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

const llmEventColumns = `id, sequence, timestamp_ms, request_id, channel, provider, model,
	input_tokens, output_tokens, latency_ms, success,
	finish_reason, error_message, request_body, response_body`

func (r *SQLEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	var (
		where []string
		args  []any
	)
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		where = append(where, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp_ms >= ?")
		args = append(args, opts.From.UTC().UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp_ms <= ?")
		args = append(args, opts.To.UTC().UnixMilli())
	}
	if opts.Channel != "" {
		where = append(where, "channel = ?")
		args = append(args, opts.Channel)
	}

	q := "SELECT " + llmEventColumns + " FROM llm_request_events"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		ev, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return out, nil
}

func (r *SQLEventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+llmEventColumns+" FROM llm_request_events WHERE id = ?", id)
	ev, err := scanLLMEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *SQLEventRepo) LLMUsageByModel(ctx context.Context) ([]UsageStats, error) {
	return r.usageBy(ctx, "model")
}

func (r *SQLEventRepo) LLMUsageByChannel(ctx context.Context) ([]UsageStats, error) {
	return r.usageBy(ctx, "channel")
}

// usageBy groups by a fixed column name; column is never user input.
func (r *SQLEventRepo) usageBy(ctx context.Context, column string) ([]UsageStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+column+`,
		COUNT(*),
		SUM(CASE WHEN success THEN 0 ELSE 1 END),
		COALESCE(SUM(input_tokens), 0),
		COALESCE(SUM(output_tokens), 0),
		COALESCE(AVG(latency_ms), 0)
	FROM llm_request_events
	GROUP BY `+column+`
	ORDER BY COUNT(*) DESC, `+column)
	if err != nil {
		return nil, fmt.Errorf("aggregate LLM usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []UsageStats
	for rows.Next() {
		var s UsageStats
		if err := rows.Scan(&s.Key, &s.Requests, &s.Failures, &s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMRequestEvent, error) {
	var (
		ev      LLMRequestEvent
		tsMs    int64
		success bool
	)
	err := row.Scan(
		&ev.ID, &ev.Sequence, &tsMs, &ev.RequestID, &ev.Channel, &ev.Provider, &ev.Model,
		&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &success,
		&ev.FinishReason, &ev.ErrorMessage, &ev.RequestBody, &ev.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	ev.Success = success
	ev.Timestamp = time.UnixMilli(tsMs).UTC()
	return &ev, nil
}
