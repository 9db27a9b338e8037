package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Channel string    // exact channel match ("" = any)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	RequestID    string
	Channel      string
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	FinishReason string
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStats aggregates LLM requests sharing a key (model or channel).
type UsageStats struct {
	Key          string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// EventReader queries recorded events. The solving pipeline never reads
// the log; it is for the events command.
type EventReader interface {
	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByModel aggregates requests per model.
	LLMUsageByModel(ctx context.Context) ([]UsageStats, error)

	// LLMUsageByChannel aggregates requests per channel.
	LLMUsageByChannel(ctx context.Context) ([]UsageStats, error)
}
