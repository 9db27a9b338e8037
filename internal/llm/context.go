package llm

import "context"

type contextKey string

const (
	channelKey   contextKey = "llm_channel"
	requestIDKey contextKey = "llm_request_id"
)

// WithChannel attaches the front-end name ("web", "cli", "tui") to the
// context for event logging.
func WithChannel(ctx context.Context, channel string) context.Context {
	return context.WithValue(ctx, channelKey, channel)
}

// ChannelFrom extracts the channel label from the context.
func ChannelFrom(ctx context.Context) string {
	if v, ok := ctx.Value(channelKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithRequestID attaches a request ID so log entries can be correlated
// with the response returned to the user.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom extracts the request ID, or "" if none was set.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
