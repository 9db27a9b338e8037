package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hoaithanh/giaitoan/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. provider is the
// configured provider name recorded with each event.
func WithLogging(p Provider, provider string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: provider, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		RequestID:   RequestIDFrom(ctx),
		Channel:     ChannelFrom(ctx),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.FinishReason = resp.FinishReason
		data.ResponseBody = resp.Text
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails. The
	// request context may already be cancelled, so logging uses its own.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if logErr := l.eventRepo.AppendLLMRequest(logCtx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
// Inline files are summarized; their payload is never stored.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	b.WriteString("[user]\n")
	for _, p := range req.Parts {
		if p.InlineData != nil {
			fmt.Fprintf(&b, "[inline_data %s, %s]\n", p.InlineData.MIMEType, payloadSize(p.InlineData.Data))
			continue
		}
		b.WriteString(p.Text)
		b.WriteString("\n")
	}

	return b.String()
}

// payloadSize reports the decoded size of a base64 payload.
func payloadSize(b64 string) string {
	n := len(b64) / 4 * 3
	switch {
	case strings.HasSuffix(b64, "=="):
		n -= 2
	case strings.HasSuffix(b64, "="):
		n--
	}
	if n >= 1024*1024 {
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
