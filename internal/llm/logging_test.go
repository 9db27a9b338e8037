package llm

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/hoaithanh/giaitoan/internal/store"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Text:  "**Đáp án**: $$x = 2$$",
		Usage: Usage{InputTokens: 12, OutputTokens: 34, TotalTokens: 46},
	})
	p := WithLogging(mock, "gemini", repo)

	ctx := WithRequestID(WithChannel(context.Background(), "cli"), "req-42")
	_, err := p.Generate(ctx, Request{
		System: "sys",
		Parts:  []Part{TextPart("đề bài"), InlineDataPart("application/pdf", "JVBERi0=")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Channel != "cli" || ev.RequestID != "req-42" || ev.Provider != "gemini" {
		t.Fatalf("unexpected labels %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 34 {
		t.Fatalf("unexpected outcome %+v", ev)
	}
	if ev.ResponseBody != "**Đáp án**: $$x = 2$$" {
		t.Fatalf("unexpected response body %q", ev.ResponseBody)
	}
	if strings.Contains(ev.RequestBody, "JVBERi0=") {
		t.Fatalf("inline payload must not be logged: %s", ev.RequestBody)
	}
	if !strings.Contains(ev.RequestBody, "[inline_data application/pdf") {
		t.Fatalf("expected inline summary in request body: %s", ev.RequestBody)
	}
}

func TestLogging_RecordsFailureAndFinishReason(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Err: errors.New("quota exceeded")},
		MockResponse{FinishReason: "SAFETY"},
	)
	p := WithLogging(mock, "gemini", repo)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.events))
	}
	if repo.events[0].Success || repo.events[0].ErrorMessage != "quota exceeded" {
		t.Fatalf("unexpected failure event %+v", repo.events[0])
	}
	if repo.events[0].Channel != "unknown" {
		t.Fatalf("expected default channel, got %q", repo.events[0].Channel)
	}
	if repo.events[1].FinishReason != "SAFETY" {
		t.Fatalf("expected SAFETY finish reason, got %q", repo.events[1].FinishReason)
	}
}

func TestLogging_RepoErrorDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", repo)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}
}

func TestNewProvider_Errors(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "llama"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "openai"}, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestNewProvider_WrapsDecorators(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	cfg.OpenAI.APIKey = "sk-test"

	p, err := NewProvider(context.Background(), cfg, &recordingRepo{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	retry, ok := p.(*RetryProvider)
	if !ok {
		t.Fatalf("expected retry decorator outermost, got %T", p)
	}
	if _, ok := retry.inner.(*LoggingProvider); !ok {
		t.Fatalf("expected logging decorator inside retry, got %T", retry.inner)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.5-flash")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-2.8) > 1e-9 {
		t.Fatalf("expected $2.80, got %v", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}

func TestLookupCostAliases(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"google/gemini-2.5-flash", "gemini-2.5-flash"},
		{"claude-sonnet-4-5-20250929", "claude-sonnet-4-5"},
		{"gpt-4o-2024-08-06", "gpt-4o"},
		{"gemini-3-pro-preview", "gemini-3-pro"},
	}
	for _, tt := range tests {
		got := LookupCost(tt.id)
		if got == nil {
			t.Errorf("LookupCost(%q) = nil", tt.id)
			continue
		}
		if *got != modelCosts[tt.want] {
			t.Errorf("LookupCost(%q) = %+v, want %s pricing", tt.id, *got, tt.want)
		}
	}
}
