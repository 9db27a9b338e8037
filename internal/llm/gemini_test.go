package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func geminiReply(text, finishReason string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": finishReason,
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     120,
			"candidatesTokenCount": 80,
			"totalTokenCount":      200,
		},
		"modelVersion": "gemini-2.5-flash",
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiContents(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G'}
	contents, err := buildGeminiContents([]Part{
		TextPart("Hãy giải"),
		InlineDataPart("image/png", base64.StdEncoding.EncodeToString(raw)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents) != 1 || contents[0].Role != "user" {
		t.Fatalf("expected a single user turn, got %+v", contents)
	}
	parts := contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Text != "Hãy giải" {
		t.Fatalf("expected text first, got %+v", parts[0])
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MIMEType != "image/png" {
		t.Fatalf("expected inline png second, got %+v", parts[1])
	}
	if string(parts[1].InlineData.Data) != string(raw) {
		t.Fatalf("inline data not decoded: %v", parts[1].InlineData.Data)
	}
}

func TestBuildGeminiContents_BadBase64(t *testing.T) {
	_, err := buildGeminiContents([]Part{InlineDataPart("image/png", "not base64!")})
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMapGeminiStopReason(t *testing.T) {
	tests := []struct {
		name       string
		result     *genai.GenerateContentResponse
		wantStop   string
		wantReason string
	}{
		{
			name:     "stop",
			result:   &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "STOP"}}},
			wantStop: StopEnd,
		},
		{
			name:       "safety",
			result:     &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "SAFETY"}}},
			wantStop:   StopBlocked,
			wantReason: "SAFETY",
		},
		{
			name:       "max tokens",
			result:     &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "MAX_TOKENS"}}},
			wantStop:   StopMaxTokens,
			wantReason: "MAX_TOKENS",
		},
		{
			name:       "unspecified",
			result:     &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "FINISH_REASON_UNSPECIFIED"}}},
			wantStop:   StopOther,
			wantReason: "FINISH_REASON_UNSPECIFIED",
		},
		{
			name:       "other",
			result:     &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "MALFORMED_FUNCTION_CALL"}}},
			wantStop:   StopOther,
			wantReason: "MALFORMED_FUNCTION_CALL",
		},
		{
			name: "prompt blocked",
			result: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "PROHIBITED_CONTENT"},
			},
			wantStop:   StopBlocked,
			wantReason: "PROHIBITED_CONTENT",
		},
		{
			name:     "empty",
			result:   &genai.GenerateContentResponse{},
			wantStop: StopEnd,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stop, reason := mapGeminiStopReason(tt.result)
			if stop != tt.wantStop || reason != tt.wantReason {
				t.Fatalf("got (%q, %q), want (%q, %q)", stop, reason, tt.wantStop, tt.wantReason)
			}
		})
	}
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var body string
	handler := func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply("**Đáp án**: $$x=2$$", "STOP"))
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System: "Bạn là giáo viên toán.",
		Parts: []Part{
			TextPart("Hãy tìm và giải"),
			InlineDataPart("image/jpeg", base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "**Đáp án**: $$x=2$$" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if resp.StopReason != StopEnd || resp.FinishReason != "" {
		t.Fatalf("unexpected stop %q/%q", resp.StopReason, resp.FinishReason)
	}
	if resp.Usage.TotalTokens != 200 {
		t.Fatalf("expected 200 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if !strings.Contains(body, "image/jpeg") || !strings.Contains(body, base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))) {
		t.Fatalf("inline data missing from request body: %s", body)
	}
	if !strings.Contains(body, "Bạn là giáo viên toán.") {
		t.Fatalf("system instruction missing from request body: %s", body)
	}
}

func TestGeminiProvider_SafetyBlock(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{"finishReason": "SAFETY"}},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{Parts: []Part{TextPart("x")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "" {
		t.Fatalf("expected no text, got %q", resp.Text)
	}
	if resp.FinishReason != "SAFETY" || resp.StopReason != StopBlocked {
		t.Fatalf("expected SAFETY block, got %q/%q", resp.StopReason, resp.FinishReason)
	}
}

func TestGeminiProvider_UnspecifiedFinishKeepsReason(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{"finishReason": "FINISH_REASON_UNSPECIFIED"}},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{Parts: []Part{TextPart("x")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != StopOther || resp.FinishReason != "FINISH_REASON_UNSPECIFIED" {
		t.Fatalf("expected unspecified finish to be reported, got %q/%q", resp.StopReason, resp.FinishReason)
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    429,
				"message": "Resource has been exhausted",
				"status":  "RESOURCE_EXHAUSTED",
			},
		})
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Parts: []Part{TextPart("x")}})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
	if !strings.Contains(err.Error(), "Resource has been exhausted") {
		t.Fatalf("expected provider message in error, got %v", err)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
}
