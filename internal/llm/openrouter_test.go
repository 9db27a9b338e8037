package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "google/gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Fatalf("unexpected model %q", p.ModelID())
	}
	if p.name != "openrouter" {
		t.Fatalf("expected provider name openrouter, got %q", p.name)
	}
}
