package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the model's text.
type Provider interface {
	// Generate sends a single-turn prompt to the LLM. Inline data parts
	// (images, PDFs) are forwarded using the provider's native encoding.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system instruction. Sets the LLM's role and output format.
	System string

	// Parts make up the single user turn, in order. Text parts and inline
	// data parts may be mixed.
	Parts []Part

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Part is one fragment of the user turn. Exactly one of Text or
// InlineData is set.
type Part struct {
	Text       string
	InlineData *InlineData
}

// InlineData is a base64-encoded file sent alongside the prompt.
type InlineData struct {
	MIMEType string
	// Data is standard base64 without a data-URL prefix.
	Data string
}

// TextPart builds a text fragment.
func TextPart(s string) Part {
	return Part{Text: s}
}

// InlineDataPart builds a file fragment.
func InlineDataPart(mimeType, data string) Part {
	return Part{InlineData: &InlineData{MIMEType: mimeType, Data: data}}
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopBlocked   = "blocked"
	StopOther     = "other"
)

// Response holds the LLM's output.
type Response struct {
	// Text is the generated answer. It may be empty when the provider
	// withheld the output.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "blocked", "other"
	StopReason string

	// FinishReason is the provider's own code for a stop other than a
	// normal completion (e.g. "SAFETY", "content_filter", "refusal").
	// Empty when generation ended normally.
	FinishReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
