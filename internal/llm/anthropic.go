package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicModels maps friendly names to Anthropic model IDs.
var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-5-20250929",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// anthropicDefaultMaxTokens is used when the request leaves MaxTokens
// unset; the Messages API requires a value.
const anthropicDefaultMaxTokens = 8192

// AnthropicProvider implements Provider using the Anthropic SDK.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &AnthropicProvider{
		client: &client,
		model:  resolveModel(cfg.Model, anthropicModels),
	}, nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	content, err := buildAnthropicContent(req.Parts)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			{Role: anthropic.MessageParamRoleUser, Content: content},
		},
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.System},
		}
	}

	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, mapAnthropicError(err)
	}

	resp := &Response{
		Text:  extractAnthropicText(msg),
		Usage: mapAnthropicUsage(msg.Usage),
		Model: string(msg.Model),
	}
	resp.StopReason, resp.FinishReason = mapAnthropicStopReason(msg.StopReason)
	return resp, nil
}

func (p *AnthropicProvider) ModelID() string {
	return p.model
}

// buildAnthropicContent maps images to base64 image blocks and PDFs to
// base64 document blocks.
func buildAnthropicContent(parts []Part) ([]anthropic.ContentBlockParamUnion, error) {
	out := make([]anthropic.ContentBlockParamUnion, 0, len(parts))
	for _, part := range parts {
		switch {
		case part.InlineData == nil:
			out = append(out, anthropic.NewTextBlock(part.Text))
		case part.InlineData.MIMEType == "application/pdf":
			out = append(out, anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
				Data: part.InlineData.Data,
			}))
		case strings.HasPrefix(part.InlineData.MIMEType, "image/"):
			out = append(out, anthropic.NewImageBlockBase64(part.InlineData.MIMEType, part.InlineData.Data))
		default:
			return nil, &ErrUnsupportedMedia{Provider: "anthropic", MIMEType: part.InlineData.MIMEType}
		}
	}
	return out, nil
}

func extractAnthropicText(msg *anthropic.Message) string {
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}

func mapAnthropicUsage(u anthropic.Usage) Usage {
	return Usage{
		InputTokens:  int(u.InputTokens),
		OutputTokens: int(u.OutputTokens),
		TotalTokens:  int(u.InputTokens + u.OutputTokens),
	}
}

func mapAnthropicStopReason(reason anthropic.StopReason) (string, string) {
	switch reason {
	case "end_turn", "stop_sequence", "":
		return StopEnd, ""
	case "max_tokens":
		return StopMaxTokens, string(reason)
	case "refusal":
		return StopBlocked, string(reason)
	default:
		return StopOther, string(reason)
	}
}

func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return &ErrAuth{Err: err}
		case apiErr.StatusCode >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}
