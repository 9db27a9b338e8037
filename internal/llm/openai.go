package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
	"gpt-4.1":     "gpt-4.1",
}

// OpenAIProvider implements Provider using the OpenAI SDK.
// It also supports OpenRouter and other OpenAI-compatible APIs via BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	return newOpenAIProviderRaw(cfg, "openai")
}

func newOpenAIProviderRaw(cfg OpenAIConfig, name string) (*OpenAIProvider, error) {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(cfg.Model, openaiModels),
		name:   name,
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	messages, err := buildOpenAIMessages(req, p.name)
	if err != nil {
		return nil, err
	}

	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	out := &Response{
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: StopEnd,
	}
	if out.Model == "" {
		out.Model = p.model
	}

	// No choices is reported as an empty answer, not an error.
	if len(resp.Choices) == 0 {
		return out, nil
	}

	out.Text = resp.Choices[0].Message.Content
	out.StopReason, out.FinishReason = mapOpenAIStopReason(resp.Choices[0].FinishReason)
	return out, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

// buildOpenAIMessages sends images as data-URL image parts. Chat
// completions have no inline PDF input, so PDFs are rejected up front.
func buildOpenAIMessages(req Request, provider string) ([]openai.ChatCompletionMessage, error) {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	parts := make([]openai.ChatMessagePart, 0, len(req.Parts))
	for _, part := range req.Parts {
		if part.InlineData == nil {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: part.Text,
			})
			continue
		}
		if !strings.HasPrefix(part.InlineData.MIMEType, "image/") {
			return nil, &ErrUnsupportedMedia{Provider: provider, MIMEType: part.InlineData.MIMEType}
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    "data:" + part.InlineData.MIMEType + ";base64," + part.InlineData.Data,
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}

	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(parts) == 1 && parts[0].Type == openai.ChatMessagePartTypeText {
		user.Content = parts[0].Text
	} else {
		user.MultiContent = parts
	}
	messages = append(messages, user)

	return messages, nil
}

func mapOpenAIStopReason(reason openai.FinishReason) (string, string) {
	switch reason {
	case openai.FinishReasonStop, openai.FinishReasonNull, "":
		return StopEnd, ""
	case openai.FinishReasonLength:
		return StopMaxTokens, string(reason)
	case openai.FinishReasonContentFilter:
		return StopBlocked, string(reason)
	default:
		return StopOther, string(reason)
	}
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden:
			return &ErrAuth{Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
