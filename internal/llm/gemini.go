package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-pro":   "gemini-2.5-pro",
	"gemini-lite":  "gemini-2.5-flash-lite",
}

// GeminiProvider implements Provider using the Google Gemini SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{}

	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	contents, err := buildGeminiContents(req.Parts)
	if err != nil {
		return nil, err
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	resp := &Response{
		Text:  result.Text(),
		Model: p.model,
	}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	resp.StopReason, resp.FinishReason = mapGeminiStopReason(result)

	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// buildGeminiContents packs the parts into one user turn. Inline data is
// decoded back to bytes because genai.Blob carries raw data.
func buildGeminiContents(parts []Part) ([]*genai.Content, error) {
	out := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		if part.InlineData != nil {
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decode inline %s data: %w", part.InlineData.MIMEType, err)
			}
			out = append(out, &genai.Part{
				InlineData: &genai.Blob{MIMEType: part.InlineData.MIMEType, Data: data},
			})
			continue
		}
		out = append(out, &genai.Part{Text: part.Text})
	}
	return []*genai.Content{{Role: "user", Parts: out}}, nil
}

// mapGeminiStopReason returns the normalized stop reason and, for anything
// but a normal stop, Gemini's own finish or block reason.
func mapGeminiStopReason(result *genai.GenerateContentResponse) (string, string) {
	if len(result.Candidates) == 0 {
		if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
			return StopBlocked, string(result.PromptFeedback.BlockReason)
		}
		return StopEnd, ""
	}

	reason := string(result.Candidates[0].FinishReason)
	switch reason {
	case "", "STOP":
		return StopEnd, ""
	case "MAX_TOKENS":
		return StopMaxTokens, reason
	case "SAFETY", "RECITATION", "BLOCKLIST", "PROHIBITED_CONTENT", "SPII", "IMAGE_SAFETY":
		return StopBlocked, reason
	default:
		return StopOther, reason
	}
}

func mapGeminiError(err error) error {
	code, ok := geminiErrorCode(err)
	if ok {
		switch {
		case code == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return &ErrAuth{Err: err}
		case code >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}

// geminiErrorCode extracts the HTTP status from a genai.APIError, which the
// SDK may return by value or by pointer.
func geminiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code, true
	}
	return 0, false
}
