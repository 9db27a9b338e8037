// Package solver sends a math problem to the model and normalizes every
// outcome into a Result.
package solver

import (
	"context"
	"errors"
	"time"

	"github.com/hoaithanh/giaitoan/internal/llm"
	"github.com/hoaithanh/giaitoan/internal/problem"
)

// Solver asks the model for step-by-step solutions.
type Solver struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Solver. A nil provider is allowed; every Solve then fails
// with KindConfiguration.
func New(provider llm.Provider, cfg Config) *Solver {
	return &Solver{provider: provider, cfg: cfg}
}

// Configured reports whether Solve can reach the model.
func (s *Solver) Configured() bool {
	return s.cfg.APIKey != "" && s.provider != nil
}

// Solve makes at most one model call for the input. It never returns a
// raw error and never panics on provider failures.
func (s *Solver) Solve(ctx context.Context, in problem.Input) Result {
	if !s.Configured() {
		return failed(KindConfiguration, "API key is not configured", nil)
	}

	if err := in.Validate(); err != nil {
		return failed(KindInvalidInput, err.Error(), err)
	}

	var parts []llm.Part
	switch in.Kind() {
	case problem.KindText:
		parts = textParts(in.Text())
	case problem.KindFile:
		f, _ := in.File()
		enc, err := problem.Encode(f)
		if err != nil {
			return failed(KindIO, f.Name, err)
		}
		parts = fileParts(enc.MediaType, enc.Data)
	}

	req := llm.Request{
		System:      systemInstruction,
		Parts:       parts,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	start := time.Now()
	resp, err := s.generate(ctx, req)
	latency := time.Since(start)
	if err != nil {
		res := failed(KindTransport, err.Error(), err)
		res.Latency = latency
		return res
	}

	res := Result{Model: resp.Model, Usage: resp.Usage, Latency: latency}
	switch {
	case resp.Text != "":
		res.Solution = resp.Text
	case resp.FinishReason != "" && resp.StopReason != llm.StopEnd:
		res.Err = &Error{
			Kind:    KindSafetyBlocked,
			Message: "response withheld by the model",
			Reason:  resp.FinishReason,
		}
	default:
		res.Err = &Error{Kind: KindEmptyResponse, Message: "model returned no text"}
	}
	return res
}

// generate converts provider panics and nil responses into errors.
func (s *Solver) generate(ctx context.Context, req llm.Request) (resp *llm.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, errors.New("provider panicked")
		}
	}()

	resp, err = s.provider.Generate(ctx, req)
	if err == nil && resp == nil {
		err = errors.New("provider returned no response")
	}
	return resp, err
}
