package llm

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrAuth indicates the provider rejected the credentials (401/403).
type ErrAuth struct {
	Err error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("LLM provider rejected credentials: %v", e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrUnsupportedMedia indicates the provider cannot accept an inline file
// of the given type.
type ErrUnsupportedMedia struct {
	Provider string
	MIMEType string
}

func (e *ErrUnsupportedMedia) Error() string {
	return fmt.Sprintf("%s does not accept %s attachments", e.Provider, e.MIMEType)
}
