package solver

import (
	"time"

	"github.com/hoaithanh/giaitoan/internal/llm"
)

// ErrorKind classifies why a problem could not be solved.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindInvalidInput  ErrorKind = "invalid_input"
	KindIO            ErrorKind = "io"
	KindSafetyBlocked ErrorKind = "safety_blocked"
	KindEmptyResponse ErrorKind = "empty_response"
	KindTransport     ErrorKind = "transport"
)

// Retryable reports whether submitting the same problem again may succeed.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindEmptyResponse, KindTransport:
		return true
	default:
		return false
	}
}

// Error is a failed solve.
type Error struct {
	Kind    ErrorKind
	Message string
	// Reason is the provider's finish reason for KindSafetyBlocked.
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return string(e.Kind) + ": " + e.Message + " (" + e.Reason + ")"
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the outcome of one Solve. Exactly one of Solution and Err is set.
type Result struct {
	Solution string
	Err      *Error

	Model   string
	Usage   llm.Usage
	Latency time.Duration
}

// OK reports whether the model produced a solution.
func (r Result) OK() bool {
	return r.Err == nil
}

func failed(kind ErrorKind, msg string, err error) Result {
	return Result{Err: &Error{Kind: kind, Message: msg, Err: err}}
}
