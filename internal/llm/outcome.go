package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FailureCategory classifies why a provider call failed. The fallback policy
// keys retry decisions off the category, never off raw error text.
type FailureCategory string

const (
	CategoryInsufficientCredit  FailureCategory = "insufficient_credit"
	CategoryRateLimited         FailureCategory = "rate_limited"
	CategoryTimeout             FailureCategory = "timeout"
	CategoryConnectionError     FailureCategory = "connection_error"
	CategoryAuthenticationError FailureCategory = "authentication_error"
	CategoryUnknown             FailureCategory = "unknown"
)

// Retryable reports whether a failure of this category may succeed against an
// alternate backend.
func (c FailureCategory) Retryable() bool {
	switch c {
	case CategoryInsufficientCredit, CategoryRateLimited, CategoryTimeout, CategoryConnectionError:
		return true
	}
	return false
}

// Status is the terminal state of a call outcome.
type Status int

const (
	// StatusSuccess carries a payload.
	StatusSuccess Status = iota
	// StatusRetryableFailure carries a category the fallback policy may act on.
	StatusRetryableFailure
	// StatusFatalFailure carries a reason no retry can fix.
	StatusFatalFailure
)

// Outcome is the result of one logical model invocation: a success payload,
// or a classified failure. Exactly one of Payload and Err is meaningful.
type Outcome struct {
	Status       Status
	Payload      string
	Category     FailureCategory
	Err          error
	UsedFallback bool
}

// Success wraps a payload in a successful outcome.
func Success(payload string) Outcome {
	return Outcome{Status: StatusSuccess, Payload: payload}
}

// Failure classifies err and wraps it in a retryable or fatal outcome.
func Failure(err error) Outcome {
	category := ClassifyError(err)
	status := StatusFatalFailure
	if category.Retryable() {
		status = StatusRetryableFailure
	}
	return Outcome{Status: status, Category: category, Err: err}
}

// categorySubstrings maps each category to the lowercase fragments provider
// SDKs put in their error text. Order matters: credit exhaustion surfaces as
// an API status error that would otherwise match the generic patterns.
var categorySubstrings = []struct {
	category FailureCategory
	needles  []string
}{
	{CategoryInsufficientCredit, []string{"insufficient", "payment required", "402", "quota exceeded", "billing"}},
	{CategoryRateLimited, []string{"rate limit", "rate-limit", "429", "too many requests", "resource exhausted", "resource_exhausted"}},
	{CategoryTimeout, []string{"timeout", "timed out", "deadline exceeded"}},
	{CategoryConnectionError, []string{"connection", "connect:", "no such host", "broken pipe", "unexpected eof", "unavailable"}},
	{CategoryAuthenticationError, []string{"unauthorized", "401", "403", "permission denied", "api key", "authentication", "invalid key"}},
}

// ClassifyError maps a call error to a failure category by case-insensitive
// substring matching, matching the provider SDKs' stringly-typed errors.
// Context cancellation and deadline errors classify without inspecting text.
func ClassifyError(err error) FailureCategory {
	if err == nil {
		return CategoryUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	if errors.Is(err, context.Canceled) {
		return CategoryConnectionError
	}

	msg := strings.ToLower(err.Error())
	for _, entry := range categorySubstrings {
		for _, needle := range entry.needles {
			if strings.Contains(msg, needle) {
				return entry.category
			}
		}
	}
	return CategoryUnknown
}

// ConfigError represents a client misconfiguration detected before any call.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("llm config error: %s", e.Message)
}
