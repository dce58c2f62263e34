package llm

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBlocked means the provider refused the prompt or the candidate under a safety category.
	ErrBlocked = errors.New("llm: response blocked by safety filter")

	// ErrEmptyResponse means the provider answered without any text.
	ErrEmptyResponse = errors.New("llm: empty response")
)

// ProviderError is a failed call to the hosted model.
// StatusCode is zero when the request never got an HTTP response.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s error: status %d, body: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same request might succeed later.
func (e *ProviderError) Retryable() bool {
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

// IsRetryable reports whether err is a transient provider failure.
func IsRetryable(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable()
	}
	return false
}

// BlockedError carries the reason reported with a safety block.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrBlocked, e.Reason)
}

func (e *BlockedError) Is(target error) bool {
	return target == ErrBlocked
}
