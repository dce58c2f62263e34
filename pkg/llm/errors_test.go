package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport failure", &ProviderError{Provider: "gemini", Err: errors.New("dial tcp")}, true},
		{"rate limited", &ProviderError{Provider: "gemini", StatusCode: 429}, true},
		{"server error", fmt.Errorf("wrapped: %w", &ProviderError{Provider: "ollama", StatusCode: 503}), true},
		{"bad request", &ProviderError{Provider: "gemini", StatusCode: 400}, false},
		{"blocked", &BlockedError{Reason: "SAFETY"}, false},
		{"plain", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestBlockedErrorIs(t *testing.T) {
	err := fmt.Errorf("generate: %w", &BlockedError{Reason: "SAFETY"})
	assert.ErrorIs(t, err, ErrBlocked)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestApplyOptions(t *testing.T) {
	o := Apply(WithTemperature(0.2), WithMaxTokens(100), WithModel("m"))
	assert.Equal(t, 0.2, o.Temperature)
	assert.Equal(t, 0.9, o.TopP)
	assert.Equal(t, 40, o.TopK)
	assert.Equal(t, 100, o.MaxTokens)
	assert.Equal(t, "m", o.Model)
	assert.Len(t, o.Safety, 4)
}
