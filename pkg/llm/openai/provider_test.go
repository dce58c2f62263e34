package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fort-chatbot-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerate(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Pratapgad was built in 1656."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("key", srv.URL, "gpt-4o-mini")
	text, err := p.Generate(context.Background(), "When was Pratapgad built?")
	require.NoError(t, err)
	assert.Equal(t, "Pratapgad was built in 1656.", text)
	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.EqualValues(t, 2048, got["max_tokens"])
}

func TestOpenAIContentFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":""},"finish_reason":"content_filter"}]}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIProvider("key", srv.URL, "m").Generate(context.Background(), "x")
	assert.ErrorIs(t, err, llm.ErrBlocked)
}

func TestOpenAIHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIProvider("key", srv.URL, "m").Generate(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, llm.IsRetryable(err))
}
