package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProviderGenerate(t *testing.T) {
	var got EmbeddingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/text-embedding-004:embedContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"embedding":{"values":[0.1,0.2,0.3]}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", "")
	p.BaseURL = srv.URL

	res, err := p.Generate(context.Background(), "Raigad fort", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, res.Embedding.Values)
	assert.Equal(t, "RETRIEVAL_QUERY", got.TaskType)
	assert.Equal(t, "Raigad fort", got.Content.Parts[0].Text)
}

func TestGeminiProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("bad", "")
	p.BaseURL = srv.URL

	_, err := p.Generate(context.Background(), "x", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 403")
}

func TestOllamaProviderNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		_, _ = w.Write([]byte(`{"embedding":[3,4]}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "")
	res, err := p.Generate(context.Background(), "Sinhagad", "")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, res.Embedding.Values, 1e-6)
}

func TestChromemFunc(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"embedding":[1,0]}`))
	}))
	defer srv.Close()

	fn := ChromemFunc(NewOllamaProvider(srv.URL, ""), "RETRIEVAL_DOCUMENT")
	vec, err := fn(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)
}
