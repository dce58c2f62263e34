package embedding

import (
	"context"

	"github.com/philippgille/chromem-go"
)

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingRequestContentPart struct {
	Text string `json:"text"`
}

type EmbeddingRequestContent struct {
	Parts []EmbeddingRequestContentPart `json:"parts"`
}

type EmbeddingRequest struct {
	Model    string                  `json:"model"`
	Content  EmbeddingRequestContent `json:"content"`
	TaskType string                  `json:"task_type,omitempty"`
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// ChromemFunc adapts a provider to chromem's embedding hook, used when a
// chromem collection has to embed document content itself.
func ChromemFunc(provider EmbeddingProvider, taskType string) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		res, err := provider.Generate(ctx, text, taskType)
		if err != nil {
			return nil, err
		}
		return res.Embedding.Values, nil
	}
}
