package contract

import (
	"context"

	"fort-chatbot-be/internal/entity"
)

// ScoredFortEmbedding wraps FortEmbedding with its similarity score
type ScoredFortEmbedding struct {
	Embedding  *entity.FortEmbedding
	Similarity float64 // cosine similarity, 1.0 = identical
}

// FortEmbeddingRepository is the vector index holding one entry per fort.
type FortEmbeddingRepository interface {
	// Upsert inserts the entries, replacing any entry that already has the same id.
	Upsert(ctx context.Context, embeddings []*entity.FortEmbedding) error
	// SearchSimilarWithScore returns up to limit entries, most similar first.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredFortEmbedding, error)
	Count(ctx context.Context) (int64, error)
}
