package implementation

import (
	"context"
	"fmt"
	"runtime"

	"fort-chatbot-be/internal/entity"
	"fort-chatbot-be/internal/repository/contract"

	"github.com/philippgille/chromem-go"
)

const chromemCollectionName = "maharashtra-forts"

// ChromemFortEmbeddingRepository keeps the index in-process, optionally persisted to disk.
type ChromemFortEmbeddingRepository struct {
	collection *chromem.Collection
}

// NewChromemFortEmbeddingRepository opens the collection at dbPath, or an in-memory one when dbPath is empty.
// embeddingFunc is only used if a document arrives without a vector.
func NewChromemFortEmbeddingRepository(dbPath string, embeddingFunc chromem.EmbeddingFunc) (*ChromemFortEmbeddingRepository, error) {
	db := chromem.NewDB()
	if dbPath != "" {
		var err error
		db, err = chromem.NewPersistentDB(dbPath, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create chromem db: %w", err)
		}
	}

	coll, err := db.GetOrCreateCollection(chromemCollectionName, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s collection: %w", chromemCollectionName, err)
	}

	return &ChromemFortEmbeddingRepository{collection: coll}, nil
}

var _ contract.FortEmbeddingRepository = &ChromemFortEmbeddingRepository{}

func (r *ChromemFortEmbeddingRepository) Upsert(ctx context.Context, embeddings []*entity.FortEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(embeddings))
	for i, e := range embeddings {
		metadata := make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			metadata[k] = v
		}
		docs[i] = chromem.Document{
			ID:        e.Id,
			Metadata:  metadata,
			Embedding: e.EmbeddingValue,
			Content:   e.Document,
		}
	}

	// AddDocuments overwrites documents that share an id.
	if err := r.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

func (r *ChromemFortEmbeddingRepository) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredFortEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}
	// chromem rejects nResults larger than the collection.
	if count := r.collection.Count(); limit > count {
		limit = count
	}
	if limit == 0 {
		return []*contract.ScoredFortEmbedding{}, nil
	}

	results, err := r.collection.QueryEmbedding(ctx, embedding, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query forts: %w", err)
	}

	scored := make([]*contract.ScoredFortEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredFortEmbedding{
			Embedding: &entity.FortEmbedding{
				Id:             res.ID,
				Document:       res.Content,
				EmbeddingValue: res.Embedding,
				Metadata:       res.Metadata,
			},
			Similarity: float64(res.Similarity),
		}
	}
	return scored, nil
}

func (r *ChromemFortEmbeddingRepository) Count(ctx context.Context) (int64, error) {
	return int64(r.collection.Count()), nil
}
