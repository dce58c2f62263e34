package implementation

import (
	"context"

	"fort-chatbot-be/internal/entity"
	"fort-chatbot-be/internal/mapper"
	"fort-chatbot-be/internal/model"
	"fort-chatbot-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FortEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FortEmbeddingMapper
}

func NewFortEmbeddingRepository(db *gorm.DB) contract.FortEmbeddingRepository {
	return &FortEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewFortEmbeddingMapper(),
	}
}

func (r *FortEmbeddingRepositoryImpl) Upsert(ctx context.Context, embeddings []*entity.FortEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	models := r.mapper.ToModels(embeddings)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "embedding_value", "metadata", "updated_at"}),
		}).
		Create(models).Error
}

// SearchSimilarWithScore returns embeddings with similarity scores, best first
func (r *FortEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredFortEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding_value <=> query_vector) = cosine_similarity
	type result struct {
		model.FortEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("fort_embeddings").
		Select("fort_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredFortEmbedding, len(results))
	for i := range results {
		scored[i] = &contract.ScoredFortEmbedding{
			Embedding:  r.mapper.ToEntity(&results[i].FortEmbedding),
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}

func (r *FortEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FortEmbedding{}).Count(&count).Error
	return count, err
}
