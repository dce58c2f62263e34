package mapper

import (
	"fmt"

	"fort-chatbot-be/internal/entity"
	"fort-chatbot-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type FortEmbeddingMapper struct{}

func NewFortEmbeddingMapper() *FortEmbeddingMapper {
	return &FortEmbeddingMapper{}
}

func (m *FortEmbeddingMapper) ToEntity(e *model.FortEmbedding) *entity.FortEmbedding {
	if e == nil {
		return nil
	}

	metadata := make(map[string]string, len(e.Metadata))
	for k, v := range e.Metadata {
		if s, ok := v.(string); ok {
			metadata[k] = s
		} else {
			metadata[k] = fmt.Sprint(v)
		}
	}

	return &entity.FortEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		Metadata:       metadata,
	}
}

func (m *FortEmbeddingMapper) ToModel(e *entity.FortEmbedding) *model.FortEmbedding {
	if e == nil {
		return nil
	}

	metadata := make(datatypes.JSONMap, len(e.Metadata))
	for k, v := range e.Metadata {
		metadata[k] = v
	}

	return &model.FortEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		Metadata:       metadata,
	}
}

func (m *FortEmbeddingMapper) ToModels(embeddings []*entity.FortEmbedding) []*model.FortEmbedding {
	models := make([]*model.FortEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
