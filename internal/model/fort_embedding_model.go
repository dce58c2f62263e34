package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type FortEmbedding struct {
	Id             string            `gorm:"type:text;primaryKey"` // position of the fort in the dataset
	Document       string            `gorm:"type:text"`
	EmbeddingValue pgvector.Vector   `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime"`
}

func (FortEmbedding) TableName() string {
	return "fort_embeddings"
}
