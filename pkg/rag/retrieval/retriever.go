package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/internal/pkg/logger"
	"fort-chatbot-be/internal/repository/contract"
	"fort-chatbot-be/pkg/embedding"
)

const (
	DefaultTopK         = 5
	DefaultSummaryLimit = 3
	summaryRuneLimit    = 100
)

// ErrRetrieval marks a failed embedding or index call. These are I/O failures and may succeed on retry.
var ErrRetrieval = errors.New("retrieval failed")

// ContextItem is one retrieved fort: its stored metadata plus the similarity score, all as text.
type ContextItem struct {
	Metadata map[string]string
	Score    float64
}

// Field returns the metadata value or "N/A" when absent.
func (c ContextItem) Field(key string) string {
	if v, ok := c.Metadata[key]; ok && v != "" {
		return v
	}
	return constant.MetadataNotAvailable
}

// Retriever decides whether a query needs fort context and fetches it from the vector index.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	index             contract.FortEmbeddingRepository
	keywords          []string
	logger            logger.ILogger
}

func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	index contract.FortEmbeddingRepository,
	logger logger.ILogger,
) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		index:             index,
		keywords:          constant.FortKeywords,
		logger:            logger,
	}
}

// IsRelevant is a cheap keyword pre-filter. False negatives only cost the answer its context.
func (r *Retriever) IsRelevant(query string) bool {
	return IsRelevant(query, r.keywords)
}

func IsRelevant(query string, keywords []string) bool {
	q := strings.ToLower(query)
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Retrieve embeds the query and returns the topK nearest forts, best first.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]ContextItem, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	embeddingRes, err := r.embeddingProvider.Generate(ctx, query, constant.TaskTypeRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %w", ErrRetrieval, err)
	}

	scored, err := r.index.SearchSimilarWithScore(ctx, embeddingRes.Embedding.Values, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: query index: %w", ErrRetrieval, err)
	}

	items := make([]ContextItem, 0, len(scored))
	for _, res := range scored {
		metadata := make(map[string]string, len(res.Embedding.Metadata)+1)
		for k, v := range res.Embedding.Metadata {
			metadata[k] = v
		}
		metadata["score"] = strconv.FormatFloat(res.Similarity, 'f', -1, 64)

		items = append(items, ContextItem{Metadata: metadata, Score: res.Similarity})
	}

	r.logger.Debug("Retriever", "Retrieved fort context", map[string]interface{}{
		"query":   query,
		"matches": len(items),
	})
	return items, nil
}

// Summarize condenses the first limit items into one line each:
// "name (Title: title, Summary: first 100 chars...)", joined by ". ".
func Summarize(items []ContextItem, limit int) string {
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}
	if len(items) > limit {
		items = items[:limit]
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (Title: %s, Summary: %s...)",
			item.Field("name"),
			item.Field("title"),
			truncateRunes(item.Field("summary"), summaryRuneLimit),
		))
	}
	return strings.Join(parts, ". ")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
