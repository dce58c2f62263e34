package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/internal/dto"
	"fort-chatbot-be/internal/entity"
	"fort-chatbot-be/internal/pkg/logger"
	"fort-chatbot-be/internal/repository/contract"
	"fort-chatbot-be/pkg/embedding"
	"fort-chatbot-be/pkg/ingest"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	// Consume subscribes to the batch topic and reports every processed batch on the returned channel.
	Consume(ctx context.Context) (<-chan dto.IngestBatchResult, error)
}

type consumerService struct {
	subscriber        message.Subscriber
	topicName         string
	embeddingProvider embedding.EmbeddingProvider
	index             contract.FortEmbeddingRepository
	logger            logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	embeddingProvider embedding.EmbeddingProvider,
	index contract.FortEmbeddingRepository,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:        subscriber,
		topicName:         topicName,
		embeddingProvider: embeddingProvider,
		index:             index,
		logger:            logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) (<-chan dto.IngestBatchResult, error) {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return nil, err
	}

	results := make(chan dto.IngestBatchResult, 16)
	go func() {
		defer close(results)
		for msg := range messages {
			result := cs.processMessage(ctx, msg)
			select {
			case results <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return results, nil
}

// processMessage always acks: a failed batch is logged with its metadata and skipped, never retried.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) dto.IngestBatchResult {
	defer msg.Ack()

	var batch ingest.Batch
	if err := json.Unmarshal(msg.Payload, &batch); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal batch", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		return dto.IngestBatchResult{Offset: -1, Err: err}
	}

	result := dto.IngestBatchResult{Offset: batch.Offset, Size: len(batch.Forts)}

	embeddings, err := cs.embedBatch(ctx, batch)
	if err == nil {
		err = cs.index.Upsert(ctx, embeddings)
	}
	if err != nil {
		cs.logger.Error("ConsumerService", "Batch skipped", map[string]interface{}{
			"offset":   batch.Offset,
			"ids":      batch.IDs(),
			"metadata": batchMetadata(batch),
			"error":    err,
		})
		result.Err = err
		return result
	}

	result.Upserted = len(embeddings)
	cs.logger.Info("ConsumerService", fmt.Sprintf("Upserted batch at offset %d", batch.Offset), map[string]interface{}{
		"offset": batch.Offset,
		"count":  len(embeddings),
	})
	return result
}

func (cs *consumerService) embedBatch(ctx context.Context, batch ingest.Batch) ([]*entity.FortEmbedding, error) {
	ids := batch.IDs()
	embeddings := make([]*entity.FortEmbedding, 0, len(batch.Forts))

	for i, fort := range batch.Forts {
		document := ingest.CombineText(fort)

		start := time.Now()
		res, err := cs.embeddingProvider.Generate(ctx, document, constant.TaskTypeRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("embed record %s: %w", ids[i], err)
		}
		cs.logger.Debug("ConsumerService", "Embedded record", map[string]interface{}{
			"id":       ids[i],
			"duration": time.Since(start).String(),
		})

		embeddings = append(embeddings, &entity.FortEmbedding{
			Id:             ids[i],
			Document:       document,
			EmbeddingValue: res.Embedding.Values,
			Metadata:       ingest.CleanMetadata(fort),
		})
	}
	return embeddings, nil
}

func batchMetadata(batch ingest.Batch) []map[string]string {
	metadata := make([]map[string]string, len(batch.Forts))
	for i, fort := range batch.Forts {
		metadata[i] = ingest.CleanMetadata(fort)
	}
	return metadata
}
