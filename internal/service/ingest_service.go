package service

import (
	"context"
	"encoding/json"

	"fort-chatbot-be/internal/dto"
	"fort-chatbot-be/internal/entity"
	"fort-chatbot-be/internal/pkg/logger"
	"fort-chatbot-be/pkg/ingest"
)

type IIngestService interface {
	Run(ctx context.Context, forts []entity.Fort) (*dto.IngestSummary, error)
}

type ingestService struct {
	publisher IPublisherService
	consumer  IConsumerService
	batchSize int
	logger    logger.ILogger
}

func NewIngestService(
	publisher IPublisherService,
	consumer IConsumerService,
	batchSize int,
	logger logger.ILogger,
) IIngestService {
	return &ingestService{
		publisher: publisher,
		consumer:  consumer,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run publishes the dataset in batches and waits until the consumer has
// reported every published batch. Failed batches are counted, not returned.
func (is *ingestService) Run(ctx context.Context, forts []entity.Fort) (*dto.IngestSummary, error) {
	summary := &dto.IngestSummary{Records: len(forts)}
	if len(forts) == 0 {
		is.logger.Info("IngestService", "No records to ingest", nil)
		return summary, nil
	}

	results, err := is.consumer.Consume(ctx)
	if err != nil {
		return nil, err
	}

	batches := ingest.Batches(forts, is.batchSize)
	summary.Batches = len(batches)

	pending := 0
	for _, batch := range batches {
		payload, err := json.Marshal(batch)
		if err != nil {
			return nil, err
		}
		if err := is.publisher.Publish(ctx, payload); err != nil {
			is.logger.Error("IngestService", "Failed to publish batch", map[string]interface{}{
				"offset": batch.Offset,
				"error":  err,
			})
			summary.Failed++
			continue
		}
		pending++
	}

	for pending > 0 {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		case result, ok := <-results:
			if !ok {
				return summary, ctx.Err()
			}
			pending--
			if result.Err != nil {
				summary.Failed++
				continue
			}
			summary.Succeeded++
			summary.Upserted += result.Upserted
		}
	}

	return summary, nil
}
