package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"fort-chatbot-be/internal/entity"
	"fort-chatbot-be/internal/pkg/logger"
	"fort-chatbot-be/internal/repository/implementation"
	"fort-chatbot-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "INGEST_FORT_BATCH_TEST"

// flakyEmbedder fails for any document containing failOn.
type flakyEmbedder struct {
	failOn string
}

func (f *flakyEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, errors.New("quota exceeded")
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}}}, nil
}

func makeForts(n int) []entity.Fort {
	forts := make([]entity.Fort, n)
	for i := range forts {
		forts[i] = entity.Fort{
			Name:    fmt.Sprintf("Fort %03d", i),
			Title:   fmt.Sprintf("Fort %03d title", i),
			Summary: "A hill fort",
		}
	}
	return forts
}

func newIngestService(t *testing.T, embedder embedding.EmbeddingProvider, batchSize int) (IIngestService, *implementation.ChromemFortEmbeddingRepository) {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	index, err := implementation.NewChromemFortEmbeddingRepository("", nil)
	require.NoError(t, err)

	nop := logger.NewNopLogger()
	svc := NewIngestService(
		NewPublisherService(testTopic, pubSub),
		NewConsumerService(pubSub, testTopic, embedder, index, nop),
		batchSize,
		nop,
	)
	return svc, index
}

func TestIngestService_Run(t *testing.T) {
	svc, index := newIngestService(t, &flakyEmbedder{}, 50)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summary, err := svc.Run(ctx, makeForts(120))
	require.NoError(t, err)

	assert.Equal(t, 120, summary.Records)
	assert.Equal(t, 3, summary.Batches)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 120, summary.Upserted)

	count, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(120), count)
}

func TestIngestService_FailedBatchIsSkipped(t *testing.T) {
	// Fort 060 sits in the second batch of 50.
	svc, index := newIngestService(t, &flakyEmbedder{failOn: "Fort 060"}, 50)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summary, err := svc.Run(ctx, makeForts(120))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 70, summary.Upserted)

	count, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(70), count)
}

func TestIngestService_EmptyInput(t *testing.T) {
	svc, _ := newIngestService(t, &flakyEmbedder{}, 50)

	summary, err := svc.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Batches)
	assert.Equal(t, 0, summary.Records)
}
