package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"fort-chatbot-be/internal/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Skipping integration test: redis unreachable: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisConversationRepository(t *testing.T) {
	ctx := context.Background()
	rdb := newTestClient(t)
	repo := NewConversationRepository(rdb, time.Minute)

	session := uuid.NewString()
	t.Cleanup(func() { rdb.Del(ctx, keyPrefix+session) })

	turns, err := repo.Get(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, turns)

	for i := 1; i <= 12; i++ {
		require.NoError(t, repo.Append(ctx, session, entity.SenderHuman, fmt.Sprintf("m%d", i)))
	}

	turns, err = repo.Get(ctx, session)
	require.NoError(t, err)
	require.Len(t, turns, 10)
	assert.Equal(t, "m3", turns[0].Message)
	assert.Equal(t, "m12", turns[9].Message)

	ttl, err := rdb.TTL(ctx, keyPrefix+session).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
