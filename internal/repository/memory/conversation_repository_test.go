package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"fort-chatbot-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUnknownSession(t *testing.T) {
	repo := NewConversationRepository(time.Hour)
	turns, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestAppendKeepsMostRecentTen(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(time.Hour)

	for n := 1; n <= 25; n++ {
		require.NoError(t, repo.Append(ctx, "s1", entity.SenderHuman, fmt.Sprintf("m%d", n)))

		turns, err := repo.Get(ctx, "s1")
		require.NoError(t, err)

		want := n
		if want > 10 {
			want = 10
		}
		require.Len(t, turns, want)
		// always the latest turns, in original order
		for i, turn := range turns {
			assert.Equal(t, fmt.Sprintf("m%d", n-want+i+1), turn.Message)
		}
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(time.Hour)

	require.NoError(t, repo.Append(ctx, "a", entity.SenderHuman, "hello"))
	require.NoError(t, repo.Append(ctx, "b", entity.SenderHuman, "hi"))
	require.NoError(t, repo.Append(ctx, "b", entity.SenderAssistant, "welcome"))

	a, _ := repo.Get(ctx, "a")
	b, _ := repo.Get(ctx, "b")
	assert.Len(t, a, 1)
	assert.Equal(t, []entity.ConversationTurn{
		{Sender: entity.SenderHuman, Message: "hi"},
		{Sender: entity.SenderAssistant, Message: "welcome"},
	}, b)
	assert.Equal(t, 2, repo.Len())
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(time.Hour)
	require.NoError(t, repo.Append(ctx, "s", entity.SenderHuman, "original"))

	turns, _ := repo.Get(ctx, "s")
	turns[0].Message = "mutated"

	again, _ := repo.Get(ctx, "s")
	assert.Equal(t, "original", again[0].Message)
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(20 * time.Millisecond)
	require.NoError(t, repo.Append(ctx, "s", entity.SenderHuman, "hello"))

	time.Sleep(50 * time.Millisecond)

	turns, err := repo.Get(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestConcurrentAppendsDoNotLoseTurns(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Append(ctx, "shared", entity.SenderHuman, fmt.Sprintf("m%d", i))
		}(i)
	}
	wg.Wait()

	turns, err := repo.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, turns, 8)
}
