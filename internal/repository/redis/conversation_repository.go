package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/internal/entity"
	"fort-chatbot-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "conversation:"

// ConversationRepository stores each session as a capped Redis list so several
// server instances can share history.
type ConversationRepository struct {
	rdb      *redis.Client
	ttl      time.Duration
	maxTurns int64
}

var _ contract.ConversationRepository = &ConversationRepository{}

func NewConversationRepository(rdb *redis.Client, ttl time.Duration) *ConversationRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ConversationRepository{
		rdb:      rdb,
		ttl:      ttl,
		maxTurns: constant.MaxConversationTurns,
	}
}

func (r *ConversationRepository) Get(ctx context.Context, sessionId string) ([]entity.ConversationTurn, error) {
	raw, err := r.rdb.LRange(ctx, keyPrefix+sessionId, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", sessionId, err)
	}

	turns := make([]entity.ConversationTurn, 0, len(raw))
	for _, item := range raw {
		var turn entity.ConversationTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("decode conversation turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Append pushes, trims and refreshes the TTL in one MULTI/EXEC.
func (r *ConversationRepository) Append(ctx context.Context, sessionId string, sender string, message string) error {
	payload, err := json.Marshal(entity.ConversationTurn{Sender: sender, Message: message})
	if err != nil {
		return err
	}

	key := keyPrefix + sessionId
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.LTrim(ctx, key, -r.maxTurns, -1)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append conversation %s: %w", sessionId, err)
	}
	return nil
}
