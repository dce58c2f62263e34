package memory

import (
	"context"
	"sync"
	"time"

	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/internal/entity"
	"fort-chatbot-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// ConversationRepository keeps session histories in process memory.
// A session expires after ttl without new turns.
type ConversationRepository struct {
	cache    *cache.Cache
	mu       sync.Mutex
	maxTurns int
}

var _ contract.ConversationRepository = &ConversationRepository{}

func NewConversationRepository(ttl time.Duration) *ConversationRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	// Expired sessions are purged every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &ConversationRepository{
		cache:    c,
		maxTurns: constant.MaxConversationTurns,
	}
}

func (r *ConversationRepository) Get(ctx context.Context, sessionId string) ([]entity.ConversationTurn, error) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return []entity.ConversationTurn{}, nil
	}
	turns := x.([]entity.ConversationTurn)

	// Callers get their own copy; the cached slice is shared.
	out := make([]entity.ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (r *ConversationRepository) Append(ctx context.Context, sessionId string, sender string, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var turns []entity.ConversationTurn
	if x, found := r.cache.Get(sessionId); found {
		turns = x.([]entity.ConversationTurn)
	}

	next := make([]entity.ConversationTurn, 0, len(turns)+1)
	next = append(next, turns...)
	next = append(next, entity.ConversationTurn{Sender: sender, Message: message})
	if len(next) > r.maxTurns {
		next = next[len(next)-r.maxTurns:]
	}

	r.cache.Set(sessionId, next, cache.DefaultExpiration)
	return nil
}

// Len reports how many sessions are currently held.
func (r *ConversationRepository) Len() int {
	return r.cache.ItemCount()
}
