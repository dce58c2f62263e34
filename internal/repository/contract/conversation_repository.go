package contract

import (
	"context"

	"fort-chatbot-be/internal/entity"
)

// ConversationRepository keeps the bounded turn history of each session.
type ConversationRepository interface {
	// Get returns the session's turns oldest first; an unknown session has none.
	Get(ctx context.Context, sessionId string) ([]entity.ConversationTurn, error)
	// Append adds one turn and evicts the oldest turns beyond the history limit.
	Append(ctx context.Context, sessionId string, sender string, message string) error
}
