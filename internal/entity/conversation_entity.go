package entity

const (
	SenderHuman     = "Human"
	SenderAssistant = "Assistant"
)

type ConversationTurn struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}
