package prompt

import (
	"strings"

	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/internal/entity"
)

// Example is one few-shot exchange shown to the model before the live conversation.
type Example struct {
	Human     string
	Assistant string
}

// FewShotBuilder assembles the single completion prompt: persona, few-shot
// examples, optional retrieved context, conversation so far, then the new message.
type FewShotBuilder struct {
	Persona  string
	Examples []Example
}

func NewFewShotBuilder(persona string, examples []Example) *FewShotBuilder {
	return &FewShotBuilder{
		Persona:  persona,
		Examples: examples,
	}
}

// Build is deterministic and never mutates its inputs.
func (b *FewShotBuilder) Build(contextSummary string, history []entity.ConversationTurn, message string) string {
	sections := make([]string, 0, len(b.Examples)+4)

	if b.Persona != "" {
		sections = append(sections, b.Persona)
	}

	for _, ex := range b.Examples {
		sections = append(sections, formatTurn(entity.SenderHuman, ex.Human)+"\n"+formatTurn(entity.SenderAssistant, ex.Assistant))
	}

	if contextSummary != "" {
		sections = append(sections, constant.ContextHeader+"\n"+contextSummary)
	}

	sections = append(sections, b.writeConversation(history))
	sections = append(sections, formatTurn(entity.SenderHuman, message)+"\n"+entity.SenderAssistant+":")

	return strings.Join(sections, "\n\n")
}

func (b *FewShotBuilder) writeConversation(history []entity.ConversationTurn) string {
	var sb strings.Builder
	sb.WriteString(constant.ConversationHeader)
	for _, turn := range history {
		sb.WriteString("\n")
		sb.WriteString(formatTurn(turn.Sender, turn.Message))
	}
	return sb.String()
}

func formatTurn(sender, message string) string {
	return sender + ": " + message
}
