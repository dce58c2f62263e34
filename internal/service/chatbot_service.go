package service

import (
	"context"
	"errors"

	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/internal/dto"
	"fort-chatbot-be/internal/entity"
	"fort-chatbot-be/internal/pkg/logger"
	"fort-chatbot-be/internal/pkg/serverutils"
	"fort-chatbot-be/internal/repository/contract"
	"fort-chatbot-be/pkg/llm"
	"fort-chatbot-be/pkg/rag/prompt"
	"fort-chatbot-be/pkg/rag/response"
	"fort-chatbot-be/pkg/rag/retrieval"
)

// generationOptions are the sampling and safety settings every reply is generated with.
var generationOptions = []llm.Option{
	llm.WithTemperature(0.7),
	llm.WithTopP(0.9),
	llm.WithTopK(40),
	llm.WithMaxTokens(2048),
	llm.WithSafetySettings(llm.DefaultSafetySettings()),
}

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	SendChat(ctx context.Context, sessionId string, request *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatbotService struct {
	retriever        *retrieval.Retriever
	promptBuilder    *prompt.FewShotBuilder
	llmProvider      llm.LLMProvider
	conversationRepo contract.ConversationRepository
	topK             int

	logger    logger.ILogger
	llmLogger logger.ILogger // full prompts and raw completions only
}

func NewChatbotService(
	retriever *retrieval.Retriever,
	promptBuilder *prompt.FewShotBuilder,
	llmProvider llm.LLMProvider,
	conversationRepo contract.ConversationRepository,
	topK int,
	logger logger.ILogger,
	llmLogger logger.ILogger,
) IChatbotService {
	return &chatbotService{
		retriever:        retriever,
		promptBuilder:    promptBuilder,
		llmProvider:      llmProvider,
		conversationRepo: conversationRepo,
		topK:             topK,
		logger:           logger,
		llmLogger:        llmLogger,
	}
}

// SendChat answers one message: retrieval, prompt assembly, completion,
// post-processing, then the history update. The reply stored in history is
// cleaned but not formatted.
func (cs *chatbotService) SendChat(ctx context.Context, sessionId string, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	history, err := cs.conversationRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, serverutils.NewInternalError("failed to load conversation", err)
	}

	contextSummary := cs.retrieveContext(ctx, request.Message)
	promptText := cs.promptBuilder.Build(contextSummary, history, request.Message)

	cs.llmLogger.Info("ChatbotService", "Prompt assembled", map[string]interface{}{
		"session_id":  sessionId,
		"has_context": contextSummary != "",
		"history_len": len(history),
		"prompt":      promptText,
	})

	raw, err := cs.llmProvider.Generate(ctx, promptText, generationOptions...)
	if err != nil {
		cs.logger.Error("ChatbotService", "Completion failed, sending fallback reply", map[string]interface{}{
			"session_id": sessionId,
			"error":      err,
			"blocked":    errors.Is(err, llm.ErrBlocked),
			"retryable":  llm.IsRetryable(err),
		})
		raw = constant.FallbackReply
	}

	cs.llmLogger.Info("ChatbotService", "Completion received", map[string]interface{}{
		"session_id": sessionId,
		"output":     raw,
	})

	cleaned := response.Clean(raw)
	formatted := response.Format(cleaned)

	if err := cs.conversationRepo.Append(ctx, sessionId, entity.SenderHuman, request.Message); err != nil {
		return nil, serverutils.NewInternalError("failed to update conversation", err)
	}
	if err := cs.conversationRepo.Append(ctx, sessionId, entity.SenderAssistant, cleaned); err != nil {
		return nil, serverutils.NewInternalError("failed to update conversation", err)
	}

	return &dto.ChatResponse{Response: formatted}, nil
}

// retrieveContext returns the fort summary for the message, or "" when the
// message is off-topic or retrieval fails.
func (cs *chatbotService) retrieveContext(ctx context.Context, message string) string {
	if !cs.retriever.IsRelevant(message) {
		return ""
	}

	items, err := cs.retriever.Retrieve(ctx, message, cs.topK)
	if err != nil {
		cs.logger.Warn("ChatbotService", "Retrieval failed, answering without context", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}

	return retrieval.Summarize(items, retrieval.DefaultSummaryLimit)
}
