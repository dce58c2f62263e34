package openai

import (
	"context"
	"errors"

	"fort-chatbot-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to any OpenAI-compatible chat completion endpoint.
type OpenAIProvider struct {
	client    *goopenai.Client
	modelName string
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, modelName string) *OpenAIProvider {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client:    goopenai.NewClientWithConfig(cfg),
		modelName: modelName,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(opts...)

	messages := make([]goopenai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		switch role {
		case "model":
			role = goopenai.ChatMessageRoleAssistant
		case "":
			role = goopenai.ChatMessageRoleUser
		}
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	model := p.modelName
	if options.Model != "" {
		model = options.Model
	}

	// top_k has no OpenAI equivalent and is dropped.
	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
		TopP:        float32(options.TopP),
		MaxTokens:   options.MaxTokens,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", &llm.ProviderError{Provider: "openai", StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
		}
		var reqErr *goopenai.RequestError
		if errors.As(err, &reqErr) {
			return "", &llm.ProviderError{Provider: "openai", StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error(), Err: err}
		}
		return "", &llm.ProviderError{Provider: "openai", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	choice := resp.Choices[0]
	if choice.FinishReason == goopenai.FinishReasonContentFilter {
		return "", &llm.BlockedError{Reason: string(choice.FinishReason)}
	}
	if choice.Message.Content == "" {
		return "", llm.ErrEmptyResponse
	}

	return choice.Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: goopenai.ChatMessageRoleUser, Content: prompt}}, opts...)
}
