package factory

import (
	"fmt"

	"fort-chatbot-be/pkg/llm"
	"fort-chatbot-be/pkg/llm/gemini"
	"fort-chatbot-be/pkg/llm/ollama"
	"fort-chatbot-be/pkg/llm/openai"
)

type Params struct {
	Provider      string
	Model         string
	OllamaBaseURL string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
}

func NewLLMProvider(p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "gemini", "":
		if p.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(p.GeminiAPIKey, p.Model), nil
	case "ollama":
		baseURL := p.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, p.Model), nil
	case "openai":
		return openai.NewOpenAIProvider(p.OpenAIAPIKey, p.OpenAIBaseURL, p.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}
