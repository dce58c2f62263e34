package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fort-chatbot-be/pkg/llm"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"

	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

type GeminiProvider struct {
	ApiKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &GeminiProvider{
		ApiKey:    apiKey,
		ModelName: modelName,
		BaseURL:   DefaultBaseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type geminiChatParts struct {
	Text string `json:"text"`
}

type geminiChatContent struct {
	Parts []*geminiChatParts `json:"parts"`
	Role  string             `json:"role,omitempty"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiChatRequest struct {
	Contents         []*geminiChatContent    `json:"contents"`
	SafetySettings   []geminiSafetySetting   `json:"safetySettings,omitempty"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiChatCandidate struct {
	Content      *geminiChatContent `json:"content"`
	FinishReason string             `json:"finishReason"`
}

type geminiPromptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type geminiChatResponse struct {
	Candidates     []*geminiChatCandidate `json:"candidates"`
	PromptFeedback *geminiPromptFeedback  `json:"promptFeedback"`
}

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(opts...)

	contents := make([]*geminiChatContent, 0, len(history))
	for _, msg := range history {
		role := ChatMessageRoleUser
		if msg.Role == "assistant" || msg.Role == ChatMessageRoleModel {
			role = ChatMessageRoleModel
		}
		contents = append(contents, &geminiChatContent{
			Parts: []*geminiChatParts{{Text: msg.Content}},
			Role:  role,
		})
	}

	payload := geminiChatRequest{
		Contents: contents,
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     options.Temperature,
			TopP:            options.TopP,
			TopK:            options.TopK,
			MaxOutputTokens: options.MaxTokens,
		},
	}
	for _, s := range options.Safety {
		payload.SafetySettings = append(payload.SafetySettings, geminiSafetySetting{
			Category:  s.Category,
			Threshold: s.Threshold,
		})
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return "", &llm.ProviderError{Provider: "gemini", Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &llm.ProviderError{Provider: "gemini", Err: err}
	}

	if res.StatusCode != http.StatusOK {
		return "", &llm.ProviderError{
			Provider:   "gemini",
			StatusCode: res.StatusCode,
			Body:       string(resBody),
		}
	}

	var geminiRes geminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if geminiRes.PromptFeedback != nil && geminiRes.PromptFeedback.BlockReason != "" {
		return "", &llm.BlockedError{Reason: geminiRes.PromptFeedback.BlockReason}
	}
	if len(geminiRes.Candidates) == 0 {
		return "", llm.ErrEmptyResponse
	}

	candidate := geminiRes.Candidates[0]
	if candidate.FinishReason == "SAFETY" || candidate.FinishReason == "PROHIBITED_CONTENT" {
		return "", &llm.BlockedError{Reason: candidate.FinishReason}
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", llm.ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", llm.ErrEmptyResponse
	}

	return text.String(), nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: ChatMessageRoleUser, Content: prompt}}, opts...)
}

// ModelInfo describes one model exposed by the API key.
type ModelInfo struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// SupportsGenerateContent reports whether the model can be used for chat replies.
func (m ModelInfo) SupportsGenerateContent() bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}

type listModelsResponse struct {
	Models        []ModelInfo `json:"models"`
	NextPageToken string      `json:"nextPageToken"`
}

// ListModels pages through every model visible to the API key.
func (g *GeminiProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	pageToken := ""

	for {
		query := url.Values{}
		query.Set("pageSize", "100")
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/models?"+query.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-goog-api-key", g.ApiKey)

		res, err := g.Client.Do(req)
		if err != nil {
			return nil, &llm.ProviderError{Provider: "gemini", Err: err}
		}
		body, err := io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			return nil, &llm.ProviderError{Provider: "gemini", Err: err}
		}
		if res.StatusCode != http.StatusOK {
			return nil, &llm.ProviderError{Provider: "gemini", StatusCode: res.StatusCode, Body: string(body)}
		}

		var page listModelsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("unmarshal models: %w", err)
		}
		models = append(models, page.Models...)

		if page.NextPageToken == "" {
			return models, nil
		}
		pageToken = page.NextPageToken
	}
}
