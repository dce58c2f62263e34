package main

import (
	"context"
	"os"
	"time"

	"fort-chatbot-be/internal/config"
	"fort-chatbot-be/pkg/llm/gemini"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	if cfg.Keys.GoogleGemini == "" {
		color.Red("GOOGLE_GEMINI_API_KEY is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provider := gemini.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.LLMModel)
	models, err := provider.ListModels(ctx)
	if err != nil {
		color.Red("Failed to list models: %v", err)
		os.Exit(1)
	}

	color.Cyan("Models available to this key that support generateContent:\n")
	count := 0
	for _, m := range models {
		if !m.SupportsGenerateContent() {
			continue
		}
		count++
		if m.Name == "models/"+cfg.Ai.LLMModel {
			color.Green("* %s (%s)  <- configured", m.Name, m.DisplayName)
			continue
		}
		color.White("  %s (%s)", m.Name, m.DisplayName)
	}
	color.Yellow("\n%d of %d models support generateContent", count, len(models))
}
