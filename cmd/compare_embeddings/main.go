package main

import (
	"context"
	"fmt"
	"log"
	"math"

	"fort-chatbot-be/internal/config"
	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/pkg/embedding"

	"github.com/fatih/color"
)

// CosineSimilarity calculates similarity between two vectors
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Compares how well each embedding provider separates a fort query from an off-topic one.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	providers := map[string]embedding.EmbeddingProvider{
		"OLLAMA": embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel),
	}
	if cfg.Keys.GoogleGemini != "" {
		providers["GEMINI"] = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel)
	}

	document := "Raigad | Raigad Fort | Hill fort near Mahad that served as the capital of the Maratha empire"
	related := "Which fort was the Maratha capital?"
	unrelated := "What's the weather today?"

	for name, p := range providers {
		color.Cyan("\n[%s] Generating...", name)

		doc, err := p.Generate(ctx, document, constant.TaskTypeRetrievalDocument)
		if err != nil {
			log.Printf("Error %s (document): %v", name, err)
			continue
		}
		q1, err := p.Generate(ctx, related, constant.TaskTypeRetrievalQuery)
		if err != nil {
			log.Printf("Error %s (related query): %v", name, err)
			continue
		}
		q2, err := p.Generate(ctx, unrelated, constant.TaskTypeRetrievalQuery)
		if err != nil {
			log.Printf("Error %s (unrelated query): %v", name, err)
			continue
		}

		simRelated := CosineSimilarity(doc.Embedding.Values, q1.Embedding.Values)
		simUnrelated := CosineSimilarity(doc.Embedding.Values, q2.Embedding.Values)

		fmt.Printf("[%s] (%d dims)\n", name, len(doc.Embedding.Values))
		fmt.Printf("Similarity (fort query):      %.4f\n", simRelated)
		fmt.Printf("Similarity (off-topic query): %.4f\n", simUnrelated)
		if simRelated > simUnrelated {
			color.Green("[%s] separates the queries", name)
		} else {
			color.Red("[%s] ranks the off-topic query higher", name)
		}
	}
}
