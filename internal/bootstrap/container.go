package bootstrap

import (
	"context"
	"log"

	"fort-chatbot-be/internal/config"
	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/internal/controller"
	"fort-chatbot-be/internal/pkg/logger"
	"fort-chatbot-be/internal/repository/contract"
	"fort-chatbot-be/internal/repository/implementation"
	"fort-chatbot-be/internal/repository/memory"
	redisRepo "fort-chatbot-be/internal/repository/redis"
	"fort-chatbot-be/internal/service"
	"fort-chatbot-be/pkg/embedding"
	"fort-chatbot-be/pkg/llm/factory"
	"fort-chatbot-be/pkg/rag/prompt"
	"fort-chatbot-be/pkg/rag/retrieval"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController

	// Background Services (Exposed for main.go to run)
	IngestService service.IIngestService

	Logger logger.ILogger

	closers []func() error
}

// Close releases the connections opened by the container.
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			log.Printf("[WARN] Failed to close resource: %v", err)
		}
	}
}

// NewContainer wires the chat server. db may be nil when VECTOR_STORE=chromem.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)
	container := &Container{Logger: sysLogger}

	prompts, err := config.LoadPrompts(cfg.App.PromptsFile)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load prompts: %v", err)
	}

	// 2. Providers
	embeddingProvider := newEmbeddingProvider(cfg)

	llmProvider, err := factory.NewLLMProvider(factory.Params{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
		OpenAIAPIKey:  cfg.Keys.OpenAI,
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Storage
	index := newFortIndex(db, cfg, embeddingProvider)
	conversationRepo := newConversationRepository(cfg, container)

	// 4. Services
	examples := make([]prompt.Example, 0, len(prompts.Examples))
	for _, ex := range prompts.Examples {
		examples = append(examples, prompt.Example{Human: ex.Human, Assistant: ex.Assistant})
	}

	chatbotService := service.NewChatbotService(
		retrieval.NewRetriever(embeddingProvider, index, sysLogger),
		prompt.NewFewShotBuilder(prompts.Context, examples),
		llmProvider,
		conversationRepo,
		cfg.Ai.TopK,
		sysLogger,
		llmLogger,
	)

	// 5. Controllers
	container.ChatbotController = controller.NewChatbotController(chatbotService)
	container.closers = append(container.closers, llmLogger.Sync, syncIgnoringStdout(sysLogger))
	return container
}

// NewIngestContainer wires only what the ingestion job needs: embeddings, the index and the event bus.
func NewIngestContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	container := &Container{Logger: sysLogger}

	embeddingProvider := newEmbeddingProvider(cfg)
	index := newFortIndex(db, cfg, embeddingProvider)

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	publisherService := service.NewPublisherService(cfg.Ingest.Topic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ingest.Topic,
		embeddingProvider,
		index,
		sysLogger,
	)

	container.IngestService = service.NewIngestService(publisherService, consumerService, cfg.Ingest.BatchSize, sysLogger)
	container.closers = append(container.closers, pubSub.Close, syncIgnoringStdout(sysLogger))
	return container
}

func newEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	if cfg.Ai.EmbeddingProvider == "ollama" {
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	}

	if cfg.Keys.GoogleGemini == "" {
		log.Fatalf("[FATAL] GOOGLE_GEMINI_API_KEY is required for the gemini embedding provider")
	}
	log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
	return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel)
}

func newFortIndex(db *gorm.DB, cfg *config.Config, embeddingProvider embedding.EmbeddingProvider) contract.FortEmbeddingRepository {
	if cfg.Ai.VectorStore == "chromem" {
		index, err := implementation.NewChromemFortEmbeddingRepository(
			cfg.Ai.ChromemPath,
			embedding.ChromemFunc(embeddingProvider, constant.TaskTypeRetrievalDocument),
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to open chromem index: %v", err)
		}
		log.Printf("[INFO] Using Vector Store: CHROMEM (%s)", cfg.Ai.ChromemPath)
		return index
	}

	if db == nil {
		log.Fatalf("[FATAL] DB_CONNECTION_STRING is required for the pgvector store")
	}
	log.Printf("[INFO] Using Vector Store: PGVECTOR")
	return implementation.NewFortEmbeddingRepository(db)
}

func newConversationRepository(cfg *config.Config, container *Container) contract.ConversationRepository {
	if cfg.Conversation.Store != "redis" {
		return memory.NewConversationRepository(cfg.Conversation.SessionTTL)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	container.closers = append(container.closers, rdb.Close)

	log.Printf("[INFO] Using Conversation Store: REDIS")
	return redisRepo.NewConversationRepository(rdb, cfg.Conversation.SessionTTL)
}

// syncIgnoringStdout flushes the file core; syncing a terminal stdout fails on most platforms and is not an error here.
func syncIgnoringStdout(l logger.ILogger) func() error {
	return func() error {
		_ = l.Sync()
		return nil
	}
}
