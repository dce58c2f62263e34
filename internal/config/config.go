package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Keys         APIKeys
	Ai           AIConfig
	Conversation ConversationConfig
	Ingest       IngestConfig
	Tracing      TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LLMLogFilePath     string
	CorsAllowedOrigins string
	RedisURL           string
	FrontendDir        string
	PromptsFile        string
	RateLimitPerMinute int
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "gemini", "ollama" or "openai"
	LLMModel          string
	OpenAIBaseURL     string
	VectorStore       string // "pgvector" or "chromem"
	ChromemPath       string // empty keeps the chromem collection in memory
	TopK              int
}

type ConversationConfig struct {
	Store      string // "memory" or "redis"
	SessionTTL time.Duration
}

type IngestConfig struct {
	FortsFile string
	BatchSize int
	Topic     string
}

// TracingConfig drives the OTLP exporter; Endpoint may carry an http:// or https:// scheme.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm_rag.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			FrontendDir:        getEnv("FRONTEND_DIR", "./frontend"),
			PromptsFile:        getEnv("PROMPTS_FILE", "inputs/prompts.json"),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 500),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-2.0-flash"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			VectorStore:       getEnv("VECTOR_STORE", "pgvector"),
			ChromemPath:       getEnv("CHROMEM_PATH", ""),
			TopK:              getEnvAsInt("RETRIEVAL_TOP_K", 5),
		},
		Conversation: ConversationConfig{
			Store:      getEnv("CONVERSATION_STORE", "memory"),
			SessionTTL: getEnvAsDuration("SESSION_TTL", time.Hour),
		},
		Ingest: IngestConfig{
			FortsFile: getEnv("FORTS_FILE", "maharashtra_forts.json"),
			BatchSize: getEnvAsInt("INGEST_BATCH_SIZE", 50),
			Topic:     getEnv("INGEST_TOPIC_NAME", "INGEST_FORT_BATCH"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "fort-chatbot-backend"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
