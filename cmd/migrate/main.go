package main

import (
	"log"
	"os"

	"fort-chatbot-be/internal/model"
	"fort-chatbot-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Pre-Migration: the vector type must exist before AutoMigrate creates the column
	log.Println("Step 1: Enabling pgvector extension...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
		log.Fatalf("Error: Failed to enable pgvector: %v", err)
	}

	// 4. AutoMigrate
	log.Println("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.FortEmbedding{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: ANN index for cosine distance
	log.Println("Step 3: Creating HNSW index...")
	indexSQL := `CREATE INDEX IF NOT EXISTS fort_embeddings_embedding_value_idx
		ON fort_embeddings USING hnsw (embedding_value vector_cosine_ops);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warn: Failed to create HNSW index: %v. Searches fall back to a sequential scan.", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
