package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fort-chatbot-be/internal/bootstrap"
	"fort-chatbot-be/internal/config"
	"fort-chatbot-be/internal/server"
	"fort-chatbot-be/internal/tracer"
	"fort-chatbot-be/pkg/database"
)

func main() {
	// 1. Load Configuration (.env included)
	cfg := config.Load()

	// 2. Initialize Tracer (no-op unless tracing is enabled)
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewOptionalGormDB(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
