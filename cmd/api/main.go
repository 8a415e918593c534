package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/cv-screener/internal/app"
	"alfredoptarigan/cv-screener/internal/config"
	"alfredoptarigan/cv-screener/internal/handlers"
)

func main() {
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx := context.Background()
	components, err := app.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize services: %v", err)
	}
	defer components.Close()

	uploadHandler := handlers.NewUploadHandler(
		components.Storage,
		components.Batch,
		cfg.Server.DefaultUser,
	)
	candidateHandler := handlers.NewCandidateHandler(
		components.Repo,
		components.Storage,
		components.Index,
		cfg.Server.DefaultUser,
	)
	extractHandler := handlers.NewExtractHandler(components.Engine, cfg.Extraction.MinTextLength)
	log.Println("✅ Handlers initialized")

	server := fiber.New(fiber.Config{
		AppName:      "CV Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 10,
		ErrorHandler: handlers.ErrorHandler,
	})

	server.Use(recover.New())
	server.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID",
	}))

	handlers.SetupRoutes(server, uploadHandler, candidateHandler, extractHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := server.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
