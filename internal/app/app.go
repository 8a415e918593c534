package app

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"alfredoptarigan/cv-screener/internal/config"
	"alfredoptarigan/cv-screener/internal/extraction"
	"alfredoptarigan/cv-screener/internal/repositories"
	"alfredoptarigan/cv-screener/internal/services"
)

// Components holds everything the server and the CLI share.
type Components struct {
	DB           *gorm.DB
	Repo         repositories.CandidateRepository
	Storage      services.StorageService
	Engine       *extraction.Engine
	Orchestrator services.Orchestrator
	Batch        services.BatchProcessor
	// Index is nil unless Qdrant is enabled.
	Index services.CandidateIndex
}

// Build connects the database and optional AI and vector services, then wires
// the processing pipeline.
func Build(ctx context.Context, cfg *config.Config) (*Components, error) {
	db, err := config.InitDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	repo := repositories.NewCandidateRepository(db)
	log.Println("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		return nil, err
	}

	engine := extraction.NewEngine()
	prompts := services.NewPromptBuilder()

	var gemini services.GeminiService
	var analyzer services.Analyzer
	if cfg.Gemini.Enabled() {
		gemini, err = services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
		if err != nil {
			return nil, err
		}
		analyzer = services.NewGeminiAnalyzer(gemini, prompts, services.NewTextChunker())
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("ℹ️  GEMINI_API_KEY not set, using heuristic extraction only")
	}

	var index services.CandidateIndex
	if cfg.Qdrant.Enabled {
		if gemini == nil {
			return nil, fmt.Errorf("qdrant index requires GEMINI_API_KEY for embeddings")
		}
		index, err = services.NewQdrantIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, gemini, prompts)
		if err != nil {
			return nil, err
		}
		if err := index.Init(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize Qdrant collection: %w", err)
		}
		log.Println("✅ Qdrant initialized successfully")
	}

	orchestrator := services.NewOrchestrator(repo, services.NewPDFParserService(), engine, services.OrchestratorOptions{
		MinTextLength: cfg.Extraction.MinTextLength,
		AITimeout:     cfg.Gemini.Timeout,
		Analyzer:      analyzer,
		Index:         index,
	})

	return &Components{
		DB:           db,
		Repo:         repo,
		Storage:      storageService,
		Engine:       engine,
		Orchestrator: orchestrator,
		Batch:        services.NewBatchProcessor(orchestrator, cfg.Worker.Concurrency),
		Index:        index,
	}, nil
}

// Close releases the database pool.
func (c *Components) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
