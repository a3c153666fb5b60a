package main

import (
	"fmt"
	"log"

	"github.com/ALIKZH777/dgdocs/internal/batch"
	"github.com/ALIKZH777/dgdocs/internal/config"
	"github.com/ALIKZH777/dgdocs/internal/extract"
	"github.com/ALIKZH777/dgdocs/internal/field"
	"github.com/ALIKZH777/dgdocs/internal/handler"
	"github.com/ALIKZH777/dgdocs/internal/recordsheet"
	"github.com/ALIKZH777/dgdocs/internal/router"
	"github.com/ALIKZH777/dgdocs/internal/service"
	"github.com/ALIKZH777/dgdocs/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Core engine
	catalog := field.NewCatalog()
	extractor := extract.New(catalog)
	orchestrator := batch.NewOrchestrator(cfg.Batch.YieldPause())
	sessions := store.NewMemory()

	// Services
	templateSvc := service.NewTemplateService(sessions, extractor, catalog, &cfg.Upload)
	batchSvc := service.NewBatchService(sessions, orchestrator, &cfg.Batch)

	// Handlers
	templateH := handler.NewTemplateHandler(templateSvc)
	batchH := handler.NewBatchHandler(batchSvc, recordsheet.NewReader(catalog))
	healthH := handler.NewHealthHandler()

	r := router.Setup(templateH, batchH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
