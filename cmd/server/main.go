package main

import (
	"fmt"
	"log"

	"marksight/internal/config"
	"marksight/internal/csvexport"
	"marksight/internal/extractor"
	"marksight/internal/extractor/claude"
	"marksight/internal/extractor/gemini"
	"marksight/internal/extractor/ocr"
	"marksight/internal/extractor/perplexity"
	"marksight/internal/handler"
	"marksight/internal/port"
	"marksight/internal/repository/postgres"
	"marksight/internal/router"
	"marksight/internal/service"
	s3storage "marksight/internal/storage/s3"
	"marksight/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func registerProviders() {
	extractor.RegisterProvider("perplexity", func(cfg *config.ExtractorProviderConfig) (port.MarksheetExtractor, error) {
		return perplexity.NewExtractor(cfg), nil
	})
	extractor.RegisterProvider("claude", func(cfg *config.ExtractorProviderConfig) (port.MarksheetExtractor, error) {
		return claude.NewExtractor(cfg), nil
	})
	extractor.RegisterProvider("gemini", func(cfg *config.ExtractorProviderConfig) (port.MarksheetExtractor, error) {
		return gemini.NewExtractor(cfg), nil
	})
	extractor.RegisterProvider("ocr", func(cfg *config.ExtractorProviderConfig) (port.MarksheetExtractor, error) {
		return ocr.NewExtractor(cfg), nil
	})
}

// buildExtractor assembles the configured provider chain. A single provider
// is used directly; multiple providers are wrapped in a fallback chain with
// rate-limit circuit breaking.
func buildExtractor(cfg *config.ExtractorConfig) (port.MarksheetExtractor, string, error) {
	provCfgs := cfg.Providers()

	extractors := make([]port.MarksheetExtractor, 0, len(provCfgs))
	names := make([]string, 0, len(provCfgs))
	for _, pc := range provCfgs {
		e, err := extractor.NewExtractor(pc)
		if err != nil {
			return nil, "", err
		}
		extractors = append(extractors, e)
		names = append(names, pc.Provider)
	}

	if len(extractors) == 1 {
		return extractors[0], names[0], nil
	}

	chainName := names[0]
	for _, n := range names[1:] {
		chainName += "+" + n
	}
	return extractor.NewFallbackExtractor(extractors, names), chainName, nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	fileRepo := postgres.NewFileMetaRepo(db)
	extRepo := postgres.NewExtractionRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize the extraction stack
	registerProviders()
	marksheets, providerName, err := buildExtractor(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to build extractor: %w", err)
	}
	engine := validator.NewEngine(validator.DefaultRegistry())
	sink, err := csvexport.NewFileSink(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to create output sink: %w", err)
	}

	// Initialize services
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	extractionSvc := service.NewExtractionService(
		fileRepo, extRepo, s3Client, marksheets, engine, sink, providerName)

	// Initialize handlers
	healthH := handler.NewHealthHandler(db)
	fileH := handler.NewFileHandler(fileSvc)
	extractionH := handler.NewExtractionHandler(extractionSvc)

	// Setup router
	r := router.Setup(cfg, healthH, fileH, extractionH)

	log.Printf("Server starting on %s (provider chain: %s)", cfg.Server.Port, providerName)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
