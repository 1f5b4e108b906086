package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"subcheck/internal/config"
	"subcheck/internal/extractor/gemini"
	"subcheck/internal/handler"
	"subcheck/internal/ingest"
	"subcheck/internal/router"
	"subcheck/internal/service"
	"subcheck/internal/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	generator, err := gemini.NewGenerator(&cfg.Gemini)
	if err != nil {
		return fmt.Errorf("failed to initialize generator: %w", err)
	}

	store := session.NewStore()
	sessionSvc := service.NewSessionService(store)
	analysisSvc := service.NewAnalysisService(store, generator, cfg.Gemini.Temperature)
	ingestor := ingest.New(cfg.Upload.MaxFileSizeMB)

	sessionH := handler.NewSessionHandler(sessionSvc)
	fileH := handler.NewFileHandler(sessionSvc, ingestor)
	analysisH := handler.NewAnalysisHandler(sessionSvc, analysisSvc)
	healthH := handler.NewHealthHandler(cfg.Gemini.APIKey != "")

	r := router.Setup(cfg.CORS.AllowedOrigins, sessionH, fileH, analysisH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
