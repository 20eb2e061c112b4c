// Package main implements the entry point for the lingua API server,
// which manages spaced repetition flashcards for language study.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/phrazzld/lingua-api/internal/config"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		app.logger.Error("server exited with error", "error", err)
	}
}

// initializeApp loads configuration, sets up logging, connects to the
// database, applies migrations, and wires the application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"daily_study_limit", cfg.Study.DailyStudyLimit,
		"timezone", cfg.Study.Timezone)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(app.db, appLogger); err != nil {
		app.cleanup()
		return nil, err
	}

	return app, nil
}
