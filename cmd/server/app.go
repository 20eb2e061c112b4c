package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/lingua-api/internal/config"
	"github.com/phrazzld/lingua-api/internal/domain/srs"
	"github.com/phrazzld/lingua-api/internal/domain/streak"
	"github.com/phrazzld/lingua-api/internal/platform/postgres"
	"github.com/phrazzld/lingua-api/internal/service/study"
)

// application holds the wired dependencies of the running server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	db           *sql.DB
	studyService study.StudyService
}

// newApplication wires the application from configuration: database
// connection, stores, scheduler, streak tracker, and the study service.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Study.Timezone)
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			logger.Error("failed to close database", "error", closeErr)
		}
		return nil, fmt.Errorf("invalid study timezone %q: %w", cfg.Study.Timezone, err)
	}

	cardStore := postgres.NewPostgresCardStore(db, logger)
	settingsStore := postgres.NewPostgresSettingsStore(db, logger)
	historyStore := postgres.NewPostgresHistoryStore(db, logger)

	studyService := study.NewStudyService(
		db,
		cardStore,
		settingsStore,
		historyStore,
		srs.NewDefaultService(),
		streak.NewTracker(loc),
		rand.New(rand.NewSource(time.Now().UnixNano())),
		logger,
	)

	return &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		studyService: studyService,
	}, nil
}

// openDatabase opens and verifies a connection pool to PostgreSQL using the
// pgx stdlib driver.
func openDatabase(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("ping failed: %w (close failed: %v)", err, closeErr)
		}
		return nil, err
	}

	return db, nil
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
