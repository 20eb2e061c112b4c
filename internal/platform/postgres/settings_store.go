package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/lingua-api/internal/domain"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
	"github.com/phrazzld/lingua-api/internal/store"
)

// settingsRowID is the fixed primary key of the single settings row.
const settingsRowID = 1

// PostgresSettingsStore implements the store.SettingsStore interface
// using a PostgreSQL database as the storage backend. Settings live in a
// single row; reads fall back to the documented defaults when the row is
// absent.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the
// SettingsStore interface. If logger is nil, a default logger will be used.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure PostgresSettingsStore implements store.SettingsStore interface
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// Get implements store.SettingsStore.Get
// It retrieves the stored study settings, returning the documented defaults
// when no row has been saved yet.
func (s *PostgresSettingsStore) Get(ctx context.Context) (domain.StudySettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT daily_study_limit, target_language
		FROM study_settings
		WHERE id = $1
	`

	var settings domain.StudySettings
	err := s.db.QueryRowContext(ctx, query, settingsRowID).Scan(
		&settings.DailyStudyLimit,
		&settings.TargetLanguage,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no settings stored, using defaults")
			return domain.DefaultStudySettings(), nil
		}
		log.Error("failed to get study settings", slog.String("error", err.Error()))
		return domain.StudySettings{}, store.NewStoreError(
			"study_settings", "get", "failed to query settings", err)
	}

	return settings, nil
}

// Save implements store.SettingsStore.Save
// It persists the study settings, creating the row if needed.
func (s *PostgresSettingsStore) Save(ctx context.Context, settings domain.StudySettings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO study_settings (id, daily_study_limit, target_language)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET daily_study_limit = EXCLUDED.daily_study_limit,
			target_language = EXCLUDED.target_language
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		settingsRowID,
		settings.DailyStudyLimit,
		settings.TargetLanguage,
	)

	if err != nil {
		log.Error("failed to save study settings", slog.String("error", err.Error()))
		return store.NewStoreError("study_settings", "save", "failed to upsert settings", err)
	}

	log.Info("study settings saved",
		slog.Int("daily_study_limit", settings.DailyStudyLimit),
		slog.String("target_language", settings.TargetLanguage))
	return nil
}
