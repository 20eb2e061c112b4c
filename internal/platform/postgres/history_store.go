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

// historyRowID is the fixed primary key of the single history row.
const historyRowID = 1

// PostgresHistoryStore implements the store.HistoryStore interface
// using a PostgreSQL database as the storage backend. The study history is
// a single row; reads fall back to an empty history when the row is absent.
type PostgresHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHistoryStore creates a new PostgreSQL implementation of the
// HistoryStore interface. If logger is nil, a default logger will be used.
func NewPostgresHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "history_store")),
	}
}

// Ensure PostgresHistoryStore implements store.HistoryStore interface
var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// Get implements store.HistoryStore.Get
// It retrieves the stored study history, returning an empty history when no
// row has been saved yet.
func (s *PostgresHistoryStore) Get(ctx context.Context) (domain.StudyHistory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT last_study_day, current_streak, longest_streak
		FROM study_history
		WHERE id = $1
	`

	var history domain.StudyHistory
	var lastStudyDay sql.NullString
	err := s.db.QueryRowContext(ctx, query, historyRowID).Scan(
		&lastStudyDay,
		&history.CurrentStreak,
		&history.LongestStreak,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no study history stored, using empty history")
			return domain.NewStudyHistory(), nil
		}
		log.Error("failed to get study history", slog.String("error", err.Error()))
		return domain.StudyHistory{}, store.NewStoreError(
			"study_history", "get", "failed to query history", err)
	}

	if lastStudyDay.Valid {
		history.LastStudyDay = lastStudyDay.String
	}

	return history, nil
}

// Save implements store.HistoryStore.Save
// It persists the study history, creating the row if needed.
func (s *PostgresHistoryStore) Save(ctx context.Context, history domain.StudyHistory) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var lastStudyDay sql.NullString
	if history.LastStudyDay != "" {
		lastStudyDay = sql.NullString{String: history.LastStudyDay, Valid: true}
	}

	query := `
		INSERT INTO study_history (id, last_study_day, current_streak, longest_streak)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET last_study_day = EXCLUDED.last_study_day,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		historyRowID,
		lastStudyDay,
		history.CurrentStreak,
		history.LongestStreak,
	)

	if err != nil {
		log.Error("failed to save study history", slog.String("error", err.Error()))
		return store.NewStoreError("study_history", "save", "failed to upsert history", err)
	}

	log.Debug("study history saved",
		slog.String("last_study_day", history.LastStudyDay),
		slog.Int("current_streak", history.CurrentStreak),
		slog.Int("longest_streak", history.LongestStreak))
	return nil
}

// WithTx implements store.HistoryStore.WithTx
// It returns a new HistoryStore that runs its statements on the given transaction.
func (s *PostgresHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore {
	return &PostgresHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}
