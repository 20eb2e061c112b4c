package study

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingua-api/internal/domain"
	"github.com/phrazzld/lingua-api/internal/domain/srs"
	"github.com/phrazzld/lingua-api/internal/domain/streak"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
	"github.com/phrazzld/lingua-api/internal/session"
	"github.com/phrazzld/lingua-api/internal/store"
)

// Verify interface compliance at compile time
var _ StudyService = (*studyServiceImpl)(nil)

// studyServiceImpl implements the StudyService interface. It owns the one
// active session per process; a mutex serializes access since the spec's
// concurrency model is one foreground session at a time.
type studyServiceImpl struct {
	db            *sql.DB
	cardStore     store.CardStore
	settingsStore store.SettingsStore
	historyStore  store.HistoryStore
	scheduler     srs.Service
	tracker       *streak.Tracker
	rng           *rand.Rand
	logger        *slog.Logger

	mu   sync.Mutex
	sess *session.Session
}

// NewStudyService creates a new StudyService implementation.
// A nil rng gets a time-seeded source; tests inject a seeded one for
// deterministic deck orderings.
func NewStudyService(
	db *sql.DB,
	cardStore store.CardStore,
	settingsStore store.SettingsStore,
	historyStore store.HistoryStore,
	scheduler srs.Service,
	tracker *streak.Tracker,
	rng *rand.Rand,
	logger *slog.Logger,
) StudyService {
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if settingsStore == nil {
		panic("settingsStore cannot be nil")
	}
	if historyStore == nil {
		panic("historyStore cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &studyServiceImpl{
		db:            db,
		cardStore:     cardStore,
		settingsStore: settingsStore,
		historyStore:  historyStore,
		scheduler:     scheduler,
		tracker:       tracker,
		rng:           rng,
		logger:        logger.With(slog.String("component", "study_service")),
	}
}

// StartSession implements StudyService.StartSession.
func (s *studyServiceImpl) StartSession(ctx context.Context, now time.Time) (SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	settings, err := s.settingsStore.Get(ctx)
	if err != nil {
		return SessionView{}, NewServiceError("start_session", "failed to load settings", err)
	}

	cards, err := s.cardStore.GetAll(ctx)
	if err != nil {
		return SessionView{}, NewServiceError("start_session", "failed to load cards", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess = session.New(cards, s.scheduler, s.rng, now, settings.DailyStudyLimit)

	log.Info("study session started",
		slog.Int("collection_size", len(cards)),
		slog.Int("daily_limit", settings.DailyStudyLimit),
		slog.String("state", string(s.sess.State())),
		slog.Int("progress", s.sess.Progress()))

	return s.view(), nil
}

// CurrentSession implements StudyService.CurrentSession.
func (s *studyServiceImpl) CurrentSession(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return SessionView{}, ErrSessionNotStarted
	}

	return s.view(), nil
}

// Reveal implements StudyService.Reveal.
func (s *studyServiceImpl) Reveal(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return SessionView{}, ErrSessionNotStarted
	}

	if err := s.sess.Reveal(); err != nil {
		return SessionView{}, err
	}

	return s.view(), nil
}

// Rate implements StudyService.Rate.
//
// The card's new retention state and the streak touch are persisted in one
// transaction before the view of the next card is returned, so a crash
// between a rating and the next presentation cannot lose the rating.
func (s *studyServiceImpl) Rate(
	ctx context.Context,
	rating domain.Rating,
	now time.Time,
) (SessionView, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return SessionView{}, false, ErrSessionNotStarted
	}

	result, err := s.sess.Rate(rating, now)
	if err != nil {
		if errors.Is(err, session.ErrNoCardMatch) {
			// Card deleted mid-session: the rating is dropped and
			// presentation has already advanced.
			log.Warn("rated card no longer in collection, rating dropped")
			return s.view(), true, nil
		}
		return SessionView{}, false, err
	}

	err = s.runInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.cardStore.WithTx(tx).Update(ctx, result.Updated); err != nil {
			return fmt.Errorf("failed to persist card: %w", err)
		}

		historyStore := s.historyStore.WithTx(tx)
		history, err := historyStore.Get(ctx)
		if err != nil {
			return fmt.Errorf("failed to load study history: %w", err)
		}

		touched := s.tracker.Touch(history, now)
		if touched != history {
			if err := historyStore.Save(ctx, touched); err != nil {
				return fmt.Errorf("failed to persist study history: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return SessionView{}, false, NewServiceError("rate", "failed to persist rating", err)
	}

	log.Debug("rating applied",
		slog.String("card_id", result.Updated.ID.String()),
		slog.String("rating", string(rating)),
		slog.Bool("again", result.IsAgain),
		slog.Float64("stability", result.Updated.Stability),
		slog.Float64("difficulty", result.Updated.Difficulty),
		slog.Time("due", result.Updated.Due))

	return s.view(), false, nil
}

// Streak implements StudyService.Streak.
func (s *studyServiceImpl) Streak(ctx context.Context, now time.Time) (domain.StudyHistory, error) {
	history, err := s.historyStore.Get(ctx)
	if err != nil {
		return domain.StudyHistory{}, NewServiceError("streak", "failed to load study history", err)
	}

	return s.tracker.Read(history, now), nil
}

// CreateCard implements StudyService.CreateCard.
// The new card joins the next session; a running session's deck is not
// re-opened.
func (s *studyServiceImpl) CreateCard(
	ctx context.Context,
	original, translation, sourceLang, example string,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(original, translation, sourceLang, example)
	if err != nil {
		return nil, err
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		return nil, NewServiceError("create_card", "failed to store card", err)
	}

	log.Info("card captured",
		slog.String("card_id", card.ID.String()),
		slog.String("source_lang", card.SourceLang))

	return card, nil
}

// ListCards implements StudyService.ListCards.
func (s *studyServiceImpl) ListCards(ctx context.Context) ([]*domain.Card, error) {
	cards, err := s.cardStore.GetAll(ctx)
	if err != nil {
		return nil, NewServiceError("list_cards", "failed to load cards", err)
	}
	return cards, nil
}

// GetCard implements StudyService.GetCard.
func (s *studyServiceImpl) GetCard(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	card, err := s.cardStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewServiceError("get_card", "failed to load card", err)
	}
	return card, nil
}

// Settings implements StudyService.Settings.
func (s *studyServiceImpl) Settings(ctx context.Context) (domain.StudySettings, error) {
	settings, err := s.settingsStore.Get(ctx)
	if err != nil {
		return domain.StudySettings{}, NewServiceError("settings", "failed to load settings", err)
	}
	return settings, nil
}

// UpdateSettings implements StudyService.UpdateSettings.
func (s *studyServiceImpl) UpdateSettings(
	ctx context.Context,
	settings domain.StudySettings,
) (domain.StudySettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		return domain.StudySettings{}, err
	}

	if err := s.settingsStore.Save(ctx, settings); err != nil {
		return domain.StudySettings{}, NewServiceError("update_settings", "failed to save settings", err)
	}

	log.Info("study settings updated",
		slog.Int("daily_study_limit", settings.DailyStudyLimit),
		slog.String("target_language", settings.TargetLanguage))

	return settings, nil
}

// DeleteCard implements StudyService.DeleteCard.
func (s *studyServiceImpl) DeleteCard(ctx context.Context, id uuid.UUID) error {
	if err := s.cardStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewServiceError("delete_card", "failed to delete card", err)
	}

	s.mu.Lock()
	if s.sess != nil {
		s.sess.RemoveCard(id)
	}
	s.mu.Unlock()

	return nil
}

// runInTransaction executes fn within a database transaction when a database
// is configured. Tests wire in-memory fakes without a database; fn then runs
// directly and the fakes ignore the nil transaction.
func (s *studyServiceImpl) runInTransaction(ctx context.Context, fn store.TxFn) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return store.RunInTransaction(ctx, s.db, fn)
}

// view snapshots the running session for the presentation layer.
// Callers must hold s.mu.
func (s *studyServiceImpl) view() SessionView {
	return SessionView{
		State:     s.sess.State(),
		EndReason: s.sess.EndReason(),
		Card:      s.sess.Current(),
		Progress:  s.sess.Progress(),
	}
}
