// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/lingua-api/internal/api/shared"
	"github.com/phrazzld/lingua-api/internal/domain"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
	"github.com/phrazzld/lingua-api/internal/redact"
	"github.com/phrazzld/lingua-api/internal/service/study"
	"github.com/phrazzld/lingua-api/internal/session"
)

// SessionCardResponse is the presented card as seen by the client. The
// translation is withheld until the answer has been revealed.
type SessionCardResponse struct {
	ID          string `json:"id"`
	Original    string `json:"original"`
	Translation string `json:"translation,omitempty"`
	SourceLang  string `json:"source_lang"`
	Example     string `json:"example,omitempty"`
}

// SessionResponse represents the response data for the study session.
type SessionResponse struct {
	State       string               `json:"state"`
	EndReason   string               `json:"end_reason,omitempty"`
	Card        *SessionCardResponse `json:"card,omitempty"`
	Progress    int                  `json:"progress"`
	SkippedCard bool                 `json:"skipped_card,omitempty"`
}

// StreakResponse represents the response data for the study streak.
type StreakResponse struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// SubmitRatingRequest represents the request body for rating the presented card.
type SubmitRatingRequest struct {
	Rating string `json:"rating" validate:"required,oneof=again hard good easy"`
}

// StudyHandler handles study-session HTTP requests.
type StudyHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studyService study.StudyService, logger *slog.Logger) *StudyHandler {
	if studyService == nil {
		panic("studyService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// StartSession handles POST /study/session requests.
// It starts (or restarts) the study session over the stored collection.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	view, err := h.studyService.StartSession(r.Context(), time.Now().UTC())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to start study session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("study session started",
		slog.String("state", string(view.State)),
		slog.Int("progress", view.Progress))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view, false))
}

// GetSession handles GET /study/session requests.
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.studyService.CurrentSession(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view, false))
}

// Reveal handles POST /study/session/reveal requests.
// It flips the presented card from question to answer, enabling ratings.
func (h *StudyHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	view, err := h.studyService.Reveal(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view, false))
}

// SubmitRating handles POST /study/session/answer requests.
// It applies the reviewer's rating to the presented card and returns the
// next view of the session.
func (h *StudyHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SubmitRatingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	view, skipped, err := h.studyService.Rate(r.Context(), domain.Rating(req.Rating), time.Now().UTC())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit rating"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("rating submitted",
		slog.String("rating", req.Rating),
		slog.Bool("skipped_card", skipped),
		slog.String("state", string(view.State)),
		slog.Int("progress", view.Progress))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view, skipped))
}

// GetStreak handles GET /study/streak requests.
// It returns the effective streak view without mutating stored history.
func (h *StudyHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	history, err := h.studyService.Streak(r.Context(), time.Now().UTC())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get study streak"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StreakResponse{
		CurrentStreak: history.CurrentStreak,
		LongestStreak: history.LongestStreak,
	})
}

// sessionToResponse converts a study.SessionView to a SessionResponse.
// The card's translation is only included once the answer is revealed.
func sessionToResponse(view study.SessionView, skipped bool) SessionResponse {
	resp := SessionResponse{
		State:       string(view.State),
		EndReason:   string(view.EndReason),
		Progress:    view.Progress,
		SkippedCard: skipped,
	}

	if view.Card != nil {
		card := &SessionCardResponse{
			ID:         view.Card.ID.String(),
			Original:   view.Card.Original,
			SourceLang: view.Card.SourceLang,
			Example:    view.Card.Example,
		}
		if view.State == session.StateAnswer {
			card.Translation = view.Card.Translation
		}
		resp.Card = card
	}

	return resp
}
