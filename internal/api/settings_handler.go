package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lingua-api/internal/api/shared"
	"github.com/phrazzld/lingua-api/internal/domain"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
	"github.com/phrazzld/lingua-api/internal/redact"
	"github.com/phrazzld/lingua-api/internal/service/study"
)

// SettingsResponse represents the response data for study settings.
type SettingsResponse struct {
	DailyStudyLimit int    `json:"daily_study_limit"`
	TargetLanguage  string `json:"target_language"`
}

// UpdateSettingsRequest represents the request body for changing study settings.
type UpdateSettingsRequest struct {
	DailyStudyLimit int    `json:"daily_study_limit" validate:"required,gt=0"`
	TargetLanguage  string `json:"target_language" validate:"required,len=2"`
}

// SettingsHandler handles study-settings HTTP requests.
type SettingsHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(studyService study.StudyService, logger *slog.Logger) *SettingsHandler {
	if studyService == nil {
		panic("studyService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil for SettingsHandler")
	}

	return &SettingsHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "settings_handler")),
	}
}

// GetSettings handles GET /settings requests.
// It returns the stored settings, or the documented defaults when none have
// been saved yet.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.studyService.Settings(r.Context())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get study settings"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// UpdateSettings handles PUT /settings requests.
// The new daily limit applies from the next started session.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UpdateSettingsRequest
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

	settings, err := h.studyService.UpdateSettings(r.Context(), domain.StudySettings{
		DailyStudyLimit: req.DailyStudyLimit,
		TargetLanguage:  req.TargetLanguage,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update study settings"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Info("study settings updated",
		slog.Int("daily_study_limit", settings.DailyStudyLimit),
		slog.String("target_language", settings.TargetLanguage))
	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// settingsToResponse converts domain.StudySettings to a SettingsResponse.
func settingsToResponse(settings domain.StudySettings) SettingsResponse {
	return SettingsResponse{
		DailyStudyLimit: settings.DailyStudyLimit,
		TargetLanguage:  settings.TargetLanguage,
	}
}
