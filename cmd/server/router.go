package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lingua-api/internal/api"
	apiMiddleware "github.com/phrazzld/lingua-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	studyHandler := api.NewStudyHandler(app.studyService, app.logger)
	cardHandler := api.NewCardHandler(app.studyService, app.logger)
	settingsHandler := api.NewSettingsHandler(app.studyService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Study session endpoints
		r.Post("/study/session", studyHandler.StartSession)
		r.Get("/study/session", studyHandler.GetSession)
		r.Post("/study/session/reveal", studyHandler.Reveal)
		r.Post("/study/session/answer", studyHandler.SubmitRating)
		r.Get("/study/streak", studyHandler.GetStreak)

		// Card management endpoints
		r.Post("/cards", cardHandler.CreateCard)
		r.Get("/cards", cardHandler.ListCards)
		r.Get("/cards/{id}", cardHandler.GetCard)
		r.Delete("/cards/{id}", cardHandler.DeleteCard)

		// Study settings endpoints
		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.UpdateSettings)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
