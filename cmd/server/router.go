package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sansu-dojo/drill-api/internal/api"
	apimiddleware "github.com/sansu-dojo/drill-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)

	reviewHandler := api.NewReviewHandler(app.reviewService, app.analyticsService, app.logger)
	analyticsHandler := api.NewAnalyticsHandler(app.analyticsService, app.logger)
	streakHandler := api.NewStreakHandler(app.streakService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/reviews", reviewHandler.SubmitReview)
		r.Route("/reviews/{userID}", func(r chi.Router) {
			r.Get("/", reviewHandler.GetRecords)
			r.Get("/queue", reviewHandler.GetQueue)
			r.Get("/due", reviewHandler.GetDue)
		})

		r.Route("/analytics/{userID}", func(r chi.Router) {
			r.Get("/units", analyticsHandler.GetUnits)
			r.Get("/insights", analyticsHandler.GetInsights)
			r.Get("/recommendations", analyticsHandler.GetRecommendations)
			r.Get("/weak-problems", analyticsHandler.GetWeakProblems)
		})

		r.Route("/streaks/{userID}", func(r chi.Router) {
			r.Get("/", streakHandler.GetStreak)
			r.Post("/", streakHandler.RecordStudy)
			r.Delete("/", streakHandler.ResetStreak)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
