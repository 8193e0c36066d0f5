package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sansu-dojo/drill-api/internal/api"
	"github.com/sansu-dojo/drill-api/internal/domain/ebbinghaus"
	"github.com/sansu-dojo/drill-api/internal/service/analytics"
	"github.com/sansu-dojo/drill-api/internal/service/review"
	"github.com/sansu-dojo/drill-api/internal/service/streak"
	"github.com/sansu-dojo/drill-api/internal/store"
)

// newTestRouter wires the full handler stack over in-memory stores.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	records := store.NewMemoryReviewRecordStore()
	streaks := store.NewMemoryStudyStreakStore()

	reviewService := review.NewReviewService(records, ebbinghaus.NewDefaultService(), 0, logger)
	analyticsService := analytics.NewAnalyticsService(records, logger)
	streakService := streak.NewStreakService(streaks, 3, logger)

	reviewHandler := api.NewReviewHandler(reviewService, analyticsService, logger)
	analyticsHandler := api.NewAnalyticsHandler(analyticsService, logger)
	streakHandler := api.NewStreakHandler(streakService, logger)

	r := chi.NewRouter()
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
	return r
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func doJSON(t *testing.T, router http.Handler, method, path string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}
