package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sansu-dojo/drill-api/internal/api/shared"
	"github.com/sansu-dojo/drill-api/internal/service/analytics"
)

// AnalyticsHandler serves the /api/analytics endpoints.
type AnalyticsHandler struct {
	analytics analytics.AnalyticsService
	now       func() time.Time
	logger    *slog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService analytics.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsHandler{
		analytics: analyticsService,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "analytics_handler")),
	}
}

// GetUnits handles GET /api/analytics/{userID}/units.
func (h *AnalyticsHandler) GetUnits(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	report, err := h.analytics.UnitReport(r.Context(), userID, r.URL.Query().Get("unit_id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// GetInsights handles GET /api/analytics/{userID}/insights.
func (h *AnalyticsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	insights, err := h.analytics.Insights(r.Context(), userID, r.URL.Query().Get("unit_id"), h.now())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, insights)
}

// GetRecommendations handles GET /api/analytics/{userID}/recommendations.
func (h *AnalyticsHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	recs, err := h.analytics.Recommendations(r.Context(), userID, h.now())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, recs)
}

// GetWeakProblems handles GET /api/analytics/{userID}/weak-problems.
func (h *AnalyticsHandler) GetWeakProblems(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"limit must be a positive integer", err)
			return
		}
		limit = parsed
	}

	report, err := h.analytics.WeakProblems(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, report)
}
