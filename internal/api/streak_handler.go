package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sansu-dojo/drill-api/internal/api/shared"
	"github.com/sansu-dojo/drill-api/internal/service/streak"
)

// RecordStudyRequest is the request body for registering solved problems.
type RecordStudyRequest struct {
	ProblemsSolved int `json:"problems_solved" validate:"gte=1"`
}

// StreakHandler serves the /api/streaks endpoints.
type StreakHandler struct {
	streaks streak.StreakService
	now     func() time.Time
	logger  *slog.Logger
}

// NewStreakHandler creates a new StreakHandler.
func NewStreakHandler(streaks streak.StreakService, logger *slog.Logger) *StreakHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreakHandler{
		streaks: streaks,
		now:     time.Now,
		logger:  logger.With(slog.String("component", "streak_handler")),
	}
}

// GetStreak handles GET /api/streaks/{userID}.
func (h *StreakHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	current, err := h.streaks.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, current)
}

// RecordStudy handles POST /api/streaks/{userID}. An absent body counts a
// single solved problem.
func (h *StreakHandler) RecordStudy(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	req := RecordStudyRequest{ProblemsSolved: 1}
	if r.ContentLength > 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if err := shared.ValidateRequest(req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data", err)
			return
		}
	}

	updated, err := h.streaks.RecordStudy(r.Context(), userID, req.ProblemsSolved, h.now())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// ResetStreak handles DELETE /api/streaks/{userID}.
func (h *StreakHandler) ResetStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.streaks.Reset(r.Context(), userID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
