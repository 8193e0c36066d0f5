package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sansu-dojo/drill-api/internal/api/shared"
	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/service/analytics"
	"github.com/sansu-dojo/drill-api/internal/service/review"
	"github.com/sansu-dojo/drill-api/internal/store"
)

// SubmitReviewRequest is the request body for submitting an attempt.
type SubmitReviewRequest struct {
	UserID       string `json:"user_id" validate:"required,uuid"`
	UnitID       string `json:"unit_id" validate:"required"`
	ProblemID    string `json:"problem_id" validate:"required"`
	ProblemIndex int    `json:"problem_index" validate:"gte=0"`

	Stage     int  `json:"stage" validate:"gte=0,lte=3"`
	IsCorrect bool `json:"is_correct"`

	Timestamp       *time.Time `json:"timestamp,omitempty"`
	HintsUsed       int        `json:"hints_used" validate:"gte=0"`
	DurationSeconds int        `json:"duration_seconds" validate:"gte=0"`
	Mode            string     `json:"mode,omitempty" validate:"omitempty,oneof=normal ebbinghaus review"`
}

// ReviewHandler serves the /api/reviews endpoints.
type ReviewHandler struct {
	reviews   review.ReviewService
	analytics analytics.AnalyticsService
	now       func() time.Time
	logger    *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(
	reviews review.ReviewService,
	analyticsService analytics.AnalyticsService,
	logger *slog.Logger,
) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviews:   reviews,
		analytics: analyticsService,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /api/reviews.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	submit := review.SubmitRequest{
		UserID:          userID,
		UnitID:          req.UnitID,
		ProblemID:       req.ProblemID,
		ProblemIndex:    req.ProblemIndex,
		Stage:           domain.ReviewStage(req.Stage),
		IsCorrect:       req.IsCorrect,
		HintsUsed:       req.HintsUsed,
		DurationSeconds: req.DurationSeconds,
		Mode:            domain.StudyMode(req.Mode),
	}
	if req.Timestamp != nil {
		submit.Timestamp = *req.Timestamp
	}

	record, err := h.reviews.SubmitAttempt(r.Context(), submit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, record)
}

// GetRecords handles GET /api/reviews/{userID}. With ?unit_id it returns
// that unit's records; with ?unit_id and ?problem_id a single record; bare
// it returns every record grouped by unit.
func (h *ReviewHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	unitID := r.URL.Query().Get("unit_id")
	problemID := r.URL.Query().Get("problem_id")

	switch {
	case problemID != "":
		if unitID == "" {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"unit_id is required when problem_id is set", nil)
			return
		}
		record, err := h.reviews.GetRecord(r.Context(), store.RecordKey{
			UserID: userID, UnitID: unitID, ProblemID: problemID,
		})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, record)

	case unitID != "":
		records, err := h.reviews.ListUnitRecords(r.Context(), userID, unitID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, records)

	default:
		grouped, err := h.reviews.AllRecords(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, grouped)
	}
}

// GetQueue handles GET /api/reviews/{userID}/queue.
func (h *ReviewHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	queue, err := h.analytics.DueQueue(r.Context(), userID, r.URL.Query().Get("unit_id"), h.now())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, queue)
}

// GetDue handles GET /api/reviews/{userID}/due.
func (h *ReviewHandler) GetDue(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	due, err := h.reviews.DueProblems(r.Context(), userID, h.now())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, due)
}

// parseUserID extracts and validates the {userID} URL parameter, writing the
// error response itself when the value is missing or malformed.
func parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "userID")
	userID, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID", err)
		return uuid.Nil, false
	}
	return userID, true
}
