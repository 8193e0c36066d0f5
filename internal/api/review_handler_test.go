package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sansu-dojo/drill-api/internal/domain"
)

func submitBody(userID uuid.UUID, unitID, problemID string, index, stage int, correct bool, at time.Time) map[string]any {
	return map[string]any{
		"user_id":       userID.String(),
		"unit_id":       unitID,
		"problem_id":    problemID,
		"problem_index": index,
		"stage":         stage,
		"is_correct":    correct,
		"timestamp":     at.Format(time.RFC3339),
	}
}

func TestSubmitReview_Success(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	userID := uuid.New()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	var record domain.ProblemReviewRecord
	rec := doJSON(t, router, http.MethodPost, "/api/reviews",
		submitBody(userID, "grade2-addition", "p-01", 1, 0, true, at), &record)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, domain.StageInitial, record.CurrentStage)
	require.NotNil(t, record.NextReviewDate)
	assert.Equal(t, at.AddDate(0, 0, 1), record.NextReviewDate.UTC())
}

func TestSubmitReview_InvalidStage(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	body := submitBody(uuid.New(), "grade2-addition", "p-01", 1, 4, true,
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	rec := doJSON(t, router, http.MethodPost, "/api/reviews", body, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitReview_MissingFields(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/reviews", map[string]any{
		"user_id": uuid.New().String(),
		"stage":   0,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecords_SingleRecordAnd404(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	userID := uuid.New()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	rec := doJSON(t, router, http.MethodPost, "/api/reviews",
		submitBody(userID, "grade2-addition", "p-01", 1, 0, true, at), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var record domain.ProblemReviewRecord
	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/reviews/%s?unit_id=grade2-addition&problem_id=p-01", userID), nil, &record)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p-01", record.ProblemID)

	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/reviews/%s?unit_id=grade2-addition&problem_id=missing", userID), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// problem_id without unit_id is rejected.
	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/reviews/%s?problem_id=p-01", userID), nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecords_GroupedByUnit(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	userID := uuid.New()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		unit    string
		problem string
	}{
		{"grade2-addition", "p-01"},
		{"grade3-multiplication", "m-01"},
	} {
		rec := doJSON(t, router, http.MethodPost, "/api/reviews",
			submitBody(userID, tc.unit, tc.problem, 1, 0, true, at), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var grouped map[string][]domain.ProblemReviewRecord
	rec := doJSON(t, router, http.MethodGet, "/api/reviews/"+userID.String(), nil, &grouped)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, grouped, 2)
}

func TestGetRecords_InvalidUserID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/reviews/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetQueue_ReturnsBuckets(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	userID := uuid.New()

	// Answered yesterday: due today.
	rec := doJSON(t, router, http.MethodPost, "/api/reviews",
		submitBody(userID, "grade2-addition", "p-01", 1, 0, true,
			time.Now().UTC().AddDate(0, 0, -1)), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var queue struct {
		Today    []map[string]any `json:"today"`
		TotalDue int              `json:"total_due"`
	}
	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/reviews/%s/queue", userID), nil, &queue)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, queue.TotalDue)
	assert.Len(t, queue.Today, 1)
}

func TestGetDue_FlatList(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	userID := uuid.New()

	rec := doJSON(t, router, http.MethodPost, "/api/reviews",
		submitBody(userID, "grade2-addition", "p-01", 1, 0, true,
			time.Now().UTC().AddDate(0, 0, -5)), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var due []domain.ProblemReviewRecord
	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/reviews/%s/due", userID), nil, &due)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, due, 1)
	assert.Equal(t, "p-01", due[0].ProblemID)
}
