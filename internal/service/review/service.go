// Package review provides the attempt submission and record query service.
// Submissions run through the store's atomic read-modify-write so concurrent
// answers for the same problem never lose updates.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/store"
)

// Common error types for ReviewService.
var (
	// ErrRecordNotFound indicates the requested review record does not exist.
	// A problem the user has not attempted yet is not an error state; this is
	// only returned by explicit single-record lookups.
	ErrRecordNotFound = errors.New("review record not found")
)

// SubmitRequest carries one answered problem into the review engine.
type SubmitRequest struct {
	UserID       uuid.UUID
	UnitID       string
	ProblemID    string
	ProblemIndex int

	Stage     domain.ReviewStage
	IsCorrect bool

	// Timestamp defaults to the service clock when zero.
	Timestamp       time.Time
	HintsUsed       int
	DurationSeconds int
	Mode            domain.StudyMode
}

// ReviewService manages problem review records.
type ReviewService interface {
	// SubmitAttempt records one answer atomically: it loads the current
	// record (creating the zero-state record on first contact), runs the
	// review engine, and persists the result. Returns the updated record.
	//
	// Returns domain validation errors (ErrInvalidStage and friends)
	// unwrapped when the request is invalid; store.ErrConflict when
	// concurrent submissions exhaust retries.
	SubmitAttempt(ctx context.Context, req SubmitRequest) (*domain.ProblemReviewRecord, error)

	// GetRecord retrieves a single record. Returns ErrRecordNotFound when
	// the user has never attempted the problem.
	GetRecord(ctx context.Context, key store.RecordKey) (*domain.ProblemReviewRecord, error)

	// ListUnitRecords returns the user's records for one unit, sorted by
	// problem index ascending. An untouched unit yields an empty slice.
	ListUnitRecords(ctx context.Context, userID uuid.UUID, unitID string) ([]*domain.ProblemReviewRecord, error)

	// AllRecords returns every record of the user grouped by unit, each
	// group sorted by problem index ascending.
	AllRecords(ctx context.Context, userID uuid.UUID) (map[string][]*domain.ProblemReviewRecord, error)

	// DueProblems returns the user's scheduled, not-yet-completed records
	// that are due at now, most overdue first.
	DueProblems(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.ProblemReviewRecord, error)
}
