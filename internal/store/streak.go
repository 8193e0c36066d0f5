package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/sansu-dojo/drill-api/internal/domain"
)

// MutateStreakFunc computes a streak's successor state inside an atomic
// read-modify-write. It receives nil when the user has no streak yet. It may
// be invoked more than once under contention, so it must be side-effect free.
type MutateStreakFunc func(current *domain.StudyStreak) (*domain.StudyStreak, error)

// StudyStreakStore defines the interface for study streak persistence.
// Version: 1.0
type StudyStreakStore interface {
	// Get retrieves a user's streak.
	// Returns ErrStreakNotFound if the user has never studied.
	Get(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error)

	// Apply performs an atomic read-modify-write of the user's streak, with
	// the same contract as ReviewRecordStore.Apply.
	Apply(ctx context.Context, userID uuid.UUID, mutate MutateStreakFunc) (*domain.StudyStreak, error)

	// Delete removes a user's streak.
	// Returns ErrStreakNotFound if the user has no streak.
	Delete(ctx context.Context, userID uuid.UUID) error
}
