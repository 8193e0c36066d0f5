package ebbinghaus

import (
	"errors"
	"time"

	"github.com/sansu-dojo/drill-api/internal/domain"
)

// Common errors
var (
	ErrNilRecord = errors.New("problem review record cannot be nil")
)

// Service defines the interface for review schedule operations. It is a pure
// calculation layer: the current time is always passed in and no state is
// read or written, which keeps transitions deterministic and trivially safe
// to retry under store contention.
type Service interface {
	// ApplyAttempt computes the record state after one attempt. Validation
	// errors are returned before any state is derived; the input record is
	// never modified.
	ApplyAttempt(
		record *domain.ProblemReviewRecord,
		attempt domain.Attempt,
		now time.Time,
	) (*domain.ProblemReviewRecord, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a review schedule service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: DefaultParams()}
}

// NewServiceWithParams creates a review schedule service with custom
// parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// ApplyAttempt implements the Service interface.
func (s *defaultService) ApplyAttempt(
	record *domain.ProblemReviewRecord,
	attempt domain.Attempt,
	now time.Time,
) (*domain.ProblemReviewRecord, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	if attempt.Mode == "" {
		attempt.Mode = domain.StudyModeNormal
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return applyAttempt(record, attempt, now, s.params), nil
}
