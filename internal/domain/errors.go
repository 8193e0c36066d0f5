package domain

import "errors"

// Common validation errors for review records and attempts.
var (
	ErrInvalidStage          = errors.New("review stage must be between 0 and 3")
	ErrInvalidMode           = errors.New("invalid study mode")
	ErrMissingTimestamp      = errors.New("attempt timestamp cannot be zero")
	ErrNegativeHints         = errors.New("hints used must be greater than or equal to 0")
	ErrNegativeDuration      = errors.New("duration must be greater than or equal to 0")
	ErrEmptyUserID           = errors.New("review record user ID cannot be empty")
	ErrEmptyUnitID           = errors.New("review record unit ID cannot be empty")
	ErrEmptyProblemID        = errors.New("review record problem ID cannot be empty")
	ErrInvalidRetentionScore = errors.New("retention score must be between 0 and 100")
	ErrCompletedWithSchedule = errors.New("completed record cannot have a scheduled review")
)

// Common validation errors for study streaks.
var (
	ErrEmptyStreakUserID     = errors.New("study streak user ID cannot be empty")
	ErrNegativeProblemsCount = errors.New("problems solved must be greater than 0")
)
