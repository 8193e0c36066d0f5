package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudyStreak tracks a user's consecutive study days. A calendar day counts
// toward the streak once the user solves the configured daily goal of
// problems on that day.
type StudyStreak struct {
	UserID         uuid.UUID `json:"user_id"`
	CurrentStreak  int       `json:"current_streak"`
	MaxStreak      int       `json:"max_streak"`
	LastStudyDate  time.Time `json:"last_study_date"`  // zero when no day has counted yet
	FirstStudyDate time.Time `json:"first_study_date"` // zero when no day has counted yet
	TotalStudyDays int       `json:"total_study_days"`

	// LastActivityDate is the last day any problem was recorded, counted or
	// not. It anchors the TodayProblems rollover.
	LastActivityDate time.Time `json:"last_activity_date"`
	TodayProblems    int       `json:"today_problems"`
	TotalProblems    int       `json:"total_problems"`
}

// NewStudyStreak creates the zero-state streak for a user who has not studied
// yet.
func NewStudyStreak(userID uuid.UUID) (*StudyStreak, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyStreakUserID
	}
	return &StudyStreak{UserID: userID}, nil
}

// Validate checks if the streak has valid data.
func (s *StudyStreak) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStreakUserID
	}
	return nil
}

// Clone returns a copy of the streak.
func (s *StudyStreak) Clone() *StudyStreak {
	clone := *s
	return &clone
}
