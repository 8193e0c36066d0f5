package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStage identifies one of the four checkpoints in the spaced repetition
// schedule for a single problem. Stages are strictly ordered: a problem enters
// at StageInitial and advances one stage per correct answer.
type ReviewStage int

// Review stages, in schedule order.
const (
	StageInitial ReviewStage = 0 // first exposure
	StageDay1    ReviewStage = 1 // reviewed one day after initial
	StageDay7    ReviewStage = 2 // reviewed seven days after stage 1
	StageDay28   ReviewStage = 3 // reviewed twenty-eight days after stage 2
)

// FinalStage is the last stage of the schedule. Answering it correctly
// completes review for the problem.
const FinalStage = StageDay28

// StageCount is the number of review stages.
const StageCount = 4

// IsValid reports whether the stage is within the supported range.
func (s ReviewStage) IsValid() bool {
	return s >= StageInitial && s <= FinalStage
}

// String returns a short human-readable name for the stage.
func (s ReviewStage) String() string {
	switch s {
	case StageInitial:
		return "initial"
	case StageDay1:
		return "day_1"
	case StageDay7:
		return "day_7"
	case StageDay28:
		return "day_28"
	default:
		return "invalid"
	}
}

// StudyMode records which part of the application produced an attempt.
type StudyMode string

// Possible study mode values.
const (
	StudyModeNormal     StudyMode = "normal"
	StudyModeEbbinghaus StudyMode = "ebbinghaus"
	StudyModeReview     StudyMode = "review"
)

// IsValid reports whether the mode is one of the known values.
func (m StudyMode) IsValid() bool {
	switch m {
	case StudyModeNormal, StudyModeEbbinghaus, StudyModeReview:
		return true
	default:
		return false
	}
}

// Attempt is one immutable fact: the user answered a problem at a given
// review stage. Multiple attempts may exist per stage over time, but only the
// most recently submitted attempt per stage is retained on the record (the
// upsert is stage-keyed).
type Attempt struct {
	Stage           ReviewStage `json:"stage"`
	IsCorrect       bool        `json:"is_correct"`
	Timestamp       time.Time   `json:"timestamp"`
	HintsUsed       int         `json:"hints_used"`
	DurationSeconds int         `json:"duration_seconds"`
	Mode            StudyMode   `json:"mode"`
}

// Validate checks if the attempt has valid data.
func (a Attempt) Validate() error {
	if !a.Stage.IsValid() {
		return ErrInvalidStage
	}
	if a.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	if a.HintsUsed < 0 {
		return ErrNegativeHints
	}
	if a.DurationSeconds < 0 {
		return ErrNegativeDuration
	}
	if a.Mode != "" && !a.Mode.IsValid() {
		return ErrInvalidMode
	}
	return nil
}

// ProblemReviewRecord tracks a user's spaced repetition state for one problem
// within one unit. Attempts are kept sorted by stage ascending.
//
// Invariants:
//   - CurrentStage == max stage across Attempts, and never decreases.
//   - IsCompleted implies NextReviewDate == nil.
//   - RetentionScore is a pure function of Attempts, in [0, 100].
type ProblemReviewRecord struct {
	UserID         uuid.UUID   `json:"user_id"`
	UnitID         string      `json:"unit_id"`
	ProblemID      string      `json:"problem_id"`
	ProblemIndex   int         `json:"problem_index"`
	Attempts       []Attempt   `json:"attempts"`
	CurrentStage   ReviewStage `json:"current_stage"`
	NextReviewDate *time.Time  `json:"next_review_date"`
	RetentionScore float64     `json:"retention_score"`
	IsCompleted    bool        `json:"is_completed"`
	CreatedAt      time.Time   `json:"created_at"`
	LastUpdated    time.Time   `json:"last_updated"`
}

// NewProblemReviewRecord creates the zero-state record for a problem the user
// has not attempted yet. No review is scheduled until the first attempt.
func NewProblemReviewRecord(
	userID uuid.UUID,
	unitID, problemID string,
	problemIndex int,
	now time.Time,
) (*ProblemReviewRecord, error) {
	record := &ProblemReviewRecord{
		UserID:       userID,
		UnitID:       unitID,
		ProblemID:    problemID,
		ProblemIndex: problemIndex,
		Attempts:     []Attempt{},
		CurrentStage: StageInitial,
		CreatedAt:    now,
		LastUpdated:  now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the record has valid data and satisfies its invariants.
func (r *ProblemReviewRecord) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if r.UnitID == "" {
		return ErrEmptyUnitID
	}
	if r.ProblemID == "" {
		return ErrEmptyProblemID
	}
	if !r.CurrentStage.IsValid() {
		return ErrInvalidStage
	}
	if r.RetentionScore < 0 || r.RetentionScore > 100 {
		return ErrInvalidRetentionScore
	}
	if r.IsCompleted && r.NextReviewDate != nil {
		return ErrCompletedWithSchedule
	}
	for _, attempt := range r.Attempts {
		if err := attempt.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AttemptAt returns the current attempt at the given stage, if any.
func (r *ProblemReviewRecord) AttemptAt(stage ReviewStage) (Attempt, bool) {
	for _, a := range r.Attempts {
		if a.Stage == stage {
			return a, true
		}
	}
	return Attempt{}, false
}

// Clone returns a deep copy of the record. The review engine follows the
// immutable update pattern: it never modifies a record in place.
func (r *ProblemReviewRecord) Clone() *ProblemReviewRecord {
	clone := *r
	clone.Attempts = make([]Attempt, len(r.Attempts))
	copy(clone.Attempts, r.Attempts)
	if r.NextReviewDate != nil {
		next := *r.NextReviewDate
		clone.NextReviewDate = &next
	}
	return &clone
}
