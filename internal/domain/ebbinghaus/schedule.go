package ebbinghaus

import (
	"sort"
	"time"

	"github.com/sansu-dojo/drill-api/internal/domain"
)

// upsertAttempt merges a new attempt into the attempt list. The upsert is
// stage-keyed: an existing attempt at the same stage is replaced outright,
// even when the new attempt carries an earlier timestamp. The returned slice
// is sorted by stage ascending.
func upsertAttempt(attempts []domain.Attempt, attempt domain.Attempt) []domain.Attempt {
	merged := make([]domain.Attempt, len(attempts))
	copy(merged, attempts)

	replaced := false
	for i := range merged {
		if merged[i].Stage == attempt.Stage {
			merged[i] = attempt
			replaced = true
			break
		}
	}
	if !replaced {
		merged = append(merged, attempt)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Stage < merged[j].Stage
	})

	return merged
}

// nextReviewDate computes when the given stage's successor should be
// reviewed, counting from baseDate. It returns nil when the answered stage
// was the final one, meaning review is complete.
func nextReviewDate(answeredStage domain.ReviewStage, baseDate time.Time, params *Params) *time.Time {
	nextStage := answeredStage + 1
	if nextStage > domain.FinalStage {
		return nil
	}

	next := baseDate.AddDate(0, 0, params.NextReviewOffsets[nextStage-1])
	return &next
}

// applyAttempt computes the record state after one attempt. It follows the
// immutable update pattern: the input record is never modified and a fully
// recomputed copy is returned.
//
// Transition rules:
//   - The attempt is upserted into the attempt list by stage.
//   - CurrentStage ratchets up to the attempt's stage but never down.
//   - A correct answer schedules the next stage per params.NextReviewOffsets,
//     counting from the attempt timestamp. Answering the final stage
//     correctly completes the record and clears the schedule.
//   - An incorrect answer schedules a retry of the same stage
//     params.RetryDelayDays later. It does not reduce CurrentStage.
//   - RetentionScore is recomputed from the full attempt list.
func applyAttempt(
	record *domain.ProblemReviewRecord,
	attempt domain.Attempt,
	now time.Time,
	params *Params,
) *domain.ProblemReviewRecord {
	updated := record.Clone()

	updated.Attempts = upsertAttempt(updated.Attempts, attempt)

	if attempt.Stage > updated.CurrentStage {
		updated.CurrentStage = attempt.Stage
	}

	if attempt.IsCorrect {
		updated.NextReviewDate = nextReviewDate(attempt.Stage, attempt.Timestamp, params)
		updated.IsCompleted = updated.NextReviewDate == nil
	} else {
		retry := attempt.Timestamp.AddDate(0, 0, params.RetryDelayDays)
		updated.NextReviewDate = &retry
		updated.IsCompleted = false
	}

	updated.RetentionScore = RetentionScore(updated.Attempts, params)
	updated.LastUpdated = now

	return updated
}
