package ebbinghaus

import "github.com/sansu-dojo/drill-api/internal/domain"

// Params defines all configurable parameters for the review schedule and
// retention scoring. The defaults reproduce the classic Ebbinghaus spacing
// used by the drill platform; they are injectable to ease future tuning.
type Params struct {
	// NextReviewOffsets holds the number of days between answering a stage
	// correctly and the next stage's review, indexed by nextStage-1:
	// stage 0 -> 1 after 1 day, 1 -> 2 after 7 days, 2 -> 3 after 28 days.
	NextReviewOffsets [int(domain.FinalStage)]int

	// RetryDelayDays is how many days after an incorrect answer the same
	// stage is retried.
	RetryDelayDays int

	// StageWeights is the contribution of each correctly answered stage to
	// the retention score, as a fraction of 100. Later stages weigh more.
	StageWeights [domain.StageCount]float64
}

// DefaultParams returns the standard parameter set.
func DefaultParams() *Params {
	return &Params{
		NextReviewOffsets: [3]int{1, 7, 28},
		RetryDelayDays:    1,
		StageWeights:      [4]float64{0.1, 0.2, 0.3, 0.4},
	}
}
