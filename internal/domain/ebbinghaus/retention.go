package ebbinghaus

import "github.com/sansu-dojo/drill-api/internal/domain"

// RetentionPattern is a qualitative label for how a problem's attempt history
// has developed.
type RetentionPattern string

// Possible retention pattern values.
const (
	PatternPerfect   RetentionPattern = "perfect"   // every stage answered correctly
	PatternImproving RetentionPattern = "improving" // later attempts clearly better
	PatternDeclining RetentionPattern = "declining" // later attempts clearly worse
	PatternStable    RetentionPattern = "stable"    // no clear trend
	PatternWeak      RetentionPattern = "weak"      // no correct attempts
	PatternUnknown   RetentionPattern = "unknown"   // no attempts yet
)

// patternTrendMargin is the minimum difference between the first- and
// second-half accuracy before a history counts as improving or declining.
const patternTrendMargin = 0.25

// RetentionScore derives a 0-100 estimate of how well a problem is memorized
// from its attempt list. Each stage whose current attempt is correct
// contributes its weight times 100; later stages weigh more, so reaching and
// passing them dominates the score. The result is capped at 100.
func RetentionScore(attempts []domain.Attempt, params *Params) float64 {
	score := 0.0
	for _, attempt := range attempts {
		if attempt.IsCorrect && int(attempt.Stage) < len(params.StageWeights) {
			score += params.StageWeights[attempt.Stage] * 100
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

// AnalyzePattern classifies an attempt history by comparing the accuracy of
// its first half against its second half.
func AnalyzePattern(attempts []domain.Attempt) RetentionPattern {
	if len(attempts) == 0 {
		return PatternUnknown
	}

	correct := 0
	for _, a := range attempts {
		if a.IsCorrect {
			correct++
		}
	}

	if correct == len(attempts) {
		return PatternPerfect
	}
	if correct == 0 {
		return PatternWeak
	}

	split := (len(attempts) + 1) / 2
	firstRate := correctRate(attempts[:split])
	secondRate := correctRate(attempts[split:])

	if secondRate > firstRate+patternTrendMargin {
		return PatternImproving
	}
	if firstRate > secondRate+patternTrendMargin {
		return PatternDeclining
	}
	return PatternStable
}

// Efficiency scores how economically a problem was learned: the accuracy over
// all attempts, discounted 10% per extra attempt, as a 0-100 value.
func Efficiency(attempts []domain.Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}

	accuracy := correctRate(attempts)
	efficiency := accuracy * (1 - float64(len(attempts)-1)*0.1)
	if efficiency < 0 {
		return 0
	}
	return efficiency * 100
}

func correctRate(attempts []domain.Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	correct := 0
	for _, a := range attempts {
		if a.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(attempts))
}
