// Package verdict combines the sub-analysis scores into the terminal
// verification outcome.
package verdict

import (
	"math"

	"github.com/sgribkov/newsvet/internal/model"
)

// Strategy selects how the source count enters the weighted sum. The two
// reference formulas disagree; both are supported and the active one is
// configured explicitly.
type Strategy string

const (
	// StrategyBonus adds min(count*5, 25) on top of weights summing to 0.95.
	// This matches the observed runtime behavior and is the default.
	StrategyBonus Strategy = "bonus"
	// StrategyNormalized scales the source count to a 0-100 factor weighted
	// at 0.05, so all weights sum to exactly 1.0.
	StrategyNormalized Strategy = "normalized"
)

// ParseStrategy maps a config string to a Strategy, defaulting to bonus.
func ParseStrategy(s string) Strategy {
	if s == string(StrategyNormalized) {
		return StrategyNormalized
	}
	return StrategyBonus
}

// Fixed explanation strings per score band. Callers depend on the exact
// wording.
const (
	explanationTrue        = "Multiple credible sources confirm this news with consistent information and verifiable details."
	explanationLikelyTrue  = "Several sources support this news, but some details may need verification."
	explanationUncertain   = "Mixed signals - some sources support this, but credibility or consistency is questionable."
	explanationLikelyFalse = "Multiple red flags suggest this news may be inaccurate or misleading."
	explanationUnverified  = "No matching news found in any source."
)

// Aggregate weight-combines the four sub-scores and the source count into a
// final verdict. Inputs outside [0,100] are tolerated; the result is always
// clamped.
func Aggregate(strategy Strategy, credibilityAvg float64, consistencyScore, factScore, qualityScore, sourceCount int) model.Verdict {
	var bonus float64
	if strategy == StrategyNormalized {
		bonus = math.Min(float64(sourceCount)*20, 100) * 0.05
	} else {
		bonus = math.Min(float64(sourceCount)*5, 25)
	}

	final := credibilityAvg*0.30 +
		float64(consistencyScore)*0.25 +
		float64(factScore)*0.25 +
		float64(qualityScore)*0.15 +
		bonus

	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	final = math.Round(final*10) / 10

	switch {
	case final >= 80:
		return model.Verdict{
			Verdict:     model.VerdictTrue,
			Confidence:  model.ConfidenceHigh,
			FinalScore:  final,
			Explanation: explanationTrue,
		}
	case final >= 60:
		return model.Verdict{
			Verdict:     model.VerdictLikelyTrue,
			Confidence:  model.ConfidenceMedium,
			FinalScore:  final,
			Explanation: explanationLikelyTrue,
		}
	case final >= 40:
		return model.Verdict{
			Verdict:     model.VerdictUncertain,
			Confidence:  model.ConfidenceLow,
			FinalScore:  final,
			Explanation: explanationUncertain,
		}
	default:
		return model.Verdict{
			Verdict:     model.VerdictLikelyFalse,
			Confidence:  model.ConfidenceMedium,
			FinalScore:  final,
			Explanation: explanationLikelyFalse,
		}
	}
}

// Unverified is the fixed terminal verdict for the zero-source case. The
// weighted formula is skipped entirely.
func Unverified() model.Verdict {
	return model.Verdict{
		Verdict:     model.VerdictUnverified,
		Confidence:  model.ConfidenceLow,
		FinalScore:  0,
		Explanation: explanationUnverified,
	}
}
