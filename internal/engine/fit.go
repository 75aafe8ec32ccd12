package engine

import (
	"math"

	"github.com/teman-edu/advisor-cli/internal/model"
)

// matchedCredit is the value a fully matched condition contributes to the
// fit numerator.
const matchedCredit = 1.0

// ScoreFit computes the weighted fit score for a rule that passed its gate.
// Only matched and borderline conditions enter the sums; missing conditions
// shrink the evaluable denominator instead of penalizing the numerator.
// Summation follows condition declaration order so identical inputs always
// produce the identical float. A zero denominator (everything relevant
// missing) yields score 0 flagged low-confidence, not an error.
func ScoreFit(rule model.Rule, ev *RuleEvaluation) {
	var num, den float64
	for i, c := range rule.Conditions {
		switch ev.Outcomes[i] {
		case OutcomeMatched:
			num += c.Weight * matchedCredit
			den += c.Weight
		case OutcomeBorderline:
			num += c.Weight * c.BorderlineCredit
			den += c.Weight
		}
	}

	if den == 0 {
		ev.FitScore = 0
		ev.LowConfidence = true
		return
	}

	// Round to 4 decimal places: stable across runs, fine-grained enough
	// for ranking.
	ev.FitScore = math.Round(num/den*10000) / 10000
}
