package engine

import (
	"sort"

	"github.com/teman-edu/advisor-cli/internal/model"
)

// sortEvaluations orders passing evaluations by fit score descending, ties
// broken by ascending priority then ascending rule_id. The order is a total
// order: identical inputs always rank identically.
func sortEvaluations(evs []*RuleEvaluation) {
	sort.SliceStable(evs, func(i, j int) bool {
		a, b := evs[i], evs[j]
		if a.FitScore != b.FitScore {
			return a.FitScore > b.FitScore
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.RuleID < b.RuleID
	})
}

// tierFor maps a rule's declared selectivity and its fit score to a tier.
// Low-selectivity rules with high fit are Safe; medium selectivity with
// mid-to-high fit is Target; high selectivity is Aspirational above a minimum
// floor. A rule below its band's threshold gets no tier and is discarded.
func tierFor(selectivity model.Selectivity, fit float64, p Params) (Tier, bool) {
	switch selectivity {
	case model.SelectivityLow:
		if fit >= p.SafeFitMin {
			return TierSafe, true
		}
		if fit >= p.TargetFitMin {
			return TierTarget, true
		}
	case model.SelectivityMedium:
		if fit >= p.TargetFitMin {
			return TierTarget, true
		}
	case model.SelectivityHigh:
		if fit >= p.AspirationalFitFloor {
			return TierAspirational, true
		}
	}
	return "", false
}

// selectShortlist picks the single best-ranked rule per tier from the ranked
// evaluations, capped at p.MaxRecommendations. Tiers with no qualifying rule
// are omitted, never backfilled. Returns selections keyed by tier in
// tierOrder sequence.
func selectShortlist(ranked []*RuleEvaluation, p Params) map[Tier]*RuleEvaluation {
	selected := make(map[Tier]*RuleEvaluation, len(tierOrder))
	total := 0
	for _, ev := range ranked {
		if total >= p.MaxRecommendations {
			break
		}
		tier, ok := tierFor(ev.Selectivity, ev.FitScore, p)
		if !ok {
			continue
		}
		if _, taken := selected[tier]; taken {
			continue
		}
		selected[tier] = ev
		total++
	}
	return selected
}
