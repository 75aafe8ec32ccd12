package engine

import (
	"fmt"

	"github.com/teman-edu/advisor-cli/internal/model"
)

// buildRankingReason renders the templated, human-verifiable rationale for a
// selected rule.
func buildRankingReason(rule model.Rule, ev *RuleEvaluation, tier Tier) string {
	matchedRequired, totalRequired := 0, 0
	for i, c := range rule.Conditions {
		if !c.Required {
			continue
		}
		totalRequired++
		if ev.Outcomes[i] == OutcomeMatched {
			matchedRequired++
		}
	}
	return fmt.Sprintf("%d of %d required conditions matched; fit score %.0f%%; selected as %s",
		matchedRequired, totalRequired, ev.FitScore*100, tier)
}

// buildRecommendation assembles the self-contained record for one surfaced
// rule. Slices are copied so the recommendation stays valid independent of
// the evaluation buffers.
func buildRecommendation(rule model.Rule, ev *RuleEvaluation, tier Tier) PathwayRecommendation {
	reason := buildRankingReason(rule, ev, tier)
	ev.RankingReason = reason
	ev.State = StateExplained
	return PathwayRecommendation{
		RuleID:        rule.RuleID,
		PathwayName:   rule.PathwayName,
		Summary:       rule.Summary,
		CostEstimate:  rule.CostEstimate,
		Tier:          tier,
		FitScore:      ev.FitScore,
		LowConfidence: ev.LowConfidence,
		Explanation: Explanation{
			Matched:       append([]string(nil), ev.Matched...),
			Borderline:    append([]string(nil), ev.Borderline...),
			Missing:       append([]string(nil), ev.Missing...),
			RankingReason: reason,
		},
	}
}
