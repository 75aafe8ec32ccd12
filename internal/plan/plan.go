// Package plan turns an evaluation result into counselor-facing next steps:
// a short action plan for surfaced recommendations and a recovery plan when
// every pathway was excluded.
package plan

import (
	"sort"
	"strings"

	"github.com/teman-edu/advisor-cli/internal/engine"
	"github.com/teman-edu/advisor-cli/internal/model"
)

const (
	maxSevenDayActions = 5
	maxThirtyDayItems  = 6
	maxBlockedInputs   = 6
	maxAlternatives    = 3
)

// ActionPlan is a two-horizon task list for a student with at least one
// surfaced recommendation.
type ActionPlan struct {
	SevenDayActions []string `json:"seven_day_actions"`
	ThirtyDayPlan   []string `json:"thirty_day_plan"`
}

// Alternative is a local fallback pathway offered in a recovery plan.
type Alternative struct {
	PathwayName  string `json:"pathway_name"`
	Summary      string `json:"summary,omitempty"`
	CostEstimate string `json:"cost_estimate,omitempty"`
}

// RecoveryPlan is the no-match counterpart of ActionPlan: what blocked the
// student and how to unlock options.
type RecoveryPlan struct {
	BlockedInputs            []string      `json:"blocked_inputs"`
	UnlockSteps              []string      `json:"unlock_steps"`
	AlternativeLocalPathways []Alternative `json:"alternative_local_pathways"`
}

// BuildAction assembles the action plan from the profile and the missing
// conditions of the surfaced recommendations.
func BuildAction(profile model.ProfileInput, result engine.Result) ActionPlan {
	sevenDay := []string{
		"Shortlist two realistic pathways and discuss with a counselor or mentor.",
		"Collect latest academic transcript and supporting documents.",
		"Draft a simple CV and personal statement outline.",
	}
	thirtyDay := []string{
		"Follow a weekly English improvement routine (speaking and writing).",
		"Build one portfolio artifact relevant to your target field.",
		"Contact at least 3 institutions for entry and cost clarification.",
		"Track scholarship deadlines and required documents.",
	}

	missing := collectMissing(result.Recommendations)
	if anyContains(missing, "english") || profile.EnglishLevel == nil {
		sevenDay = append(sevenDay, "Take a free English placement test and set a target score.")
	}
	if profile.BudgetMonthly == nil || anyContains(missing, "budget") {
		thirtyDay = append(thirtyDay, "Confirm a realistic monthly budget with your family or sponsor.")
	}
	if len(profile.DocumentsReady) < 3 {
		thirtyDay = append(thirtyDay, "Complete the document checklist starting with your identity card and transcript.")
	}

	return ActionPlan{
		SevenDayActions: truncate(sevenDay, maxSevenDayActions),
		ThirtyDayPlan:   truncate(thirtyDay, maxThirtyDayItems),
	}
}

// BuildRecovery assembles the recovery plan from the exclusion diagnostics
// and offers up to three low-selectivity pathways as local fallbacks.
// Blocked inputs name both the conditions that hard-failed a gate and the
// ones the profile left unanswered.
func BuildRecovery(result engine.Result, snapshot *model.RuleSnapshot) RecoveryPlan {
	blocked := map[string]struct{}{}
	for _, ev := range result.Diagnostics {
		if ev.State != engine.StateExcluded {
			continue
		}
		for _, item := range ev.Failed {
			blocked[item] = struct{}{}
		}
		for _, item := range ev.Missing {
			blocked[item] = struct{}{}
		}
	}
	inputs := make([]string, 0, len(blocked))
	for item := range blocked {
		inputs = append(inputs, item)
	}
	sort.Strings(inputs)
	inputs = truncate(inputs, maxBlockedInputs)

	steps := []string{
		"Improve the weakest academic prerequisite for your target pathway.",
		"Increase budget flexibility via scholarships, grants, or part-time planning.",
		"Strengthen English readiness with measurable weekly targets.",
		"Prioritize local pathways first, then reassess overseas options.",
		"Review constraints with a counselor to widen feasible options.",
	}

	var alternatives []Alternative
	if snapshot != nil {
		for _, rule := range snapshot.Rules() {
			if rule.Selectivity != model.SelectivityLow {
				continue
			}
			alternatives = append(alternatives, Alternative{
				PathwayName:  rule.PathwayName,
				Summary:      rule.Summary,
				CostEstimate: rule.CostEstimate,
			})
			if len(alternatives) == maxAlternatives {
				break
			}
		}
	}

	return RecoveryPlan{
		BlockedInputs:            inputs,
		UnlockSteps:              steps,
		AlternativeLocalPathways: alternatives,
	}
}

func collectMissing(recs []engine.PathwayRecommendation) []string {
	var missing []string
	for _, rec := range recs {
		missing = append(missing, rec.Explanation.Missing...)
		missing = append(missing, rec.Explanation.Borderline...)
	}
	return missing
}

func anyContains(items []string, substr string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), substr) {
			return true
		}
	}
	return false
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
