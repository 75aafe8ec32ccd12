package engine

import "github.com/teman-edu/advisor-cli/internal/model"

// EvaluateGate runs every condition of a rule against the profile and
// collects the audit lists in declaration order. The gate passes iff no
// condition hard-fails. The fit score of a failed rule is never computed; the
// returned evaluation carries the zero score and the excluded state.
func EvaluateGate(rule model.Rule, p model.Profile) RuleEvaluation {
	ev := RuleEvaluation{
		RuleID:      rule.RuleID,
		PathwayName: rule.PathwayName,
		Priority:    rule.Priority,
		Selectivity: rule.Selectivity,
		State:       StatePending,
		Outcomes:    make([]ConditionOutcome, len(rule.Conditions)),
	}

	passed := true
	for i, c := range rule.Conditions {
		out := EvaluateCondition(c, p)
		ev.Outcomes[i] = out
		switch out {
		case OutcomeMatched:
			ev.Matched = append(ev.Matched, c.Label)
		case OutcomeBorderline:
			ev.Borderline = append(ev.Borderline, c.Label)
		case OutcomeMissing:
			ev.Missing = append(ev.Missing, c.Label)
		case OutcomeHardFail:
			ev.Failed = append(ev.Failed, c.Label)
			passed = false
		}
	}

	ev.GatePassed = passed
	if !passed {
		ev.State = StateExcluded
	}
	return ev
}
