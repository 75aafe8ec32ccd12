package engine

import (
	"strings"

	"github.com/teman-edu/advisor-cli/internal/model"
)

// EvaluateCondition resolves one condition against one profile. An absent
// field is always Missing, never a failure. A failed comparison on an
// advisory condition resolves to Borderline: advisory conditions can never
// sink a gate.
func EvaluateCondition(c model.Condition, p model.Profile) ConditionOutcome {
	v, ok := p.Lookup(c.Field)
	if !ok {
		return OutcomeMissing
	}

	var out ConditionOutcome
	switch c.Kind {
	case model.KindEquality:
		out = evalEquality(c, v)
	case model.KindThreshold:
		out = evalThreshold(c, v)
	case model.KindRange:
		out = evalRange(c, v)
	case model.KindMembership:
		out = evalMembership(c, v)
	default:
		// Unknown kinds cannot reach a validated snapshot; treat as
		// unevaluable rather than failing the student.
		return OutcomeMissing
	}

	if out == OutcomeHardFail && !c.Required {
		return OutcomeBorderline
	}
	return out
}

func evalEquality(c model.Condition, v model.Value) ConditionOutcome {
	if v.Kind != model.ValueText {
		return OutcomeHardFail
	}
	if strings.EqualFold(strings.TrimSpace(v.Text), c.Target) {
		return OutcomeMatched
	}
	return OutcomeHardFail
}

func evalThreshold(c model.Condition, v model.Value) ConditionOutcome {
	n, ok := numericValue(c, v)
	if !ok {
		return OutcomeHardFail
	}
	switch {
	case n >= c.Min:
		return OutcomeMatched
	case n >= c.Min-c.Tolerance:
		return OutcomeBorderline
	default:
		return OutcomeHardFail
	}
}

func evalRange(c model.Condition, v model.Value) ConditionOutcome {
	n, ok := numericValue(c, v)
	if !ok {
		return OutcomeHardFail
	}
	switch {
	case n >= c.Min && n <= c.Max:
		return OutcomeMatched
	case n >= c.Min-c.Tolerance && n <= c.Max+c.Tolerance:
		return OutcomeBorderline
	default:
		return OutcomeHardFail
	}
}

func evalMembership(c model.Condition, v model.Value) ConditionOutcome {
	var items []string
	switch v.Kind {
	case model.ValueList:
		items = v.List
	case model.ValueText:
		items = []string{v.Text}
	default:
		return OutcomeHardFail
	}
	for _, item := range items {
		for _, want := range c.Values {
			if strings.EqualFold(strings.TrimSpace(item), want) {
				return OutcomeMatched
			}
		}
	}
	return OutcomeHardFail
}

// numericValue extracts the comparable number from a profile value, mapping
// text through the condition's rank scale when one is declared.
func numericValue(c model.Condition, v model.Value) (float64, bool) {
	switch v.Kind {
	case model.ValueNumber:
		return v.Number, true
	case model.ValueText:
		if c.Scale == model.ScaleNone {
			return 0, false
		}
		return model.Rank(c.Scale, strings.TrimSpace(v.Text))
	default:
		return 0, false
	}
}
