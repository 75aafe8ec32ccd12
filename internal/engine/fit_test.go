package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teman-edu/advisor-cli/internal/model"
)

func fitRule(conds ...model.Condition) model.Rule {
	return model.Rule{RuleID: "fit-test", Conditions: conds}
}

func scoredEval(rule model.Rule, outcomes ...ConditionOutcome) *RuleEvaluation {
	ev := &RuleEvaluation{Outcomes: outcomes}
	ScoreFit(rule, ev)
	return ev
}

func TestScoreFitAllMatched(t *testing.T) {
	rule := fitRule(
		model.Condition{Weight: 1},
		model.Condition{Weight: 1},
		model.Condition{Weight: 0.5},
	)
	ev := scoredEval(rule, OutcomeMatched, OutcomeMatched, OutcomeMatched)

	assert.Equal(t, 1.0, ev.FitScore)
	assert.False(t, ev.LowConfidence)
}

func TestScoreFitBorderlineCredit(t *testing.T) {
	rule := fitRule(
		model.Condition{Weight: 1, BorderlineCredit: 0.5},
		model.Condition{Weight: 1, BorderlineCredit: 0.5},
	)
	ev := scoredEval(rule, OutcomeMatched, OutcomeBorderline)

	// (1*1 + 1*0.5) / (1 + 1)
	assert.Equal(t, 0.75, ev.FitScore)
}

func TestScoreFitMissingShrinksDenominator(t *testing.T) {
	rule := fitRule(
		model.Condition{Weight: 1},
		model.Condition{Weight: 1},
		model.Condition{Weight: 2},
	)
	ev := scoredEval(rule, OutcomeMatched, OutcomeMissing, OutcomeMissing)

	// Missing conditions drop out entirely instead of counting against.
	assert.Equal(t, 1.0, ev.FitScore)
}

func TestScoreFitWeighting(t *testing.T) {
	rule := fitRule(
		model.Condition{Weight: 3, BorderlineCredit: 0.5},
		model.Condition{Weight: 1, BorderlineCredit: 0.5},
	)
	ev := scoredEval(rule, OutcomeMatched, OutcomeBorderline)

	// (3*1 + 1*0.5) / 4
	assert.Equal(t, 0.875, ev.FitScore)
}

func TestScoreFitEverythingMissing(t *testing.T) {
	rule := fitRule(
		model.Condition{Weight: 1},
		model.Condition{Weight: 1},
	)
	ev := scoredEval(rule, OutcomeMissing, OutcomeMissing)

	assert.Zero(t, ev.FitScore)
	assert.True(t, ev.LowConfidence)
}

func TestScoreFitRounded(t *testing.T) {
	rule := fitRule(
		model.Condition{Weight: 1, BorderlineCredit: 0.5},
		model.Condition{Weight: 1, BorderlineCredit: 0.5},
		model.Condition{Weight: 1, BorderlineCredit: 0.5},
	)
	ev := scoredEval(rule, OutcomeMatched, OutcomeMatched, OutcomeBorderline)

	// 2.5/3 rounded to 4 decimal places.
	assert.Equal(t, 0.8333, ev.FitScore)
}

func TestScoreFitBounds(t *testing.T) {
	outcomes := []ConditionOutcome{OutcomeMatched, OutcomeBorderline, OutcomeMissing}
	rule := fitRule(
		model.Condition{Weight: 1, BorderlineCredit: 0.5},
		model.Condition{Weight: 2, BorderlineCredit: 0.5},
		model.Condition{Weight: 0.5, BorderlineCredit: 0.5},
	)

	for _, a := range outcomes {
		for _, b := range outcomes {
			for _, c := range outcomes {
				ev := scoredEval(rule, a, b, c)
				assert.GreaterOrEqual(t, ev.FitScore, 0.0)
				assert.LessOrEqual(t, ev.FitScore, 1.0)
			}
		}
	}
}
