package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teman-edu/advisor-cli/internal/engine"
	"github.com/teman-edu/advisor-cli/internal/model"
)

func TestBuildActionBase(t *testing.T) {
	level := "Intermediate"
	budget := 1200.0
	profile := model.ProfileInput{
		EnglishLevel:   &level,
		BudgetMonthly:  &budget,
		DocumentsReady: []string{"ic", "transcript", "photo"},
	}

	p := BuildAction(profile, engine.Result{})

	assert.Len(t, p.SevenDayActions, 3)
	assert.Len(t, p.ThirtyDayPlan, 4)
}

func TestBuildActionEnglishGap(t *testing.T) {
	result := engine.Result{
		Recommendations: []engine.PathwayRecommendation{
			{Explanation: engine.Explanation{Borderline: []string{"English level Intermediate or above"}}},
		},
	}

	p := BuildAction(model.ProfileInput{}, result)

	require.NotEmpty(t, p.SevenDayActions)
	assert.Contains(t, p.SevenDayActions[len(p.SevenDayActions)-1], "English placement test")
	// Missing budget and thin document list add thirty-day items, capped.
	assert.LessOrEqual(t, len(p.ThirtyDayPlan), 6)
	assert.Contains(t, p.ThirtyDayPlan[4], "monthly budget")
}

func TestBuildActionCaps(t *testing.T) {
	p := BuildAction(model.ProfileInput{}, engine.Result{})

	assert.LessOrEqual(t, len(p.SevenDayActions), 5)
	assert.LessOrEqual(t, len(p.ThirtyDayPlan), 6)
}

func TestBuildRecovery(t *testing.T) {
	result := engine.Result{
		NoMatch: true,
		Diagnostics: []engine.RuleEvaluation{
			{State: engine.StateExcluded, Missing: []string{"Monthly budget", "CGPA 3.0 or above"}},
			{State: engine.StateExcluded, Missing: []string{"Monthly budget"}},
			{State: engine.StateDiscarded, Missing: []string{"ignored for discarded"}},
		},
	}
	snapshot := model.NewRuleSnapshot("v1", []model.Rule{
		{RuleID: "overseas", PathwayName: "Degree Abroad", Selectivity: model.SelectivityHigh},
		{RuleID: "local-cert", PathwayName: "Local Certificate", Summary: "12-month certificate", Selectivity: model.SelectivityLow},
		{RuleID: "local-diploma", PathwayName: "Local Diploma", Selectivity: model.SelectivityLow},
	})

	p := BuildRecovery(result, snapshot)

	// Deduplicated, sorted, and only from excluded rules.
	assert.Equal(t, []string{"CGPA 3.0 or above", "Monthly budget"}, p.BlockedInputs)
	assert.Len(t, p.UnlockSteps, 5)
	require.Len(t, p.AlternativeLocalPathways, 2)
	assert.Equal(t, "Local Certificate", p.AlternativeLocalPathways[0].PathwayName)
	assert.Equal(t, "12-month certificate", p.AlternativeLocalPathways[0].Summary)
}

func TestBuildRecoveryNamesHardFailedConditions(t *testing.T) {
	// Every value present but too low: nothing is missing, the gates
	// hard-failed, and the blocked inputs must still name the culprits.
	result := engine.Result{
		NoMatch: true,
		Diagnostics: []engine.RuleEvaluation{
			{State: engine.StateExcluded, Failed: []string{"5 SPM credits"}},
			{State: engine.StateExcluded, Failed: []string{"5 SPM credits", "Budget at least RM 1500 per month"}},
		},
	}

	p := BuildRecovery(result, nil)

	assert.Equal(t, []string{"5 SPM credits", "Budget at least RM 1500 per month"}, p.BlockedInputs)
}

func TestBuildRecoveryNilSnapshot(t *testing.T) {
	p := BuildRecovery(engine.Result{NoMatch: true}, nil)

	assert.Empty(t, p.BlockedInputs)
	assert.Empty(t, p.AlternativeLocalPathways)
	assert.NotEmpty(t, p.UnlockSteps)
}
