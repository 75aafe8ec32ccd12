package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teman-edu/advisor-cli/internal/model"
)

func TestScoreReadinessEmptyProfile(t *testing.T) {
	score := ScoreReadiness(model.Profile{}, DefaultParams().Readiness)

	assert.Zero(t, score.Composite)
	assert.Zero(t, score.Breakdown.Academic)
	assert.Zero(t, score.Breakdown.Financial)
	assert.Zero(t, score.Breakdown.Language)
	assert.Zero(t, score.Breakdown.Timeline)
	assert.Zero(t, score.Breakdown.Documentation)
}

func TestScoreReadinessFullProfile(t *testing.T) {
	p := profileWith(func(p *model.Profile) {
		p.SPMCredits = model.Present(8.0)
		p.BudgetMonthly = model.Present(2000.0)
		p.EnglishLevel = model.Present("Advanced")
		p.EnglishTestScore = model.Present(100.0)
		p.IntakeMonths = model.Present(12.0)
		p.DocumentsReady = model.Present([]string{"a", "b", "c", "d", "e"})
	})

	score := ScoreReadiness(p, DefaultParams().Readiness)

	assert.Equal(t, 100, score.Composite)
	assert.Equal(t, 100.0, score.Breakdown.Academic)
	assert.Equal(t, 100.0, score.Breakdown.Financial)
	assert.Equal(t, 100.0, score.Breakdown.Language)
}

func TestScoreReadinessAcademicTakesBestSignal(t *testing.T) {
	weak := profileWith(func(p *model.Profile) {
		p.SPMCredits = model.Present(2.0)
	})
	alsoCGPA := profileWith(func(p *model.Profile) {
		p.SPMCredits = model.Present(2.0)
		p.CGPA = model.Present(3.6)
	})

	a := ScoreReadiness(weak, DefaultParams().Readiness)
	b := ScoreReadiness(alsoCGPA, DefaultParams().Readiness)

	// Adding a strong second signal raises the category; a weak extra
	// signal could never lower it.
	assert.Greater(t, b.Breakdown.Academic, a.Breakdown.Academic)
}

func TestScoreReadinessEnglishTestAloneCounts(t *testing.T) {
	p := profileWith(func(p *model.Profile) {
		p.EnglishTestScore = model.Present(70.0)
	})

	score := ScoreReadiness(p, DefaultParams().Readiness)
	assert.InDelta(t, 70.0, score.Breakdown.Language, 0.001)
}

// Improving any single field never lowers the composite.
func TestScoreReadinessMonotone(t *testing.T) {
	w := DefaultParams().Readiness

	base := profileWith(func(p *model.Profile) {
		p.SPMCredits = model.Present(3.0)
		p.BudgetMonthly = model.Present(600.0)
		p.EnglishLevel = model.Present("Beginner")
		p.IntakeMonths = model.Present(3.0)
		p.DocumentsReady = model.Present([]string{"ic"})
	})
	baseScore := ScoreReadiness(base, w).Composite

	improvements := []func(*model.Profile){
		func(p *model.Profile) { p.SPMCredits = model.Present(7.0) },
		func(p *model.Profile) { p.CGPA = model.Present(3.9) },
		func(p *model.Profile) { p.AcademicBand = model.Present("A+") },
		func(p *model.Profile) { p.BudgetMonthly = model.Present(1800.0) },
		func(p *model.Profile) { p.EnglishLevel = model.Present("Advanced") },
		func(p *model.Profile) { p.EnglishTestScore = model.Present(90.0) },
		func(p *model.Profile) { p.IntakeMonths = model.Present(10.0) },
		func(p *model.Profile) { p.DocumentsReady = model.Present([]string{"ic", "transcript", "photo", "statement"}) },
	}

	for i, improve := range improvements {
		improved := base
		improve(&improved)
		got := ScoreReadiness(improved, w).Composite
		assert.GreaterOrEqual(t, got, baseScore, "improvement %d lowered the composite", i)
	}
}

func TestScoreReadinessZeroWeights(t *testing.T) {
	score := ScoreReadiness(strongProfile(), ReadinessWeights{})
	assert.Zero(t, score.Composite)
}
