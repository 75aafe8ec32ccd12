package engine

import (
	"math"

	"github.com/teman-edu/advisor-cli/internal/model"
)

// Readiness reference points: the field value at which a category sub-score
// saturates at 100.
const (
	fullSPMCredits   = 8.0
	fullCGPA         = 4.0
	fullGradeRank    = 9.0 // A+
	fullBudget       = 2000.0
	fullRunwayMonths = 12.0
	fullChecklist    = 5.0
	englishTestBonus = 10.0
)

// ScoreReadiness computes the profile-only composite readiness score with its
// per-category breakdown. Every sub-score function is monotone: improving any
// single qualifying field never lowers its category or the composite. A
// category with no data scores 0; it is still weighted into the composite so
// an empty profile reads as unready, not as unknown-but-fine.
func ScoreReadiness(p model.Profile, w ReadinessWeights) ReadinessScore {
	b := ReadinessBreakdown{
		Academic:      scoreAcademicReadiness(p),
		Financial:     scoreFinancialReadiness(p),
		Language:      scoreLanguageReadiness(p),
		Timeline:      scoreTimelineReadiness(p),
		Documentation: scoreDocumentationReadiness(p),
	}

	sum := w.Sum()
	if sum <= 0 {
		return ReadinessScore{Breakdown: b}
	}
	composite := (b.Academic*w.Academic +
		b.Financial*w.Financial +
		b.Language*w.Language +
		b.Timeline*w.Timeline +
		b.Documentation*w.Documentation) / sum

	return ReadinessScore{
		Composite: int(math.Round(composite)),
		Breakdown: roundBreakdown(b),
	}
}

// scoreAcademicReadiness takes the best available academic signal. Using the
// maximum keeps the sub-score monotone in each individual field.
func scoreAcademicReadiness(p model.Profile) float64 {
	var best float64
	if credits, ok := p.SPMCredits.Get(); ok {
		best = math.Max(best, clamp01(credits/fullSPMCredits)*100)
	}
	if cgpa, ok := p.CGPA.Get(); ok {
		best = math.Max(best, clamp01(cgpa/fullCGPA)*100)
	}
	if band, ok := p.AcademicBand.Get(); ok {
		if rank, known := model.Rank(model.ScaleGrade, band); known {
			best = math.Max(best, clamp01(rank/fullGradeRank)*100)
		}
	}
	return best
}

func scoreFinancialReadiness(p model.Profile) float64 {
	budget, ok := p.BudgetMonthly.Get()
	if !ok {
		return 0
	}
	return clamp01(budget/fullBudget) * 100
}

func scoreLanguageReadiness(p model.Profile) float64 {
	var score float64
	if level, ok := p.EnglishLevel.Get(); ok {
		if rank, known := model.Rank(model.ScaleEnglish, level); known {
			// Beginner 40, Intermediate 65, Advanced 90.
			score = 40 + rank*25
		}
	}
	if test, ok := p.EnglishTestScore.Get(); ok {
		if score == 0 {
			score = clamp01(test/100) * 100
		} else {
			score += clamp01(test/100) * englishTestBonus
		}
	}
	return math.Min(score, 100)
}

// scoreTimelineReadiness rewards planning runway: more months before the
// intended intake means more time to close gaps. Capped, so the sub-score is
// non-decreasing in the field.
func scoreTimelineReadiness(p model.Profile) float64 {
	months, ok := p.IntakeMonths.Get()
	if !ok {
		return 0
	}
	return clamp01(months/fullRunwayMonths) * 100
}

func scoreDocumentationReadiness(p model.Profile) float64 {
	docs, ok := p.DocumentsReady.Get()
	if !ok {
		return 0
	}
	return clamp01(float64(len(docs))/fullChecklist) * 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundBreakdown(b ReadinessBreakdown) ReadinessBreakdown {
	round2 := func(v float64) float64 { return math.Round(v*100) / 100 }
	return ReadinessBreakdown{
		Academic:      round2(b.Academic),
		Financial:     round2(b.Financial),
		Language:      round2(b.Language),
		Timeline:      round2(b.Timeline),
		Documentation: round2(b.Documentation),
	}
}
