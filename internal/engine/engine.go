package engine

import "github.com/teman-edu/advisor-cli/internal/model"

// Evaluate runs the full engine over one profile and one immutable rule
// snapshot: gate evaluation per rule, fit scoring for survivors, readiness
// scoring, ranking and tier selection, university resolution, and explanation
// assembly. catalog may be nil when no university data is loaded.
//
// Evaluate never fails: an incomplete profile yields Missing outcomes and a
// snapshot with zero passing rules yields a Result with NoMatch set, which is
// a legitimate answer, not an error.
func Evaluate(snapshot *model.RuleSnapshot, catalog *model.Catalog, profile model.Profile, params Params) Result {
	readiness := ScoreReadiness(profile, params.Readiness)

	evals := make([]RuleEvaluation, snapshot.Len())
	var passing []*RuleEvaluation
	for i, rule := range snapshot.Rules() {
		evals[i] = EvaluateGate(rule, profile)
		ev := &evals[i]
		if !ev.GatePassed {
			ev.RankingReason = "excluded: gate failed"
			continue
		}
		ScoreFit(rule, ev)
		passing = append(passing, ev)
	}

	if len(passing) == 0 {
		return Result{
			NoMatch:     true,
			Readiness:   readiness,
			Diagnostics: evals,
		}
	}

	sortEvaluations(passing)
	selected := selectShortlist(passing, params)

	var recs []PathwayRecommendation
	for _, tier := range tierOrder {
		ev, ok := selected[tier]
		if !ok {
			continue
		}
		rule, _ := snapshot.Get(ev.RuleID)
		recs = append(recs, buildRecommendation(rule, ev, tier))
	}

	for _, ev := range passing {
		if ev.State != StateExplained {
			ev.State = StateDiscarded
			ev.RankingReason = "passed gate, not selected"
		}
	}

	if len(recs) == 0 {
		// Rules passed their gates but none cleared a tier threshold.
		// Still an explicit no-match, with full diagnostics.
		return Result{
			NoMatch:     true,
			Readiness:   readiness,
			Diagnostics: evals,
		}
	}

	return Result{
		Recommendations: recs,
		Readiness:       readiness,
		Universities:    matchUniversities(snapshot, catalog, recs),
		Diagnostics:     evals,
	}
}
