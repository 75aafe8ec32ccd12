package engine

import (
	"fmt"
	"strings"

	"github.com/teman-edu/advisor-cli/internal/model"
)

// maxReasonConditions caps how many matched conditions a match reason quotes.
const maxReasonConditions = 3

// matchUniversities resolves the institution references of the selected
// recommendations in shortlist order. Each match reason is derived from the
// matched conditions of the owning recommendation. A university referenced by
// more than one selected pathway keeps its first (best-ranked) entry; a
// reference absent from the catalog still surfaces, with the id only, so the
// trail stays complete.
func matchUniversities(snapshot *model.RuleSnapshot, catalog *model.Catalog, recs []PathwayRecommendation) []UniversityMatch {
	var matches []UniversityMatch
	seen := make(map[string]bool)
	for _, rec := range recs {
		rule, ok := snapshot.Get(rec.RuleID)
		if !ok {
			continue
		}
		for _, id := range rule.Universities {
			if seen[id] {
				continue
			}
			seen[id] = true
			m := UniversityMatch{
				UniversityID: id,
				RuleID:       rec.RuleID,
				Tier:         rec.Tier,
				MatchReason:  matchReason(rec),
			}
			if u, found := catalog.Get(id); found {
				m.Name = u.Name
			}
			matches = append(matches, m)
		}
	}
	return matches
}

func matchReason(rec PathwayRecommendation) string {
	matched := rec.Explanation.Matched
	if len(matched) == 0 {
		return fmt.Sprintf("referenced by %s pathway %q", rec.Tier, rec.PathwayName)
	}
	if len(matched) > maxReasonConditions {
		matched = matched[:maxReasonConditions]
	}
	return fmt.Sprintf("%s pathway %q: %s", rec.Tier, rec.PathwayName, strings.Join(matched, "; "))
}
