package rules

import "github.com/teman-edu/advisor-cli/internal/model"

// Diff summarizes what an upsert of incoming rules would do against an
// existing snapshot. Counselors review this before committing a new logic
// table.
type Diff struct {
	Insert  int      `json:"insert"`
	Update  int      `json:"update"`
	RuleIDs []string `json:"rule_ids"`
}

// DiffPreview computes the insert/update split of incoming rules against
// existing. A nil existing snapshot means everything inserts. Duplicate ids
// within incoming count once, matching upsert identity.
func DiffPreview(existing *model.RuleSnapshot, incoming []model.Rule) Diff {
	var d Diff
	seen := make(map[string]bool, len(incoming))
	for _, r := range incoming {
		if seen[r.RuleID] {
			continue
		}
		seen[r.RuleID] = true
		d.RuleIDs = append(d.RuleIDs, r.RuleID)
		if existing != nil && existing.Has(r.RuleID) {
			d.Update++
		} else {
			d.Insert++
		}
	}
	return d
}
