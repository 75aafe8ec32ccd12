package model

import "time"

// ConditionKind is the closed set of comparison shapes a gate condition can
// take. Evaluation dispatches on the kind; there is no free-form predicate
// interpretation.
type ConditionKind string

const (
	// KindEquality matches when the profile text equals Target
	// (case-insensitive).
	KindEquality ConditionKind = "equality"
	// KindThreshold matches when the numeric value is at least Min.
	// Values inside the Tolerance band below Min are borderline.
	// With a Scale set, the profile text is first mapped to its rank.
	KindThreshold ConditionKind = "threshold"
	// KindRange matches when Min <= value <= Max. Values within Tolerance
	// outside either bound are borderline.
	KindRange ConditionKind = "range"
	// KindMembership matches when the profile list overlaps Values.
	KindMembership ConditionKind = "membership"
)

// Condition is one gate/fit predicate of a rule.
type Condition struct {
	ID    string        `json:"id"`
	Field FieldName     `json:"field"`
	Kind  ConditionKind `json:"kind"`

	Target    string    `json:"target,omitempty"`    // equality
	Min       float64   `json:"min,omitempty"`       // threshold, range
	Max       float64   `json:"max,omitempty"`       // range
	Tolerance float64   `json:"tolerance,omitempty"` // borderline band width
	Values    []string  `json:"values,omitempty"`    // membership
	Scale     ScaleName `json:"scale,omitempty"`     // categorical rank mapping

	// Required conditions can sink a rule's gate; advisory conditions
	// resolve failed comparisons to borderline instead.
	Required bool `json:"required"`

	// Weight drives the fit score; BorderlineCredit is the fractional value
	// a borderline outcome contributes (default 0.5 applied at load time).
	Weight           float64 `json:"weight"`
	BorderlineCredit float64 `json:"borderline_credit"`

	// Label is the human-readable description used in explanations.
	Label string `json:"label"`
}

// Selectivity is the rule's declared tier hint.
type Selectivity string

const (
	SelectivityLow    Selectivity = "low"
	SelectivityMedium Selectivity = "medium"
	SelectivityHigh   Selectivity = "high"
)

// KnownSelectivity reports whether s is a declared selectivity band.
func KnownSelectivity(s Selectivity) bool {
	return s == SelectivityLow || s == SelectivityMedium || s == SelectivityHigh
}

// Rule is one eligibility/fit rule from the counselor logic table.
type Rule struct {
	RuleID       string      `json:"rule_id"`
	PathwayName  string      `json:"pathway_name"`
	Summary      string      `json:"summary,omitempty"`
	CostEstimate string      `json:"cost_estimate,omitempty"`
	Conditions   []Condition `json:"conditions"`
	Selectivity  Selectivity `json:"selectivity"`
	Universities []string    `json:"universities,omitempty"`
	Priority     int         `json:"priority"`
}

// RuleSnapshot is an immutable set of rules used consistently for one
// evaluation run. Construction applies upsert-by-rule_id: a later rule with a
// seen rule_id replaces the earlier definition in place, so declaration order
// is first-seen order.
type RuleSnapshot struct {
	version  string
	loadedAt time.Time
	rules    []Rule
	byID     map[string]int
}

// NewRuleSnapshot builds a snapshot from rules in declaration order,
// last write winning on duplicate rule_id.
func NewRuleSnapshot(version string, rules []Rule) *RuleSnapshot {
	s := &RuleSnapshot{
		version:  version,
		loadedAt: time.Now().UTC(),
		byID:     make(map[string]int, len(rules)),
	}
	for _, r := range rules {
		if i, ok := s.byID[r.RuleID]; ok {
			s.rules[i] = r
			continue
		}
		s.byID[r.RuleID] = len(s.rules)
		s.rules = append(s.rules, r)
	}
	return s
}

// Version returns the snapshot's version label.
func (s *RuleSnapshot) Version() string { return s.version }

// LoadedAt returns when the snapshot was built.
func (s *RuleSnapshot) LoadedAt() time.Time { return s.loadedAt }

// Len returns the number of rules.
func (s *RuleSnapshot) Len() int { return len(s.rules) }

// Rules returns the rules in declaration order. Callers must not mutate the
// returned slice.
func (s *RuleSnapshot) Rules() []Rule { return s.rules }

// Get returns the rule with the given id.
func (s *RuleSnapshot) Get(ruleID string) (Rule, bool) {
	i, ok := s.byID[ruleID]
	if !ok {
		return Rule{}, false
	}
	return s.rules[i], true
}

// Has reports whether the snapshot contains ruleID.
func (s *RuleSnapshot) Has(ruleID string) bool {
	_, ok := s.byID[ruleID]
	return ok
}
