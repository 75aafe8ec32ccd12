// Package engine implements the deterministic pathway recommendation engine:
// gate evaluation, fit and readiness scoring, ranking and tiering, university
// matching, and explanation assembly. The engine is a pure function from
// (profile, rule snapshot) to a Result: it performs no I/O, keeps no mutable
// state, and may be called concurrently over a shared snapshot.
package engine

import "github.com/teman-edu/advisor-cli/internal/model"

// ConditionOutcome is the result of evaluating one condition against one
// profile.
type ConditionOutcome string

const (
	OutcomeMatched    ConditionOutcome = "matched"
	OutcomeBorderline ConditionOutcome = "borderline"
	OutcomeHardFail   ConditionOutcome = "hard_fail"
	OutcomeMissing    ConditionOutcome = "missing"
)

// RuleState is the terminal state of one rule's evaluation. Every rule starts
// from pending; the chain pending -> gate evaluated -> scored -> ranked ->
// explained is never reversed.
type RuleState string

const (
	StatePending   RuleState = "pending"
	StateExcluded  RuleState = "excluded"  // gate failed
	StateDiscarded RuleState = "discarded" // passed gate, not selected
	StateExplained RuleState = "explained" // selected and surfaced
)

// RuleEvaluation is the per-rule audit record. Condition descriptions keep
// declaration order. FitScore is meaningful only when GatePassed is true.
type RuleEvaluation struct {
	RuleID        string             `json:"rule_id"`
	PathwayName   string             `json:"pathway_name"`
	GatePassed    bool               `json:"gate_passed"`
	Outcomes      []ConditionOutcome `json:"outcomes"`
	Matched       []string           `json:"matched_conditions"`
	Borderline    []string           `json:"borderline_conditions"`
	Missing       []string           `json:"missing_conditions"`
	Failed        []string           `json:"failed_conditions,omitempty"`
	FitScore      float64            `json:"fit_score"`
	LowConfidence bool               `json:"low_confidence,omitempty"`
	Priority      int                `json:"priority"`
	Selectivity   model.Selectivity  `json:"selectivity"`
	State         RuleState          `json:"state"`
	RankingReason string             `json:"ranking_reason,omitempty"`
}

// Tier labels a recommendation by its selectivity/fit trade-off.
type Tier string

const (
	TierSafe         Tier = "Safe"
	TierTarget       Tier = "Target"
	TierAspirational Tier = "Aspirational"
)

// tierOrder fixes the output order of selected recommendations.
var tierOrder = []Tier{TierSafe, TierTarget, TierAspirational}

// Explanation is a self-contained audit trail for one surfaced
// recommendation: enough for a reviewer to verify it without re-running the
// engine.
type Explanation struct {
	Matched       []string `json:"matched_conditions"`
	Borderline    []string `json:"borderline_conditions"`
	Missing       []string `json:"missing_conditions"`
	RankingReason string   `json:"ranking_reason"`
}

// PathwayRecommendation is one tier-labeled, explained shortlist entry.
type PathwayRecommendation struct {
	RuleID        string      `json:"rule_id"`
	PathwayName   string      `json:"pathway_name"`
	Summary       string      `json:"summary,omitempty"`
	CostEstimate  string      `json:"cost_estimate,omitempty"`
	Tier          Tier        `json:"tier"`
	FitScore      float64     `json:"fit_score"`
	LowConfidence bool        `json:"low_confidence,omitempty"`
	Explanation   Explanation `json:"explanation"`
}

// ReadinessBreakdown holds the per-category 0-100 sub-scores.
type ReadinessBreakdown struct {
	Academic      float64 `json:"academic"`
	Financial     float64 `json:"financial"`
	Language      float64 `json:"language"`
	Timeline      float64 `json:"timeline"`
	Documentation float64 `json:"documentation"`
}

// ReadinessScore is the profile-only composite readiness score.
type ReadinessScore struct {
	Composite int                `json:"composite"`
	Breakdown ReadinessBreakdown `json:"breakdown"`
}

// UniversityMatch resolves one institution reference of a selected pathway.
type UniversityMatch struct {
	UniversityID string `json:"university_id"`
	Name         string `json:"name,omitempty"`
	RuleID       string `json:"rule_id"`
	Tier         Tier   `json:"tier"`
	MatchReason  string `json:"match_reason"`
}

// Result is the full engine output for one evaluation run. NoMatch
// distinguishes "no eligible pathway" from an uncomputed or empty payload;
// Diagnostics carries the audit record for every rule, including excluded
// ones, for counselor review.
type Result struct {
	NoMatch         bool                    `json:"no_match"`
	Recommendations []PathwayRecommendation `json:"recommendations"`
	Readiness       ReadinessScore          `json:"readiness"`
	Universities    []UniversityMatch       `json:"universities"`
	Diagnostics     []RuleEvaluation        `json:"diagnostics"`
}
