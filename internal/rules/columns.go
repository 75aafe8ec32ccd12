// Package rules loads counselor logic tables (XLSX or CSV) into immutable
// rule snapshots. All validation happens here, before a snapshot exists: the
// engine never sees a malformed rule.
package rules

import "strings"

// Logic table column names.
const (
	colRuleID          = "rule_id"
	colActive          = "active"
	colStudentLevel    = "student_level"
	colAcademicBandMin = "academic_band_min"
	colMinSPMCredits   = "min_spm_credits"
	colMinCGPA         = "min_cgpa"
	colBudgetMin       = "budget_min"
	colBudgetMax       = "budget_max"
	colEnglishMin      = "english_min"
	colInterestTags    = "interest_tags"
	colDestinationTags = "destination_tags"
	colIntakeWindow    = "intake_window_months"
	colSelectivity     = "selectivity"
	colPriority        = "priority"
	colUniversities    = "universities"
	colPathwayName     = "pathway_name"
	colPathwaySummary  = "pathway_summary"
	colCostEstimate    = "cost_estimate"

	colWeightLevel       = "weight_level"
	colWeightAcademic    = "weight_academic"
	colWeightBudget      = "weight_budget"
	colWeightEnglish     = "weight_english"
	colWeightInterest    = "weight_interest"
	colWeightDestination = "weight_destination"
	colWeightTimeline    = "weight_timeline"
)

// requiredColumns must all be present in the header row. Weight and text
// columns are optional and default when absent.
var requiredColumns = []string{
	colRuleID,
	colActive,
	colStudentLevel,
	colMinSPMCredits,
	colMinCGPA,
	colBudgetMin,
	colBudgetMax,
	colEnglishMin,
	colInterestTags,
	colDestinationTags,
	colSelectivity,
	colPriority,
	colUniversities,
	colPathwayName,
}

// record is one raw table row keyed by normalized column name.
type record map[string]string

// header maps normalized column names to their index.
type header map[string]int

func buildHeader(cells []string) header {
	h := make(header, len(cells))
	for i, c := range cells {
		name := strings.ToLower(strings.TrimSpace(c))
		if name != "" {
			h[name] = i
		}
	}
	return h
}

func (h header) missingRequired() []string {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func (h header) record(cells []string) record {
	rec := make(record, len(h))
	for name, i := range h {
		if i < len(cells) {
			rec[name] = strings.TrimSpace(cells[i])
		}
	}
	return rec
}
