package rules

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/teman-edu/advisor-cli/internal/model"
)

// Borderline tolerance bands per compiled condition. Named so threshold drift
// is a reviewed change, not an inline edit.
const (
	creditTolerance   = 1.0  // SPM credits below minimum still borderline
	cgpaTolerance     = 0.2  // CGPA below minimum still borderline
	budgetToleranceFr = 0.2  // fraction of budget_min
	rankTolerance     = 1.0  // one scale rank below requirement
	timelineTolerance = 2.0  // months outside the intake window
	defaultWeight     = 1.0
	borderlineCredit  = 0.5
)

// Options configures table loading.
type Options struct {
	// SheetName selects an XLSX sheet; empty means the first sheet.
	SheetName string
	// Charset names the source encoding of a CSV file (e.g. "windows-1252").
	// Empty means UTF-8.
	Charset string
}

// LoadRules reads a logic table from an XLSX or CSV file, validates it, and
// returns the parsed rules in declaration order. Inactive rows are dropped
// here: an inactive rule is a load-time state, not an evaluation outcome.
func LoadRules(path string, opts Options) ([]model.Rule, error) {
	rows, err := readTable(path, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("rules: %s has no header row", path)
	}

	h := buildHeader(rows[0])
	if missing := h.missingRequired(); len(missing) > 0 {
		return nil, eris.Errorf("rules: %s missing required columns: %s", path, strings.Join(missing, ", "))
	}

	var out []model.Rule
	for i, cells := range rows[1:] {
		rec := h.record(cells)
		if rec[colRuleID] == "" && allBlank(cells) {
			continue
		}
		rule, active, err := parseRule(rec)
		if err != nil {
			return nil, eris.Wrapf(err, "rules: row %d", i+2)
		}
		if !active {
			continue
		}
		out = append(out, rule)
	}
	if len(out) == 0 {
		return nil, eris.Errorf("rules: %s contains no active rules", path)
	}
	return out, nil
}

func readTable(path string, opts Options) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path, opts.SheetName)
	case ".csv":
		return readCSV(path, opts.Charset)
	default:
		return nil, eris.Errorf("rules: unsupported table format %q", filepath.Ext(path))
	}
}

// parseRule compiles one table row into a rule with its gate conditions in
// declaration order.
func parseRule(rec record) (model.Rule, bool, error) {
	ruleID := rec[colRuleID]
	if ruleID == "" {
		return model.Rule{}, false, eris.New("empty rule_id")
	}

	active, err := parseBool(rec[colActive])
	if err != nil {
		return model.Rule{}, false, eris.Wrapf(err, "rule %s: column %s", ruleID, colActive)
	}

	selectivity := model.Selectivity(strings.ToLower(rec[colSelectivity]))
	if !model.KnownSelectivity(selectivity) {
		return model.Rule{}, false, eris.Errorf("rule %s: unknown selectivity %q", ruleID, rec[colSelectivity])
	}

	priority, err := strconv.Atoi(rec[colPriority])
	if err != nil {
		return model.Rule{}, false, eris.Errorf("rule %s: unparsable priority %q", ruleID, rec[colPriority])
	}

	if rec[colPathwayName] == "" {
		return model.Rule{}, false, eris.Errorf("rule %s: empty pathway_name", ruleID)
	}

	rule := model.Rule{
		RuleID:       ruleID,
		PathwayName:  rec[colPathwayName],
		Summary:      rec[colPathwaySummary],
		CostEstimate: rec[colCostEstimate],
		Selectivity:  selectivity,
		Priority:     priority,
		Universities: splitList(rec[colUniversities]),
	}

	conds, err := compileConditions(rec)
	if err != nil {
		return model.Rule{}, false, eris.Wrapf(err, "rule %s", ruleID)
	}
	if len(conds) == 0 {
		return model.Rule{}, false, eris.Errorf("rule %s: no gate conditions", ruleID)
	}
	rule.Conditions = conds

	return rule, active, nil
}

// compileConditions translates the domain columns of one row into the closed
// condition variants. Column order fixes condition declaration order, which
// in turn fixes fit summation order.
func compileConditions(rec record) ([]model.Condition, error) {
	var conds []model.Condition

	level := rec[colStudentLevel]
	if level == "" {
		return nil, eris.New("empty student_level")
	}
	conds = append(conds, model.Condition{
		ID:               "level",
		Field:            model.FieldStudentLevel,
		Kind:             model.KindEquality,
		Target:           level,
		Required:         true,
		Weight:           weightOr(rec, colWeightLevel),
		BorderlineCredit: borderlineCredit,
		Label:            fmt.Sprintf("Student level is %s", level),
	})

	if band := rec[colAcademicBandMin]; band != "" {
		rank, ok := model.Rank(model.ScaleGrade, band)
		if !ok {
			return nil, eris.Errorf("unknown academic band %q", band)
		}
		conds = append(conds, model.Condition{
			ID:               "academic_band",
			Field:            model.FieldAcademicBand,
			Kind:             model.KindThreshold,
			Min:              rank,
			Tolerance:        rankTolerance,
			Scale:            model.ScaleGrade,
			Required:         true,
			Weight:           weightOr(rec, colWeightAcademic),
			BorderlineCredit: borderlineCredit,
			Label:            fmt.Sprintf("Academic result at least %s", band),
		})
	}

	if raw := rec[colMinSPMCredits]; raw != "" {
		minCredits, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, eris.Errorf("unparsable min_spm_credits %q", raw)
		}
		conds = append(conds, model.Condition{
			ID:               "credits",
			Field:            model.FieldSPMCredits,
			Kind:             model.KindThreshold,
			Min:              minCredits,
			Tolerance:        creditTolerance,
			Required:         true,
			Weight:           weightOr(rec, colWeightAcademic),
			BorderlineCredit: borderlineCredit,
			Label:            fmt.Sprintf("SPM credits at least %.0f", minCredits),
		})
	}

	if raw := rec[colMinCGPA]; raw != "" {
		minCGPA, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, eris.Errorf("unparsable min_cgpa %q", raw)
		}
		conds = append(conds, model.Condition{
			ID:               "cgpa",
			Field:            model.FieldCGPA,
			Kind:             model.KindThreshold,
			Min:              minCGPA,
			Tolerance:        cgpaTolerance,
			Required:         true,
			Weight:           weightOr(rec, colWeightAcademic),
			BorderlineCredit: borderlineCredit,
			Label:            fmt.Sprintf("CGPA at least %.2f", minCGPA),
		})
	}

	budgetCond, err := compileBudget(rec)
	if err != nil {
		return nil, err
	}
	if budgetCond != nil {
		conds = append(conds, *budgetCond)
	}

	if level := rec[colEnglishMin]; level != "" {
		rank, ok := model.Rank(model.ScaleEnglish, level)
		if !ok {
			return nil, eris.Errorf("unknown english level %q", level)
		}
		conds = append(conds, model.Condition{
			ID:               "english",
			Field:            model.FieldEnglishLevel,
			Kind:             model.KindThreshold,
			Min:              rank,
			Tolerance:        rankTolerance,
			Scale:            model.ScaleEnglish,
			Required:         true,
			Weight:           weightOr(rec, colWeightEnglish),
			BorderlineCredit: borderlineCredit,
			Label:            fmt.Sprintf("English level at least %s", level),
		})
	}

	if tags := splitList(rec[colInterestTags]); len(tags) > 0 {
		conds = append(conds, model.Condition{
			ID:               "interest",
			Field:            model.FieldInterestTags,
			Kind:             model.KindMembership,
			Values:           model.NormalizeTags(tags),
			Required:         false,
			Weight:           weightOr(rec, colWeightInterest),
			BorderlineCredit: borderlineCredit,
			Label:            fmt.Sprintf("Interest in %s", strings.Join(model.NormalizeTags(tags), ", ")),
		})
	}

	if tags := splitList(rec[colDestinationTags]); len(tags) > 0 {
		conds = append(conds, model.Condition{
			ID:               "destination",
			Field:            model.FieldDestinationTags,
			Kind:             model.KindMembership,
			Values:           model.NormalizeTags(tags),
			Required:         false,
			Weight:           weightOr(rec, colWeightDestination),
			BorderlineCredit: borderlineCredit,
			Label:            fmt.Sprintf("Destination includes %s", strings.Join(model.NormalizeTags(tags), ", ")),
		})
	}

	if raw := rec[colIntakeWindow]; raw != "" {
		window, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, eris.Errorf("unparsable intake_window_months %q", raw)
		}
		conds = append(conds, model.Condition{
			ID:               "timeline",
			Field:            model.FieldIntakeMonths,
			Kind:             model.KindRange,
			Min:              0,
			Max:              window,
			Tolerance:        timelineTolerance,
			Required:         false,
			Weight:           weightOr(rec, colWeightTimeline),
			BorderlineCredit: borderlineCredit,
			Label:            fmt.Sprintf("Intake within %.0f months", window),
		})
	}

	return conds, nil
}

func compileBudget(rec record) (*model.Condition, error) {
	rawMin, rawMax := rec[colBudgetMin], rec[colBudgetMax]
	if rawMin == "" && rawMax == "" {
		return nil, nil
	}

	var budgetMin, budgetMax float64
	var err error
	if rawMin != "" {
		if budgetMin, err = strconv.ParseFloat(rawMin, 64); err != nil {
			return nil, eris.Errorf("unparsable budget_min %q", rawMin)
		}
	}
	if rawMax != "" {
		if budgetMax, err = strconv.ParseFloat(rawMax, 64); err != nil {
			return nil, eris.Errorf("unparsable budget_max %q", rawMax)
		}
	}

	cond := model.Condition{
		ID:               "budget",
		Field:            model.FieldBudgetMonthly,
		Kind:             model.KindThreshold,
		Min:              budgetMin,
		Tolerance:        budgetMin * budgetToleranceFr,
		Required:         true,
		Weight:           weightOr(rec, colWeightBudget),
		BorderlineCredit: borderlineCredit,
		Label:            fmt.Sprintf("Budget at least RM %.0f per month", budgetMin),
	}
	if rawMax != "" {
		if budgetMax < budgetMin {
			return nil, eris.Errorf("budget_max %.0f below budget_min %.0f", budgetMax, budgetMin)
		}
		// The max only documents the expected cost band. Only the minimum
		// gates: a student with more budget than a pathway needs still
		// affords it.
		cond.Max = budgetMax
		cond.Label = fmt.Sprintf("Budget covers RM %.0f-%.0f per month", budgetMin, budgetMax)
	}
	return &cond, nil
}

func weightOr(rec record, col string) float64 {
	raw := rec[col]
	if raw == "" {
		return defaultWeight
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil || w < 0 {
		return defaultWeight
	}
	return w
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true", "yes", "1", "y":
		return true, nil
	case "false", "no", "0", "n", "":
		return false, nil
	}
	return false, eris.Errorf("unparsable boolean %q", raw)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
