// Package export serializes an evaluation run to a portable JSON report.
package export

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/teman-edu/advisor-cli/internal/engine"
	"github.com/teman-edu/advisor-cli/internal/model"
	"github.com/teman-edu/advisor-cli/internal/plan"
)

// defaultDisclaimers accompany every exported report.
var defaultDisclaimers = []string{
	"This report is advisory and does not guarantee admission or visa outcomes.",
	"Costs are indicative estimates; confirm with each institution.",
	"Verify entry requirements against official institution sources.",
}

// Report is the exported payload for one evaluation run.
type Report struct {
	GeneratedAt  time.Time          `json:"generated_at"`
	RunID        string             `json:"run_id,omitempty"`
	RuleVersion  string             `json:"rule_version"`
	Profile      model.ProfileInput `json:"profile"`
	Result       engine.Result      `json:"result"`
	ActionPlan   *plan.ActionPlan   `json:"action_plan,omitempty"`
	RecoveryPlan *plan.RecoveryPlan `json:"recovery_plan,omitempty"`
	Disclaimers  []string           `json:"disclaimers"`
}

// NewReport assembles a report and stamps it with the current UTC time.
// Exactly one of the plans is set, depending on the no-match flag.
func NewReport(runID, ruleVersion string, profile model.ProfileInput, result engine.Result, action plan.ActionPlan, recovery plan.RecoveryPlan) Report {
	r := Report{
		GeneratedAt: time.Now().UTC(),
		RunID:       runID,
		RuleVersion: ruleVersion,
		Profile:     profile,
		Result:      result,
		Disclaimers: defaultDisclaimers,
	}
	if result.NoMatch {
		r.RecoveryPlan = &recovery
	} else {
		r.ActionPlan = &action
	}
	return r
}

// Write serializes the report as indented JSON.
func Write(w io.Writer, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal report")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return eris.Wrap(err, "export: write report")
	}
	return nil
}

// WriteFile writes the report to path, creating or truncating it.
func WriteFile(path string, report Report) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()
	return Write(f, report)
}
