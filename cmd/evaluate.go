package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/teman-edu/advisor-cli/internal/engine"
	"github.com/teman-edu/advisor-cli/internal/export"
	"github.com/teman-edu/advisor-cli/internal/model"
	"github.com/teman-edu/advisor-cli/internal/plan"
	"github.com/teman-edu/advisor-cli/internal/rules"
	"github.com/teman-edu/advisor-cli/internal/store"
)

var (
	evalProfilePath string
	evalRulesPath   string
	evalCatalogPath string
	evalOutPath     string
	evalSaveRun     bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one student profile and export the recommendation report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		profile, err := loadProfileFile(evalProfilePath)
		if err != nil {
			return err
		}

		params, err := cfg.EngineParams()
		if err != nil {
			return err
		}

		snapshot, catalog, s, err := resolveInputs(ctx)
		if err != nil {
			return err
		}
		if s != nil {
			defer s.Close()
		}

		result := engine.Evaluate(snapshot, catalog, profile.Profile(), params)

		runID := uuid.NewString()
		report := export.NewReport(runID, snapshot.Version(), profile, result,
			plan.BuildAction(profile, result),
			plan.BuildRecovery(result, snapshot),
		)

		if evalSaveRun && s != nil {
			raw, err := json.Marshal(result)
			if err != nil {
				return eris.Wrap(err, "marshal result")
			}
			run := &model.Run{
				ID:          runID,
				RuleVersion: snapshot.Version(),
				Profile:     profile,
				Result:      raw,
				CreatedAt:   time.Now().UTC(),
			}
			if err := s.SaveRun(ctx, run); err != nil {
				return err
			}
			zap.L().Info("run saved", zap.String("run_id", runID))
		}

		if evalOutPath != "" {
			if err := export.WriteFile(evalOutPath, report); err != nil {
				return err
			}
			zap.L().Info("report written", zap.String("path", evalOutPath))
			return nil
		}
		return export.Write(os.Stdout, report)
	},
}

// loadProfileFile reads a student profile from a YAML file.
func loadProfileFile(path string) (model.ProfileInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ProfileInput{}, eris.Wrapf(err, "read profile %s", path)
	}
	var profile model.ProfileInput
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return model.ProfileInput{}, eris.Wrapf(err, "parse profile %s", path)
	}
	return profile, nil
}

// resolveInputs loads the rule snapshot and catalog, preferring explicit
// files over the store. The returned store is non-nil only when it was
// opened, so the caller can persist the run.
func resolveInputs(ctx context.Context) (*model.RuleSnapshot, *model.Catalog, store.Store, error) {
	var (
		snapshot *model.RuleSnapshot
		catalog  *model.Catalog
		s        store.Store
	)

	needStore := evalRulesPath == "" || evalCatalogPath == "" || evalSaveRun
	if needStore {
		opened, err := openStore(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
		s = opened
	}

	if evalRulesPath != "" {
		loaded, err := rules.LoadRules(evalRulesPath, loaderOptions())
		if err != nil {
			closeStore(s)
			return nil, nil, nil, err
		}
		snapshot = model.NewRuleSnapshot("file:"+filepath.Base(evalRulesPath), loaded)
	} else {
		loaded, err := s.LoadSnapshot(ctx)
		if err != nil {
			closeStore(s)
			return nil, nil, nil, err
		}
		snapshot = loaded
	}

	if evalCatalogPath != "" {
		loaded, err := rules.LoadCatalog(evalCatalogPath, loaderOptions())
		if err != nil {
			closeStore(s)
			return nil, nil, nil, err
		}
		catalog = loaded
	} else {
		loaded, err := s.LoadCatalog(ctx)
		if err != nil {
			// An empty catalog is not fatal; matches still surface ids.
			loaded = model.NewCatalog(nil)
		}
		catalog = loaded
	}

	return snapshot, catalog, s, nil
}

func closeStore(s store.Store) {
	if s != nil {
		s.Close()
	}
}

func init() {
	evaluateCmd.Flags().StringVar(&evalProfilePath, "profile", "", "path to student profile YAML (required)")
	evaluateCmd.Flags().StringVar(&evalRulesPath, "rules", "", "rules spreadsheet (default: load from store)")
	evaluateCmd.Flags().StringVar(&evalCatalogPath, "catalog", "", "catalog spreadsheet (default: load from store)")
	evaluateCmd.Flags().StringVar(&evalOutPath, "out", "", "write the report to this path instead of stdout")
	evaluateCmd.Flags().BoolVar(&evalSaveRun, "save", false, "persist the run to the store")
	_ = evaluateCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(evaluateCmd)
}
