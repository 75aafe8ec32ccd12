package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teman-edu/advisor-cli/internal/rules"
)

var (
	rulesFile    string
	rulesVersion string
	rulesDryRun  bool
	catalogFile  string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the counselor rule table",
}

var rulesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import rules from a spreadsheet into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		loaded, err := rules.LoadRules(rulesFile, loaderOptions())
		if err != nil {
			return eris.Wrap(err, "import rules")
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		// A missing snapshot just means first import; diff against empty.
		existing, err := s.LoadSnapshot(ctx)
		if err != nil {
			existing = nil
		}

		diff := rules.DiffPreview(existing, loaded)
		zap.L().Info("rule diff",
			zap.Int("insert", diff.Insert),
			zap.Int("update", diff.Update),
			zap.Strings("rule_ids", diff.RuleIDs),
		)

		if rulesDryRun {
			fmt.Printf("dry run: %d to insert, %d to update\n", diff.Insert, diff.Update)
			return nil
		}

		version := rulesVersion
		if version == "" {
			version = time.Now().UTC().Format("20060102-150405")
		}
		if err := s.SaveRuleSet(ctx, version, loaded); err != nil {
			return eris.Wrap(err, "save rule set")
		}

		zap.L().Info("import complete",
			zap.String("version", version),
			zap.Int("rules", len(loaded)),
			zap.String("file", rulesFile),
		)
		return nil
	},
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and validate a rule spreadsheet without touching the store",
	RunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := rules.LoadRules(rulesFile, loaderOptions())
		if err != nil {
			return eris.Wrap(err, "validate rules")
		}

		fmt.Printf("ok: %d active rules\n", len(loaded))
		for _, r := range loaded {
			fmt.Printf("  %s (%s, %d conditions)\n", r.RuleID, r.Selectivity, len(r.Conditions))
		}
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import-catalog",
	Short: "Import the university catalog into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		catalog, err := rules.LoadCatalog(catalogFile, loaderOptions())
		if err != nil {
			return eris.Wrap(err, "import catalog")
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SaveCatalog(ctx, catalog.Universities()); err != nil {
			return eris.Wrap(err, "save catalog")
		}

		zap.L().Info("catalog import complete",
			zap.Int("universities", catalog.Len()),
			zap.String("file", catalogFile),
		)
		return nil
	},
}

func loaderOptions() rules.Options {
	return rules.Options{
		SheetName: cfg.Rules.SheetName,
		Charset:   cfg.Rules.Charset,
	}
}

func init() {
	rulesImportCmd.Flags().StringVar(&rulesFile, "file", "", "path to rules spreadsheet (.xlsx or .csv)")
	rulesImportCmd.Flags().StringVar(&rulesVersion, "version", "", "version label for this rule set (default timestamp)")
	rulesImportCmd.Flags().BoolVar(&rulesDryRun, "dry-run", false, "print the diff without writing")
	_ = rulesImportCmd.MarkFlagRequired("file")

	rulesValidateCmd.Flags().StringVar(&rulesFile, "file", "", "path to rules spreadsheet (.xlsx or .csv)")
	_ = rulesValidateCmd.MarkFlagRequired("file")

	catalogImportCmd.Flags().StringVar(&catalogFile, "file", "", "path to catalog spreadsheet (.xlsx or .csv)")
	_ = catalogImportCmd.MarkFlagRequired("file")

	rulesCmd.AddCommand(rulesImportCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(catalogImportCmd)
	rootCmd.AddCommand(rulesCmd)
}
