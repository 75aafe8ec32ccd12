package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teman-edu/advisor-cli/internal/engine"
	"github.com/teman-edu/advisor-cli/internal/export"
	"github.com/teman-edu/advisor-cli/internal/plan"
)

var (
	batchProfilesDir string
	batchOutDir      string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a directory of profiles against one rule snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

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

		entries, err := os.ReadDir(batchProfilesDir)
		if err != nil {
			return eris.Wrapf(err, "read profiles dir %s", batchProfilesDir)
		}
		if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
			return eris.Wrapf(err, "create out dir %s", batchOutDir)
		}

		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Batch.MaxConcurrentProfiles)

		var count int
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
				continue
			}
			count++

			g.Go(func() error {
				profile, err := loadProfileFile(filepath.Join(batchProfilesDir, name))
				if err != nil {
					return err
				}

				// The snapshot is immutable, so concurrent runs share it.
				result := engine.Evaluate(snapshot, catalog, profile.Profile(), params)
				report := export.NewReport(uuid.NewString(), snapshot.Version(), profile, result,
					plan.BuildAction(profile, result),
					plan.BuildRecovery(result, snapshot),
				)

				base := strings.TrimSuffix(name, filepath.Ext(name))
				outPath := filepath.Join(batchOutDir, base+".json")
				if err := export.WriteFile(outPath, report); err != nil {
					return err
				}

				zap.L().Info("profile evaluated",
					zap.String("profile", name),
					zap.Bool("no_match", result.NoMatch),
					zap.Int("recommendations", len(result.Recommendations)),
				)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		zap.L().Info("batch complete",
			zap.Int("profiles", count),
			zap.String("rule_version", snapshot.Version()),
		)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchProfilesDir, "profiles", "", "directory of profile YAML files (required)")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "reports", "directory for report JSON files")
	_ = batchCmd.MarkFlagRequired("profiles")
	rootCmd.AddCommand(batchCmd)
}
