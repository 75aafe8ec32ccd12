package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/teman-edu/advisor-cli/internal/engine"
)

var readinessProfilePath string

var readinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Score a profile's readiness without running the rule table",
	RunE: func(_ *cobra.Command, _ []string) error {
		profile, err := loadProfileFile(readinessProfilePath)
		if err != nil {
			return err
		}

		params, err := cfg.EngineParams()
		if err != nil {
			return err
		}

		score := engine.ScoreReadiness(profile.Profile(), params.Readiness)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(score)
	},
}

func init() {
	readinessCmd.Flags().StringVar(&readinessProfilePath, "profile", "", "path to student profile YAML (required)")
	_ = readinessCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(readinessCmd)
}
