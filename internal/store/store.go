// Package store persists versioned rule sets, the university catalog, and
// evaluation runs. The engine never touches a store: commands load a snapshot
// here and hand it to the engine as an explicit argument.
package store

import (
	"context"

	"github.com/teman-edu/advisor-cli/internal/model"
)

// Store is the persistence interface for the advisor.
type Store interface {
	// Rule sets. SaveRuleSet upserts by rule_id and records the version
	// label; LoadSnapshot returns the current rules as an immutable
	// snapshot.
	SaveRuleSet(ctx context.Context, version string, rules []model.Rule) error
	LoadSnapshot(ctx context.Context) (*model.RuleSnapshot, error)

	// University catalog.
	SaveCatalog(ctx context.Context, entries []model.University) error
	LoadCatalog(ctx context.Context) (*model.Catalog, error)

	// Evaluation runs, kept for counselor review.
	SaveRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// Lifecycle.
	Migrate(ctx context.Context) error
	Close() error
}
