package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teman-edu/advisor-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "advisor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleRules() []model.Rule {
	return []model.Rule{
		{
			RuleID:      "diploma-local",
			PathwayName: "Local Diploma",
			Selectivity: model.SelectivityLow,
			Priority:    2,
			Conditions: []model.Condition{
				{ID: "level", Field: model.FieldStudentLevel, Kind: model.KindEquality, Target: "spm_leaver", Required: true, Weight: 1, Label: "SPM leaver"},
			},
		},
		{
			RuleID:      "degree-abroad",
			PathwayName: "Degree Abroad",
			Selectivity: model.SelectivityHigh,
			Priority:    1,
			Universities: []string{"uni-melb"},
		},
	}
}

func TestSQLiteRuleSetRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRuleSet(ctx, "v1", sampleRules()))

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1", snap.Version())
	require.Equal(t, 2, snap.Len())

	rules := snap.Rules()
	assert.Equal(t, "diploma-local", rules[0].RuleID)
	assert.Equal(t, "degree-abroad", rules[1].RuleID)
	require.Len(t, rules[0].Conditions, 1)
	assert.Equal(t, model.FieldStudentLevel, rules[0].Conditions[0].Field)
}

func TestSQLiteRuleUpsertKeepsPosition(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRuleSet(ctx, "v1", sampleRules()))

	// Re-save the second rule with changed content and a new version.
	updated := sampleRules()[1]
	updated.PathwayName = "Degree Abroad (Updated)"
	require.NoError(t, s.SaveRuleSet(ctx, "v2", []model.Rule{updated}))

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2", snap.Version())
	require.Equal(t, 2, snap.Len())

	rules := snap.Rules()
	assert.Equal(t, "diploma-local", rules[0].RuleID)
	assert.Equal(t, "degree-abroad", rules[1].RuleID)
	assert.Equal(t, "Degree Abroad (Updated)", rules[1].PathwayName)
}

func TestSQLiteLoadSnapshotEmpty(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.LoadSnapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rule set loaded")
}

func TestSQLiteCatalogRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	entries := []model.University{
		{UniversityID: "uni-melb", Name: "University of Melbourne", Country: "Australia"},
		{UniversityID: "utm", Name: "Universiti Teknologi Malaysia", Country: "Malaysia"},
	}
	require.NoError(t, s.SaveCatalog(ctx, entries))

	catalog, err := s.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	u, ok := catalog.Get("utm")
	require.True(t, ok)
	assert.Equal(t, "Universiti Teknologi Malaysia", u.Name)
}

func TestSQLiteRunRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	cgpa := 3.4
	run := &model.Run{
		ID:          "run-1",
		RuleVersion: "v1",
		Profile:     model.ProfileInput{CGPA: &cgpa, InterestTags: []string{"engineering"}},
		Result:      json.RawMessage(`{"no_match":false}`),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.SaveRun(ctx, run))

	got, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.RuleVersion, got.RuleVersion)
	require.NotNil(t, got.Profile.CGPA)
	assert.InDelta(t, 3.4, *got.Profile.CGPA, 0.0001)
	assert.JSONEq(t, `{"no_match":false}`, string(got.Result))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}

func TestSQLiteGetRunMissing(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetRun(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
