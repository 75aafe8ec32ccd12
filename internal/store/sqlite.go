package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/teman-edu/advisor-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given DSN and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS rules (
	rule_id    TEXT PRIMARY KEY,
	version    TEXT NOT NULL,
	definition TEXT NOT NULL,
	position   INTEGER NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS rule_set_meta (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	version    TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS universities (
	university_id TEXT PRIMARY KEY,
	definition    TEXT NOT NULL,
	position      INTEGER NOT NULL,
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	rule_version TEXT NOT NULL,
	profile      TEXT NOT NULL,
	result       TEXT NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_rules_position ON rules(position);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRuleSet(ctx context.Context, version string, rules []model.Rule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, r := range rules {
		def, err := json.Marshal(r)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal rule %s", r.RuleID)
		}
		// Upsert keeps an existing rule's position so declaration order
		// survives re-loads; new rules append.
		_, err = tx.ExecContext(ctx, `
INSERT INTO rules (rule_id, version, definition, position, updated_at)
VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM rules), ?)
ON CONFLICT(rule_id) DO UPDATE SET
	version = excluded.version,
	definition = excluded.definition,
	updated_at = excluded.updated_at`,
			r.RuleID, version, string(def), now,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: upsert rule %s", r.RuleID)
		}
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO rule_set_meta (id, version, updated_at) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET version = excluded.version, updated_at = excluded.updated_at`,
		version, now,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: update rule set meta")
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit rule set")
}

func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (*model.RuleSnapshot, error) {
	var version string
	err := s.db.QueryRowContext(ctx, `SELECT version FROM rule_set_meta WHERE id = 1`).Scan(&version)
	if err == sql.ErrNoRows {
		return nil, eris.New("sqlite: no rule set loaded")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load rule set meta")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT definition FROM rules ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load rules")
	}
	defer rows.Close()

	var ruleList []model.Rule
	for rows.Next() {
		var def string
		if err := rows.Scan(&def); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan rule")
		}
		var r model.Rule
		if err := json.Unmarshal([]byte(def), &r); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal rule")
		}
		ruleList = append(ruleList, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate rules")
	}

	return model.NewRuleSnapshot(version, ruleList), nil
}

func (s *SQLiteStore) SaveCatalog(ctx context.Context, entries []model.University) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, u := range entries {
		def, err := json.Marshal(u)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal university %s", u.UniversityID)
		}
		_, err = tx.ExecContext(ctx, `
INSERT INTO universities (university_id, definition, position, updated_at)
VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM universities), ?)
ON CONFLICT(university_id) DO UPDATE SET
	definition = excluded.definition,
	updated_at = excluded.updated_at`,
			u.UniversityID, string(def), now,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: upsert university %s", u.UniversityID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit catalog")
}

func (s *SQLiteStore) LoadCatalog(ctx context.Context) (*model.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT definition FROM universities ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load catalog")
	}
	defer rows.Close()

	var entries []model.University
	for rows.Next() {
		var def string
		if err := rows.Scan(&def); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan university")
		}
		var u model.University
		if err := json.Unmarshal([]byte(def), &u); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal university")
		}
		entries = append(entries, u)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate catalog")
	}

	return model.NewCatalog(entries), nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *model.Run) error {
	profile, err := json.Marshal(run.Profile)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal profile")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, rule_version, profile, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.RuleVersion, string(profile), string(run.Result), run.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	var (
		run     model.Run
		profile string
		result  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, rule_version, profile, result, created_at FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.RuleVersion, &profile, &result, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: run %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", id)
	}
	if err := json.Unmarshal([]byte(profile), &run.Profile); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal profile")
	}
	run.Result = json.RawMessage(result)
	return &run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, rule_version, profile, result, created_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var (
			run     model.Run
			profile string
			result  string
		)
		if err := rows.Scan(&run.ID, &run.RuleVersion, &profile, &result, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		if err := json.Unmarshal([]byte(profile), &run.Profile); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal profile")
		}
		run.Result = json.RawMessage(result)
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}
