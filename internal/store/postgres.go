package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/teman-edu/advisor-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs. pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects to the given Postgres DSN and pings it.
func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS rules (
	rule_id    TEXT PRIMARY KEY,
	version    TEXT NOT NULL,
	definition JSONB NOT NULL,
	position   BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS rule_set_meta (
	id         INT PRIMARY KEY CHECK (id = 1),
	version    TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS universities (
	university_id TEXT PRIMARY KEY,
	definition    JSONB NOT NULL,
	position      BIGINT NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	rule_version TEXT NOT NULL,
	profile      JSONB NOT NULL,
	result       JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_rules_position ON rules(position);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRuleSet(ctx context.Context, version string, rules []model.Rule) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for _, r := range rules {
		def, err := json.Marshal(r)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal rule %s", r.RuleID)
		}
		_, err = tx.Exec(ctx, `
INSERT INTO rules (rule_id, version, definition, position, updated_at)
VALUES ($1, $2, $3, (SELECT COALESCE(MAX(position), 0) + 1 FROM rules), $4)
ON CONFLICT (rule_id) DO UPDATE SET
	version = excluded.version,
	definition = excluded.definition,
	updated_at = excluded.updated_at`,
			r.RuleID, version, def, now,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: upsert rule %s", r.RuleID)
		}
	}

	_, err = tx.Exec(ctx, `
INSERT INTO rule_set_meta (id, version, updated_at) VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET version = excluded.version, updated_at = excluded.updated_at`,
		version, now,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: update rule set meta")
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit rule set")
}

func (s *PostgresStore) LoadSnapshot(ctx context.Context) (*model.RuleSnapshot, error) {
	var version string
	err := s.pool.QueryRow(ctx, `SELECT version FROM rule_set_meta WHERE id = 1`).Scan(&version)
	if err == pgx.ErrNoRows {
		return nil, eris.New("postgres: no rule set loaded")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load rule set meta")
	}

	rows, err := s.pool.Query(ctx, `SELECT definition FROM rules ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load rules")
	}
	defer rows.Close()

	var ruleList []model.Rule
	for rows.Next() {
		var def []byte
		if err := rows.Scan(&def); err != nil {
			return nil, eris.Wrap(err, "postgres: scan rule")
		}
		var r model.Rule
		if err := json.Unmarshal(def, &r); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal rule")
		}
		ruleList = append(ruleList, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate rules")
	}

	return model.NewRuleSnapshot(version, ruleList), nil
}

func (s *PostgresStore) SaveCatalog(ctx context.Context, entries []model.University) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for _, u := range entries {
		def, err := json.Marshal(u)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal university %s", u.UniversityID)
		}
		_, err = tx.Exec(ctx, `
INSERT INTO universities (university_id, definition, position, updated_at)
VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM universities), $3)
ON CONFLICT (university_id) DO UPDATE SET
	definition = excluded.definition,
	updated_at = excluded.updated_at`,
			u.UniversityID, def, now,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: upsert university %s", u.UniversityID)
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit catalog")
}

func (s *PostgresStore) LoadCatalog(ctx context.Context) (*model.Catalog, error) {
	rows, err := s.pool.Query(ctx, `SELECT definition FROM universities ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load catalog")
	}
	defer rows.Close()

	var entries []model.University
	for rows.Next() {
		var def []byte
		if err := rows.Scan(&def); err != nil {
			return nil, eris.Wrap(err, "postgres: scan university")
		}
		var u model.University
		if err := json.Unmarshal(def, &u); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal university")
		}
		entries = append(entries, u)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate catalog")
	}

	return model.NewCatalog(entries), nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *model.Run) error {
	profile, err := json.Marshal(run.Profile)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal profile")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO runs (id, rule_version, profile, result, created_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.RuleVersion, profile, []byte(run.Result), run.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert run %s", run.ID)
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	var (
		run     model.Run
		profile []byte
		result  []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, rule_version, profile, result, created_at FROM runs WHERE id = $1`, id,
	).Scan(&run.ID, &run.RuleVersion, &profile, &result, &run.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, eris.Errorf("postgres: run %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", id)
	}
	if err := json.Unmarshal(profile, &run.Profile); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal profile")
	}
	run.Result = json.RawMessage(result)
	return &run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, rule_version, profile, result, created_at FROM runs ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var (
			run     model.Run
			profile []byte
			result  []byte
		)
		if err := rows.Scan(&run.ID, &run.RuleVersion, &profile, &result, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		if err := json.Unmarshal(profile, &run.Profile); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal profile")
		}
		run.Result = json.RawMessage(result)
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}
