package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/depsolve-labs/depsolve/internal/constraint"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the state database at path and runs migrations.
// Use ":memory:" for an in-memory store.
func Open(path string) (*SQLiteStore, error) {
	dsn := path + "?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping state database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSet replaces the persisted constraint set in a single transaction.
func (s *SQLiteStore) SaveSet(ctx context.Context, set *constraint.Set) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM unit_requires`); err != nil {
		return fmt.Errorf("failed to clear requirements: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM units`); err != nil {
		return fmt.Errorf("failed to clear units: %w", err)
	}

	for i, u := range set.Units() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO units (name, description, position) VALUES (?, ?, ?)`,
			u.Name, u.Description, i,
		); err != nil {
			return fmt.Errorf("failed to save unit %q: %w", u.Name, err)
		}
		for _, req := range u.Requires {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO unit_requires (unit, requires) VALUES (?, ?)`,
				u.Name, req,
			); err != nil {
				return fmt.Errorf("failed to save requirement %q -> %q: %w", u.Name, req, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit constraint set: %w", err)
	}
	return nil
}

// LoadSet loads the persisted constraint set in its original order.
func (s *SQLiteStore) LoadSet(ctx context.Context) (*constraint.Set, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, description FROM units ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	defer rows.Close()

	var units []constraint.Unit
	for rows.Next() {
		var u constraint.Unit
		if err := rows.Scan(&u.Name, &u.Description); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read units: %w", err)
	}

	reqRows, err := s.db.QueryContext(ctx,
		`SELECT unit, requires FROM unit_requires ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to load requirements: %w", err)
	}
	defer reqRows.Close()

	requires := make(map[string][]string)
	for reqRows.Next() {
		var unit, req string
		if err := reqRows.Scan(&unit, &req); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		requires[unit] = append(requires[unit], req)
	}
	if err := reqRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirements: %w", err)
	}

	set := constraint.NewSet()
	for _, u := range units {
		u.Requires = requires[u.Name]
		if err := set.Add(u); err != nil {
			return nil, fmt.Errorf("corrupt state database: %w", err)
		}
	}
	return set, nil
}

// RecordSolve appends a solve run to the history, assigning an ID if the
// run has none.
func (s *SQLiteStore) RecordSolve(ctx context.Context, run *SolveRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO solve_runs (id, status, unit_count, source, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Status, run.UnitCount, run.Source, run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record solve run: %w", err)
	}
	return nil
}

// ListSolves returns solve runs, newest first. A limit of 0 means no limit.
func (s *SQLiteStore) ListSolves(ctx context.Context, limit int) ([]*SolveRun, error) {
	query := `SELECT id, status, unit_count, source, started_at, finished_at
		FROM solve_runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list solve runs: %w", err)
	}
	defer rows.Close()

	var runs []*SolveRun
	for rows.Next() {
		run := &SolveRun{}
		if err := rows.Scan(&run.ID, &run.Status, &run.UnitCount, &run.Source,
			&run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan solve run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read solve runs: %w", err)
	}
	return runs, nil
}
