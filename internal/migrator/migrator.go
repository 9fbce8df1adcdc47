package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"officeBooker/internal/config"
	"officeBooker/internal/lib/errs"
	"officeBooker/internal/lib/logger/sl"
	"officeBooker/internal/models"
	"officeBooker/internal/storage/postgres"
)

type Direction string

const (
	Up     Direction = "up"
	Down   Direction = "down"
	Status Direction = "status"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down, Status:
		return d, nil
	default:
		return "", errs.Validation("direction", fmt.Sprintf("%q is not one of up, down, status", s))
	}
}

type Migrator struct {
	db   *sql.DB
	fsys fs.FS
	log  *slog.Logger
}

func New(db *sql.DB, fsys fs.FS, log *slog.Logger) *Migrator {
	return &Migrator{
		db:   db,
		fsys: fsys,
		log:  log,
	}
}

// Run opens a dedicated connection, migrates in the given direction and
// closes the connection whatever the outcome.
func Run(ctx context.Context, dbCfg *config.Database, fsys fs.FS, log *slog.Logger, direction Direction, steps int) error {
	const op = "migrator.Run"

	db, err := postgres.Open(dbCfg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close migration connection", sl.Err(cerr))
		}
	}()

	m := New(db, fsys, log)

	switch direction {
	case Up:
		_, err = m.Up(ctx)
	case Down:
		_, err = m.Down(ctx, steps)
	case Status:
		var statuses []models.MigrationStatus
		statuses, err = m.Status(ctx)
		for _, st := range statuses {
			log.Info("migration", slog.String("version", st.Version), slog.Bool("applied", st.Applied))
		}
	default:
		err = errs.Validation("direction", string(direction))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Up applies every discovered version missing from the migrations table in
// ascending order, one transaction per version. It stops at the first failure.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	const op = "migrator.Up"

	log := m.log.With(slog.String("op", op))

	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	done := make(map[string]struct{}, len(applied))
	for _, v := range applied {
		done[v] = struct{}{}
	}

	versions, err := Discover(m.fsys)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, version := range versions {
		if _, ok := done[version]; ok {
			continue
		}

		script, err := readScript(m.fsys, version)
		if err != nil {
			return result, err
		}

		log.Info("applying migration", slog.String("version", version))

		err = m.execute(ctx, version, script.Up, `INSERT INTO migrations (version) VALUES ($1)`)
		if err != nil {
			return result, err
		}

		log.Info("migration applied", slog.String("version", version))
		result = append(result, version)
	}

	if len(result) == 0 {
		log.Info("no pending migrations")
	}

	return result, nil
}

// Down rolls back the most recently applied versions. steps below one is
// treated as one; steps above the applied count rolls back everything.
func (m *Migrator) Down(ctx context.Context, steps int) ([]string, error) {
	const op = "migrator.Down"

	log := m.log.With(slog.String("op", op))

	if steps < 1 {
		steps = 1
	}

	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	if steps > len(applied) {
		steps = len(applied)
	}

	var result []string
	for _, version := range applied[:steps] {
		script, err := readScript(m.fsys, version)
		if err != nil {
			return result, err
		}

		log.Info("rolling back migration", slog.String("version", version))

		err = m.execute(ctx, version, script.Down, `DELETE FROM migrations WHERE version = $1`)
		if err != nil {
			return result, err
		}

		log.Info("migration rolled back", slog.String("version", version))
		result = append(result, version)
	}

	return result, nil
}

// Status reports every discovered version with its application time, plus
// applied versions whose script is no longer on disk.
func (m *Migrator) Status(ctx context.Context) ([]models.MigrationStatus, error) {
	const op = "migrator.Status"

	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	rows, err := m.db.QueryContext(ctx, `SELECT version, applied_at FROM migrations ORDER BY id ASC`)
	if err != nil {
		return nil, errs.Storage(op, fmt.Errorf("failed to get applied migrations: %w", err))
	}
	defer rows.Close()

	records := make(map[string]models.MigrationRecord)
	var order []string
	for rows.Next() {
		var rec models.MigrationRecord
		if err = rows.Scan(&rec.Version, &rec.AppliedAt); err != nil {
			return nil, errs.Storage(op, fmt.Errorf("failed to scan migration: %w", err))
		}
		records[rec.Version] = rec
		order = append(order, rec.Version)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.Storage(op, fmt.Errorf("error iterating migrations: %w", err))
	}

	versions, err := Discover(m.fsys)
	if err != nil {
		return nil, err
	}

	statuses := make([]models.MigrationStatus, 0, len(versions))
	seen := make(map[string]struct{}, len(versions))
	for _, v := range versions {
		seen[v] = struct{}{}
		st := models.MigrationStatus{Version: v}
		if rec, ok := records[v]; ok {
			appliedAt := rec.AppliedAt
			st.Applied = true
			st.AppliedAt = &appliedAt
		}
		statuses = append(statuses, st)
	}

	for _, v := range order {
		if _, ok := seen[v]; ok {
			continue
		}
		appliedAt := records[v].AppliedAt
		statuses = append(statuses, models.MigrationStatus{Version: v, Applied: true, AppliedAt: &appliedAt})
	}

	return statuses, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	const op = "migrator.ensureTable"

	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			version VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return errs.Storage(op, fmt.Errorf("failed to create migrations table: %w", err))
	}

	return nil
}

// appliedVersions returns applied versions, most recent first.
func (m *Migrator) appliedVersions(ctx context.Context) ([]string, error) {
	const op = "migrator.appliedVersions"

	rows, err := m.db.QueryContext(ctx, `SELECT version FROM migrations ORDER BY id DESC`)
	if err != nil {
		return nil, errs.Storage(op, fmt.Errorf("failed to get applied migrations: %w", err))
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err = rows.Scan(&v); err != nil {
			return nil, errs.Storage(op, fmt.Errorf("failed to scan migration version: %w", err))
		}
		versions = append(versions, v)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.Storage(op, fmt.Errorf("error iterating migrations: %w", err))
	}

	return versions, nil
}

// execute runs the script body and the bookkeeping statement in one transaction.
func (m *Migrator) execute(ctx context.Context, version, body, bookkeeping string) error {
	const op = "migrator.execute"

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Storage(op, fmt.Errorf("failed to begin transaction for %s: %w", version, err))
	}
	defer tx.Rollback()

	if body != "" {
		if _, err = tx.ExecContext(ctx, body); err != nil {
			return errs.Storage(op, fmt.Errorf("failed to execute migration %s: %w", version, err))
		}
	}

	if _, err = tx.ExecContext(ctx, bookkeeping, version); err != nil {
		return errs.Storage(op, fmt.Errorf("failed to record migration %s: %w", version, err))
	}

	if err = tx.Commit(); err != nil {
		return errs.Storage(op, fmt.Errorf("failed to commit migration %s: %w", version, err))
	}

	return nil
}
