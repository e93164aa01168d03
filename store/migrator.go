package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration is one forward/backward schema step, tracked by version in
// schema_migrations once applied.
type Migration struct {
	Version int64
	Name    string
	Up      string
	Down    string
}

// Migrations returns the fix_messages/fix_sequences schema in order.
func Migrations() []*Migration {
	return []*Migration{
		{
			Version: 1,
			Name:    "create_fix_messages",
			Up: `CREATE TABLE IF NOT EXISTS fix_messages (
				session_id  TEXT NOT NULL,
				seq_num     INTEGER NOT NULL,
				raw_message BYTEA NOT NULL,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (session_id, seq_num)
			)`,
			Down: `DROP TABLE IF EXISTS fix_messages`,
		},
		{
			Version: 2,
			Name:    "create_fix_sequences",
			Up: `CREATE TABLE IF NOT EXISTS fix_sequences (
				session_id  TEXT PRIMARY KEY,
				in_seq_num  INTEGER NOT NULL,
				out_seq_num INTEGER NOT NULL,
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			Down: `DROP TABLE IF EXISTS fix_sequences`,
		},
	}
}

// Migrator applies the fix_messages/fix_sequences schema to a Postgres
// database, tracked in a schema_migrations table.
type Migrator struct {
	pool       *pgxpool.Pool
	migrations []*Migration
}

// NewMigrator wraps a pool with the full set of registered migrations.
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool, migrations: Migrations()}
}

// Init creates the schema_migrations tracking table.
func (m *Migrator) Init(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    BIGINT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("migrator: init: %w", err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[int64]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("migrator: query applied: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]bool)
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("migrator: scan applied: %w", err)
		}
		out[version] = true
	}
	return out, rows.Err()
}

// Up applies every migration not yet recorded in schema_migrations, in
// ascending version order, each inside its own transaction.
func (m *Migrator) Up(ctx context.Context) error {
	sort.Slice(m.migrations, func(i, j int) bool { return m.migrations[i].Version < m.migrations[j].Version })

	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	for _, mig := range m.migrations {
		if applied[mig.Version] {
			continue
		}
		tx, err := m.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("migrator: begin %d: %w", mig.Version, err)
		}
		if _, err := tx.Exec(ctx, mig.Up); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("migrator: apply %d (%s): %w", mig.Version, mig.Name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("migrator: record %d: %w", mig.Version, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("migrator: commit %d: %w", mig.Version, err)
		}
	}
	return nil
}

// Down rolls back the single most recently applied migration.
func (m *Migrator) Down(ctx context.Context) error {
	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}
	var latest int64 = -1
	for version := range applied {
		if version > latest {
			latest = version
		}
	}
	if latest < 0 {
		return nil
	}

	var target *Migration
	for _, mig := range m.migrations {
		if mig.Version == latest {
			target = mig
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migrator: no migration registered for applied version %d", latest)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("migrator: begin rollback %d: %w", latest, err)
	}
	if _, err := tx.Exec(ctx, target.Down); err != nil {
		tx.Rollback(ctx)
		return fmt.Errorf("migrator: rollback %d (%s): %w", latest, target.Name, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, latest); err != nil {
		tx.Rollback(ctx)
		return fmt.Errorf("migrator: unrecord %d: %w", latest, err)
	}
	return tx.Commit(ctx)
}

// Status reports each registered migration's applied state.
type Status struct {
	Version int64
	Name    string
	Applied bool
}

// Status returns the applied/pending state of every registered migration.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(m.migrations))
	for _, mig := range m.migrations {
		out = append(out, Status{Version: mig.Version, Name: mig.Name, Applied: applied[mig.Version]})
	}
	return out, nil
}
