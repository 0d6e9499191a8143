package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// migrations run in order exactly once each; applied versions are tracked
// in schema_migrations.
var migrations = []string{
	// 1: users
	`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	// 2: transactions
	`CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(username),
		date TEXT NOT NULL,
		amount REAL NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		kind TEXT NOT NULL,
		origin TEXT NOT NULL DEFAULT ''
	)`,
	// 3: budgets
	`CREATE TABLE IF NOT EXISTS budgets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(username),
		category TEXT NOT NULL,
		limit_amount REAL NOT NULL,
		UNIQUE(user_id, category)
	)`,
	// 4: recurring rules
	`CREATE TABLE IF NOT EXISTS recurring (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(username),
		category TEXT NOT NULL,
		amount REAL NOT NULL,
		description TEXT NOT NULL,
		kind TEXT NOT NULL,
		day_of_month INTEGER NOT NULL,
		last_processed TEXT NOT NULL DEFAULT ''
	)`,
	// 5: user-defined categories
	`CREATE TABLE IF NOT EXISTS custom_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(username),
		name TEXT NOT NULL,
		UNIQUE(user_id, name)
	)`,
	// 6: transaction query index
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_date
		ON transactions(user_id, date)`,
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", version, err)
		}

		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, applied_at) VALUES (?, datetime('now'))`, version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", version, err)
		}

		slog.Debug("applied migration", "version", version)
	}

	return nil
}
