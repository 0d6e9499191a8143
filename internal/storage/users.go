package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smartwallet/smartwallet/internal/common"
)

// CreateUser registers a new account. The password hash is produced by the
// auth package; the store never sees cleartext passwords.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, passwordHash string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(username, "username"); err != nil {
		return err
	}
	if err := validateString(passwordHash, "passwordHash"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, time.Now().Format(dateLayout)); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: user %q", common.ErrDuplicateEntry, username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UserPasswordHash returns the stored hash for credential verification.
func (s *SQLiteStore) UserPasswordHash(ctx context.Context, username string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(username, "username"); err != nil {
		return "", err
	}

	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE username = ?`, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: user %q", common.ErrNotFound, username)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query user: %w", err)
	}
	return hash, nil
}
