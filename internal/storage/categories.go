package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/smartwallet/smartwallet/internal/common"
	"github.com/smartwallet/smartwallet/internal/model"
)

// Categories returns the base category set merged with the user's custom
// categories, deduplicated and sorted. This is the closed vocabulary the
// classifier pipeline consumes.
func (s *SQLiteStore) Categories(ctx context.Context, userID string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM custom_categories WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	seen := make(map[string]bool, len(model.BaseCategories))
	categories := make([]string, 0, len(model.BaseCategories))
	for _, name := range model.BaseCategories {
		seen[name] = true
		categories = append(categories, name)
	}

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if !seen[name] {
			seen[name] = true
			categories = append(categories, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	sort.Strings(categories)
	return categories, nil
}

// AddCategory registers a user-defined category.
func (s *SQLiteStore) AddCategory(ctx context.Context, userID, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if err := validateString(name, "name"); err != nil {
		return err
	}

	for _, base := range model.BaseCategories {
		if base == name {
			return fmt.Errorf("%w: %q is a built-in category", common.ErrDuplicateEntry, name)
		}
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO custom_categories (user_id, name) VALUES (?, ?)`, userID, name); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, name)
		}
		return fmt.Errorf("failed to add category: %w", err)
	}
	return nil
}

// DeleteCategory removes a user-defined category. Built-in categories
// cannot be removed.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, userID, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM custom_categories WHERE user_id = ? AND name = ?`, userID, name)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %q", common.ErrNotFound, name)
	}
	return nil
}
