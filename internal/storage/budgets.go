package storage

import (
	"context"
	"fmt"

	"github.com/smartwallet/smartwallet/internal/common"
	"github.com/smartwallet/smartwallet/internal/model"
)

// SetBudget creates or replaces the spending limit for a category.
func (s *SQLiteStore) SetBudget(ctx context.Context, userID string, budget model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(budget.Category, "category"); err != nil {
		return err
	}
	if budget.Limit <= 0 {
		return fmt.Errorf("budget limit must be positive, got %.2f", budget.Limit)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category, limit_amount) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, category) DO UPDATE SET limit_amount = excluded.limit_amount`,
		userID, budget.Category, budget.Limit); err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}
	return nil
}

// Budgets lists the user's category limits.
func (s *SQLiteStore) Budgets(ctx context.Context, userID string) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, limit_amount FROM budgets WHERE user_id = ? ORDER BY category`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.Category, &b.Limit); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}

	return budgets, nil
}

// DeleteBudget removes a category limit.
func (s *SQLiteStore) DeleteBudget(ctx context.Context, userID, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE user_id = ? AND category = ?`, userID, category)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: budget for %q", common.ErrNotFound, category)
	}
	return nil
}
