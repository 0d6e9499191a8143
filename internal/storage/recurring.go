package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/smartwallet/smartwallet/internal/model"
)

// AddRecurring registers a fixed monthly transaction rule.
func (s *SQLiteStore) AddRecurring(ctx context.Context, userID string, rule model.RecurringRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if rule.Amount <= 0 {
		return fmt.Errorf("recurring amount must be positive, got %.2f", rule.Amount)
	}
	if rule.DayOfMonth < 1 || rule.DayOfMonth > 28 {
		return fmt.Errorf("day of month must be 1-28, got %d", rule.DayOfMonth)
	}
	if rule.Kind != model.KindIncome && rule.Kind != model.KindExpense {
		return fmt.Errorf("invalid recurring kind %q", rule.Kind)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO recurring (user_id, category, amount, description, kind, day_of_month, last_processed)
		 VALUES (?, ?, ?, ?, ?, ?, '')`,
		userID, rule.Category, rule.Amount, rule.Description, string(rule.Kind), rule.DayOfMonth); err != nil {
		return fmt.Errorf("failed to add recurring rule: %w", err)
	}
	return nil
}

// ListRecurring returns the user's recurring rules.
func (s *SQLiteStore) ListRecurring(ctx context.Context, userID string) ([]model.RecurringRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, amount, description, kind, day_of_month, last_processed
		 FROM recurring WHERE user_id = ? ORDER BY day_of_month, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.RecurringRule
	for rows.Next() {
		var rule model.RecurringRule
		var kind string
		if err := rows.Scan(&rule.ID, &rule.Category, &rule.Amount, &rule.Description,
			&kind, &rule.DayOfMonth, &rule.LastProcessed); err != nil {
			return nil, fmt.Errorf("failed to scan recurring rule: %w", err)
		}
		rule.Kind = model.TransactionKind(kind)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recurring rules: %w", err)
	}

	return rules, nil
}

// ProcessRecurring posts any due recurring rules as transactions, at most
// once per calendar month each, and returns how many were posted.
func (s *SQLiteStore) ProcessRecurring(ctx context.Context, userID string, now time.Time) (int, error) {
	rules, err := s.ListRecurring(ctx, userID)
	if err != nil {
		return 0, err
	}

	currentMonth := now.Format("2006-01")
	posted := 0

	for _, rule := range rules {
		if now.Day() < rule.DayOfMonth || rule.LastProcessed == currentMonth {
			continue
		}

		txn := model.Transaction{
			DateTime:    now,
			Amount:      rule.Amount,
			Category:    rule.Category,
			Description: rule.Description + " (Recorrente)",
			Kind:        rule.Kind,
		}
		if _, err := s.InsertTransaction(ctx, userID, txn); err != nil {
			return posted, fmt.Errorf("failed to post recurring rule %d: %w", rule.ID, err)
		}

		if _, err := s.db.ExecContext(ctx,
			`UPDATE recurring SET last_processed = ? WHERE id = ?`, currentMonth, rule.ID); err != nil {
			return posted, fmt.Errorf("failed to mark recurring rule %d: %w", rule.ID, err)
		}
		posted++
	}

	return posted, nil
}
