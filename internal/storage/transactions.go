package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smartwallet/smartwallet/internal/common"
	"github.com/smartwallet/smartwallet/internal/model"
	"github.com/smartwallet/smartwallet/internal/service"
)

const dateLayout = "2006-01-02 15:04:05"

// InsertTransaction persists a normalized transaction and returns its ID.
func (s *SQLiteStore) InsertTransaction(ctx context.Context, userID string, txn model.Transaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}
	if err := validateTransaction(txn); err != nil {
		return 0, fmt.Errorf("invalid transaction: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, date, amount, category, description, kind, origin)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID,
		txn.DateTime.Format(dateLayout),
		txn.Amount,
		txn.Category,
		txn.Description,
		string(txn.Kind),
		string(txn.Origin))
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read insert id: %w", err)
	}
	return id, nil
}

// ListTransactions returns a user's transactions, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, userID string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query, args := buildTransactionQuery(
		`SELECT id, user_id, date, amount, category, description, kind, origin FROM transactions`,
		userID, filter)
	query += " ORDER BY date DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var date, kind, origin string
		if err := rows.Scan(&txn.ID, &txn.UserID, &date, &txn.Amount,
			&txn.Category, &txn.Description, &kind, &origin); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.DateTime, _ = time.ParseInLocation(dateLayout, date, time.Local)
		txn.Kind = model.TransactionKind(kind)
		txn.Origin = model.Origin(origin)
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// DeleteTransaction removes a transaction, scoped to its owner.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id int64, userID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", common.ErrNotFound, id)
	}
	return nil
}

// GetTotals aggregates income and expense over the filtered period.
func (s *SQLiteStore) GetTotals(ctx context.Context, userID string, filter service.TransactionFilter) (service.Totals, error) {
	if err := validateContext(ctx); err != nil {
		return service.Totals{}, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return service.Totals{}, err
	}

	query, args := buildTransactionQuery(
		`SELECT kind, COALESCE(SUM(amount), 0) FROM transactions`, userID, filter)
	query += " GROUP BY kind"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return service.Totals{}, fmt.Errorf("failed to query totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals service.Totals
	for rows.Next() {
		var kind string
		var sum float64
		if err := rows.Scan(&kind, &sum); err != nil {
			return service.Totals{}, fmt.Errorf("failed to scan totals: %w", err)
		}
		switch model.TransactionKind(kind) {
		case model.KindIncome:
			totals.Income = sum
		case model.KindExpense:
			totals.Expense = sum
		}
	}
	if err := rows.Err(); err != nil {
		return service.Totals{}, fmt.Errorf("failed to iterate totals: %w", err)
	}

	return totals, nil
}

// buildTransactionQuery appends the user and date predicates shared by the
// transaction queries.
func buildTransactionQuery(base, userID string, filter service.TransactionFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString(" WHERE user_id = ?")
	args := []any{userID}

	if filter.StartDate != nil {
		b.WriteString(" AND date >= ?")
		args = append(args, filter.StartDate.Format(dateLayout))
	}
	if filter.EndDate != nil {
		b.WriteString(" AND date <= ?")
		args = append(args, filter.EndDate.Format(dateLayout))
	}

	return b.String(), args
}
