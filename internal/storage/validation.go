package storage

import (
	"context"
	"fmt"

	"github.com/smartwallet/smartwallet/internal/model"
)

// maxDescriptionLen caps stored descriptions.
const maxDescriptionLen = 255

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

func validateTransaction(txn model.Transaction) error {
	if txn.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %.2f", txn.Amount)
	}
	if txn.Kind != model.KindIncome && txn.Kind != model.KindExpense {
		return fmt.Errorf("invalid transaction kind %q", txn.Kind)
	}
	if txn.Category == "" {
		return fmt.Errorf("category cannot be empty")
	}
	if txn.Description == "" || len(txn.Description) > maxDescriptionLen {
		return fmt.Errorf("description must be 1-%d characters", maxDescriptionLen)
	}
	if txn.DateTime.IsZero() {
		return fmt.Errorf("date cannot be zero")
	}
	return nil
}
