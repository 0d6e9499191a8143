// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/smartwallet/smartwallet/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// Totals aggregates a user's flows over a filtered period.
type Totals struct {
	Income  float64
	Expense float64
}

// Balance returns the net flow.
func (t Totals) Balance() float64 {
	return t.Income - t.Expense
}

// Store defines the contract for the persistence layer. The classifier
// pipeline only ever consumes Categories; it never writes.
type Store interface {
	// Transaction operations
	InsertTransaction(ctx context.Context, userID string, txn model.Transaction) (int64, error)
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64, userID string) error
	GetTotals(ctx context.Context, userID string, filter TransactionFilter) (Totals, error)

	// Category operations
	Categories(ctx context.Context, userID string) ([]string, error)
	AddCategory(ctx context.Context, userID, name string) error
	DeleteCategory(ctx context.Context, userID, name string) error

	// Budget operations
	SetBudget(ctx context.Context, userID string, budget model.Budget) error
	Budgets(ctx context.Context, userID string) ([]model.Budget, error)
	DeleteBudget(ctx context.Context, userID, category string) error

	// Recurring rules
	AddRecurring(ctx context.Context, userID string, rule model.RecurringRule) error
	ListRecurring(ctx context.Context, userID string) ([]model.RecurringRule, error)
	ProcessRecurring(ctx context.Context, userID string, now time.Time) (int, error)

	// User accounts
	CreateUser(ctx context.Context, username, passwordHash string) error
	UserPasswordHash(ctx context.Context, username string) (string, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Classifier is the caller-facing surface of the classification pipeline.
type Classifier interface {
	ClassifyText(ctx context.Context, req model.Request) (model.Transaction, error)
	ClassifyAudio(ctx context.Context, req model.Request) (model.Transaction, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
