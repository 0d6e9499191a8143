package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwallet/smartwallet/internal/common"
	"github.com/smartwallet/smartwallet/internal/model"
	"github.com/smartwallet/smartwallet/internal/service"
)

const testUser = "alice"

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "wallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.CreateUser(ctx, testUser, "not-a-real-hash"))

	return store
}

func sampleTransaction(amount float64, kind model.TransactionKind) model.Transaction {
	return model.Transaction{
		DateTime:    time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local),
		Amount:      amount,
		Category:    "Transporte",
		Description: "Corrida De Uber",
		Kind:        kind,
		Origin:      model.OriginRuleEngine,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestInsertAndListTransactions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.InsertTransaction(ctx, testUser, sampleTransaction(50, model.KindExpense))
	require.NoError(t, err)
	assert.Positive(t, first)

	second, err := store.InsertTransaction(ctx, testUser, model.Transaction{
		DateTime:    time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local),
		Amount:      2000,
		Category:    "Outros",
		Description: "Recebi 2000 De Pix",
		Kind:        model.KindIncome,
		Origin:      model.OriginRemoteModel,
	})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	transactions, err := store.ListTransactions(ctx, testUser, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	// Newest first.
	assert.Equal(t, second, transactions[0].ID)
	assert.Equal(t, model.KindIncome, transactions[0].Kind)
	assert.Equal(t, model.OriginRemoteModel, transactions[0].Origin)
	assert.Equal(t, "Corrida De Uber", transactions[1].Description)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local), transactions[1].DateTime)
}

func TestInsertTransactionValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		mutate func(*model.Transaction)
		name   string
	}{
		{name: "zero amount", mutate: func(txn *model.Transaction) { txn.Amount = 0 }},
		{name: "negative amount", mutate: func(txn *model.Transaction) { txn.Amount = -5 }},
		{name: "invalid kind", mutate: func(txn *model.Transaction) { txn.Kind = "Transfer" }},
		{name: "empty category", mutate: func(txn *model.Transaction) { txn.Category = "" }},
		{name: "empty description", mutate: func(txn *model.Transaction) { txn.Description = "" }},
		{name: "zero date", mutate: func(txn *model.Transaction) { txn.DateTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := sampleTransaction(10, model.KindExpense)
			tt.mutate(&txn)
			_, err := store.InsertTransaction(ctx, testUser, txn)
			assert.Error(t, err)
		})
	}
}

func TestListTransactionsFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		txn := sampleTransaction(float64(day*10), model.KindExpense)
		txn.DateTime = time.Date(2025, 3, day, 12, 0, 0, 0, time.Local)
		_, err := store.InsertTransaction(ctx, testUser, txn)
		require.NoError(t, err)
	}

	start := time.Date(2025, 3, 2, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 3, 4, 23, 59, 59, 0, time.Local)

	transactions, err := store.ListTransactions(ctx, testUser, service.TransactionFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	assert.Len(t, transactions, 3)

	limited, err := store.ListTransactions(ctx, testUser, service.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestListTransactionsScopedToUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateUser(ctx, "bob", "another-hash"))

	_, err := store.InsertTransaction(ctx, testUser, sampleTransaction(50, model.KindExpense))
	require.NoError(t, err)

	transactions, err := store.ListTransactions(ctx, "bob", service.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestDeleteTransaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.InsertTransaction(ctx, testUser, sampleTransaction(50, model.KindExpense))
	require.NoError(t, err)

	require.NoError(t, store.DeleteTransaction(ctx, id, testUser))

	err = store.DeleteTransaction(ctx, id, testUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteTransactionOtherUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateUser(ctx, "bob", "another-hash"))

	id, err := store.InsertTransaction(ctx, testUser, sampleTransaction(50, model.KindExpense))
	require.NoError(t, err)

	err = store.DeleteTransaction(ctx, id, "bob")
	assert.ErrorIs(t, err, common.ErrNotFound)

	remaining, err := store.ListTransactions(ctx, testUser, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestGetTotals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.InsertTransaction(ctx, testUser, sampleTransaction(50, model.KindExpense))
	require.NoError(t, err)
	_, err = store.InsertTransaction(ctx, testUser, sampleTransaction(30, model.KindExpense))
	require.NoError(t, err)

	income := sampleTransaction(2000, model.KindIncome)
	income.Category = "Outros"
	_, err = store.InsertTransaction(ctx, testUser, income)
	require.NoError(t, err)

	totals, err := store.GetTotals(ctx, testUser, service.TransactionFilter{})
	require.NoError(t, err)

	assert.InDelta(t, 2000.0, totals.Income, 0.001)
	assert.InDelta(t, 80.0, totals.Expense, 0.001)
	assert.InDelta(t, 1920.0, totals.Balance(), 0.001)
}

func TestGetTotalsEmpty(t *testing.T) {
	store := newTestStore(t)

	totals, err := store.GetTotals(context.Background(), testUser, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Zero(t, totals.Income)
	assert.Zero(t, totals.Expense)
}
