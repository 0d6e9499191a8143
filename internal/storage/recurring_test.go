package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwallet/smartwallet/internal/model"
	"github.com/smartwallet/smartwallet/internal/service"
)

func rentRule() model.RecurringRule {
	return model.RecurringRule{
		Category:    "Moradia",
		Amount:      1200,
		Description: "Aluguel",
		Kind:        model.KindExpense,
		DayOfMonth:  5,
	}
}

func TestAddRecurringValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		mutate func(*model.RecurringRule)
		name   string
	}{
		{name: "zero amount", mutate: func(r *model.RecurringRule) { r.Amount = 0 }},
		{name: "day too low", mutate: func(r *model.RecurringRule) { r.DayOfMonth = 0 }},
		{name: "day too high", mutate: func(r *model.RecurringRule) { r.DayOfMonth = 29 }},
		{name: "invalid kind", mutate: func(r *model.RecurringRule) { r.Kind = "Transfer" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := rentRule()
			tt.mutate(&rule)
			assert.Error(t, store.AddRecurring(ctx, testUser, rule))
		})
	}

	require.NoError(t, store.AddRecurring(ctx, testUser, rentRule()))

	rules, err := store.ListRecurring(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Aluguel", rules[0].Description)
	assert.Empty(t, rules[0].LastProcessed)
}

func TestProcessRecurring(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddRecurring(ctx, testUser, rentRule()))

	salary := model.RecurringRule{
		Category:    "Outros",
		Amount:      4200,
		Description: "Salário",
		Kind:        model.KindIncome,
		DayOfMonth:  10,
	}
	require.NoError(t, store.AddRecurring(ctx, testUser, salary))

	// Day 7: only the rent rule (day 5) is due.
	posted, err := store.ProcessRecurring(ctx, testUser, time.Date(2025, 3, 7, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, 1, posted)

	transactions, err := store.ListTransactions(ctx, testUser, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Aluguel (Recorrente)", transactions[0].Description)
	assert.Equal(t, model.KindExpense, transactions[0].Kind)

	// Same month, later day: rent is already posted, salary becomes due.
	posted, err = store.ProcessRecurring(ctx, testUser, time.Date(2025, 3, 15, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, 1, posted)

	// Running again in the same month posts nothing.
	posted, err = store.ProcessRecurring(ctx, testUser, time.Date(2025, 3, 20, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Zero(t, posted)

	// A new month re-arms every rule.
	posted, err = store.ProcessRecurring(ctx, testUser, time.Date(2025, 4, 12, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, 2, posted)

	transactions, err = store.ListTransactions(ctx, testUser, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, transactions, 4)
}
