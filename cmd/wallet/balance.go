package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartwallet/smartwallet/internal/service"
)

func balanceCmd() *cobra.Command {
	var month string
	var limit int

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show totals and the latest transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			user, err := currentUser()
			if err != nil {
				return err
			}
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			processRecurring(ctx, store, user)

			filter := service.TransactionFilter{Limit: limit}
			if month != "" {
				start, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("invalid month %q, want YYYY-MM: %w", month, err)
				}
				end := start.AddDate(0, 1, 0).Add(-time.Second)
				filter.StartDate = &start
				filter.EndDate = &end
			}

			totals, err := store.GetTotals(ctx, user, filter)
			if err != nil {
				return err
			}

			fmt.Printf("Entradas: R$ %.2f | Saídas: R$ %.2f | Saldo: R$ %.2f\n",
				totals.Income, totals.Expense, totals.Balance())

			transactions, err := store.ListTransactions(ctx, user, filter)
			if err != nil {
				return err
			}
			for _, txn := range transactions {
				printTransaction(txn)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "restrict to a month (YYYY-MM)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum transactions to show")
	return cmd
}
