package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/smartwallet/smartwallet/internal/coach"
	"github.com/smartwallet/smartwallet/internal/service"
)

func coachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coach",
		Short: "Get AI financial coaching from your recent records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := slog.Default()

			user, err := currentUser()
			if err != nil {
				return err
			}
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			history, err := store.ListTransactions(ctx, user, service.TransactionFilter{Limit: 40})
			if err != nil {
				return err
			}

			totals, err := store.GetTotals(ctx, user, service.TransactionFilter{})
			if err != nil {
				return err
			}

			client, err := newInferenceClient()
			if err != nil {
				return err
			}

			advice, err := coach.New(client, modelList(), logger).Advise(ctx, totals.Income, history)
			if err != nil {
				return fmt.Errorf("coach unavailable: %w", err)
			}

			fmt.Println(advice)
			return nil
		},
	}
}
