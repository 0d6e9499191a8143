package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smartwallet/smartwallet/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage per-category spending limits",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <category> <limit>",
		Short: "Set or replace a category limit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := currentUser()
			if err != nil {
				return err
			}

			limit, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid limit %q: %w", args[1], err)
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetBudget(ctx, user, model.Budget{Category: args[0], Limit: limit}); err != nil {
				return err
			}
			fmt.Printf("Budget for %q set to R$ %.2f.\n", args[0], limit)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List category limits",
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

			budgets, err := store.Budgets(ctx, user)
			if err != nil {
				return err
			}
			if len(budgets) == 0 {
				fmt.Println("No budgets set.")
				return nil
			}
			for _, b := range budgets {
				fmt.Printf("%-20s R$ %.2f\n", b.Category, b.Limit)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <category>",
		Short: "Remove a category limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			if err := store.DeleteBudget(ctx, user, args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed budget for %q.\n", args[0])
			return nil
		},
	})

	return cmd
}
