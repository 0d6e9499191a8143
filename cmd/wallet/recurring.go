package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartwallet/smartwallet/internal/model"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage fixed monthly bills and income",
	}

	var kind string
	addCmd := &cobra.Command{
		Use:   "add <category> <amount> <day-of-month> <description>",
		Short: "Register a monthly rule",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := currentUser()
			if err != nil {
				return err
			}

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			day, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid day %q: %w", args[2], err)
			}

			ruleKind := model.KindExpense
			if kind == "income" {
				ruleKind = model.KindIncome
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rule := model.RecurringRule{
				Category:    args[0],
				Amount:      amount,
				DayOfMonth:  day,
				Description: args[3],
				Kind:        ruleKind,
			}
			if err := store.AddRecurring(ctx, user, rule); err != nil {
				return err
			}
			fmt.Printf("Recurring %s of R$ %.2f on day %d registered.\n", ruleKind, amount, day)
			return nil
		},
	}
	addCmd.Flags().StringVar(&kind, "kind", "expense", "rule kind (expense, income)")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List monthly rules",
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

			ruleList, err := store.ListRecurring(ctx, user)
			if err != nil {
				return err
			}
			if len(ruleList) == 0 {
				fmt.Println("No recurring rules.")
				return nil
			}
			for _, rule := range ruleList {
				fmt.Printf("#%d day %2d  %-8s R$ %.2f  %-15s %s\n",
					rule.ID, rule.DayOfMonth, rule.Kind, rule.Amount, rule.Category, rule.Description)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "process",
		Short: "Post any due rules now",
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

			posted, err := store.ProcessRecurring(ctx, user, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Posted %d transaction(s).\n", posted)
			return nil
		},
	})

	return cmd
}
