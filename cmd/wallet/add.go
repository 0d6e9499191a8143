package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <utterance>",
		Short: "Record a transaction from plain language",
		Long: `Classify a plain-language utterance and persist the resulting
transaction. Simple phrases are handled locally; anything ambiguous, in a
foreign currency, or investment-related goes through the remote model.

Example:
  wallet add "Gastei 50 no Uber"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAdd,
	}
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
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

	processRecurring(ctx, store, user)

	pipeline, adapter, err := newPipeline(logger)
	if err != nil {
		return err
	}
	defer func() { _ = adapter.Close() }()

	req, err := buildRequest(ctx, store, user, logger)
	if err != nil {
		return err
	}
	req.Text = strings.Join(args, " ")

	txn, err := pipeline.ClassifyText(ctx, req)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	id, err := store.InsertTransaction(ctx, user, txn)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	fmt.Printf("Recorded transaction #%d (via %s):\n", id, txn.Origin)
	printTransaction(txn)
	return nil
}
