package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/smartwallet/smartwallet/internal/ofx"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <statement.ofx>",
		Short: "Import transactions from an OFX/QFX bank statement",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
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

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open statement: %w", err)
	}
	defer func() { _ = file.Close() }()

	transactions, err := ofx.NewImporter().Parse(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to parse statement: %w", err)
	}
	if len(transactions) == 0 {
		fmt.Println("No transactions found in statement.")
		return nil
	}

	bar := progressbar.NewOptions(len(transactions),
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	imported := 0
	for _, txn := range transactions {
		if _, err := store.InsertTransaction(ctx, user, txn); err != nil {
			fmt.Fprintf(os.Stderr, "\nskipping record %q: %v\n", txn.Description, err)
			_ = bar.Add(1)
			continue
		}
		imported++
		_ = bar.Add(1)
	}

	fmt.Printf("Imported %d of %d transactions.\n", imported, len(transactions))
	return nil
}
