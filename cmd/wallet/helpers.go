package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/smartwallet/smartwallet/internal/classify"
	"github.com/smartwallet/smartwallet/internal/common"
	"github.com/smartwallet/smartwallet/internal/inference"
	"github.com/smartwallet/smartwallet/internal/model"
	"github.com/smartwallet/smartwallet/internal/rates"
	"github.com/smartwallet/smartwallet/internal/rules"
	"github.com/smartwallet/smartwallet/internal/service"
	"github.com/smartwallet/smartwallet/internal/storage"
)

// openStore opens and migrates the SQLite store.
func openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "smartwallet", "wallet.db")
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	return store, nil
}

// currentUser resolves the acting username from flag, env, or config.
func currentUser() (string, error) {
	user := viper.GetString("user")
	if user == "" {
		return "", common.NewUserError("no user selected; pass --user or set it in the config", common.ErrMissingConfig)
	}
	return user, nil
}

// modelList returns the configured model fallback order.
func modelList() []string {
	if models := viper.GetStringSlice("gemini.models"); len(models) > 0 {
		return models
	}
	return inference.DefaultModels
}

// newInferenceClient builds the hosted model client from config.
func newInferenceClient() (inference.Client, error) {
	apiKey := viper.GetString("gemini.api_key")
	if apiKey == "" {
		return nil, common.NewUserError("no Gemini API key configured; set gemini.api_key or SMARTWALLET_GEMINI_API_KEY", common.ErrMissingConfig)
	}

	return inference.NewGeminiClient(inference.ClientConfig{
		APIKey:      apiKey,
		Temperature: viper.GetFloat64("gemini.temperature"),
		MaxTokens:   viper.GetInt("gemini.max_tokens"),
	})
}

// newPipeline wires the rule engine and the remote adapter.
func newPipeline(logger *slog.Logger) (*classify.Pipeline, *inference.Adapter, error) {
	client, err := newInferenceClient()
	if err != nil {
		return nil, nil, err
	}

	adapter := inference.NewAdapter(client, inference.Config{
		Models:         modelList(),
		AttemptTimeout: viper.GetDuration("gemini.attempt_timeout"),
		RateLimit:      viper.GetInt("gemini.rate_limit"),
	}, logger)

	return classify.New(rules.NewEngine(), adapter, logger), adapter, nil
}

// buildRequest assembles the explicit pipeline inputs: the user's closed
// category vocabulary, the current rate snapshot, and a short few-shot
// history sample.
func buildRequest(ctx context.Context, store service.Store, userID string, logger *slog.Logger) (model.Request, error) {
	categories, err := store.Categories(ctx, userID)
	if err != nil {
		return model.Request{}, fmt.Errorf("failed to load categories: %w", err)
	}

	fetcher := rates.NewFetcher(rates.Config{
		APIKey: viper.GetString("rates.api_key"),
	}, logger)

	recent, err := store.ListTransactions(ctx, userID, service.TransactionFilter{Limit: 5})
	if err != nil {
		return model.Request{}, fmt.Errorf("failed to load history: %w", err)
	}

	history := make([]model.HistoryEntry, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- { // oldest first
		txn := recent[i]
		history = append(history, model.HistoryEntry{
			Description: txn.Description,
			Category:    txn.Category,
			Kind:        txn.Kind,
			Amount:      txn.Amount,
		})
	}

	return model.Request{
		Categories: categories,
		Rates:      fetcher.Latest(ctx),
		History:    history,
	}, nil
}

// processRecurring posts due recurring bills before any balance-affecting
// command runs.
func processRecurring(ctx context.Context, store service.Store, userID string) {
	posted, err := store.ProcessRecurring(ctx, userID, time.Now())
	if err != nil {
		slog.Warn("failed to process recurring bills", "error", err)
		return
	}
	if posted > 0 {
		fmt.Printf("Posted %d recurring transaction(s).\n", posted)
	}
}

// printTransaction renders a normalized transaction for the terminal.
func printTransaction(txn model.Transaction) {
	fmt.Printf("  %s  %-8s R$ %.2f  %-15s %s\n",
		txn.DateTime.Format("2006-01-02 15:04"),
		txn.Kind,
		txn.Amount,
		txn.Category,
		txn.Description)
}
