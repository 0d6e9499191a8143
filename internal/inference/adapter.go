package inference

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/smartwallet/smartwallet/internal/common"
	"github.com/smartwallet/smartwallet/internal/model"
)

// DefaultModels is the fixed fallback order: most capable first, broadly
// compatible backups as the tail. Later entries are intentionally weaker
// fallbacks, not peers to race.
var DefaultModels = []string{
	"gemini-2.0-flash-exp",
	"gemini-1.5-flash",
	"gemini-1.5-flash-8b",
}

// defaultAttemptTimeout bounds each model attempt so one unresponsive
// model cannot block the whole pipeline.
const defaultAttemptTimeout = 10 * time.Second

// Adapter is the slow path of the classifier pipeline. Attempts are
// strictly sequential in the declared model order; the first model whose
// response yields a plausible record wins and no further models are tried.
type Adapter struct {
	client         Client
	logger         *slog.Logger
	limiter        *rateLimiter
	now            func() time.Time
	models         []string
	attemptTimeout time.Duration
}

// Config holds configuration for the adapter.
type Config struct {
	Models         []string
	AttemptTimeout time.Duration
	RateLimit      int
}

// NewAdapter creates an adapter over the given client.
func NewAdapter(client Client, cfg Config, logger *slog.Logger) *Adapter {
	models := cfg.Models
	if len(models) == 0 {
		models = DefaultModels
	}

	timeout := cfg.AttemptTimeout
	if timeout == 0 {
		timeout = defaultAttemptTimeout
	}

	return &Adapter{
		client:         client,
		logger:         logger,
		limiter:        newRateLimiter(cfg.RateLimit),
		now:            time.Now,
		models:         models,
		attemptTimeout: timeout,
	}
}

// Classify produces a normalized transaction from the request by walking
// the model fallback list. Per-model failures (network, timeout, parse)
// are recorded and converted into the next attempt; only exhaustion of the
// list surfaces an error, wrapping the last one.
func (a *Adapter) Classify(ctx context.Context, req model.Request) (model.Transaction, error) {
	prompt := buildPrompt(req, a.now())

	genReq := GenerateRequest{
		Prompt:    prompt,
		Audio:     req.Audio,
		AudioMIME: req.AudioMIME,
	}

	var lastErr error
	for _, modelID := range a.models {
		if err := a.limiter.wait(ctx); err != nil {
			return model.Transaction{}, fmt.Errorf("rate limit error: %w", err)
		}

		record, err := a.attempt(ctx, modelID, genReq)
		if err != nil {
			a.logger.Warn("model attempt failed",
				"model", modelID,
				"error", err)
			lastErr = err
			continue
		}

		txn := canonicalize(record, req.Categories, a.now())
		if txn.Amount <= 0 {
			return model.Transaction{}, fmt.Errorf("%w: model %s returned amount %.2f",
				common.ErrNoAmountFound, modelID, txn.Amount)
		}
		if txn.Description == "" {
			txn.Description = req.Text
		}

		a.logger.Info("transaction classified",
			"model", modelID,
			"category", txn.Category,
			"kind", txn.Kind,
			"amount", txn.Amount)

		return txn, nil
	}

	return model.Transaction{}, fmt.Errorf("%w: all %d models failed, last error: %v",
		common.ErrInferenceUnavailable, len(a.models), lastErr)
}

// attempt invokes a single model under the per-attempt timeout and parses
// its response.
func (a *Adapter) attempt(ctx context.Context, modelID string, genReq GenerateRequest) (rawRecord, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, a.attemptTimeout)
	defer cancel()

	raw, err := a.client.Generate(attemptCtx, modelID, genReq)
	if err != nil {
		return rawRecord{}, fmt.Errorf("generate: %w", err)
	}

	return extractRecord(raw)
}

// Close stops the rate limiter's refill goroutine.
func (a *Adapter) Close() error {
	a.limiter.Close()
	return nil
}
