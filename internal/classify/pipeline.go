// Package classify wires the rule engine and the remote inference adapter
// into the single entry point the rest of the application calls.
package classify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/smartwallet/smartwallet/internal/common"
	"github.com/smartwallet/smartwallet/internal/model"
)

// FastPath is the deterministic classifier tried before any remote call.
// The second return value is false when it declines.
type FastPath interface {
	Classify(text string, allowed []string) (model.Transaction, bool)
}

// SlowPath is the remote inference adapter.
type SlowPath interface {
	Classify(ctx context.Context, req model.Request) (model.Transaction, error)
}

// Pipeline combines the fast and slow paths. It holds no per-request
// state; every classification is a pure function of the request plus the
// fixed tables and the remote service.
type Pipeline struct {
	fast   FastPath
	slow   SlowPath
	logger *slog.Logger
}

// New creates a pipeline.
func New(fast FastPath, slow SlowPath, logger *slog.Logger) *Pipeline {
	return &Pipeline{fast: fast, slow: slow, logger: logger}
}

// ClassifyText normalizes a free-text utterance. The rule engine runs
// first; when it yields a record no remote model is contacted. When it
// declines the request falls through to the adapter.
func (p *Pipeline) ClassifyText(ctx context.Context, req model.Request) (model.Transaction, error) {
	if strings.TrimSpace(req.Text) == "" {
		return model.Transaction{}, common.ErrEmptyInput
	}

	if txn, ok := p.fast.Classify(req.Text, req.Categories); ok {
		p.logger.Debug("classified on fast path",
			"category", txn.Category,
			"kind", txn.Kind)
		return txn, nil
	}

	return p.slow.Classify(ctx, req)
}

// ClassifyAudio normalizes a recorded utterance. Audio always takes the
// slow path; the rule engine cannot process it.
func (p *Pipeline) ClassifyAudio(ctx context.Context, req model.Request) (model.Transaction, error) {
	if len(req.Audio) == 0 {
		return model.Transaction{}, common.ErrEmptyInput
	}

	req.Text = ""
	return p.slow.Classify(ctx, req)
}
