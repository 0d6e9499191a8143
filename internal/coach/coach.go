// Package coach generates personal financial-coaching text from a user's
// recent records, over the same ordered model fallback list as the
// classifier's slow path.
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/smartwallet/smartwallet/internal/common"
	"github.com/smartwallet/smartwallet/internal/inference"
	"github.com/smartwallet/smartwallet/internal/model"
)

// maxHistoryRows caps how much history goes into the prompt.
const maxHistoryRows = 40

// Coach produces advice text. Like the adapter, it walks the model list in
// order and the first non-empty response wins.
type Coach struct {
	client inference.Client
	logger *slog.Logger
	models []string
}

// New creates a coach over the given client and fallback list.
func New(client inference.Client, models []string, logger *slog.Logger) *Coach {
	if len(models) == 0 {
		models = inference.DefaultModels
	}
	return &Coach{client: client, logger: logger, models: models}
}

// Advise analyzes recent transactions and returns coaching text, or an
// error wrapping the last model failure when every model is down.
func (c *Coach) Advise(ctx context.Context, monthlyIncome float64, history []model.Transaction) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("%w: no transactions to analyze", common.ErrEmptyInput)
	}

	prompt := buildPrompt(monthlyIncome, history)

	var lastErr error
	for _, modelID := range c.models {
		text, err := c.client.Generate(ctx, modelID, inference.GenerateRequest{Prompt: prompt})
		if err != nil {
			c.logger.Warn("coach model attempt failed", "model", modelID, "error", err)
			lastErr = err
			continue
		}
		if strings.TrimSpace(text) == "" {
			lastErr = fmt.Errorf("model %s returned empty advice", modelID)
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("%w: all %d models failed, last error: %v",
		common.ErrInferenceUnavailable, len(c.models), lastErr)
}

func buildPrompt(monthlyIncome float64, history []model.Transaction) string {
	if len(history) > maxHistoryRows {
		history = history[:maxHistoryRows]
	}

	var b strings.Builder
	b.WriteString("Atue como um Coach Financeiro Pessoal Sênior.\n")
	fmt.Fprintf(&b, "Dados do Cliente: Renda Mensal R$ %.2f.\n", monthlyIncome)
	b.WriteString("Histórico Recente:\n")
	for _, txn := range history {
		fmt.Fprintf(&b, "- %s | %s | %s | R$ %.2f\n",
			txn.DateTime.Format("2006-01-02"), txn.Kind, txn.Category, txn.Amount)
	}
	b.WriteString(`
Missão: Analise os gastos, sugira onde economizar e dê 1 dica de investimento conservador.
Responda em Português, direto e motivador. Use Markdown.
`)
	return b.String()
}
