package inference

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/smartwallet/smartwallet/internal/model"
)

// kindTable maps loosely-typed model tokens onto the closed kind
// enumeration. This is the single place in the codebase where the mapping
// lives; call sites must not re-implement it.
var kindTable = map[string]model.TransactionKind{
	"expense": model.KindExpense,
	"outcome": model.KindExpense,
	"debit":   model.KindExpense,
	"gasto":   model.KindExpense,
	"saída":   model.KindExpense,
	"saida":   model.KindExpense,
	"despesa": model.KindExpense,

	"income":  model.KindIncome,
	"entry":   model.KindIncome,
	"credit":  model.KindIncome,
	"receita": model.KindIncome,
	"entrada": model.KindIncome,
	"ganho":   model.KindIncome,
}

const dateLayout = "2006-01-02 15:04:05"

// canonicalize maps a raw parsed record onto the closed domain vocabulary.
// It is idempotent: feeding it an already-canonical record changes nothing.
// Defaulting rules apply wherever a safe default exists (kind to Expense,
// category to the reserved fallback, missing date to now); a non-positive
// amount is left for the caller's validation to reject.
func canonicalize(record rawRecord, allowed []string, now time.Time) model.Transaction {
	return model.Transaction{
		Amount:      canonicalAmount(record.Amount),
		Category:    canonicalCategory(record.Category, allowed),
		DateTime:    canonicalDate(record.Date, now),
		Description: record.Description,
		Kind:        canonicalKind(record.Type),
		Origin:      model.OriginRemoteModel,
	}
}

// canonicalKind coerces a kind token case-insensitively, defaulting to
// Expense for anything unrecognized.
func canonicalKind(token string) model.TransactionKind {
	if kind, ok := kindTable[strings.ToLower(strings.TrimSpace(token))]; ok {
		return kind
	}
	return model.KindExpense
}

// categoryAliases maps common synonyms the models emit onto canonical
// category names. The target still has to be in the allowed set.
var categoryAliases = map[string]string{
	"comida":   "Alimentação",
	"refeição": "Alimentação",
	"refeicao": "Alimentação",
	"casa":     "Moradia",
	"remédio":  "Saúde",
	"remedio":  "Saúde",
}

// canonicalCategory forces the model's category into the allowed set:
// exact match first, then a case-insensitive substring match in either
// direction, then a synonym lookup, then the reserved fallback. An
// invented category string never passes through.
func canonicalCategory(raw string, allowed []string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.CategoryOther
	}

	for _, c := range allowed {
		if c == raw {
			return c
		}
	}

	lower := strings.ToLower(raw)
	for _, c := range allowed {
		allowedLower := strings.ToLower(c)
		if strings.Contains(allowedLower, lower) || strings.Contains(lower, allowedLower) {
			return c
		}
	}

	if target, ok := categoryAliases[lower]; ok {
		for _, c := range allowed {
			if c == target {
				return c
			}
		}
	}

	return model.CategoryOther
}

// canonicalAmount coerces the untyped amount to a float. Failures yield
// 0.0 so downstream amount validation rejects the record.
func canonicalAmount(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0.0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", "."), 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return 0.0
	}
}

// canonicalDate parses the model's timestamp, falling back to now.
func canonicalDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	if ts, err := time.ParseInLocation(dateLayout, raw, now.Location()); err == nil {
		return ts
	}
	if ts, err := time.ParseInLocation("2006-01-02", raw, now.Location()); err == nil {
		return ts
	}
	return now
}
