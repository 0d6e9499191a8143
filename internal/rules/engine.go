// Package rules implements the deterministic fast path of the classifier
// pipeline: a keyword and regex classifier that handles simple, unambiguous
// text transactions without a remote model call.
package rules

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/smartwallet/smartwallet/internal/model"
)

// amountPattern matches the first decimal-looking substring, accepting both
// "50.5" and the Brazilian "50,5".
var amountPattern = regexp.MustCompile(`\d+[.,]?\d*`)

// Engine is a pure function of its input plus the fixed keyword tables in
// keywords.go. It holds no state beyond an injectable clock.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a rule engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates a rule engine with an injected clock for tests.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Classify attempts to classify text without a remote call. The second
// return value is false when the engine declines, meaning the input needs
// the slow path: foreign-currency or investment vocabulary, no usable
// amount, or an expense whose category the keyword tables cannot resolve.
func (e *Engine) Classify(text string, allowed []string) (model.Transaction, bool) {
	lower := strings.ToLower(text)

	// Currency conversion and investment-kind nuance are beyond a
	// deterministic engine; always delegate those.
	for _, kw := range declineKeywords {
		if strings.Contains(lower, kw) {
			return model.Transaction{}, false
		}
	}

	amount, ok := extractAmount(text)
	if !ok || amount <= 0 {
		return model.Transaction{}, false
	}

	kind := classifyKind(lower)

	category, matched := CategoryFor(lower)
	if !matched {
		if kind == model.KindExpense {
			// Ambiguous expenses go to the smarter slow path
			// instead of guessing the fallback category.
			return model.Transaction{}, false
		}
		category = model.CategoryOther
	}
	if !categoryAllowed(category, allowed) {
		return model.Transaction{}, false
	}

	return model.Transaction{
		Amount:      amount,
		Category:    category,
		DateTime:    e.now(),
		Description: titleCase(text),
		Kind:        kind,
		Origin:      model.OriginRuleEngine,
	}, true
}

// extractAmount parses the first decimal substring in the text.
func extractAmount(text string) (float64, bool) {
	match := amountPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// classifyKind maps receipt vocabulary to Income and spend vocabulary to
// Expense, defaulting to Expense.
func classifyKind(lower string) model.TransactionKind {
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return model.KindIncome
		}
	}
	return model.KindExpense
}

// CategoryFor returns the first category whose keyword table matches the
// lowercased text. Table order is significant: the first match wins.
func CategoryFor(lower string) (string, bool) {
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category, true
			}
		}
	}
	return "", false
}

// categoryAllowed reports whether the category belongs to the caller's
// closed vocabulary. The reserved fallback category is always allowed.
func categoryAllowed(category string, allowed []string) bool {
	if category == model.CategoryOther {
		return true
	}
	for _, c := range allowed {
		if c == category {
			return true
		}
	}
	return false
}

// titleCase upper-cases the first letter of each word, echoing the input
// verbatim otherwise. The description must stay a literal echo of the
// user's words, never the category name.
func titleCase(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := true
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			prevSpace = true
			b.WriteRune(r)
		case prevSpace:
			b.WriteRune(unicode.ToUpper(r))
			prevSpace = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
