package inference

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/smartwallet/smartwallet/internal/model"
)

// maxHistoryEntries caps the few-shot sample drawn from recent history.
const maxHistoryEntries = 5

// buildPrompt assembles the single structured prompt sent to every model
// in the fallback list: current date/time, currency reference rates, the
// closed category list, and a few-shot sample of the user's recent records.
func buildPrompt(req model.Request, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ACT AS: Financial Assistant. CONTEXT: Brazil (BRL). DATE_TIME: %s.\n",
		now.Format(dateLayout))

	if len(req.Rates) > 0 {
		codes := make([]string, 0, len(req.Rates))
		for code := range req.Rates {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		b.WriteString("RATES: ")
		for i, code := range codes {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%.2f", code, req.Rates[code])
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "TASK: Convert currency if needed. Classify in: [%s].\n",
		strings.Join(req.Categories, ", "))

	if history := recentHistory(req.History); len(history) > 0 {
		b.WriteString("\nRECENT USER RECORDS (match this labeling style):\n")
		for _, entry := range history {
			fmt.Fprintf(&b, "- %q | %s | %s | %.2f\n",
				entry.Description, entry.Category, entry.Kind, entry.Amount)
		}
	}

	if req.Text != "" {
		fmt.Fprintf(&b, "\nUSER INPUT: %q\n", req.Text)
	} else {
		b.WriteString("\nUSER INPUT: the attached audio recording.\n")
	}

	b.WriteString(`
OUTPUT JSON ONLY: {
    "amount": float,
    "category": "str",
    "date": "YYYY-MM-DD HH:MM:SS",
    "description": "str",
    "type": "Income/Expense"
}
The description must paraphrase the user's words, never the category name.
`)

	return b.String()
}

// recentHistory returns the most recent few entries, newest last.
func recentHistory(history []model.HistoryEntry) []model.HistoryEntry {
	if len(history) <= maxHistoryEntries {
		return history
	}
	return history[len(history)-maxHistoryEntries:]
}
