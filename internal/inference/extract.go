package inference

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/smartwallet/smartwallet/internal/common"
)

var (
	codeFencePattern = regexp.MustCompile("(?i)```json|```")
	jsonSpanPattern  = regexp.MustCompile(`(?s)\{.*\}`)
)

// rawRecord is a model response before canonicalization. Amount is left
// untyped because models return it as a number or a string interchangeably.
type rawRecord struct {
	Amount      any    `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// extractRecord digs a JSON object out of a free-form model response:
// strip code-fence markup, take the first top-level {...} span and parse it
// strictly, and as a last resort parse the whole cleaned response.
func extractRecord(text string) (rawRecord, error) {
	cleaned := strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))
	if cleaned == "" {
		return rawRecord{}, fmt.Errorf("%w: empty response", common.ErrMalformedResponse)
	}

	var record rawRecord
	if span := jsonSpanPattern.FindString(cleaned); span != "" {
		if err := json.Unmarshal([]byte(span), &record); err == nil {
			return record, nil
		}
	}

	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return rawRecord{}, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	return record, nil
}
