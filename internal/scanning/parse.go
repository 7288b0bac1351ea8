package scanning

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// dateLayouts are tried in order when the model ignores the requested format
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
}

// parseReceiptJSON parses the JSON object embedded in a model response
func parseReceiptJSON(text string) (*ReceiptData, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	text = text[startIdx : endIdx+1]

	var data ReceiptData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	// A date we cannot read stays empty so the user can fill it in.
	data.Date = strings.TrimSpace(data.Date)
	if data.Date != "" {
		normalized := ""
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, data.Date); err == nil {
				normalized = d.Format("2006-01-02")
				break
			}
		}
		if normalized == "" {
			slog.Warn("OCR returned an unreadable date", "date", data.Date)
		}
		data.Date = normalized
	}

	data.Merchant = strings.TrimSpace(data.Merchant)
	data.Address = strings.TrimSpace(data.Address)
	data.Phone = strings.TrimSpace(data.Phone)
	data.Category = strings.TrimSpace(data.Category)
	if data.LineItems == nil {
		data.LineItems = []LineItem{}
	}

	return &data, nil
}
