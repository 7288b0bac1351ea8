package receipt

import (
	"time"

	"github.com/zombor/expense-report/internal/report"
	"github.com/zombor/expense-report/internal/scanning"
)

// Receipt is an uploaded receipt with its OCR result and the user's corrections
type Receipt struct {
	ID          string `json:"id"`
	Merchant    string `json:"merchant"`
	Date        string `json:"date"`
	Total       string `json:"total"`
	Category    string `json:"category"`
	Description string `json:"description"`
	// Extracted is the raw OCR result, kept for reference after edits
	Extracted   *scanning.ReceiptData `json:"extracted,omitempty"`
	Filename    string                `json:"filename"`
	ContentType string                `json:"content_type"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// Update holds user corrections. Nil fields are left unchanged.
type Update struct {
	Merchant    *string `json:"merchant"`
	Date        *string `json:"date"`
	Total       *string `json:"total"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

// ReportReceipt snapshots r for report generation
func (r *Receipt) ReportReceipt() report.Receipt {
	return report.Receipt{
		Date:        r.Date,
		Merchant:    r.Merchant,
		Description: r.Description,
		Total:       r.Total,
		Category:    r.Category,
	}
}
