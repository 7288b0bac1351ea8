package scanning

import "errors"

var (
	// ErrUnsupportedFormat is returned when the document cannot be converted for OCR
	ErrUnsupportedFormat = errors.New("document format unsupported")
	// ErrServiceUnavailable is returned when the OCR backend cannot be reached or fails
	ErrServiceUnavailable = errors.New("ocr service unavailable")
)

// LineItem is a single purchased item on a receipt
type LineItem struct {
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
}

// ReceiptData contains best-effort fields extracted from a receipt.
// Empty strings and nil pointers mean the field was not found.
type ReceiptData struct {
	Merchant  string     `json:"merchant,omitempty"`
	Date      string     `json:"date,omitempty"` // ISO 8601 format
	Total     *float64   `json:"total,omitempty"`
	Subtotal  *float64   `json:"subtotal,omitempty"`
	Tax       *float64   `json:"tax,omitempty"`
	Address   string     `json:"address,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Category  string     `json:"category,omitempty"`
	LineItems []LineItem `json:"line_items"`
}

// Scanner defines the interface for receipt scanning operations
type Scanner interface {
	// ScanReceipt analyzes a receipt image/PDF and extracts metadata
	ScanReceipt(imageData []byte, contentType string) (*ReceiptData, error)
	// Close closes the scanner and releases resources
	Close() error
}
