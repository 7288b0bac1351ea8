package receipt

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/zombor/expense-report/internal/report"
	"github.com/zombor/expense-report/internal/scanning"
)

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles receipt operations
type Service struct {
	db          DB
	scanner     scanning.Scanner
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, scanner scanning.Scanner, storage Storage) *Service {
	return NewServiceWithDeps(db, scanner, storage, &defaultIDGenerator{}, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, scanner scanning.Scanner, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		scanner:     scanner,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ProcessReceipt stores the upload, runs OCR on it and saves the extracted
// record. The stored document is removed again if anything after the upload
// fails.
func (s *Service) ProcessReceipt(filename string, data []byte, contentType string) (receipt *Receipt, err error) {
	key, err := s.storage.Put(filename, data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if delErr := s.storage.Delete(key); delErr != nil {
			slog.Warn("Failed to clean up stored file", "key", key, "error", delErr)
		}
	}()

	extracted, err := s.scanner.ScanReceipt(data, contentType)
	if err != nil {
		slog.Error("Failed to scan receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", humanize.Bytes(uint64(len(data))),
			"error", err,
		)
		return nil, fmt.Errorf("scanning receipt: %w", err)
	}

	now := s.timeSource.Now()
	receipt = &Receipt{
		ID:          s.idGenerator.Generate(),
		Merchant:    extracted.Merchant,
		Date:        extracted.Date,
		Category:    extracted.Category,
		Extracted:   extracted,
		Filename:    key,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if extracted.Total != nil {
		receipt.Total = strconv.FormatFloat(*extracted.Total, 'f', 2, 64)
	}

	if err := s.db.SaveReceipt(receipt); err != nil {
		return nil, fmt.Errorf("saving receipt to database: %w", err)
	}

	slog.Info("Processed receipt",
		"id", receipt.ID,
		"merchant", receipt.Merchant,
		"file_size", humanize.Bytes(uint64(len(data))),
	)
	return receipt, nil
}

// GetReceipt retrieves a receipt by ID
func (s *Service) GetReceipt(id string) (*Receipt, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	return receipt, nil
}

// ListReceipts returns all receipts
func (s *Service) ListReceipts() ([]*Receipt, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return receipts, nil
}

// UpdateReceipt applies user corrections to a receipt
func (s *Service) UpdateReceipt(id string, update Update) (*Receipt, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt for update: %w", err)
	}

	for _, f := range []struct {
		src *string
		dst *string
	}{
		{update.Merchant, &receipt.Merchant},
		{update.Date, &receipt.Date},
		{update.Total, &receipt.Total},
		{update.Category, &receipt.Category},
		{update.Description, &receipt.Description},
	} {
		if f.src != nil {
			*f.dst = strings.TrimSpace(*f.src)
		}
	}
	receipt.UpdatedAt = s.timeSource.Now()

	if err := s.db.SaveReceipt(receipt); err != nil {
		return nil, fmt.Errorf("updating receipt: %w", err)
	}
	return receipt, nil
}

// DeleteReceipt removes a receipt and its file
func (s *Service) DeleteReceipt(id string) error {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return fmt.Errorf("getting receipt for deletion: %w", err)
	}

	if err := s.storage.Delete(receipt.Filename); err != nil {
		// Log error but continue with database deletion
		slog.Warn("Failed to delete file", "filename", receipt.Filename, "error", err)
	}

	if err := s.db.DeleteReceipt(id); err != nil {
		return fmt.Errorf("deleting receipt from database: %w", err)
	}
	return nil
}

// GetReceiptFile retrieves the file data for a receipt
func (s *Service) GetReceiptFile(id string) ([]byte, string, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt: %w", err)
	}

	data, err := s.storage.Get(receipt.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt file: %w", err)
	}

	return data, receipt.ContentType, nil
}

// ReportReceipts snapshots the stored receipts with the given IDs, in order
func (s *Service) ReportReceipts(ids []string) ([]report.Receipt, error) {
	out := make([]report.Receipt, 0, len(ids))
	for _, id := range ids {
		receipt, err := s.db.GetReceipt(id)
		if err != nil {
			return nil, fmt.Errorf("getting receipt %s: %w", id, err)
		}
		out = append(out, receipt.ReportReceipt())
	}
	return out, nil
}
