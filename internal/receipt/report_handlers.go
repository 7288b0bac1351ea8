package receipt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/zombor/expense-report/internal/mileage"
	"github.com/zombor/expense-report/internal/report"
)

// reportRequest accepts inline records, stored record IDs, or both.
// Inline records come first in the generated report.
type reportRequest struct {
	EmployeeName   string           `json:"employee_name"`
	WeekEnding     string           `json:"week_ending"`
	Receipts       []report.Receipt `json:"receipts"`
	ReceiptIDs     []string         `json:"receipt_ids"`
	MileageEntries []mileage.Entry  `json:"mileage_entries"`
	MileageIDs     []string         `json:"mileage_ids"`
}

// resolve loads referenced records and builds the generator input
func (s *Server) resolve(req reportRequest) (report.Request, error) {
	out := report.Request{
		EmployeeName:   req.EmployeeName,
		WeekEnding:     req.WeekEnding,
		Receipts:       append([]report.Receipt{}, req.Receipts...),
		MileageEntries: append([]mileage.Entry{}, req.MileageEntries...),
	}

	stored, err := s.service.ReportReceipts(req.ReceiptIDs)
	if err != nil {
		return report.Request{}, err
	}
	out.Receipts = append(out.Receipts, stored...)

	for _, id := range req.MileageIDs {
		entry, err := s.mileage.Get(id)
		if err != nil {
			return report.Request{}, fmt.Errorf("getting mileage entry %s: %w", id, err)
		}
		out.MileageEntries = append(out.MileageEntries, *entry)
	}
	return out, nil
}

// handleGenerateReport renders an expense report workbook and streams it back
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	genReq, err := s.resolve(req)
	if err != nil {
		slog.Error("Error loading report records", "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	result, err := s.generator.Generate(r.Context(), genReq)
	if err != nil {
		slog.Error("Error generating report", "kind", report.KindOf(err), "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	slog.Info("Generated expense report",
		"filename", result.Filename,
		"receipts", len(result.Placed),
		"mileage_entries", len(genReq.MileageEntries),
		"grand_total", result.Totals.Grand,
		"warnings", len(result.Warnings),
		"size", humanize.Bytes(uint64(len(result.Data))),
	)
	for _, warning := range result.Warnings {
		slog.Warn("Report warning", "filename", result.Filename, "warning", warning)
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("X-Report-Warnings", strconv.Itoa(len(result.Warnings)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		slog.Error("Error writing report", "error", err)
	}
}
