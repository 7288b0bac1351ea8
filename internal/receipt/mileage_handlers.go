package receipt

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zombor/expense-report/internal/mileage"
)

// handleCalculateMileage prices a trip without storing it
func (s *Server) handleCalculateMileage(w http.ResponseWriter, r *http.Request) {
	var req mileage.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.StartAddress == "" || req.EndAddress == "" {
		jsonError(w, "Start and end addresses are required", http.StatusBadRequest)
		return
	}

	entry, route, err := s.mileage.Calculate(r.Context(), req)
	if err != nil {
		slog.Error("Error calculating mileage", "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entry":    entry,
		"distance": route.UnitLabel,
		"duration": route.DurationLabel,
		"rate":     s.mileage.Rate(),
	})
}

// handleCreateMileage stores a mileage entry
func (s *Server) handleCreateMileage(w http.ResponseWriter, r *http.Request) {
	var entry mileage.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := s.mileage.Save(entry)
	if err != nil {
		slog.Error("Error saving mileage entry", "error", err)
		jsonError(w, "Error saving mileage entry", statusFor(err))
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

// handleListMileage returns all stored mileage entries
func (s *Server) handleListMileage(w http.ResponseWriter, r *http.Request) {
	entries, err := s.mileage.List()
	if err != nil {
		slog.Error("Error listing mileage entries", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []*mileage.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleDeleteMileage deletes a mileage entry
func (s *Server) handleDeleteMileage(w http.ResponseWriter, r *http.Request) {
	if err := s.mileage.Delete(r.PathValue("id")); err != nil {
		if statusFor(err) == http.StatusNotFound {
			corsError(w, "Mileage entry not found", http.StatusNotFound)
			return
		}
		corsError(w, "Error deleting mileage entry", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
