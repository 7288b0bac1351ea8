package mileage

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CalculateRequest describes a trip to be priced
type CalculateRequest struct {
	StartAddress    string  `json:"start_address"`
	EndAddress      string  `json:"end_address"`
	RoundTrip       bool    `json:"round_trip"`
	PersonalCommute float64 `json:"personal_commute"`
}

// Service prices and stores mileage entries
type Service struct {
	repo     Repository
	provider DistanceProvider
	rate     float64
	now      func() time.Time
}

// NewService creates a new Service. A nil provider disables Calculate.
func NewService(repo Repository, provider DistanceProvider, rate float64) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		rate:     rate,
		now:      time.Now,
	}
}

// Rate returns the configured reimbursement rate
func (s *Service) Rate() float64 {
	return s.rate
}

// Calculate asks the distance provider for the trip distance and prices it.
// The returned entry is not stored.
func (s *Service) Calculate(ctx context.Context, req CalculateRequest) (*Entry, *Route, error) {
	if s.provider == nil {
		return nil, nil, ErrNoProvider
	}

	route, err := s.provider.Distance(ctx, req.StartAddress, req.EndAddress, UnitsImperial)
	if err != nil {
		return nil, nil, fmt.Errorf("calculating distance: %w", err)
	}

	r := ComputeReimbursement(route.Distance, req.RoundTrip, req.PersonalCommute, s.rate)
	entry := &Entry{
		StartAddress:         strings.TrimSpace(req.StartAddress),
		EndAddress:           strings.TrimSpace(req.EndAddress),
		RoundTrip:            req.RoundTrip,
		PersonalCommute:      clamp(req.PersonalCommute),
		CalculatedDistance:   r.TotalDistance,
		ReimbursableDistance: r.ReimbursableDistance,
		ReimbursableAmount:   r.ReimbursableAmount,
	}
	return entry, route, nil
}

// Save stores entry after recomputing its reimbursable fields. Client
// supplied totals are never trusted.
func (s *Service) Save(entry Entry) (*Entry, error) {
	recomputed := Recompute(entry, s.rate)
	if entry.ReimbursableAmount != 0 && math.Abs(recomputed.ReimbursableAmount-entry.ReimbursableAmount) >= 0.005 {
		slog.Warn("Replacing stale mileage amount",
			"supplied", entry.ReimbursableAmount,
			"recomputed", recomputed.ReimbursableAmount,
		)
	}

	recomputed.ID = uuid.NewString()
	recomputed.CreatedAt = s.now()

	if err := s.repo.SaveMileage(&recomputed); err != nil {
		return nil, fmt.Errorf("saving mileage entry: %w", err)
	}
	return &recomputed, nil
}

// Get retrieves a mileage entry by ID
func (s *Service) Get(id string) (*Entry, error) {
	entry, err := s.repo.GetMileage(id)
	if err != nil {
		return nil, fmt.Errorf("getting mileage entry: %w", err)
	}
	return entry, nil
}

// List returns all stored mileage entries
func (s *Service) List() ([]*Entry, error) {
	entries, err := s.repo.ListMileage()
	if err != nil {
		return nil, fmt.Errorf("listing mileage entries: %w", err)
	}
	return entries, nil
}

// Delete removes a mileage entry
func (s *Service) Delete(id string) error {
	if err := s.repo.DeleteMileage(id); err != nil {
		return fmt.Errorf("deleting mileage entry: %w", err)
	}
	return nil
}
