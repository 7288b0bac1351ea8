package mileage

import "time"

// Entry is a single business-travel distance claim
type Entry struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	StartAddress    string `json:"start_address"`
	EndAddress      string `json:"end_address"`
	BusinessPurpose string `json:"business_purpose"`
	RoundTrip       bool   `json:"round_trip"`
	// PersonalCommute is deducted from CalculatedDistance, same unit
	PersonalCommute float64 `json:"personal_commute"`
	// CalculatedDistance comes from the distance provider and is already
	// doubled for round trips
	CalculatedDistance   float64   `json:"calculated_distance"`
	ReimbursableDistance float64   `json:"reimbursable_distance"`
	ReimbursableAmount   float64   `json:"reimbursable_amount"`
	CreatedAt            time.Time `json:"created_at"`
}

// Repository stores mileage entries on behalf of the caller
type Repository interface {
	SaveMileage(entry *Entry) error
	GetMileage(id string) (*Entry, error)
	ListMileage() ([]*Entry, error)
	DeleteMileage(id string) error
}
