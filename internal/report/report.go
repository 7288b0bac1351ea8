package report

import (
	"time"

	"github.com/zombor/expense-report/internal/mileage"
)

// Receipt is an immutable snapshot of one user-edited receipt record
type Receipt struct {
	Date        string `json:"date"`
	Merchant    string `json:"merchant"`
	Description string `json:"description"`
	Total       string `json:"total"`
	Category    string `json:"category"`
}

// Request is the sole input to workbook generation
type Request struct {
	EmployeeName   string          `json:"employee_name"`
	WeekEnding     string          `json:"week_ending,omitempty"`
	Receipts       []Receipt       `json:"receipts"`
	MileageEntries []mileage.Entry `json:"mileage_entries"`
}

// Totals reconciles the generated report
type Totals struct {
	ByCategory map[Category]float64
	// Receipts is the sum of every placed receipt amount
	Receipts float64
	// Mileage is the sum of recomputed mileage reimbursements
	Mileage float64
	// GasCell is the value of the GAS totals cell. It holds Mileage instead
	// of the GAS receipts whenever mileage is present.
	GasCell float64
	Grand   float64
}

// Result is a serialized workbook plus what went into it
type Result struct {
	Data     []byte
	Filename string
	Totals   Totals
	Warnings []string
	Placed   []Receipt
}

// Config holds the settings the generator needs from its caller
type Config struct {
	MileageRate float64
	Location    *time.Location
	Timeout     time.Duration
	Now         func() time.Time
}

// DefaultConfig returns a Config with the standard mileage rate, US Eastern
// time and a ten second budget.
func DefaultConfig() Config {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return Config{
		MileageRate: mileage.DefaultRate,
		Location:    loc,
		Timeout:     10 * time.Second,
		Now:         time.Now,
	}
}
