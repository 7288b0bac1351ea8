package mileage

import "math"

// DefaultRate is the reimbursement rate per distance unit
const DefaultRate = 0.67

// Reimbursement is the outcome of a distance claim calculation
type Reimbursement struct {
	TotalDistance        float64 `json:"total_distance"`
	ReimbursableDistance float64 `json:"reimbursable_distance"`
	ReimbursableAmount   float64 `json:"reimbursable_amount"`
}

// ComputeReimbursement doubles distance for round trips, subtracts the
// personal commute and applies rate. Negative inputs are clamped to zero.
func ComputeReimbursement(distance float64, roundTrip bool, personalCommute, rate float64) Reimbursement {
	distance = clamp(distance)
	personalCommute = clamp(personalCommute)
	rate = clamp(rate)

	total := distance
	if roundTrip {
		total *= 2
	}
	reimbursable := math.Max(0, total-personalCommute)

	return Reimbursement{
		TotalDistance:        total,
		ReimbursableDistance: reimbursable,
		ReimbursableAmount:   reimbursable * rate,
	}
}

// Recompute derives the reimbursable fields of e from its calculated
// distance. CalculatedDistance already includes the round trip, so it is
// never doubled again here.
func Recompute(e Entry, rate float64) Entry {
	r := ComputeReimbursement(e.CalculatedDistance, false, e.PersonalCommute, rate)
	e.CalculatedDistance = r.TotalDistance
	e.PersonalCommute = clamp(e.PersonalCommute)
	e.ReimbursableDistance = r.ReimbursableDistance
	e.ReimbursableAmount = r.ReimbursableAmount
	return e
}

func clamp(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
