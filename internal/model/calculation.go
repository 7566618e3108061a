package model

import "time"

// Mode selects which quantity a calculation solves for.
type Mode string

const (
	// ModeEMI solves for the fixed monthly installment given a tenure.
	ModeEMI Mode = "emi"
	// ModeTenure solves for the repayment period given a fixed installment.
	ModeTenure Mode = "tenure"
)

// Valid reports whether the mode is one of the supported calculation types.
func (m Mode) Valid() bool {
	return m == ModeEMI || m == ModeTenure
}

// Calculation is a completed loan calculation as recorded in history.
// This is a pure domain model with no database-specific dependencies or tags.
// The amortization schedule is derived data and is recomputed from these
// fields on demand rather than stored.
type Calculation struct {
	ID            string    `json:"id"`
	Mode          Mode      `json:"mode"`
	Principal     float64   `json:"principal"`
	AnnualRate    float64   `json:"annual_rate"`
	Months        float64   `json:"months"`
	EMI           float64   `json:"emi"`
	TotalInterest float64   `json:"total_interest"`
	CreatedAt     time.Time `json:"created_at"`
}
