package loan

import (
	"errors"
	"math"
)

// Package-level sentinel errors for invalid loan parameters.
var (
	ErrInvalidPrincipal = errors.New("principal must be a positive amount")
	ErrInvalidRate      = errors.New("annual rate must be a non-negative percentage")
	ErrInvalidMonths    = errors.New("number of payments must be positive")
	ErrInvalidPayment   = errors.New("payment must be a positive amount")
	// ErrPaymentTooLow means the fixed payment does not cover the first
	// month's interest, so the balance never decreases.
	ErrPaymentTooLow = errors.New("payment does not cover the monthly interest")
)

// Installment is one row of an amortization schedule. Amounts are in the
// loan's currency; Balance is the remaining principal after the payment.
type Installment struct {
	Month         int     `json:"month"`
	Payment       float64 `json:"payment"`
	PrincipalPaid float64 `json:"principal_paid"`
	InterestPaid  float64 `json:"interest_paid"`
	Balance       float64 `json:"balance"`
}

// monthlyRate converts an annual percentage rate (e.g. 8.5 for 8.5%)
// into a monthly decimal rate.
func monthlyRate(annualRate float64) float64 {
	return annualRate / 100 / 12
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Payment computes the fixed monthly installment (EMI) for a loan of the
// given principal, annual percentage rate, and number of monthly payments:
//
//	E = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degenerates to an even split of the principal.
func Payment(principal, annualRate float64, months int) (float64, error) {
	if !validAmount(principal) {
		return 0, ErrInvalidPrincipal
	}
	if annualRate < 0 || math.IsInf(annualRate, 0) || math.IsNaN(annualRate) {
		return 0, ErrInvalidRate
	}
	if months <= 0 {
		return 0, ErrInvalidMonths
	}

	r := monthlyRate(annualRate)
	if r == 0 {
		return principal / float64(months), nil
	}

	growth := math.Pow(1+r, float64(months))
	return principal * r * growth / (growth - 1), nil
}

// Months computes how many monthly payments of the given fixed amount are
// needed to repay the loan:
//
//	n = log(E / (E - P*r)) / log(1+r)
//
// The result is fractional; the final payment is smaller than the rest.
// Returns ErrPaymentTooLow when the payment does not exceed the monthly
// interest on the full principal.
func Months(principal, annualRate, payment float64) (float64, error) {
	if !validAmount(principal) {
		return 0, ErrInvalidPrincipal
	}
	if annualRate < 0 || math.IsInf(annualRate, 0) || math.IsNaN(annualRate) {
		return 0, ErrInvalidRate
	}
	if !validAmount(payment) {
		return 0, ErrInvalidPayment
	}

	r := monthlyRate(annualRate)
	if r == 0 {
		return principal / payment, nil
	}
	if payment <= principal*r {
		return 0, ErrPaymentTooLow
	}

	return math.Log(payment/(payment-principal*r)) / math.Log(1+r), nil
}

// BuildSchedule produces the month-by-month amortization of a loan repaid
// with the given fixed payment over the given (possibly fractional) number
// of months, along with the total interest paid.
//
// The schedule always ends with a zero balance: a residual balance of at
// most 0.01 is treated as paid off to absorb float rounding, mirroring how
// lenders fold sub-cent residue into the final installment.
func BuildSchedule(principal, annualRate, payment, months float64) ([]Installment, float64, error) {
	if !validAmount(principal) {
		return nil, 0, ErrInvalidPrincipal
	}
	if annualRate < 0 || math.IsInf(annualRate, 0) || math.IsNaN(annualRate) {
		return nil, 0, ErrInvalidRate
	}
	if !validAmount(payment) {
		return nil, 0, ErrInvalidPayment
	}
	if months <= 0 || math.IsInf(months, 0) || math.IsNaN(months) {
		return nil, 0, ErrInvalidMonths
	}

	r := monthlyRate(annualRate)
	balance := principal
	totalInterest := 0.0
	n := int(math.Ceil(months))

	schedule := make([]Installment, 0, n)
	for month := 1; month <= n; month++ {
		interest := balance * r
		principalPaid := math.Min(payment-interest, balance)
		if principalPaid < 0 {
			// Final short payment where interest exceeds the remainder.
			principalPaid = payment
		}

		balance -= principalPaid
		if balance <= 0.01 {
			balance = 0
		}

		schedule = append(schedule, Installment{
			Month:         month,
			Payment:       payment,
			PrincipalPaid: principalPaid,
			InterestPaid:  interest,
			Balance:       math.Max(balance, 0),
		})
		totalInterest += interest

		if balance == 0 {
			break
		}
	}

	return schedule, totalInterest, nil
}
