// Package commission computes the commission/house split for a recorded sale.
// All functions are pure; rounding follows utils.Round2 so stored amounts line
// up with the NUMERIC(12,2) columns.
package commission

import (
	"backoffice-backend/models"
	"backoffice-backend/utils"
)

// Policy is the employee-level commission configuration. Exactly one of
// Percentage/Fixed is active depending on Type; the other is ignored.
type Policy struct {
	Type       string
	Percentage float64
	Fixed      float64
}

// Split is the outcome of applying a policy to a sale amount.
// Commission + HouseAmount == the sale amount (within a cent).
type Split struct {
	Commission  float64 `json:"commission"`
	HouseAmount float64 `json:"house_amount"`
}

// HouseNegative reports a fixed commission exceeding the sale amount.
// The split is still valid; callers decide whether to surface a warning.
func (s Split) HouseNegative() bool {
	return s.HouseAmount < 0
}

// PolicyFromEmployee lifts the stored policy fields off an employee row.
func PolicyFromEmployee(e models.Employee) Policy {
	return Policy{
		Type:       e.CommissionType,
		Percentage: e.CommissionPercentage,
		Fixed:      e.FixedCommission,
	}
}

// Calculate splits saleAmount according to the policy.
// percentage: commission = saleAmount * percentage / 100.
// fixed: commission = fixed regardless of saleAmount; a fixed commission
// above the sale amount yields a negative house amount and is not clamped.
// Any unrecognized type falls back to a zero commission.
func Calculate(saleAmount float64, policy Policy) Split {
	var c float64
	switch policy.Type {
	case models.CommissionPercentage:
		c = saleAmount * policy.Percentage / 100
	case models.CommissionFixed:
		c = policy.Fixed
	}
	c = utils.Round2(c)
	return Split{
		Commission:  c,
		HouseAmount: utils.Round2(saleAmount - c),
	}
}
