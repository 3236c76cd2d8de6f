// Package ledger applies incremental payments against sales and keeps the
// amount-paid/balance/status triple consistent. Apply is the pure core; the
// store wraps it in the atomic Payment-append + Sale-update unit.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"backoffice-backend/apperrors"
	"backoffice-backend/models"
	"backoffice-backend/utils"
)

// Receipt is the snapshot emitted after a successful payment application.
// It is a value object for the rendering collaborator, not a database row.
type Receipt struct {
	ReceiptNumber    string    `json:"receipt_number"`
	SaleID           string    `json:"sale_id"`
	SaleNumber       string    `json:"sale_number"`
	PreviouslyPaid   float64   `json:"previously_paid"`
	PaymentAmount    float64   `json:"payment_amount"`
	TotalPaid        float64   `json:"total_paid"`
	BalanceRemaining float64   `json:"balance_remaining"`
	PaymentMethod    string    `json:"payment_method"`
	IssuedAt         time.Time `json:"issued_at"`
}

// Application is the computed outcome of applying one payment: the new sale
// figures plus the receipt snapshot. Nothing is persisted here.
type Application struct {
	AmountPaid    float64
	BalanceDue    float64
	PaymentStatus string
	Receipt       Receipt
}

// Apply validates a payment against the sale's current figures and computes
// the resulting state. Preconditions: amount > 0 and amount <= balance due.
// A violated precondition returns a ValidationError and the sale is untouched.
func Apply(sale models.Sale, amount float64, method string, now time.Time) (Application, error) {
	amount = utils.Round2(amount)
	if amount <= 0 {
		return Application{}, apperrors.Validation("payment amount must be greater than zero")
	}
	if amount > sale.BalanceDue+utils.CentTolerance {
		return Application{}, apperrors.Validation(
			"payment of %.2f exceeds outstanding balance of %.2f", amount, sale.BalanceDue)
	}

	newPaid := utils.Round2(sale.AmountPaid + amount)
	newBalance := utils.Round2(sale.TotalAmount - newPaid)
	if newBalance < 0 {
		newBalance = 0
	}
	status := models.PaymentPartial
	if newBalance <= utils.CentTolerance {
		newBalance = 0
		status = models.PaymentCompleted
	}

	return Application{
		AmountPaid:    newPaid,
		BalanceDue:    newBalance,
		PaymentStatus: status,
		Receipt: Receipt{
			ReceiptNumber:    "RCP-" + uuid.NewString(),
			SaleID:           sale.Id,
			SaleNumber:       sale.SaleNumber,
			PreviouslyPaid:   sale.AmountPaid,
			PaymentAmount:    amount,
			TotalPaid:        newPaid,
			BalanceRemaining: newBalance,
			PaymentMethod:    method,
			IssuedAt:         now,
		},
	}, nil
}

// MatchesSearch is the client-side debtor filter: case-insensitive match on
// customer name, phone, or sale number. It never touches ledger state.
func MatchesSearch(sale models.Sale, q string) bool {
	if q == "" {
		return true
	}
	return utils.ContainsFold(sale.CustomerName, q) ||
		utils.ContainsFold(sale.CustomerPhone, q) ||
		utils.ContainsFold(sale.SaleNumber, q)
}
