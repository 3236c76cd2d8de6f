package ledger

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"backoffice-backend/apperrors"
	"backoffice-backend/models"
)

// ApplyPayment loads the sale, re-validates the payment against the latest
// persisted figures, and commits the Payment append plus the Sale update as
// one unit. The Sale update is conditioned on the version read here; if a
// concurrent payment won the race the whole unit rolls back with a
// ConflictError and nothing is committed.
func ApplyPayment(db *gorm.DB, businessID, saleID string, amount float64, method, reference string) (models.Sale, Receipt, error) {
	var sale models.Sale
	if err := db.Where("id = ? AND business_id = ?", saleID, businessID).First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Sale{}, Receipt{}, apperrors.Validation("sale not found")
		}
		return models.Sale{}, Receipt{}, apperrors.Persistence(err, "could not load sale")
	}

	return ApplyPaymentToSale(db, sale, amount, method, reference)
}

// ApplyPaymentToSale runs the atomic unit against an already-read sale
// snapshot. The write is conditioned on the snapshot's version, so a snapshot
// that has gone stale fails with a ConflictError instead of silently
// overwriting a concurrent payment.
func ApplyPaymentToSale(db *gorm.DB, sale models.Sale, amount float64, method, reference string) (models.Sale, Receipt, error) {
	app, err := Apply(sale, amount, method, time.Now())
	if err != nil {
		return models.Sale{}, Receipt{}, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		payment := models.Payment{
			SaleID:    sale.Id,
			Amount:    app.Receipt.PaymentAmount,
			Method:    method,
			Status:    "successful",
			Reference: reference,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return apperrors.Persistence(err, "could not record payment")
		}

		res := tx.Model(&models.Sale{}).
			Where("id = ? AND version = ?", sale.Id, sale.Version).
			Updates(map[string]any{
				"amount_paid":    app.AmountPaid,
				"balance_due":    app.BalanceDue,
				"payment_status": app.PaymentStatus,
				"version":        sale.Version + 1,
			})
		if res.Error != nil {
			return apperrors.Persistence(res.Error, "could not update sale")
		}
		if res.RowsAffected == 0 {
			// Someone else applied a payment after our read; abort the unit.
			return apperrors.Conflict("sale balance changed, please retry")
		}
		return nil
	})
	if err != nil {
		return models.Sale{}, Receipt{}, err
	}

	sale.AmountPaid = app.AmountPaid
	sale.BalanceDue = app.BalanceDue
	sale.PaymentStatus = app.PaymentStatus
	sale.Version++
	return sale, app.Receipt, nil
}

// ListOutstanding returns the business's debtors: every sale with a balance
// still due, newest first.
func ListOutstanding(db *gorm.DB, businessID string) ([]models.Sale, error) {
	var sales []models.Sale
	err := db.Preload("Items").
		Where("business_id = ? AND balance_due > 0", businessID).
		Order("created_at DESC").
		Find(&sales).Error
	if err != nil {
		return nil, apperrors.Persistence(err, "could not load debtors")
	}
	return sales, nil
}
