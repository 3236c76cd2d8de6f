package controllers

import (
	"errors"

	"backoffice-backend/apperrors"
	"backoffice-backend/database"
	"backoffice-backend/ledger"
	"backoffice-backend/middlewares"
	"backoffice-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ApplyPaymentInput struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Method string  `json:"method" validate:"required"`
}

// GetDebtors lists sales with an outstanding balance, newest first. The ?q
// filter (customer name, phone, sale number) is applied over the result set
// and never touches ledger state.
func GetDebtors(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	sales, err := ledger.ListOutstanding(db, database.BusinessID(c))
	if err != nil {
		return err
	}

	q := c.Query("q")
	if q != "" {
		filtered := sales[:0]
		for _, s := range sales {
			if ledger.MatchesSearch(s, q) {
				filtered = append(filtered, s)
			}
		}
		sales = filtered
	}

	return c.JSON(fiber.Map{"debtors": sales, "message": "success"})
}

// ApplyPayment applies an incremental payment to a sale. The payment row and
// the sale update commit as one unit inside ledger.ApplyPayment; on success
// the response carries the receipt snapshot for the rendering collaborator.
func ApplyPayment(c *fiber.Ctx) error {
	var input ApplyPaymentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	sale, receipt, err := ledger.ApplyPayment(
		database.DB, database.BusinessID(c), c.Params("id"), input.Amount, input.Method, "")
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"sale":    sale,
		"receipt": receipt,
	})
}

// ListPayments returns a sale's payment history, oldest first.
func ListPayments(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var sale models.Sale
	if err := db.Where("id = ? AND business_id = ?", c.Params("id"), database.BusinessID(c)).First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "sale not found")
		}
		return apperrors.Persistence(err, "could not load sale")
	}

	var payments []models.Payment
	if err := db.Where("sale_id = ?", sale.Id).Order("created_at").Find(&payments).Error; err != nil {
		return apperrors.Persistence(err, "could not load payments")
	}
	return c.JSON(fiber.Map{"sale": sale, "payments": payments})
}

// GetSaleReceipt returns the receipt payload the PDF collaborator renders:
// sale number, items, totals, discount and payment method.
func GetSaleReceipt(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var sale models.Sale
	if err := db.Preload("Items").
		Where("id = ? AND business_id = ?", c.Params("id"), database.BusinessID(c)).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "sale not found")
		}
		return apperrors.Persistence(err, "could not load sale")
	}

	return c.JSON(fiber.Map{
		"sale_number":     sale.SaleNumber,
		"customer_name":   sale.CustomerName,
		"items":           sale.Items,
		"total_amount":    sale.TotalAmount,
		"discount_amount": sale.DiscountAmount,
		"amount_paid":     sale.AmountPaid,
		"balance_due":     sale.BalanceDue,
		"payment_status":  sale.PaymentStatus,
		"payment_method":  sale.PaymentMethod,
		"created_at":      sale.CreatedAt,
	})
}
