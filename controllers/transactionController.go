package controllers

import (
	"errors"
	"fmt"
	"log"

	"backoffice-backend/apperrors"
	"backoffice-backend/commission"
	"backoffice-backend/database"
	"backoffice-backend/middlewares"
	"backoffice-backend/models"
	"backoffice-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RecordSaleInput struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	ServiceID  string  `json:"service_id" validate:"required"`
	SaleAmount float64 `json:"sale_amount" validate:"gt=0"`

	// Optional ledger fields: a sale paid below its total becomes a debtor.
	CustomerID     *string `json:"customer_id"`
	CustomerName   string  `json:"customer_name"`
	CustomerPhone  string  `json:"customer_phone"`
	AmountPaid     float64 `json:"amount_paid" validate:"gte=0"`
	PaymentMethod  string  `json:"payment_method"`
	DiscountAmount float64 `json:"discount_amount" validate:"gte=0"`
	Quantity       int     `json:"quantity"`
}

// RecordSale validates the sale, splits it through the commission calculator,
// and persists the Transaction plus the ledger Sale in one unit. The
// sale_recorded activity entry is written only after the unit committed and
// is best-effort: its failure never unwinds the sale.
func RecordSale(c *fiber.Ctx) error {
	var input RecordSaleInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)
	if input.AmountPaid > input.SaleAmount {
		return apperrors.Validation("amount paid cannot exceed the sale amount")
	}

	businessID := database.BusinessID(c)

	var employee models.Employee
	if err := database.DB.Where("id = ? AND business_id = ?", input.EmployeeID, businessID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("employee not found")
		}
		return apperrors.Persistence(err, "could not load employee")
	}

	var service models.Service
	if err := database.DB.Where("id = ? AND business_id = ?", input.ServiceID, businessID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("no service selected or service not found")
		}
		return apperrors.Persistence(err, "could not load service")
	}
	if !service.Active {
		return apperrors.Validation("service %q is not active", service.Name)
	}

	split := commission.Calculate(input.SaleAmount, commission.PolicyFromEmployee(employee))
	if split.HouseNegative() {
		// Fixed commission above the sale amount is permitted; flag it for review.
		log.Printf("sale for employee %s: fixed commission %.2f exceeds sale amount %.2f",
			employee.Id, split.Commission, input.SaleAmount)
	}

	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	amountPaid := utils.Round2(input.AmountPaid)
	balance := utils.Round2(input.SaleAmount - amountPaid)
	status := models.PaymentPartial
	if balance <= utils.CentTolerance {
		balance = 0
		status = models.PaymentCompleted
	}

	transaction := models.Transaction{
		BusinessID:       businessID,
		EmployeeID:       employee.Id,
		ServiceID:        service.Id,
		TotalAmount:      input.SaleAmount,
		CommissionAmount: split.Commission,
		HouseAmount:      split.HouseAmount,
		IsCommissionPaid: false,
	}
	sale := models.Sale{
		BusinessID:     businessID,
		SaleNumber:     nextSaleNumber(),
		CustomerID:     input.CustomerID,
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		TotalAmount:    input.SaleAmount,
		DiscountAmount: utils.Round2(input.DiscountAmount),
		AmountPaid:     amountPaid,
		BalanceDue:     balance,
		PaymentStatus:  status,
		PaymentMethod:  input.PaymentMethod,
		Version:        1,
		Items: []models.SaleItem{{
			ServiceID:   service.Id,
			Description: service.Name,
			Quantity:    quantity,
			UnitPrice:   utils.Round2(input.SaleAmount / float64(quantity)),
			Discount:    utils.Round2(input.DiscountAmount),
			Total:       input.SaleAmount,
		}},
	}

	tx := database.DB.Begin()
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		return apperrors.Persistence(err, "could not record sale")
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return apperrors.Persistence(err, "could not record sale")
	}
	if amountPaid > 0 {
		payment := models.Payment{
			SaleID: sale.Id,
			Amount: amountPaid,
			Method: input.PaymentMethod,
			Status: "successful",
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			return apperrors.Persistence(err, "could not record sale")
		}
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.Persistence(err, "could not record sale")
	}

	// Only after the commit: the activity entry must never exist for a sale
	// that does not.
	recordActivity(businessID, &employee.Id, models.ActionSaleRecorded,
		fmt.Sprintf("Sale of %.2f recorded for %s", input.SaleAmount, service.Name))

	return c.Status(201).JSON(fiber.Map{
		"transaction": transaction,
		"sale":        sale,
	})
}

// GetTransactions lists the business's commission records, newest first.
func GetTransactions(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	q := db.Where("business_id = ?", database.BusinessID(c))
	if employeeID := c.Query("employee_id"); employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var transactions []models.Transaction
	if err := q.Order("created_at DESC").Find(&transactions).Error; err != nil {
		return apperrors.Persistence(err, "could not load transactions")
	}
	return c.JSON(fiber.Map{"transactions": transactions, "message": "success"})
}

// MarkCommissionPaid is the payroll action; is_commission_paid is the only
// field a transaction permits changing after creation.
func MarkCommissionPaid(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	res := db.Model(&models.Transaction{}).
		Where("id = ? AND business_id = ?", c.Params("id"), database.BusinessID(c)).
		Update("is_commission_paid", true)
	if res.Error != nil {
		return apperrors.Persistence(res.Error, "could not update transaction")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	return c.JSON(fiber.Map{"message": "commission marked paid"})
}
