package controllers

import (
	"errors"
	"time"

	"backoffice-backend/apperrors"
	"backoffice-backend/contracts"
	"backoffice-backend/database"
	"backoffice-backend/middlewares"
	"backoffice-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContractInput struct {
	EmployeeID   string     `json:"employee_id" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	Type         string     `json:"type"`
	StartDate    time.Time  `json:"start_date" validate:"required"`
	EndDate      *time.Time `json:"end_date"`
	Terms        string     `json:"terms"`
	SalaryAmount *float64   `json:"salary_amount" validate:"omitempty,gte=0"`
}

type SignatureInput struct {
	Signature    string `json:"signature" validate:"required"`
	EmployerName string `json:"employer_name"`
}

type TerminateInput struct {
	Reason string `json:"reason" validate:"required"`
}

func loadContract(c *fiber.Ctx, db *gorm.DB) (*models.Contract, error) {
	var contract models.Contract
	err := db.Where("id = ? AND business_id = ?", c.Params("id"), database.BusinessID(c)).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "contract not found")
		}
		return nil, apperrors.Persistence(err, "could not load contract")
	}
	// A contract whose end date has passed is expired before any transition
	// is attempted against it.
	if contracts.ExpireIfDue(&contract, time.Now()) {
		if err := saveContract(db, &contract); err != nil {
			return nil, err
		}
	}
	return &contract, nil
}

func CreateContract(c *fiber.Ctx) error {
	var input ContractInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}
	businessID := database.BusinessID(c)

	var employee models.Employee
	if err := db.Where("id = ? AND business_id = ?", input.EmployeeID, businessID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("employee not found")
		}
		return apperrors.Persistence(err, "could not load employee")
	}

	contract := models.Contract{
		BusinessID:   businessID,
		EmployeeID:   employee.Id,
		Title:        input.Title,
		Type:         input.Type,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Terms:        input.Terms,
		SalaryAmount: input.SalaryAmount,
		Status:       models.ContractDraft,
	}
	if err := db.Create(&contract).Error; err != nil {
		return apperrors.Persistence(err, "could not create contract")
	}
	return c.Status(201).JSON(contract)
}

func GetContracts(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	q := db.Where("business_id = ?", database.BusinessID(c))
	if employeeID := c.Query("employee_id"); employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var list []models.Contract
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return apperrors.Persistence(err, "could not load contracts")
	}
	return c.JSON(fiber.Map{"contracts": list, "message": "success"})
}

func GetContract(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}
	contract, err := loadContract(c, db)
	if err != nil {
		return err
	}
	return c.JSON(contract)
}

// saveContract persists a transitioned snapshot. The write is conditioned on
// the version read with the snapshot, so a contract that changed after the
// read fails with a ConflictError instead of overwriting the later transition.
func saveContract(db *gorm.DB, contract *models.Contract) error {
	res := db.Model(&models.Contract{}).
		Where("id = ? AND version = ?", contract.Id, contract.Version).
		Updates(map[string]any{
			"status":             contract.Status,
			"employee_signature": contract.EmployeeSignature,
			"employee_signed_at": contract.EmployeeSignedAt,
			"employer_signature": contract.EmployerSignature,
			"employer_signed_at": contract.EmployerSignedAt,
			"employer_name":      contract.EmployerName,
			"termination_reason": contract.TerminationReason,
			"terminated_at":      contract.TerminatedAt,
			"version":            contract.Version + 1,
		})
	if res.Error != nil {
		return apperrors.Persistence(res.Error, "could not save contract")
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("contract changed, please retry")
	}
	contract.Version++
	return nil
}

func SignContractAsEmployee(c *fiber.Ctx) error {
	var input SignatureInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}
	contract, err := loadContract(c, db)
	if err != nil {
		return err
	}

	if err := contracts.SignAsEmployee(contract, input.Signature, time.Now()); err != nil {
		return err
	}
	if err := saveContract(db, contract); err != nil {
		return err
	}
	return c.JSON(contract)
}

func SignContractAsEmployer(c *fiber.Ctx) error {
	var input SignatureInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if input.EmployerName == "" {
		return apperrors.Validation("employer name is required")
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}
	contract, err := loadContract(c, db)
	if err != nil {
		return err
	}

	if err := contracts.SignAsEmployer(contract, input.Signature, input.EmployerName, time.Now()); err != nil {
		return err
	}
	if err := saveContract(db, contract); err != nil {
		return err
	}
	return c.JSON(contract)
}

// TerminateContract is owner-only; the route carries RequireOwner, and the
// role is re-checked here so a mis-wired route still fails hard.
func TerminateContract(c *fiber.Ctx) error {
	var input TerminateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}
	contract, err := loadContract(c, db)
	if err != nil {
		return err
	}

	role, _ := c.Locals("role").(string)
	if err := contracts.Terminate(contract, input.Reason, role == models.RoleOwner, time.Now()); err != nil {
		return err
	}
	if err := saveContract(db, contract); err != nil {
		return err
	}
	return c.JSON(contract)
}

// GetContractDocument returns the payload the PDF collaborator renders:
// terms, dates, salary, and both signatures with their timestamps.
func GetContractDocument(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}
	contract, err := loadContract(c, db)
	if err != nil {
		return err
	}

	var employee models.Employee
	db.First(&employee, "id = ?", contract.EmployeeID)

	return c.JSON(fiber.Map{
		"title":              contract.Title,
		"type":               contract.Type,
		"employee_name":      employee.Name,
		"start_date":         contract.StartDate,
		"end_date":           contract.EndDate,
		"terms":              contract.Terms,
		"salary_amount":      contract.SalaryAmount,
		"status":             contract.Status,
		"employee_signature": contract.EmployeeSignature,
		"employee_signed_at": contract.EmployeeSignedAt,
		"employer_signature": contract.EmployerSignature,
		"employer_signed_at": contract.EmployerSignedAt,
		"employer_name":      contract.EmployerName,
		"termination_reason": contract.TerminationReason,
		"terminated_at":      contract.TerminatedAt,
	})
}
