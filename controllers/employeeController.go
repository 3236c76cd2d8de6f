package controllers

import (
	"backoffice-backend/apperrors"
	"backoffice-backend/database"
	"backoffice-backend/middlewares"
	"backoffice-backend/models"
	"backoffice-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type EmployeeInput struct {
	Name                 string  `json:"name" validate:"required"`
	Email                string  `json:"email" validate:"omitempty,email"`
	Phone                string  `json:"phone"`
	CommissionType       string  `json:"commission_type" validate:"required,oneof=percentage fixed"`
	CommissionPercentage float64 `json:"commission_percentage" validate:"gte=0,lte=100"`
	FixedCommission      float64 `json:"fixed_commission" validate:"gte=0"`
}

type EmployeePatch struct {
	Name                 *string  `json:"name"`
	Email                *string  `json:"email"`
	Phone                *string  `json:"phone"`
	CommissionType       *string  `json:"commission_type"`
	CommissionPercentage *float64 `json:"commission_percentage"`
	FixedCommission      *float64 `json:"fixed_commission"`
	Active               *bool    `json:"active"`
}

func CreateEmployee(c *fiber.Ctx) error {
	var input EmployeeInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	employee := models.Employee{
		BusinessID:           database.BusinessID(c),
		Name:                 input.Name,
		Email:                input.Email,
		Phone:                input.Phone,
		CommissionType:       input.CommissionType,
		CommissionPercentage: input.CommissionPercentage,
		FixedCommission:      input.FixedCommission,
		Active:               true,
	}
	if err := db.Create(&employee).Error; err != nil {
		return apperrors.Persistence(err, "could not create employee")
	}
	return c.Status(201).JSON(employee)
}

func GetEmployees(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var employees []models.Employee
	if err := db.Where("business_id = ?", database.BusinessID(c)).Order("name").Find(&employees).Error; err != nil {
		return apperrors.Persistence(err, "could not load employees")
	}
	return c.JSON(fiber.Map{"employees": employees, "message": "success"})
}

func UpdateEmployee(c *fiber.Ctx) error {
	var patch EmployeePatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	if patch.CommissionType != nil &&
		*patch.CommissionType != models.CommissionPercentage && *patch.CommissionType != models.CommissionFixed {
		return apperrors.Validation("commission type must be percentage or fixed")
	}
	if patch.CommissionPercentage != nil && (*patch.CommissionPercentage < 0 || *patch.CommissionPercentage > 100) {
		return apperrors.Validation("commission percentage must be between 0 and 100")
	}
	if patch.FixedCommission != nil && *patch.FixedCommission < 0 {
		return apperrors.Validation("fixed commission must not be negative")
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	res := db.Model(&models.Employee{}).
		Where("id = ? AND business_id = ?", c.Params("id"), database.BusinessID(c)).
		Updates(updates)
	if res.Error != nil {
		return apperrors.Persistence(res.Error, "could not update employee")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "employee not found")
	}

	var employee models.Employee
	db.First(&employee, "id = ?", c.Params("id"))
	return c.JSON(employee)
}
