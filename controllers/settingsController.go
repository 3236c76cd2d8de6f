package controllers

import (
	"backoffice-backend/apperrors"
	"backoffice-backend/database"
	"backoffice-backend/models"
	"backoffice-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type BusinessPatch struct {
	BusinessName *string `json:"business_name"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	CurrencyCode *string `json:"currency_code"`
}

func GetBusiness(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var business models.Business
	if err := db.Preload("Owner").First(&business, "id = ?", database.BusinessID(c)).Error; err != nil {
		return apperrors.Persistence(err, "could not load business")
	}
	return c.JSON(business)
}

// UpdateBusiness changes business settings. The route is owner-only and the
// role is re-checked here; a missing authorization check upstream is a hard
// failure, not a pass-through.
func UpdateBusiness(c *fiber.Ctx) error {
	if role, _ := c.Locals("role").(string); role != models.RoleOwner {
		return apperrors.Authorization("only the business owner can change settings")
	}

	var patch BusinessPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	res := db.Model(&models.Business{}).Where("id = ?", database.BusinessID(c)).Updates(updates)
	if res.Error != nil {
		return apperrors.Persistence(res.Error, "could not update business")
	}

	var business models.Business
	db.First(&business, "id = ?", database.BusinessID(c))
	return c.JSON(business)
}
