package controllers

import (
	"backoffice-backend/database"
	"backoffice-backend/middlewares"
	"backoffice-backend/models"
	"backoffice-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ServiceInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price" validate:"gte=0"`
	Active      *bool   `json:"active"`
}

type ServicePatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	BasePrice   *float64 `json:"base_price"`
	Active      *bool    `json:"active"`
}

// CreateServices batch-creates catalog entries for the business.
func CreateServices(c *fiber.Ctx) error {
	var inputs []ServiceInput
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	for i := range inputs {
		utils.NormalizeDTO(&inputs[i])
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}
	businessID := database.BusinessID(c)

	var created []models.Service
	for _, input := range inputs {
		active := true
		if input.Active != nil {
			active = *input.Active
		}
		service := models.Service{
			BusinessID:  businessID,
			Name:        input.Name,
			Description: input.Description,
			BasePrice:   utils.Round2(input.BasePrice),
			Active:      active,
		}
		if err := db.Create(&service).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create service")
		}
		created = append(created, service)
	}

	return c.Status(201).JSON(created)
}

// GetServices lists the business's active services — exactly the set
// {s : s.businessID == caller's business AND s.active}. Pass ?all=true to
// include deactivated entries (owner catalog management).
func GetServices(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}
	businessID := database.BusinessID(c)

	var services []models.Service
	if err := db.Where("business_id = ?", businessID).Order("name").Find(&services).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load services")
	}
	if c.Query("all") != "true" {
		services = models.FilterActive(services, businessID)
	}
	return c.JSON(fiber.Map{"services": services, "message": "success"})
}

// GetServicePrice looks a catalog price up for sale-form auto-population.
// A missing or foreign service yields price null, not an error.
func GetServicePrice(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var services []models.Service
	if err := db.Where("business_id = ?", database.BusinessID(c)).Find(&services).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load services")
	}
	return c.JSON(fiber.Map{"price": models.ServicePrice(services, c.Params("id"))})
}

// UpdateService applies a partial update (price and active flag are the only
// fields past transactions do not snapshot, so edits never rewrite history).
func UpdateService(c *fiber.Ctx) error {
	var patch ServicePatch
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

	res := db.Model(&models.Service{}).
		Where("id = ? AND business_id = ?", c.Params("id"), database.BusinessID(c)).
		Updates(updates)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update service")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "service not found")
	}

	var service models.Service
	db.First(&service, "id = ?", c.Params("id"))
	return c.JSON(service)
}
