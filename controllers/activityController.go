package controllers

import (
	"log"
	"strings"

	"backoffice-backend/database"
	"backoffice-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// recordActivity appends an activity-log row outside any request transaction.
// Best-effort: a persistence failure is logged and swallowed, never surfaced.
func recordActivity(businessID string, employeeID *string, action, details string) {
	entry := models.ActivityLog{
		BusinessID: businessID,
		EmployeeID: employeeID,
		Action:     action,
		Details:    details,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("activity log write failed (action=%s): %v", action, err)
	}
}

// nextSaleNumber generates a human-quotable sale number.
func nextSaleNumber() string {
	return "S-" + strings.ToUpper(uuid.NewString()[:8])
}

// GetActivity lists recent activity for the display collaborator, newest first.
func GetActivity(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var entries []models.ActivityLog
	if err := db.Where("business_id = ?", database.BusinessID(c)).
		Order("created_at DESC").Limit(100).Find(&entries).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load activity")
	}
	return c.JSON(fiber.Map{"activity": entries, "message": "success"})
}
