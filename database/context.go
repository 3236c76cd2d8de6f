package database

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequestDB returns the *gorm.DB bound to the current request: the per-request
// transaction installed by middlewares.RequestTx when present, else the shared
// connection. Handlers that must write after the request TX committed
// (best-effort side effects) use database.DB directly instead.
func RequestDB(c *fiber.Ctx) (*gorm.DB, error) {
	if v := c.Locals("tx"); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx, nil
		}
	}
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	return DB, nil
}

// BusinessID pulls the authenticated business scope off the request.
func BusinessID(c *fiber.Ctx) string {
	id, _ := c.Locals("businessID").(string)
	return id
}
