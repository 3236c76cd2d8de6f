package middlewares

import (
	"log"

	"backoffice-backend/database"

	"github.com/gofiber/fiber/v2"
)

// RequestTx opens a per-request DB transaction. Order: run AFTER
// IsAuthenticatedHeader() (so businessID/userID are present), and AFTER
// Idempotency() (so idempotency records aren't tied to the handler TX).
// Handlers reach the TX via database.RequestDB(c); it commits when the
// handler chain succeeds and rolls back on error or panic, so a cancelled or
// failed request leaves no partial ledger state.
func RequestTx() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		if businessID := database.BusinessID(c); businessID == "" {
			// Public endpoints (e.g., /login) have no business scope; just proceed.
			return c.Next()
		}

		// Begin TX on the shared DB connection.
		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to begin transaction")
		}

		// Ensure we always cleanup.
		defer func() {
			if r := recover(); r != nil {
				_ = tx.Rollback()
				panic(r) // re-panic after rollback so Fiber's handler can catch
			}
			if err != nil {
				_ = tx.Rollback()
				return
			}
			if e := tx.Commit().Error; e != nil {
				log.Printf("tx commit failed: %v", e)
				err = fiber.NewError(fiber.StatusInternalServerError, "transaction commit failed")
			}
		}()

		// Make the TX available to handlers via database.RequestDB(c).
		c.Locals("tx", tx)

		// Run the handler chain inside this TX.
		err = c.Next()
		return err
	}
}
