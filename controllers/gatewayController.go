package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"backoffice-backend/apperrors"
	"backoffice-backend/database"
	"backoffice-backend/ledger"
	"backoffice-backend/middlewares"
	"backoffice-backend/models"
	"backoffice-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CheckoutInput struct {
	Email    string          `json:"email" validate:"required,email"`
	Amount   float64         `json:"amount" validate:"gte=0"`
	Metadata json.RawMessage `json:"metadata"`
}

type VerifyInput struct {
	Reference string `json:"reference" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

// parseIntentMetadata decodes inbound metadata into the closed IntentMetadata
// record. Unknown fields are rejected, never passed through to the gateway.
func parseIntentMetadata(raw json.RawMessage) (models.IntentMetadata, error) {
	meta := models.IntentMetadata{Version: 1}
	if len(raw) == 0 {
		return meta, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&meta); err != nil {
		return models.IntentMetadata{}, apperrors.Validation("unrecognized metadata: %v", err)
	}
	if meta.Version == 0 {
		meta.Version = 1
	}
	return meta, nil
}

// CreateCheckout opens a hosted-checkout intent against a sale's balance and
// returns the {amount, email, reference, metadata} payload the gateway
// collaborator consumes.
func CreateCheckout(c *fiber.Ctx) error {
	var input CheckoutInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	businessID := database.BusinessID(c)

	var sale models.Sale
	if err := database.DB.Where("id = ? AND business_id = ?", c.Params("id"), businessID).First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("sale not found")
		}
		return apperrors.Persistence(err, "could not load sale")
	}

	amount := utils.Round2(input.Amount)
	if amount == 0 {
		amount = sale.BalanceDue
	}
	if amount <= 0 {
		return apperrors.Validation("sale has no outstanding balance")
	}
	if amount > sale.BalanceDue+utils.CentTolerance {
		return apperrors.Validation("checkout amount %.2f exceeds outstanding balance of %.2f", amount, sale.BalanceDue)
	}

	meta, err := parseIntentMetadata(input.Metadata)
	if err != nil {
		return err
	}
	if meta.SaleNumber == "" {
		meta.SaleNumber = sale.SaleNumber
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return apperrors.Validation("unserializable metadata")
	}

	intent := models.PaymentIntent{
		BusinessID: businessID,
		SaleID:     sale.Id,
		Amount:     amount,
		Email:      input.Email,
		Metadata:   datatypes.JSON(metaJSON),
		Status:     models.IntentPending,
	}
	if err := database.DB.Create(&intent).Error; err != nil {
		return apperrors.Persistence(err, "could not create payment intent")
	}

	return c.Status(201).JSON(fiber.Map{
		"amount":    intent.Amount,
		"email":     intent.Email,
		"reference": intent.Reference,
		"metadata":  meta,
	})
}

// VerifyPayment maps the gateway's {reference, status} callback onto the
// ledger. A successful verification applies the intent amount exactly like a
// manual payment; re-verifying a settled reference replays the stored outcome
// with no further ledger effect.
func VerifyPayment(c *fiber.Ctx) error {
	var input VerifyInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	businessID := database.BusinessID(c)

	var intent models.PaymentIntent
	if err := database.DB.Where("reference = ? AND business_id = ?", input.Reference, businessID).First(&intent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("unknown payment reference")
		}
		return apperrors.Persistence(err, "could not load payment intent")
	}

	if intent.Status == models.IntentSuccessful {
		return c.JSON(fiber.Map{"status": intent.Status, "reference": intent.Reference, "message": "already verified"})
	}
	if intent.Status == models.IntentFailed {
		return apperrors.Conflict("payment reference %s already failed", intent.Reference)
	}

	if input.Status != "success" {
		now := time.Now()
		res := database.DB.Model(&models.PaymentIntent{}).
			Where("reference = ? AND status = ?", intent.Reference, models.IntentPending).
			Updates(map[string]any{"status": models.IntentFailed, "verified_at": &now})
		if res.Error != nil {
			return apperrors.Persistence(res.Error, "could not update payment intent")
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("payment reference %s already verified", intent.Reference)
		}
		return c.JSON(fiber.Map{"status": models.IntentFailed, "reference": intent.Reference})
	}

	// The pending->successful flip is conditioned on the status read above and
	// commits with the ledger apply as one unit: a concurrent verify of the
	// same reference loses the conditioned update and applies nothing, and a
	// ledger failure rolls the flip back so the intent stays pending.
	var (
		sale    models.Sale
		receipt ledger.Receipt
	)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.PaymentIntent{}).
			Where("reference = ? AND status = ?", intent.Reference, models.IntentPending).
			Updates(map[string]any{"status": models.IntentSuccessful, "verified_at": &now})
		if res.Error != nil {
			return apperrors.Persistence(res.Error, "could not update payment intent")
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("payment reference %s already verified", intent.Reference)
		}
		var err error
		sale, receipt, err = ledger.ApplyPayment(tx, businessID, intent.SaleID, intent.Amount, "gateway", intent.Reference)
		return err
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  models.IntentSuccessful,
		"sale":    sale,
		"receipt": receipt,
	})
}
