package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	IntentPending    = "pending"
	IntentSuccessful = "successful"
	IntentFailed     = "failed"
)

// PaymentIntent is one hosted-checkout attempt against a sale. The gateway is
// handed {amount, email, reference, metadata} and later calls back with
// {reference, status}; verification of a successful callback applies the
// amount to the sale's ledger exactly once.
type PaymentIntent struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Reference  string `json:"reference" gorm:"size:64;uniqueIndex;not null"`
	BusinessID string `json:"business_id" gorm:"index;not null"`
	SaleID     string `json:"sale_id" gorm:"index;not null"`

	Amount float64 `json:"amount" gorm:"type:numeric(12,2);not null"`
	Email  string  `json:"email"`

	// Closed, versioned metadata record (see IntentMetadata); stored as JSON,
	// never a free-form pass-through.
	Metadata datatypes.JSON `json:"metadata" gorm:"type:jsonb"`

	Status     string     `json:"status" gorm:"not null;default:'pending'"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (intent *PaymentIntent) BeforeCreate(tx *gorm.DB) (err error) {
	if intent.Reference == "" {
		intent.Reference = uuid.NewString()
	}
	return
}

// IntentMetadata enumerates the recognized metadata fields, version 1.
// Unknown fields in inbound metadata are rejected at intent creation.
type IntentMetadata struct {
	Version      int    `json:"version"`
	SaleNumber   string `json:"sale_number,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}
