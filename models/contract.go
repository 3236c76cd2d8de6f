package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContractDraft      = "draft"
	ContractPending    = "pending"
	ContractSigned     = "signed"
	ContractExpired    = "expired"
	ContractTerminated = "terminated"
)

// Contract is an employment contract moving through
// draft -> pending -> signed, with expired and terminated as terminal states.
// Signatures are stored as data-URL images supplied by the signing UI.
// Version backs the conditioned update that rejects stale writes.
type Contract struct {
	Id         string `json:"id" gorm:"primaryKey"`
	BusinessID string `json:"business_id" gorm:"index;not null"`
	EmployeeID string `json:"employee_id" gorm:"index;not null"`

	Title        string     `json:"title" gorm:"not null"`
	Type         string     `json:"type"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Terms        string     `json:"terms"`
	SalaryAmount *float64   `json:"salary_amount,omitempty" gorm:"type:numeric(12,2)"`

	Status string `json:"status" gorm:"not null;default:'draft'"`

	EmployeeSignature *string    `json:"employee_signature,omitempty"`
	EmployeeSignedAt  *time.Time `json:"employee_signed_at,omitempty"`
	EmployerSignature *string    `json:"employer_signature,omitempty"`
	EmployerSignedAt  *time.Time `json:"employer_signed_at,omitempty"`
	EmployerName      *string    `json:"employer_name,omitempty"`

	TerminationReason *string    `json:"termination_reason,omitempty"`
	TerminatedAt      *time.Time `json:"terminated_at,omitempty"`

	Version   int       `json:"-" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (contract *Contract) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	contract.Id = uuid.NewString()
	return
}

// IsTerminal reports whether no further signature or termination transition
// is permitted.
func (contract *Contract) IsTerminal() bool {
	return contract.Status == ContractExpired || contract.Status == ContractTerminated
}
