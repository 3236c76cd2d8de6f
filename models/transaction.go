package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is the commission view of a recorded sale: the split between the
// employee's commission and the house. CommissionAmount + HouseAmount always
// equals TotalAmount (within a cent). Created once at sale-recording time;
// IsCommissionPaid is the only field that changes afterwards (payroll).
type Transaction struct {
	Id         string `json:"id" gorm:"primaryKey"`
	BusinessID string `json:"business_id" gorm:"index;not null"`
	EmployeeID string `json:"employee_id" gorm:"index;not null"`
	ServiceID  string `json:"service_id" gorm:"index;not null"`

	TotalAmount      float64 `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	CommissionAmount float64 `json:"commission_amount" gorm:"type:numeric(12,2);not null"`
	HouseAmount      float64 `json:"house_amount" gorm:"type:numeric(12,2);not null"`

	IsCommissionPaid bool      `json:"is_commission_paid" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	t.Id = uuid.NewString()
	return
}
