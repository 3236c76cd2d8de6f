package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CommissionPercentage = "percentage"
	CommissionFixed      = "fixed"
)

// Employee carries the commission policy used to split recorded sales.
// Both policy fields are always stored; CommissionType decides which one the
// calculator reads, the other is ignored.
type Employee struct {
	Id         string `json:"id" gorm:"primaryKey"`
	BusinessID string `json:"business_id" gorm:"index;not null"`
	Name       string `json:"name" gorm:"not null"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`

	CommissionType       string  `json:"commission_type" gorm:"not null;default:'percentage'"`
	CommissionPercentage float64 `json:"commission_percentage" gorm:"type:numeric(5,2);default:0"`
	FixedCommission      float64 `json:"fixed_commission" gorm:"type:numeric(12,2);default:0"`

	Active bool `json:"active" gorm:"default:true"`
}

func (employee *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	employee.Id = uuid.NewString()
	return
}
