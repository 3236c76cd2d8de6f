package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	Id         string `json:"id" gorm:"primaryKey"`
	BusinessID string `json:"business_id" gorm:"index;not null"`
	Name       string `json:"name" gorm:"not null"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
}

func (customer *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	customer.Id = uuid.NewString()
	return
}
