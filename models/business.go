package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Business struct {
	Id           string `json:"id" gorm:"primaryKey"`
	BusinessName string `json:"business_name" gorm:"not null;unique"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	CurrencyCode string `json:"currency_code" gorm:"size:3;default:'NGN'"`
	OwnerId      string `json:"-"`
	Owner        User   `json:"owner" gorm:"foreignKey:OwnerId;references:Id"`
}

func (business *Business) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	business.Id = uuid.NewString()
	return
}
