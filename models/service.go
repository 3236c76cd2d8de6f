package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a catalog entry a sale can be recorded against. Price changes do
// not touch past transactions; those keep the amount captured at sale time.
type Service struct {
	Id          string  `json:"id" gorm:"primaryKey"`
	BusinessID  string  `json:"business_id" gorm:"index;not null"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price" gorm:"type:numeric(12,2)"`
	Active      bool    `json:"active" gorm:"default:true"`
}

func (service *Service) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	service.Id = uuid.NewString()
	return
}

// ServicePrice looks a price up by identity in a catalog slice; nil when the
// service is absent (including an empty catalog). Used to auto-populate the
// sale amount from the selected catalog entry.
func ServicePrice(services []Service, id string) *float64 {
	for i := range services {
		if services[i].Id == id {
			return &services[i].BasePrice
		}
	}
	return nil
}

// FilterActive returns exactly the services belonging to the business that
// are active — no omissions, no extras.
func FilterActive(services []Service, businessID string) []Service {
	out := make([]Service, 0, len(services))
	for _, s := range services {
		if s.BusinessID == businessID && s.Active {
			out = append(out, s)
		}
	}
	return out
}
