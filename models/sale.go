package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentCompleted = "completed"
	PaymentPartial   = "partial"
)

// Sale is the ledger view of a sale: total, cumulative paid amount and the
// derived balance. AmountPaid + BalanceDue == TotalAmount at all times; the
// row is only ever mutated by payment application and never deleted, only
// driven to zero balance. Version backs the conditioned update that rejects
// stale writes.
type Sale struct {
	Id         string  `json:"id" gorm:"primaryKey"`
	BusinessID string  `json:"business_id" gorm:"index;not null"`
	SaleNumber string  `json:"sale_number" gorm:"uniqueIndex;not null"`
	CustomerID *string `json:"customer_id" gorm:"index"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	Items []SaleItem `json:"items" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`

	TotalAmount    float64 `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	DiscountAmount float64 `json:"discount_amount" gorm:"type:numeric(12,2);default:0"`
	AmountPaid     float64 `json:"amount_paid" gorm:"type:numeric(12,2);default:0"`
	BalanceDue     float64 `json:"balance_due" gorm:"type:numeric(12,2);default:0"`

	PaymentStatus string `json:"payment_status" gorm:"not null;default:'partial'"`
	PaymentMethod string `json:"payment_method"`

	Version   int       `json:"-" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
}

func (sale *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	sale.Id = uuid.NewString()
	return
}

type SaleItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	SaleID      string  `json:"-" gorm:"index;not null"`
	ServiceID   string  `json:"service_id" gorm:"index"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	Discount    float64 `json:"discount" gorm:"type:numeric(12,2)"`
	Total       float64 `json:"total" gorm:"type:numeric(12,2)"`
}

// Payment is append-only; one row per applied payment. The sum of a sale's
// payment rows equals the sale's AmountPaid after every write.
type Payment struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	SaleID    string    `json:"sale_id" gorm:"index:idx_payments_sale_created,priority:1;not null"`
	Amount    float64   `json:"amount" gorm:"type:numeric(12,2);not null"`
	Method    string    `json:"method"`
	Status    string    `json:"status" gorm:"default:'successful'"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_payments_sale_created,priority:2"`
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	payment.Id = uuid.NewString()
	return
}
