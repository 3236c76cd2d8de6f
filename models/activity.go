package models

import "time"

const ActionSaleRecorded = "sale_recorded"

// ActivityLog rows are append-only and written best-effort after the primary
// operation committed; a failed log write never fails the operation.
type ActivityLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BusinessID string    `json:"business_id" gorm:"index;not null"`
	EmployeeID *string   `json:"employee_id,omitempty" gorm:"index"`
	Action     string    `json:"action" gorm:"not null"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}
