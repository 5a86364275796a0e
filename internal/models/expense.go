package models

import "time"

// DefaultCategory is assigned when an expense is submitted without one.
const DefaultCategory = "Other"

// Expense represents a single recorded money outflow.
//
// PayeeName is a denormalized copy of a Payee's name taken at write time,
// not a foreign key. Renaming a payee does not cascade to past expenses.
type Expense struct {
	Base
	Date         time.Time `gorm:"not null" json:"date"`
	Category     string    `gorm:"not null" json:"category"`
	Amount       float64   `gorm:"not null" json:"amount"`
	Description  string    `json:"description"`
	PaidForOther bool      `gorm:"not null;default:false" json:"paid_for_other"`
	PayeeName    *string   `json:"payee_name,omitempty"`
}
