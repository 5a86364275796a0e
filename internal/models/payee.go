package models

// Payee is a named party an expense may be paid on behalf of. Payees are
// registered implicitly the first time an expense references a new name and
// are never updated or deleted by the application.
type Payee struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
