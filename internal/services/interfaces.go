package services

import (
	"time"

	"jbucks/internal/models"
	"jbucks/internal/types"
)

// ExpenseInput carries the full field set for creating or overwriting an
// expense. PayeeName is nil when no payee was supplied; a non-nil name is
// trimmed and auto-registered as a Payee on write.
type ExpenseInput struct {
	Date         time.Time
	Category     string
	Amount       float64
	Description  string
	PaidForOther bool
	PayeeName    *string
}

// ExpenseServicer defines the contract for expense business logic.
type ExpenseServicer interface {
	Create(in ExpenseInput) (*models.Expense, error)
	GetByID(id uint) (*models.Expense, error)
	Update(id uint, in ExpenseInput) (*models.Expense, error)
	Delete(id uint) error
	List() ([]models.Expense, error)
}

// CategoryTotal is one row of the dashboard's per-category breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// PayeeTotal is one row of the per-payee monthly summary.
type PayeeTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Dashboard summarizes one month of spending.
type Dashboard struct {
	Month          types.Month
	YouTotal       float64
	OthersTotal    float64
	CategoryTotals []CategoryTotal
}

// PayeeDetail holds one payee's expenses for a month plus their sum.
type PayeeDetail struct {
	Name     string
	Total    float64
	Expenses []models.Expense
}

// ReportServicer defines the contract for the read-only aggregation views.
type ReportServicer interface {
	Dashboard(month types.Month) (*Dashboard, error)
	PayeeTotals(month types.Month) ([]PayeeTotal, error)
	PayeeExpenses(month types.Month, name string) (*PayeeDetail, error)
	Payees() ([]models.Payee, error)
}
