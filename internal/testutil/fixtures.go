package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"jbucks/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestPayee creates a payee with a unique name.
func CreateTestPayee(t *testing.T, db *gorm.DB) *models.Payee {
	t.Helper()
	return CreateTestPayeeWithName(t, db, fmt.Sprintf("Payee %d", nextID()))
}

// CreateTestPayeeWithName creates a payee with the given name.
func CreateTestPayeeWithName(t *testing.T, db *gorm.DB, name string) *models.Payee {
	t.Helper()

	payee := &models.Payee{Name: name}
	if err := db.Create(payee).Error; err != nil {
		t.Fatalf("failed to create test payee: %v", err)
	}
	return payee
}

// CreateTestExpense creates an own expense with the given category and amount,
// dated today.
func CreateTestExpense(t *testing.T, db *gorm.DB, category string, amount float64) *models.Expense {
	t.Helper()
	return CreateTestExpenseOn(t, db, time.Now(), category, amount)
}

// CreateTestExpenseOn creates an own expense on a specific date.
func CreateTestExpenseOn(t *testing.T, db *gorm.DB, date time.Time, category string, amount float64) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestPayeeExpense creates an expense paid on behalf of the named payee,
// dated today.
func CreateTestPayeeExpense(t *testing.T, db *gorm.DB, payeeName string, amount float64) *models.Expense {
	t.Helper()
	return CreateTestPayeeExpenseOn(t, db, time.Now(), payeeName, amount)
}

// CreateTestPayeeExpenseOn creates an expense paid on behalf of the named payee
// on a specific date.
func CreateTestPayeeExpenseOn(t *testing.T, db *gorm.DB, date time.Time, payeeName string, amount float64) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Date:         date,
		Category:     models.DefaultCategory,
		Amount:       amount,
		Description:  fmt.Sprintf("Test Expense %d", nextID()),
		PaidForOther: true,
		PayeeName:    &payeeName,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test payee expense: %v", err)
	}
	return expense
}
