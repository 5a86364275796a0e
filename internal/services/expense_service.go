package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "jbucks/internal/errors"
	"jbucks/internal/models"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// Create inserts a new expense. When the input names a payee that is not
// registered yet, the payee row is inserted in the same transaction, so both
// writes commit or roll back as a unit.
func (s *expenseService) Create(in ExpenseInput) (*models.Expense, error) {
	payeeName := normalizePayeeName(in.PayeeName)

	expense := &models.Expense{
		Date:         in.Date,
		Category:     in.Category,
		Amount:       in.Amount,
		Description:  in.Description,
		PaidForOther: in.PaidForOther,
		PayeeName:    payeeName,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if payeeName != nil {
			if err := ensurePayee(tx, *payeeName); err != nil {
				return err
			}
		}
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// GetByID retrieves a single expense.
func (s *expenseService) GetByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// Update overwrites all fields of an existing expense in place, applying the
// same payee auto-registration rule as Create.
func (s *expenseService) Update(id uint, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	payeeName := normalizePayeeName(in.PayeeName)

	expense.Date = in.Date
	expense.Category = in.Category
	expense.Amount = in.Amount
	expense.Description = in.Description
	expense.PaidForOther = in.PaidForOther
	expense.PayeeName = payeeName

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if payeeName != nil {
			if err := ensurePayee(tx, *payeeName); err != nil {
				return err
			}
		}
		// Save writes every column so cleared fields and false flags persist.
		if err := tx.Save(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// Delete permanently removes an expense. Deleting an unknown id is a
// not-found error, not a no-op.
func (s *expenseService) Delete(id uint) error {
	expense, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// List returns all expenses, newest first, unfiltered by month.
func (s *expenseService) List() ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// ensurePayee registers the name as a Payee if it is not known yet. The
// check-then-insert pair is not atomic across requests; a concurrent
// duplicate surfaces as a constraint violation on the generic failure path.
func ensurePayee(tx *gorm.DB, name string) error {
	var count int64
	if err := tx.Model(&models.Payee{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}
	if err := tx.Create(&models.Payee{Name: name}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// normalizePayeeName trims surrounding whitespace and treats an empty result
// as no payee at all.
func normalizePayeeName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
