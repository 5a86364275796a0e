package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "jbucks/internal/errors"
	"jbucks/internal/models"
	"jbucks/internal/types"
)

// reportService handles the read-only aggregation views. All queries are
// simple SUM/GROUP BY over the expenses table restricted to one month.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// Dashboard computes the month's own and on-behalf totals and the
// per-category breakdown over the user's own expenses.
func (s *reportService) Dashboard(month types.Month) (*Dashboard, error) {
	start, end := month.Range()

	youTotal, err := s.sumInRange(start, end, false)
	if err != nil {
		return nil, err
	}
	othersTotal, err := s.sumInRange(start, end, true)
	if err != nil {
		return nil, err
	}

	var catTotals []CategoryTotal
	err = s.db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("paid_for_other = ? AND date >= ? AND date < ?", false, start, end).
		Group("category").
		Order("total DESC").
		Scan(&catTotals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &Dashboard{
		Month:          month,
		YouTotal:       youTotal,
		OthersTotal:    othersTotal,
		CategoryTotals: catTotals,
	}, nil
}

func (s *reportService) sumInRange(start, end time.Time, paidForOther bool) (float64, error) {
	var total float64
	err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("paid_for_other = ? AND date >= ? AND date < ?", paidForOther, start, end).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// PayeeTotals groups the month's on-behalf expenses by payee name, summed and
// sorted by total descending. Rows without a payee name are excluded.
func (s *reportService) PayeeTotals(month types.Month) ([]PayeeTotal, error) {
	start, end := month.Range()

	var totals []PayeeTotal
	err := s.db.Model(&models.Expense{}).
		Select("payee_name AS name, COALESCE(SUM(amount), 0) AS total").
		Where("paid_for_other = ? AND payee_name IS NOT NULL AND payee_name <> '' AND date >= ? AND date < ?",
			true, start, end).
		Group("payee_name").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// PayeeExpenses returns one payee's on-behalf expenses for the month, newest
// first, plus their sum. The name is matched exactly, without normalization.
func (s *reportService) PayeeExpenses(month types.Month, name string) (*PayeeDetail, error) {
	start, end := month.Range()

	var expenses []models.Expense
	err := s.db.
		Where("paid_for_other = ? AND payee_name = ? AND date >= ? AND date < ?", true, name, start, end).
		Order("date DESC, id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	detail := &PayeeDetail{Name: name, Expenses: expenses}
	for _, e := range expenses {
		detail.Total += e.Amount
	}
	return detail, nil
}

// Payees returns all registered payees ordered by name, for the dashboard's
// payee list and the entry form.
func (s *reportService) Payees() ([]models.Payee, error) {
	var payees []models.Payee
	if err := s.db.Order("name").Find(&payees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payees, nil
}
