package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "jbucks/internal/errors"
	"jbucks/internal/flash"
	"jbucks/internal/models"
	"jbucks/internal/services"
)

const dateLayout = "2006-01-02"

// ExpenseHandler serves the expense listing, entry form, and write routes.
type ExpenseHandler struct {
	expenses services.ExpenseServicer
	reports  services.ReportServicer
	flash    *flash.Codec
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses services.ExpenseServicer, reports services.ReportServicer, codec *flash.Codec) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, reports: reports, flash: codec}
}

// expenseForm is the field set submitted by the add and edit forms. The date
// format is checked by the binding engine; required-ness differs between add
// and edit, so the handlers enforce it.
type expenseForm struct {
	Date         string `form:"date" binding:"expense_date"`
	Category     string `form:"category"`
	Amount       string `form:"amount"`
	Description  string `form:"description"`
	PaidForOther string `form:"paid_for_other"`
	PayeeName    string `form:"payee_name"`
}

// ListExpenses renders all expenses, newest first.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.expenses.List()
	if err != nil {
		failWith(c, h.flash, err, "/")
		return
	}
	render(c, h.flash, "expenses.html", gin.H{"Expenses": expenses})
}

// NewExpenseForm renders a blank entry form, prefilled from the query string
// when category, paid_for_other, or payee_name are supplied.
func (h *ExpenseHandler) NewExpenseForm(c *gin.Context) {
	payees, err := h.reports.Payees()
	if err != nil {
		failWith(c, h.flash, err, "/")
		return
	}
	render(c, h.flash, "form.html", gin.H{
		"Today":        time.Now().Format(dateLayout),
		"Category":     c.Query("category"),
		"PaidForOther": c.Query("paid_for_other") == "1",
		"PayeeName":    c.Query("payee_name"),
		"Payees":       payees,
	})
}

// CreateExpense handles the add-form submission. Date defaults to today and
// category to "Other"; a missing or non-numeric amount aborts the write and
// redirects to the dashboard with an error flash.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var form expenseForm
	if err := c.ShouldBind(&form); err != nil {
		failWith(c, h.flash, apperrors.ErrInvalidDate, "/")
		return
	}

	year, month, day := time.Now().Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if form.Date != "" {
		parsed, err := time.Parse(dateLayout, form.Date)
		if err != nil {
			failWith(c, h.flash, apperrors.ErrInvalidDate, "/")
			return
		}
		date = parsed
	}

	category := form.Category
	if category == "" {
		category = models.DefaultCategory
	}

	amount, err := strconv.ParseFloat(form.Amount, 64)
	if err != nil {
		failWith(c, h.flash, apperrors.ErrInvalidAmount, "/")
		return
	}

	_, err = h.expenses.Create(services.ExpenseInput{
		Date:         date,
		Category:     category,
		Amount:       amount,
		Description:  form.Description,
		PaidForOther: form.PaidForOther == "1",
		PayeeName:    &form.PayeeName,
	})
	if err != nil {
		failWith(c, h.flash, err, "/")
		return
	}

	h.flash.Success(c, "Expense saved")
	c.Redirect(http.StatusSeeOther, "/expenses")
}

// EditExpenseForm renders the entry form prefilled with an existing expense.
func (h *ExpenseHandler) EditExpenseForm(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		notFound(c)
		return
	}

	expense, err := h.expenses.GetByID(id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			notFound(c)
			return
		}
		failWith(c, h.flash, err, "/expenses")
		return
	}

	payees, err := h.reports.Payees()
	if err != nil {
		failWith(c, h.flash, err, "/expenses")
		return
	}

	payeeName := ""
	if expense.PayeeName != nil {
		payeeName = *expense.PayeeName
	}
	render(c, h.flash, "form.html", gin.H{
		"Expense":      expense,
		"Today":        expense.Date.Format(dateLayout),
		"Category":     expense.Category,
		"PaidForOther": expense.PaidForOther,
		"PayeeName":    payeeName,
		"Payees":       payees,
	})
}

// UpdateExpense overwrites an existing expense. Unlike CreateExpense, no
// field is defaulted: date, category, and amount must all be submitted.
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		notFound(c)
		return
	}
	if _, err := h.expenses.GetByID(id); err != nil {
		if apperrors.IsNotFound(err) {
			notFound(c)
			return
		}
		failWith(c, h.flash, err, "/expenses")
		return
	}

	var form expenseForm
	if err := c.ShouldBind(&form); err != nil {
		failWith(c, h.flash, apperrors.ErrInvalidDate, "/expenses")
		return
	}

	date, err := time.Parse(dateLayout, form.Date)
	if err != nil {
		failWith(c, h.flash, apperrors.ErrInvalidDate, "/expenses")
		return
	}

	if form.Category == "" {
		failWith(c, h.flash, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is required"), "/expenses")
		return
	}

	amount, err := strconv.ParseFloat(form.Amount, 64)
	if err != nil {
		failWith(c, h.flash, apperrors.ErrInvalidAmount, "/expenses")
		return
	}

	_, err = h.expenses.Update(id, services.ExpenseInput{
		Date:         date,
		Category:     form.Category,
		Amount:       amount,
		Description:  form.Description,
		PaidForOther: form.PaidForOther == "1",
		PayeeName:    &form.PayeeName,
	})
	if err != nil {
		failWith(c, h.flash, err, "/expenses")
		return
	}

	h.flash.Success(c, "Updated successfully")
	c.Redirect(http.StatusSeeOther, "/expenses")
}

// DeleteExpense permanently removes an expense and redirects to the listing.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		notFound(c)
		return
	}

	if err := h.expenses.Delete(id); err != nil {
		if apperrors.IsNotFound(err) {
			notFound(c)
			return
		}
		failWith(c, h.flash, err, "/expenses")
		return
	}

	h.flash.Info(c, "Deleted")
	c.Redirect(http.StatusSeeOther, "/expenses")
}
