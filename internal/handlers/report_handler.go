package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jbucks/internal/flash"
	"jbucks/internal/services"
	"jbucks/internal/types"
)

// ReportHandler serves the read-only aggregation views for the current month.
type ReportHandler struct {
	reports services.ReportServicer
	flash   *flash.Codec
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports services.ReportServicer, codec *flash.Codec) *ReportHandler {
	return &ReportHandler{reports: reports, flash: codec}
}

// Dashboard renders the home view: this month's own and on-behalf totals,
// the per-category breakdown, and the registered payees.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	month := types.Current()

	dashboard, err := h.reports.Dashboard(month)
	if err != nil {
		failWith(c, h.flash, err, "/expenses")
		return
	}
	payees, err := h.reports.Payees()
	if err != nil {
		failWith(c, h.flash, err, "/expenses")
		return
	}

	render(c, h.flash, "dashboard.html", gin.H{
		"Month":          month.String(),
		"Today":          time.Now().Format(dateLayout),
		"YouTotal":       dashboard.YouTotal,
		"OthersTotal":    dashboard.OthersTotal,
		"CategoryTotals": dashboard.CategoryTotals,
		"Payees":         payees,
	})
}

// PayeeTotals renders this month's per-payee totals, largest first.
func (h *ReportHandler) PayeeTotals(c *gin.Context) {
	month := types.Current()

	totals, err := h.reports.PayeeTotals(month)
	if err != nil {
		failWith(c, h.flash, err, "/")
		return
	}

	render(c, h.flash, "payees.html", gin.H{
		"Month":  month.String(),
		"Totals": totals,
	})
}

// PayeeDetail renders one payee's expenses for this month. The name comes
// from a wildcard path segment so embedded slashes and spaces survive.
func (h *ReportHandler) PayeeDetail(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	month := types.Current()

	detail, err := h.reports.PayeeExpenses(month, name)
	if err != nil {
		failWith(c, h.flash, err, "/payees")
		return
	}

	render(c, h.flash, "payee.html", gin.H{
		"Month":    month.String(),
		"Name":     detail.Name,
		"Total":    detail.Total,
		"Expenses": detail.Expenses,
	})
}
