package handlers

import (
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/gin-gonic/gin"
)

const (
	dashboardTopCategories = 4
	dashboardRecentTxns    = 5
	dashboardUpcomingDebts = 3
)

// dashboardHandler handles the home screen widget endpoints.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers all dashboard widget routes.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/summary", h.summary)
		dashboard.GET("/cashflow", h.cashflow)
		dashboard.GET("/categories", h.categories)
		dashboard.GET("/recent", h.recent)
		dashboard.GET("/upcoming-debts", h.upcoming)
	}
}

// yearParam parses the optional ?year= query, defaulting to the current year.
func yearParam(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1970 || year > 9999 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
		return 0, false
	}
	return year, true
}

// summary godoc
// @Summary Balance summary
// @Description Returns the all-time balance and the current month's income and expense totals.
// @Tags dashboard
// @Produce json
// @Success 200 {object} summary.BalanceSummary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *dashboardHandler) summary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	s, err := h.dashboardService.BalanceSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to compute balance summary")
		return
	}
	c.JSON(http.StatusOK, s)
}

// cashflow godoc
// @Summary Monthly cashflow series
// @Description Returns the fixed 12-bucket income/expense/profit series for a year.
// @Tags dashboard
// @Produce json
// @Param year query int false "Calendar year (defaults to current)"
// @Success 200 {array} summary.MonthBucket
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/cashflow [get]
func (h *dashboardHandler) cashflow(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	year, ok := yearParam(c)
	if !ok {
		return
	}
	series, err := h.dashboardService.Cashflow(c.Request.Context(), userID, year)
	if err != nil {
		respondError(c, err, "Failed to compute cashflow")
		return
	}
	c.JSON(http.StatusOK, series)
}

// categories godoc
// @Summary Top expense categories
// @Description Returns the largest expense categories with percentages and display styles.
// @Tags dashboard
// @Produce json
// @Success 200 {array} dto.CategoryShareResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/categories [get]
func (h *dashboardHandler) categories(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	shares, err := h.dashboardService.CategoryBreakdown(c.Request.Context(), userID, dashboardTopCategories)
	if err != nil {
		respondError(c, err, "Failed to compute category breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryShareResponses(shares))
}

// recent godoc
// @Summary Recent transactions
// @Description Returns the newest cash-flow records for the activity widget.
// @Tags dashboard
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/recent [get]
func (h *dashboardHandler) recent(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	txns, err := h.dashboardService.RecentTransactions(c.Request.Context(), userID, dashboardRecentTxns)
	if err != nil {
		respondError(c, err, "Failed to load recent transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// upcoming godoc
// @Summary Upcoming debt payments
// @Description Returns the next active payables by due date.
// @Tags dashboard
// @Produce json
// @Success 200 {array} dto.DebtResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/upcoming-debts [get]
func (h *dashboardHandler) upcoming(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	debts, err := h.dashboardService.UpcomingDebts(c.Request.Context(), userID, dashboardUpcomingDebts)
	if err != nil {
		respondError(c, err, "Failed to load upcoming debts")
		return
	}
	today := time.Now()
	out := make([]dto.DebtResponse, len(debts))
	for i := range debts {
		out[i] = dto.ToDebtResponse(&debts[i], today)
	}
	c.JSON(http.StatusOK, out)
}
