package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/gin-gonic/gin"
)

// debtHandler handles the payable/receivable ledger endpoints.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

func newDebtHandler(ds portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{debtService: ds}
}

// registerDebtRoutes registers all ledger routes.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	debts := rg.Group("/debts")
	{
		debts.POST("", h.create)
		debts.GET("", h.list)
		debts.POST("/:id/settle", h.settle)
	}
}

// create godoc
// @Summary Record a debt
// @Description Creates a new payable or receivable with the remaining amount set to the full amount.
// @Tags debts
// @Accept json
// @Produce json
// @Param debt body dto.CreateDebtRequest true "Debt details"
// @Success 201 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts [post]
func (h *debtHandler) create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	debt, err := h.debtService.CreateDebt(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create debt")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDebtResponse(debt, time.Now()))
}

// list godoc
// @Summary List debts
// @Description Returns the owner's debts by due date ascending plus the ledger totals over the active set.
// @Tags debts
// @Produce json
// @Param direction query string false "payable or receivable"
// @Param status query string false "active or paid"
// @Success 200 {object} dto.DebtListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts [get]
func (h *debtHandler) list(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.ListDebtsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	debts, totals, err := h.debtService.ListDebts(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to list debts")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtListResponse(debts, totals, time.Now()))
}

// settle godoc
// @Summary Settle a debt
// @Description Applies a payment or collection against the debt and records the matching cash-flow transaction atomically. Paying above the remaining amount is rejected.
// @Tags debts
// @Accept json
// @Produce json
// @Param id path string true "Debt ID"
// @Param settlement body dto.SettleDebtRequest true "Settlement amount and note"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already paid or concurrent settlement"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id}/settle [post]
func (h *debtHandler) settle(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.SettleDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	debt, txn, err := h.debtService.SettleDebt(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to settle debt")
		return
	}
	c.JSON(http.StatusOK, dto.SettlementResponse{
		Debt:        dto.ToDebtResponse(debt, time.Now()),
		Transaction: dto.ToTransactionResponse(txn),
	})
}
