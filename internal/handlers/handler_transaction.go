package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/financebook/financebook/internal/core/domain"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/gin-gonic/gin"
)

// Uploaded receipts are capped at 5 MiB and must be images or PDFs.
const maxReceiptSize = 5 << 20

var allowedReceiptExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true,
}

// transactionHandler handles the cash-flow record endpoints.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers all transaction routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.create)
		transactions.GET("", h.list)
		transactions.GET("/categories", transactionCategories)
		transactions.DELETE("/:id", h.delete)
		transactions.POST("/:id/receipt", h.attachReceipt)
	}
}

// create godoc
// @Summary Record a transaction
// @Description Creates a new income or expense record.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// list godoc
// @Summary List transactions
// @Description Returns the owner's records newest first, optionally filtered by kind, category, date range or text search.
// @Tags transactions
// @Produce json
// @Param kind query string false "income or expense"
// @Param category query string false "Exact category"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param q query string false "Text search over description and category"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) list(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// delete godoc
// @Summary Delete a transaction
// @Description Removes one record. Records belonging to other users yield 404.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// attachReceipt godoc
// @Summary Attach a receipt
// @Description Uploads a receipt image or PDF and links it to the transaction.
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Transaction ID"
// @Param receipt formData file true "Receipt file (jpg, png, webp or pdf, max 5 MiB)"
// @Success 200 {object} map[string]string "receiptURL"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/receipt [post]
func (h *transactionHandler) attachReceipt(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Receipt file required"})
		return
	}
	if fileHeader.Size > maxReceiptSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Receipt exceeds the 5 MiB limit"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedReceiptExts[ext] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported file type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.transactionService.AttachReceipt(c.Request.Context(), userID, c.Param("id"), fileHeader.Filename, file)
	if err != nil {
		respondError(c, err, "Failed to attach receipt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"receiptURL": url})
}

// categories godoc
// @Summary Category suggestions
// @Description Returns the income and expense category lists offered by the entry form.
// @Tags transactions
// @Produce json
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router /transactions/categories [get]
func transactionCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"income":  domain.IncomeCategories,
		"expense": domain.ExpenseCategories,
	})
}
