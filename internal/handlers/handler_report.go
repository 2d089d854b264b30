package handlers

import (
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportHandler handles the yearly report endpoints.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs}
}

// registerReportRoutes registers the report and export routes.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	reports := rg.Group("/reports")
	{
		reports.GET("/yearly", h.yearly)
		reports.GET("/yearly/export", h.export)
	}
}

// yearly godoc
// @Summary Yearly report
// @Description Returns the monthly series, totals, top categories, tax estimates and upcoming payables for one year.
// @Tags reports
// @Produce json
// @Param year query int false "Calendar year (defaults to current)"
// @Success 200 {object} dto.YearlyReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/yearly [get]
func (h *reportHandler) yearly(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	year, ok := yearParam(c)
	if !ok {
		return
	}

	report, err := h.reportService.YearlyReport(c.Request.Context(), userID, year)
	if err != nil {
		respondError(c, err, "Failed to assemble yearly report")
		return
	}
	c.JSON(http.StatusOK, dto.ToYearlyReportResponse(report, time.Now()))
}

// export godoc
// @Summary Export the yearly report
// @Description Renders the yearly report as a downloadable PDF or spreadsheet.
// @Tags reports
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "Calendar year (defaults to current)"
// @Param format query string true "pdf or xlsx"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/yearly/export [get]
func (h *reportHandler) export(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	year, ok := yearParam(c)
	if !ok {
		return
	}

	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)
	switch c.Query("format") {
	case "pdf":
		contentType = "application/pdf"
		data, filename, err = h.reportService.ExportPDF(c.Request.Context(), userID, year)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		data, filename, err = h.reportService.ExportXLSX(c.Request.Context(), userID, year)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "format must be pdf or xlsx"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to export report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
