package services

import (
	"context"

	"github.com/financebook/financebook/internal/core/summary"
)

// ReportSvcFacade assembles the yearly report and renders it for download.
type ReportSvcFacade interface {
	// YearlyReport assembles the report for one calendar year.
	YearlyReport(ctx context.Context, userID string, year int) (*summary.YearlyReport, error)

	// ExportPDF renders the yearly report as a PDF document, returning the
	// bytes and a suggested filename.
	ExportPDF(ctx context.Context, userID string, year int) ([]byte, string, error)

	// ExportXLSX renders the yearly report as a spreadsheet, returning the
	// bytes and a suggested filename.
	ExportXLSX(ctx context.Context, userID string, year int) ([]byte, string, error)
}
