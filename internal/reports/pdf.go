// Package reports renders the yearly report for download. The on-screen
// report is served as JSON; this package only covers the PDF and spreadsheet
// exports.
package reports

import (
	"bytes"
	"fmt"

	"github.com/financebook/financebook/internal/core/summary"
	"github.com/financebook/financebook/internal/utils"
	"github.com/go-pdf/fpdf"
)

// RenderPDF lays out the yearly report as an A4 document: a month-by-month
// table, the year totals, the top expense categories and the tax estimates.
func RenderPDF(report *summary.YearlyReport, businessName string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Laporan Keuangan %d", report.Year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Laporan Keuangan %d", report.Year), "", 1, "C", false, 0, "")
	if businessName != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, businessName, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// Monthly table.
	colWidths := []float64{30, 53, 53, 54}
	headers := []string{"Bulan", "Pemasukan", "Pengeluaran", "Laba"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, b := range report.Series {
		pdf.CellFormat(colWidths[0], 7, b.Month, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, utils.FormatRupiah(b.Income), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, utils.FormatRupiah(b.Expense), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, utils.FormatRupiah(b.Profit), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colWidths[0], 8, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[1], 8, utils.FormatRupiah(report.TotalIncome), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[2], 8, utils.FormatRupiah(report.TotalExpense), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[3], 8, utils.FormatRupiah(report.NetProfit), "1", 0, "R", true, 0, "")
	pdf.Ln(12)

	if len(report.TopCategories) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Pengeluaran Terbesar", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, c := range report.TopCategories {
			line := fmt.Sprintf("%s: %s (%d%%)", c.Category, utils.FormatRupiah(c.Amount), c.Percentage)
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Estimasi Pajak", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, t := range report.Taxes {
		line := fmt.Sprintf("%s (%s): %s", t.Label, t.Note, utils.FormatRupiah(t.Amount))
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
