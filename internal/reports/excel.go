package reports

import (
	"fmt"

	"github.com/financebook/financebook/internal/core/summary"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Laporan"

// RenderXLSX lays out the yearly report as a single-sheet workbook with the
// monthly series, totals, top categories and tax estimates. Amounts are
// written as raw numbers so spreadsheet formulas keep working.
func RenderXLSX(report *summary.YearlyReport, businessName string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	row := 1
	setRow := func(values ...any) {
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(reportSheet, cell, v)
		}
		row++
	}

	setRow(fmt.Sprintf("Laporan Keuangan %d", report.Year))
	if businessName != "" {
		setRow(businessName)
	}
	row++

	setRow("Bulan", "Pemasukan", "Pengeluaran", "Laba")
	for _, b := range report.Series {
		setRow(b.Month, b.Income.InexactFloat64(), b.Expense.InexactFloat64(), b.Profit.InexactFloat64())
	}
	setRow("Total", report.TotalIncome.InexactFloat64(), report.TotalExpense.InexactFloat64(), report.NetProfit.InexactFloat64())
	row++

	if len(report.TopCategories) > 0 {
		setRow("Pengeluaran Terbesar")
		setRow("Kategori", "Jumlah", "Persentase")
		for _, c := range report.TopCategories {
			setRow(c.Category, c.Amount.InexactFloat64(), c.Percentage)
		}
		row++
	}

	setRow("Estimasi Pajak")
	setRow("Pajak", "Keterangan", "Jumlah")
	for _, t := range report.Taxes {
		setRow(t.Label, t.Note, t.Amount.InexactFloat64())
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
