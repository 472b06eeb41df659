// Package export renders a ledger as downloadable files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"healthyledger/internal/aggregate"
	"healthyledger/internal/core"
	"healthyledger/internal/ledgerstore"
	"healthyledger/internal/ledgerstore/csvfile"
)

// Sheet names of the workbook.
const (
	LedgerSheet  = "Ledger"
	SummarySheet = "Summary"
)

// Content types served for each format.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CSVFilename is the name the CSV download is offered under. It matches the
// file the csv backend keeps, so a download can be dropped into a data dir.
func CSVFilename(user string) string { return "data_" + user + ".csv" }

func XLSXFilename(user string) string { return "ledger_" + user + ".xlsx" }

// WriteCSV writes the ledger in the stored tabular format.
func WriteCSV(w io.Writer, l core.Ledger) error {
	return csvfile.Write(w, l)
}

// WriteXLSX writes a workbook with the full ledger on one sheet and all-time
// totals plus a per-category breakdown on another. Amounts and calories are
// numeric cells.
func WriteXLSX(w io.Writer, l core.Ledger) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LedgerSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, LedgerSheet, 1, toCells(ledgerstore.Header)); err != nil {
		return err
	}
	for i, e := range l {
		amount, _ := e.Amount.Float64()
		row := []interface{}{
			e.Date.String(),
			e.Kind.String(),
			e.Category,
			e.Description,
			amount,
			e.MenuItem,
			e.Calories,
		}
		if err := setRow(f, LedgerSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	income := aggregate.TotalByKind(l, core.Income)
	spent := aggregate.TotalByKind(l, core.Expense)
	rows := [][]interface{}{
		{"metric", "value"},
		{"entries", len(l)},
		{"total_income", income.InexactFloat64()},
		{"total_expense", spent.InexactFloat64()},
		{"net", income.Sub(spent).InexactFloat64()},
		{"calories", aggregate.SumCalories(l)},
		{},
		{"category", "expense"},
	}
	for _, c := range aggregate.CategoryBreakdown(l) {
		rows = append(rows, []interface{}{c.Name, c.Amount.InexactFloat64()})
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
