package report

import (
	"fmt"
	"iter"

	"github.com/xuri/excelize/v2"
	"migration-report-go/internal/aggregator"
)

const (
	SheetDetails  = "Details"
	SheetOverview = "Overview"
	SheetTotals   = "Totals"
)

type column struct {
	header string
	width  float64
}

func detailsColumns() []column {
	return []column{
		{"Market", 19},
		{"AssetId", 12},
		{"ErrorLevel", 12},
		{"BaseError", 40},
		{"FullError", 50},
	}
}

func overviewColumns() []column {
	return []column{
		{"Market", 19},
		{"Message", 60},
		{"ErrorCount", 13},
		{"AffectedAssets", 17},
		{"Type", 8},
	}
}

func totalsColumns(home, other string) []column {
	return []column{
		{"Message", 60},
		{"Type", 8},
		{"TotalErrors-" + home, 16},
		{"TotalErrors-" + other, 16},
		{"TotalAffectedAssets-" + home, 24},
		{"TotalAffectedAssets-" + other, 24},
	}
}

// WriteWorkbook builds the three sheets and saves the workbook to OutFile.
// Details rows whose category is deny-listed are left out.
func (w *Writer) WriteWorkbook(res aggregator.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	// the default sheet becomes Details
	if err := f.SetSheetName(f.GetSheetName(0), SheetDetails); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSheet(f, SheetDetails, detailsColumns(), w.detailRows(res)); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetOverview); err != nil {
		return fmt.Errorf("new sheet %s: %w", SheetOverview, err)
	}
	if err := writeSheet(f, SheetOverview, overviewColumns(), overviewRows(res)); err != nil {
		return err
	}

	home, other := w.labels()
	if _, err := f.NewSheet(SheetTotals); err != nil {
		return fmt.Errorf("new sheet %s: %w", SheetTotals, err)
	}
	if err := writeSheet(f, SheetTotals, totalsColumns(home, other), totalsRows(res)); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := ensureDir(w.OutFile); err != nil {
		return err
	}
	if err := f.SaveAs(w.OutFile); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (w *Writer) detailRows(res aggregator.Result) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, d := range res.Details {
			if w.DenyList.Contains(d.BaseError) {
				continue
			}
			if !yield([]any{d.Market, d.AssetID, d.Level, d.BaseError, d.FullError}) {
				return
			}
		}
	}
}

func overviewRows(res aggregator.Result) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, o := range res.Overview {
			if !yield([]any{o.Market, o.Message, o.Count, len(o.Affected), o.Level}) {
				return
			}
		}
	}
}

func totalsRows(res aggregator.Result) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, t := range res.Totals {
			if !yield([]any{t.Message, t.Level, t.ErrorsHome, t.ErrorsOther, t.AffectedHome, t.AffectedOther}) {
				return
			}
		}
	}
}

// writeSheet writes the header and rows, then puts an autofilter over the
// used range and fixes the column widths.
func writeSheet(f *excelize.File, sheet string, cols []column, rows iter.Seq[[]any]) error {
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}

	n := 1
	for row := range rows {
		n++
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, n, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(cols), n)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("%s autofilter: %w", sheet, err)
	}

	for i, c := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return fmt.Errorf("%s column %s width: %w", sheet, name, err)
		}
	}
	return nil
}
