// Package report renders the aggregated views: an .xlsx workbook with one
// sheet per view plus raw XML dumps of the unfiltered aggregates.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"migration-report-go/internal/aggregator"
	"migration-report-go/internal/logger"
	"migration-report-go/internal/normalizer"
)

// Writer renders one run. OutFile is the workbook path, dumps go to
// DumpDir as <Stamp>_Details.xml, <Stamp>_Overview.xml and
// <Stamp>_Totals.xml.
type Writer struct {
	OutFile  string
	DumpDir  string
	Stamp    string
	DenyList normalizer.DenyList

	// Column suffixes for the home and other market groups in Totals.
	HomeLabel  string
	OtherLabel string

	Log *logger.Logger
}

// Render writes the dumps first, then the workbook.
func (w *Writer) Render(res aggregator.Result) error {
	log := w.logger()
	if err := w.WriteDumps(res); err != nil {
		return err
	}
	log.WithField("dump_dir", w.DumpDir).Info("aggregate dumps written")

	log.Info("creating and formatting spreadsheet")
	if err := w.WriteWorkbook(res); err != nil {
		return err
	}
	log.WithField("out_file", w.OutFile).Info("workbook saved")
	return nil
}

// DumpPaths returns the three dump file paths in Details, Overview,
// Totals order.
func (w *Writer) DumpPaths() [3]string {
	return [3]string{
		filepath.Join(w.DumpDir, w.Stamp+"_Details.xml"),
		filepath.Join(w.DumpDir, w.Stamp+"_Overview.xml"),
		filepath.Join(w.DumpDir, w.Stamp+"_Totals.xml"),
	}
}

func (w *Writer) logger() *logger.Logger {
	if w.Log == nil {
		w.Log = logger.New()
	}
	return w.Log.Component("report")
}

func (w *Writer) labels() (home, other string) {
	home, other = w.HomeLabel, w.OtherLabel
	if home == "" {
		home = "Home"
	}
	if other == "" {
		other = "Other"
	}
	return home, other
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}
