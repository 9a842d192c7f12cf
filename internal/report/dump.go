package report

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"os"

	"migration-report-go/internal/aggregator"
	"migration-report-go/internal/types"
)

type detailDump struct {
	Market    string `xml:"Market,attr"`
	AssetID   string `xml:"AssetId,attr"`
	Level     string `xml:"ErrorLevel,attr"`
	BaseError string `xml:"BaseError,attr"`
	FullError string `xml:"FullError,attr"`
}

type assetDump struct {
	ID     string `xml:"Id,attr"`
	Market string `xml:"Market,attr,omitempty"`
}

type overviewDump struct {
	Market   string      `xml:"Market,attr"`
	Message  string      `xml:"Message,attr"`
	Level    string      `xml:"Type,attr"`
	Count    int         `xml:"Count,attr"`
	Affected []assetDump `xml:"AffectedAsset"`
}

type totalsDump struct {
	Message       string      `xml:"Message,attr"`
	Level         string      `xml:"Type,attr"`
	ErrorsHome    int         `xml:"TotalErrorsHome,attr"`
	ErrorsOther   int         `xml:"TotalErrorsOther,attr"`
	AffectedHome  int         `xml:"TotalAffectedAssetsHome,attr"`
	AffectedOther int         `xml:"TotalAffectedAssetsOther,attr"`
	Affected      []assetDump `xml:"AffectedAsset"`
}

// WriteDumps persists the unfiltered aggregates as XML.
func (w *Writer) WriteDumps(res aggregator.Result) error {
	paths := w.DumpPaths()
	if err := writeDump(paths[0], "DetailsRows", res.Details, func(d types.DetailRow) any {
		return detailDump(d)
	}); err != nil {
		return err
	}
	if err := writeDump(paths[1], "OverviewRows", res.Overview, func(o types.OverviewRow) any {
		d := overviewDump{Market: o.Market, Message: o.Message, Level: o.Level, Count: o.Count}
		for _, id := range o.Affected {
			d.Affected = append(d.Affected, assetDump{ID: id})
		}
		return d
	}); err != nil {
		return err
	}
	return writeDump(paths[2], "TotalRows", res.Totals, func(t types.TotalsRow) any {
		d := totalsDump{
			Message:       t.Message,
			Level:         t.Level,
			ErrorsHome:    t.ErrorsHome,
			ErrorsOther:   t.ErrorsOther,
			AffectedHome:  t.AffectedHome,
			AffectedOther: t.AffectedOther,
		}
		for _, a := range t.Affected {
			d.Affected = append(d.Affected, assetDump{ID: a.ID, Market: a.Market})
		}
		return d
	})
}

// writeDump streams rows as <root><Row .../>...</root>.
func writeDump[T any](path, root string, rows []T, conv func(T) any) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := bw.WriteString(xml.Header); err != nil {
		return fmt.Errorf("write dump %s: %w", path, err)
	}
	enc := xml.NewEncoder(bw)
	enc.Indent("", "  ")

	start := xml.StartElement{Name: xml.Name{Local: root}}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("write dump %s: %w", path, err)
	}
	rowElem := xml.StartElement{Name: xml.Name{Local: "Row"}}
	for _, r := range rows {
		if err := enc.EncodeElement(conv(r), rowElem); err != nil {
			return fmt.Errorf("write dump %s: %w", path, err)
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("write dump %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("write dump %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write dump %s: %w", path, err)
	}
	return f.Close()
}
