// Package aggregator builds the Details, Overview and Totals views of a
// migration run from a stream of categorized records.
package aggregator

import (
	"strings"

	"migration-report-go/internal/types"
)

// Result holds the three finished views, each in first-encounter order.
type Result struct {
	Details  []types.DetailRow
	Overview []types.OverviewRow
	Totals   []types.TotalsRow
}

// Engine accumulates records. It is not safe for concurrent use.
type Engine struct {
	homeMarket string

	details []types.DetailRow

	overview     []types.OverviewRow
	overviewIdx  map[types.OverviewKey]int
	overviewSeen []map[string]struct{}
	totals       []types.TotalsRow
	totalsIdx    map[types.TotalsKey]int
	totalsSeen   []map[types.AffectedAsset]struct{}
}

// New returns an empty engine. Records whose market equals homeMarket
// (case-insensitive) count toward the home columns of Totals.
func New(homeMarket string) *Engine {
	return &Engine{
		homeMarket:  homeMarket,
		overviewIdx: map[types.OverviewKey]int{},
		totalsIdx:   map[types.TotalsKey]int{},
	}
}

// Ingest adds one record with its category to all three views.
func (e *Engine) Ingest(rec types.RawRecord, category string) {
	e.details = append(e.details, types.DetailRow{
		Market:    rec.Market,
		AssetID:   rec.AssetID,
		Level:     rec.Level,
		BaseError: category,
		FullError: rec.Message,
	})
	e.addOverview(rec, category)
	e.addTotals(rec, category)
}

func (e *Engine) addOverview(rec types.RawRecord, category string) {
	key := types.OverviewKey{Market: rec.Market, Message: category, Level: rec.Level}
	if i, ok := e.overviewIdx[key]; ok {
		row := &e.overview[i]
		row.Count++
		if _, seen := e.overviewSeen[i][rec.AssetID]; !seen {
			e.overviewSeen[i][rec.AssetID] = struct{}{}
			row.Affected = append(row.Affected, rec.AssetID)
		}
		return
	}
	e.overviewIdx[key] = len(e.overview)
	e.overview = append(e.overview, types.OverviewRow{
		Market:   rec.Market,
		Message:  category,
		Level:    rec.Level,
		Count:    1,
		Affected: []string{rec.AssetID},
	})
	e.overviewSeen = append(e.overviewSeen, map[string]struct{}{rec.AssetID: {}})
}

func (e *Engine) addTotals(rec types.RawRecord, category string) {
	key := types.TotalsKey{Message: category, Level: rec.Level}
	asset := types.AffectedAsset{ID: rec.AssetID, Market: rec.Market}
	home := e.IsHome(rec.Market)

	if i, ok := e.totalsIdx[key]; ok {
		row := &e.totals[i]
		if home {
			row.ErrorsHome++
		} else {
			row.ErrorsOther++
		}
		if _, seen := e.totalsSeen[i][asset]; !seen {
			e.totalsSeen[i][asset] = struct{}{}
			row.Affected = append(row.Affected, asset)
			if home {
				row.AffectedHome++
			} else {
				row.AffectedOther++
			}
		}
		return
	}

	row := types.TotalsRow{
		Message:  category,
		Level:    rec.Level,
		Affected: []types.AffectedAsset{asset},
	}
	if home {
		row.ErrorsHome, row.AffectedHome = 1, 1
	} else {
		row.ErrorsOther, row.AffectedOther = 1, 1
	}
	e.totalsIdx[key] = len(e.totals)
	e.totals = append(e.totals, row)
	e.totalsSeen = append(e.totalsSeen, map[types.AffectedAsset]struct{}{asset: {}})
}

// IsHome reports whether market belongs to the home group.
func (e *Engine) IsHome(market string) bool {
	return strings.EqualFold(market, e.homeMarket)
}

// Details returns every ingested record in encounter order.
func (e *Engine) Details() []types.DetailRow { return e.details }

// Overview returns one row per (market, category, level).
func (e *Engine) Overview() []types.OverviewRow { return e.overview }

// Totals returns one row per (category, level).
func (e *Engine) Totals() []types.TotalsRow { return e.totals }

// OverviewRow looks up a row by key.
func (e *Engine) OverviewRow(key types.OverviewKey) (types.OverviewRow, bool) {
	i, ok := e.overviewIdx[key]
	if !ok {
		return types.OverviewRow{}, false
	}
	return e.overview[i], true
}

// TotalsRow looks up a row by key.
func (e *Engine) TotalsRow(key types.TotalsKey) (types.TotalsRow, bool) {
	i, ok := e.totalsIdx[key]
	if !ok {
		return types.TotalsRow{}, false
	}
	return e.totals[i], true
}

// Snapshot returns the three views. The slices are shared with the engine
// and must not be modified while ingestion continues.
func (e *Engine) Snapshot() Result {
	return Result{Details: e.details, Overview: e.overview, Totals: e.totals}
}
