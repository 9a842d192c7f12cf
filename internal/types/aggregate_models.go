// internal/types/aggregate_models.go
package types

// --------------------------------------------
// Overview: one row per (market, message, level)
// --------------------------------------------
type OverviewKey struct {
	Market  string
	Message string
	Level   string
}

type OverviewRow struct {
	Market   string   `json:"market"`
	Message  string   `json:"message"`
	Level    string   `json:"type"`
	Count    int      `json:"count"`
	Affected []string `json:"affected_assets"` // distinct asset ids, first-seen order
}

func (r OverviewRow) Key() OverviewKey {
	return OverviewKey{Market: r.Market, Message: r.Message, Level: r.Level}
}

// --------------------------------------------
// Totals: one row per (message, level) across markets
// --------------------------------------------
type TotalsKey struct {
	Message string
	Level   string
}

// AffectedAsset is the dedup key for totals. The same asset id in two
// markets is two affected assets.
type AffectedAsset struct {
	ID     string `json:"id"`
	Market string `json:"market"`
}

type TotalsRow struct {
	Message       string          `json:"message"`
	Level         string          `json:"type"`
	ErrorsHome    int             `json:"total_errors_home"`
	ErrorsOther   int             `json:"total_errors_other"`
	AffectedHome  int             `json:"total_affected_assets_home"`
	AffectedOther int             `json:"total_affected_assets_other"`
	Affected      []AffectedAsset `json:"affected_assets"`
}

func (r TotalsRow) Key() TotalsKey {
	return TotalsKey{Message: r.Message, Level: r.Level}
}
