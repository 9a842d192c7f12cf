package types

// RawRecord is one error entry read from a market's ConvertAssets.xml.
type RawRecord struct {
	Market  string `json:"market"`
	AssetID string `json:"asset_id"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// DetailRow is a RawRecord paired with its normalized category.
type DetailRow struct {
	Market    string `json:"market"`
	AssetID   string `json:"asset_id"`
	Level     string `json:"error_level"`
	BaseError string `json:"base_error"`
	FullError string `json:"full_error"`
}
