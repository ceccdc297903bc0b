package models

// Requests for the series HTTP endpoints. Defined in domain for consistency and reuse.

type SeriesRequest struct {
	Symbol     string `query:"symbol" json:"symbol" validate:"required,max=12"`
	TF         string `query:"tf" json:"tf" default:"1d" validate:"oneof=1m 5m 15m 1h 1d"`
	Offset     int    `query:"offset" json:"offset" validate:"gte=-5000,lte=5000"`
	Base       string `query:"base" json:"base"` // YYYY-MM-DD, defaults to today
	Indicators bool   `query:"indicators" json:"indicators"`
}

type ScanRequest struct {
	Date string `query:"date" json:"date"` // YYYY-MM-DD, defaults to last trading day
}

// CacheStats is the cache occupancy snapshot exposed to collaborators.
type CacheStats struct {
	EntryCount      int `json:"entry_count"`
	ScanResultCount int `json:"scan_result_count"`
}

// ScanRow is one symbol's indicator snapshot inside a scan result.
type ScanRow struct {
	Symbol string  `json:"symbol"`
	Close  float64 `json:"close"`
	EMA20  float64 `json:"ema20"`
	ATR14  float64 `json:"atr14"`
	Bars   int     `json:"bars"`
}

// ScanResult is the cached payload for a scan-date key.
type ScanResult struct {
	Date string    `json:"date"`
	Rows []ScanRow `json:"rows"`
}
