package models

// InstitutionChange describes one institution's period-over-period move in a symbol.
// Embedded in the trending ticker payload produced by the ingestion process.
type InstitutionChange struct {
	Institution string  `json:"institution"`
	ShareChange int64   `json:"share_change"`
	ValueChange float64 `json:"value_change"`
}

// TrendingTicker represents a symbol with elevated institutional activity
// in the latest reporting period.
type TrendingTicker struct {
	Symbol  string              `json:"symbol"`
	Name    string              `json:"name,omitempty"`
	Changes []InstitutionChange `json:"changes"`
}
