// Package models defines data structures for Open-Hedge
package models

// Fund represents one institutional manager's 13F filing summary.
// Records are created by an external ingestion process; the portal is read-only.
type Fund struct {
	ID              int64   `json:"id"`
	CompanyName     string  `json:"company_name"`
	ReportDate      string  `json:"report_date"` // YYYY-MM-DD quarter end
	QuarterlyReturn float64 `json:"quarterly_return"`
	FilingURL       string  `json:"filing_url"`
	HoldingsCount   int     `json:"holdings_count"`
	AUM             float64 `json:"aum,omitempty"`
}

// Holding represents a single position inside one fund's filing.
type Holding struct {
	ID          int64   `json:"id"`
	CompanyName string  `json:"company_name"`
	ReportDate  string  `json:"report_date"`
	Symbol      string  `json:"symbol"`
	IssuerName  string  `json:"issuer_name"`
	CUSIP       string  `json:"cusip,omitempty"`
	Shares      int64   `json:"shares"`
	Value       float64 `json:"value"` // USD market value at report date
}

// InstitutionalOwner represents one fund's position in a given stock,
// as shown on the stock detail view.
type InstitutionalOwner struct {
	CompanyName string  `json:"company_name"`
	ReportDate  string  `json:"report_date"`
	Shares      int64   `json:"shares"`
	Value       float64 `json:"value"`
}
