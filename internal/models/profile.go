package models

import (
	"strings"
	"time"
)

// Position is a single user-added watchlist entry inside the profile document.
// This is the only durable state owned by the user.
type Position struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	CUSIP     string    `json:"cusip,omitempty"`
	Shares    float64   `json:"shares"`
	AvgPrice  float64   `json:"avg_price"`
	DateAdded time.Time `json:"date_added"`
}

// CostBasis returns shares times average cost.
func (p Position) CostBasis() float64 {
	return p.Shares * p.AvgPrice
}

// UserProfile is the per-user profile document stored in the backend.
// The whole document is read-modify-written on every mutation; there is no
// server-side merge, so concurrent edits race (last writer wins).
type UserProfile struct {
	UserID    string     `json:"user_id"`
	Email     string     `json:"email,omitempty"`
	Portfolio []Position `json:"portfolio"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
}

// FindPosition returns the position and index for a given id, or -1 if not found.
func (u *UserProfile) FindPosition(id string) (*Position, int) {
	for i := range u.Portfolio {
		if u.Portfolio[i].ID == id {
			return &u.Portfolio[i], i
		}
	}
	return nil, -1
}

// HasSymbol reports whether any position holds the given symbol.
func (u *UserProfile) HasSymbol(symbol string) bool {
	for _, p := range u.Portfolio {
		if strings.EqualFold(p.Symbol, symbol) {
			return true
		}
	}
	return false
}
