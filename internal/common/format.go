// Package common provides shared utilities for Open-Hedge
package common

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
)

// FormatMoney formats a float as a USD amount with comma separators
func FormatMoney(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	m := money.New(int64(math.Round(v*100)), money.USD)
	if negative {
		return "-" + m.Display()
	}
	return m.Display()
}

// FormatSignedMoney formats a dollar amount with +/- prefix
func FormatSignedMoney(v float64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatSignedPct formats a percentage with +/- prefix
func FormatSignedPct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatPct formats a percentage with two decimals
func FormatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatShares formats a share count with comma separators.
// Negative counts keep their sign.
func FormatShares(v int64) string {
	negative := v < 0
	if negative {
		v = -v
	}

	s := fmt.Sprintf("%d", v)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ",")
	}

	if negative {
		return "-" + s
	}
	return s
}

// FormatSignedShares formats a share delta with +/- prefix.
func FormatSignedShares(v int64) string {
	if v >= 0 {
		return "+" + FormatShares(v)
	}
	return FormatShares(v)
}

// FormatValue formats a large USD value with appropriate suffix (K/M/B).
// Used for AUM and aggregate flow columns where cents are noise.
func FormatValue(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.2fK", v/1e3)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
