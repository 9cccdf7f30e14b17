// Package analytics computes the derived per-row metrics shown in the
// holdings and trending tables: portfolio weights, period-over-period share
// deltas, and institutional sentiment aggregates.
package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
)

// HoldingRow is a holding decorated with computed columns. The *Display
// fields carry the formatted strings the tables render so every client shows
// the same rounding and separators.
type HoldingRow struct {
	models.Holding
	WeightPct   float64 `json:"weight_pct"`
	ShareChange int64   `json:"share_change"`
	ChangePct   float64 `json:"change_pct"`
	IsNew       bool    `json:"is_new"`
	Unchanged   bool    `json:"unchanged"`

	SharesDisplay      string `json:"shares_display"`
	ValueDisplay       string `json:"value_display"`
	WeightDisplay      string `json:"weight_display"`
	ShareChangeDisplay string `json:"share_change_display,omitempty"`
	ChangePctDisplay   string `json:"change_pct_display,omitempty"`
}

// BuildHoldingRows computes weight and share-delta columns for the loaded
// holdings of one fund against the immediately preceding period's holdings.
//
// Weight is each row's value over the sum of the CURRENTLY LOADED rows, so
// under partial pagination the column is wrong until the full set loads.
// That matches the product's observed behavior and is kept deliberately.
//
// A symbol absent from the previous period is flagged NEW; zero delta is a
// neutral unchanged state. previous may be nil (oldest filing on record),
// which flags every row NEW.
func BuildHoldingRows(current, previous []models.Holding) []HoldingRow {
	total := decimal.Zero
	for _, h := range current {
		total = total.Add(decimal.NewFromFloat(h.Value))
	}

	prevShares := make(map[string]int64, len(previous))
	for _, h := range previous {
		prevShares[strings.ToUpper(h.Symbol)] = h.Shares
	}

	hundred := decimal.NewFromInt(100)
	rows := make([]HoldingRow, 0, len(current))
	for _, h := range current {
		row := HoldingRow{Holding: h}

		if total.IsPositive() {
			w, _ := decimal.NewFromFloat(h.Value).Mul(hundred).Div(total).Float64()
			row.WeightPct = w
		}

		prev, held := prevShares[strings.ToUpper(h.Symbol)]
		if !held {
			row.IsNew = true
		} else {
			row.ShareChange = h.Shares - prev
			row.Unchanged = row.ShareChange == 0
			if prev != 0 {
				pct, _ := decimal.NewFromInt(row.ShareChange).Mul(hundred).Div(decimal.NewFromInt(prev)).Float64()
				row.ChangePct = pct
			}
			row.ShareChangeDisplay = common.FormatSignedShares(row.ShareChange)
			row.ChangePctDisplay = common.FormatSignedPct(row.ChangePct)
		}

		row.SharesDisplay = common.FormatShares(h.Shares)
		row.ValueDisplay = common.FormatValue(h.Value)
		row.WeightDisplay = common.FormatPct(row.WeightPct)

		rows = append(rows, row)
	}
	return rows
}

// PreviousReportDate resolves the immediately preceding period for a company:
// the next-most-recent report date strictly older than current. Returns
// ok=false when current is the oldest filing on record.
func PreviousReportDate(dates []string, current string) (string, bool) {
	sorted := make([]string, len(dates))
	copy(sorted, dates)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	for _, d := range sorted {
		if d < current {
			return d, true
		}
	}
	return "", false
}
