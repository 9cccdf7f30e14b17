package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pranshu-J/Open-Hedge/internal/analytics"
	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
)

func TestFundDetailHandler_ComputesChangeColumns(t *testing.T) {
	queries := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/filings":
			json.NewEncoder(w).Encode([]models.Fund{
				{CompanyName: "SCION ASSET MANAGEMENT", ReportDate: "2024-06-30", HoldingsCount: 2},
				{CompanyName: "SCION ASSET MANAGEMENT", ReportDate: "2024-03-31", HoldingsCount: 2},
			})
		case "/rest/v1/holdings":
			switch r.URL.Query().Get("report_date") {
			case "eq.2024-06-30":
				json.NewEncoder(w).Encode([]models.Holding{
					{Symbol: "BABA", Shares: 150_000, Value: 12_000_000},
					{Symbol: "JD", Shares: 100_000, Value: 4_000_000},
				})
			case "eq.2024-03-31":
				json.NewEncoder(w).Encode([]models.Holding{
					{Symbol: "BABA", Shares: 100_000, Value: 8_000_000},
				})
			default:
				w.Write([]byte("[]"))
			}
		default:
			http.NotFound(w, r)
		}
	})
	h := NewFundDetailHandler(common.NewSilentLogger(), queries)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/funds/SCION%20ASSET%20MANAGEMENT", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Fund     models.Fund             `json:"fund"`
		Holdings []analytics.HoldingRow  `json:"holdings"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Fund.ReportDate != "2024-06-30" {
		t.Errorf("fund period = %q, want latest", resp.Fund.ReportDate)
	}
	if len(resp.Holdings) != 2 {
		t.Fatalf("holdings len = %d", len(resp.Holdings))
	}

	baba := resp.Holdings[0]
	if baba.ShareChange != 50_000 || baba.IsNew {
		t.Errorf("BABA row = %+v, want +50000 shares", baba)
	}
	jd := resp.Holdings[1]
	if !jd.IsNew {
		t.Errorf("JD row = %+v, want new position", jd)
	}
	if baba.WeightPct < 74.9 || baba.WeightPct > 75.1 {
		t.Errorf("BABA weight = %f, want 75", baba.WeightPct)
	}
}

func TestFundDetailHandler_UnknownFund(t *testing.T) {
	queries := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	h := NewFundDetailHandler(common.NewSilentLogger(), queries)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/funds/NOBODY", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestFundDetailHandler_MissingName(t *testing.T) {
	h := NewFundDetailHandler(common.NewSilentLogger(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/funds/", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
