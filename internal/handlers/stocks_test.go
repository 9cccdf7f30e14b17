package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
)

func TestStockSearchHandler_CallsRPCAndDedupes(t *testing.T) {
	var gotPath string
	var gotParams map[string]string
	queries := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotParams)
		json.NewEncoder(w).Encode([]models.SecurityRef{
			{Symbol: "AAPL", Description: "Apple Inc"},
			{Symbol: "aapl", Description: "Apple Inc duplicate"},
			{Symbol: "AMZN", Description: "Amazon.com Inc"},
		})
	})
	h := NewStockSearchHandler(common.NewSilentLogger(), queries)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/stocks/search?q=ap", nil))

	if gotPath != "/rest/v1/rpc/search_securities" {
		t.Errorf("rpc path = %q", gotPath)
	}
	if gotParams["keyword"] != "ap" {
		t.Errorf("keyword = %q", gotParams["keyword"])
	}

	var resp struct {
		Results []models.SecurityRef `json:"results"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Results) != 2 {
		t.Errorf("results = %+v, want case-insensitive dedupe to 2", resp.Results)
	}
}

func TestStockSearchHandler_ShortTermSkipsBackend(t *testing.T) {
	called := false
	queries := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte("[]"))
	})
	h := NewStockSearchHandler(common.NewSilentLogger(), queries)

	for _, q := range []string{"", "a", "  a  "} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/api/stocks/search?q="+url.QueryEscape(q), nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	}
	if called {
		t.Error("below-minimum terms must not reach the backend")
	}
}

func TestStockSearchHandler_RPCErrorDegradesToEmpty(t *testing.T) {
	queries := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"rpc failed"}`, http.StatusInternalServerError)
	})
	h := NewStockSearchHandler(common.NewSilentLogger(), queries)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/stocks/search?q=apple", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Results []models.SecurityRef `json:"results"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Results) != 0 {
		t.Errorf("results = %+v, want empty", resp.Results)
	}
}
