package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Pranshu-J/Open-Hedge/internal/models"
)

func TestBuilder_URL_Filters(t *testing.T) {
	c := NewClient("http://backend.local", "anon", nil)

	raw := c.From("funds").
		Select("company_name,report_date").
		ILike("company_name", "berkshire").
		Order("report_date", false).
		URL()

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid URL: %v", err)
	}
	if u.Path != "/rest/v1/funds" {
		t.Errorf("expected path /rest/v1/funds, got %s", u.Path)
	}

	q := u.Query()
	if q.Get("select") != "company_name,report_date" {
		t.Errorf("unexpected select: %s", q.Get("select"))
	}
	if q.Get("company_name") != "ilike.*berkshire*" {
		t.Errorf("unexpected ilike filter: %s", q.Get("company_name"))
	}
	if q.Get("order") != "report_date.desc" {
		t.Errorf("unexpected order: %s", q.Get("order"))
	}
}

func TestBuilder_URL_EqInAndMultiOrder(t *testing.T) {
	c := NewClient("http://backend.local", "anon", nil)

	raw := c.From("holdings").
		Eq("company_name", "Bridgewater").
		In("symbol", "AAPL", "MSFT").
		Order("value", false).
		Order("symbol", true).
		URL()

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid URL: %v", err)
	}
	q := u.Query()
	if q.Get("company_name") != "eq.Bridgewater" {
		t.Errorf("unexpected eq filter: %s", q.Get("company_name"))
	}
	if q.Get("symbol") != "in.(AAPL,MSFT)" {
		t.Errorf("unexpected in filter: %s", q.Get("symbol"))
	}
	if q.Get("order") != "value.desc,symbol.asc" {
		t.Errorf("unexpected order: %s", q.Get("order"))
	}
}

func TestBuilder_Into_SendsAuthAndRangeHeaders(t *testing.T) {
	var gotRange, gotAPIKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRange = r.Header.Get("Range")
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"company_name":"Scion Asset Management"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", nil)

	var funds []models.Fund
	err := c.From("funds").Range(20, 39).Into(context.Background(), &funds)
	if err != nil {
		t.Fatalf("Into failed: %v", err)
	}

	if gotRange != "20-39" {
		t.Errorf("expected Range header 20-39, got %s", gotRange)
	}
	if gotAPIKey != "anon-key" {
		t.Errorf("expected apikey header, got %s", gotAPIKey)
	}
	if gotAuth != "Bearer anon-key" {
		t.Errorf("expected bearer auth header, got %s", gotAuth)
	}
	if len(funds) != 1 || funds[0].CompanyName != "Scion Asset Management" {
		t.Errorf("unexpected decode result: %+v", funds)
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"column funds.bogus does not exist"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)

	var funds []models.Fund
	err := c.From("funds").Into(context.Background(), &funds)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, "bogus") {
		t.Errorf("expected envelope message, got %s", apiErr.Message)
	}
}

func TestClient_RPC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/rest/v1/rpc/search_tickers" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`[{"symbol":"AAPL","description":"APPLE INC"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)

	var refs []models.SecurityRef
	err := c.RPC(context.Background(), "search_tickers", map[string]string{"keyword": "app"}, &refs)
	if err != nil {
		t.Fatalf("RPC failed: %v", err)
	}
	if len(refs) != 1 || refs[0].Symbol != "AAPL" {
		t.Errorf("unexpected rpc result: %+v", refs)
	}
}

func TestClient_GetProfile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)

	profile, found, err := c.GetProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if found {
		t.Error("expected found=false for empty result")
	}
	if profile != nil {
		t.Errorf("expected nil profile, got %+v", profile)
	}
}

func TestClient_GetProfile_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_id"); got != "eq.user-1" {
			t.Errorf("expected user_id=eq.user-1 filter, got %s", got)
		}
		w.Write([]byte(`[{"user_id":"user-1","portfolio":[{"id":"p1","symbol":"AAPL","shares":10,"avg_price":150}]}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)

	profile, found, err := c.GetProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}
	if len(profile.Portfolio) != 1 || profile.Portfolio[0].Symbol != "AAPL" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestClient_UpdateProfile_UsesPatch(t *testing.T) {
	var gotMethod, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)

	err := c.UpdateProfile(context.Background(), "user-1", &models.UserProfile{UserID: "user-1"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("expected PATCH, got %s", gotMethod)
	}
	if gotQuery != "user_id=eq.user-1" {
		t.Errorf("unexpected query: %s", gotQuery)
	}
}
