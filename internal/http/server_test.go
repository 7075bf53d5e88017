package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"procure/internal/core"
	"procure/internal/memory"
	"procure/internal/middleware/ratelimit"
	"procure/internal/services"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv := NewServer(Config{
		Addr: ":0",
		RateLimit: ratelimit.Config{
			RequestsPerWindow: 100000,
			Window:            time.Minute,
		},
	}, memory.NewSeeded(), nil)
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["status"] != "OK" {
		t.Errorf("status field = %v, want OK", body["status"])
	}
}

func TestServer_APIIndex(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["message"] != "California DGS Small Business Procurement API" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestServer_ListVendors(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/vendors", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page services.VendorPage
	decodeBody(t, rec, &page)

	if page.Pagination.Page != 1 || page.Pagination.Limit != 20 {
		t.Errorf("pagination defaults = %+v, want page 1 limit 20", page.Pagination)
	}
	if page.Pagination.Total != 3 || page.Pagination.Pages != 1 {
		t.Errorf("pagination = %+v, want total 3 pages 1", page.Pagination)
	}
	if len(page.Vendors) != 3 {
		t.Fatalf("len(vendors) = %d, want 3", len(page.Vendors))
	}
	// Highest rated seeded vendor sorts first.
	if page.Vendors[0].Name != "VetTech Solutions LLC" {
		t.Errorf("vendors[0] = %q, want VetTech Solutions LLC", page.Vendors[0].Name)
	}
}

func TestServer_ListVendors_QueryValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "non-numeric page", target: "/api/vendors?page=abc", want: http.StatusBadRequest},
		{name: "non-numeric limit", target: "/api/vendors?limit=abc", want: http.StatusBadRequest},
		{name: "page zero", target: "/api/vendors?page=0", want: http.StatusBadRequest},
		{name: "limit over max", target: "/api/vendors?limit=101", want: http.StatusBadRequest},
		{name: "valid window", target: "/api/vendors?page=2&limit=2", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, tt.target, nil)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestServer_ListVendors_Search(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/vendors?search=office", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page services.VendorPage
	decodeBody(t, rec, &page)
	if page.Pagination.Total != 1 {
		t.Fatalf("total = %d, want 1", page.Pagination.Total)
	}
	if page.Vendors[0].Name != "Central Coast Office Solutions" {
		t.Errorf("vendors[0] = %q", page.Vendors[0].Name)
	}
}

func TestServer_VendorCRUD(t *testing.T) {
	srv := newTestServer(t)

	createBody := map[string]any{
		"name":         "Test Vendor Inc",
		"category":     "Office Supplies",
		"businessType": core.SmallBusiness,
		"location":     "Oakland, CA",
		"distance":     7.5,
		"rating":       5.0,
		"reviewCount":  12,
		"email":        "sales@testvendor.example.com",
		"specialties":  []string{"Paper", "Toner"},
	}

	rec := doRequest(t, srv, http.MethodPost, "/api/vendors", createBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var created struct {
		Message string `json:"message"`
		Vendor  struct {
			UUID string `json:"uuid"`
		} `json:"vendor"`
	}
	decodeBody(t, rec, &created)
	if created.Message != "Vendor created successfully" || created.Vendor.UUID == "" {
		t.Fatalf("create response = %s", rec.Body.String())
	}

	// Round trip: the created vendor is readable with decoded tags.
	rec = doRequest(t, srv, http.MethodGet, "/api/vendors/"+created.Vendor.UUID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var fetched core.Vendor
	decodeBody(t, rec, &fetched)
	if fetched.Name != "Test Vendor Inc" || fetched.Rating != 5.0 {
		t.Errorf("fetched = %+v", fetched)
	}
	if len(fetched.Specialties) != 2 {
		t.Errorf("specialties = %v, want 2 entries", fetched.Specialties)
	}

	// Update one field.
	rec = doRequest(t, srv, http.MethodPut, "/api/vendors/"+created.Vendor.UUID, map[string]any{"rating": 4.2})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, srv, http.MethodGet, "/api/vendors/"+created.Vendor.UUID, nil)
	decodeBody(t, rec, &fetched)
	if fetched.Rating != 4.2 {
		t.Errorf("rating after update = %v, want 4.2", fetched.Rating)
	}
	if fetched.Name != "Test Vendor Inc" {
		t.Errorf("name after partial update = %q, want unchanged", fetched.Name)
	}

	// Delete, then reads 404.
	rec = doRequest(t, srv, http.MethodDelete, "/api/vendors/"+created.Vendor.UUID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/api/vendors/"+created.Vendor.UUID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted status = %d, want 404", rec.Code)
	}
}

func TestServer_VendorErrors(t *testing.T) {
	srv := newTestServer(t)

	t.Run("create with invalid rating", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/vendors", map[string]any{
			"name":         "Bad Vendor",
			"category":     "C",
			"businessType": core.SmallBusiness,
			"location":     "L",
			"rating":       9,
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		var body map[string]string
		decodeBody(t, rec, &body)
		if body["error"] == "" {
			t.Errorf("missing error field: %s", rec.Body.String())
		}
	})

	t.Run("create with malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/vendors", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("get unknown vendor", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/vendors/no-such-uuid", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		var body map[string]string
		decodeBody(t, rec, &body)
		if body["error"] != "Vendor not found" {
			t.Errorf("error = %q, want Vendor not found", body["error"])
		}
	})

	t.Run("update unknown vendor", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPut, "/api/vendors/no-such-uuid", map[string]any{"rating": 3})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("delete unknown vendor", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodDelete, "/api/vendors/no-such-uuid", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestServer_Categories(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var cats []core.Category
	decodeBody(t, rec, &cats)
	if len(cats) != 4 {
		t.Fatalf("len(categories) = %d, want 4", len(cats))
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/categories/Office%20Supplies", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("category status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var cat core.Category
	decodeBody(t, rec, &cat)
	if cat.Name != "Office Supplies" {
		t.Errorf("category = %+v", cat)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/categories/Nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing category status = %d, want 404", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/categories/Office%20Supplies/vendors", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("category vendors status = %d, want 200", rec.Code)
	}
	var vendors []core.Vendor
	decodeBody(t, rec, &vendors)
	if len(vendors) != 1 || vendors[0].Name != "Central Coast Office Solutions" {
		t.Errorf("category vendors = %v", vendors)
	}
}

func TestServer_DashboardMetrics(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/analytics/dashboard-metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var metrics services.DashboardMetrics
	decodeBody(t, rec, &metrics)

	if metrics.TotalVendors != 3 {
		t.Errorf("TotalVendors = %d, want 3", metrics.TotalVendors)
	}
	if metrics.DGSContracts != 2 {
		t.Errorf("DGSContracts = %d, want 2", metrics.DGSContracts)
	}
	if metrics.MonthlySavings != 142000 {
		t.Errorf("MonthlySavings = %d, want 142000", metrics.MonthlySavings)
	}
	if metrics.Compliance.SMBGoal != 25 || metrics.Compliance.DVBEGoal != 3 {
		t.Errorf("compliance goals = %+v", metrics.Compliance)
	}
}

func TestServer_AnalyticsCacheInvalidation(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/analytics/dashboard-metrics", nil)
	var before services.DashboardMetrics
	decodeBody(t, rec, &before)

	rec = doRequest(t, srv, http.MethodPost, "/api/vendors", map[string]any{
		"name":         "Cache Buster",
		"category":     "Food Services",
		"businessType": core.SmallBusiness,
		"location":     "Davis, CA",
		"rating":       4.0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/analytics/dashboard-metrics", nil)
	var after services.DashboardMetrics
	decodeBody(t, rec, &after)

	if after.TotalVendors != before.TotalVendors+1 {
		t.Errorf("TotalVendors after create = %d, want %d", after.TotalVendors, before.TotalVendors+1)
	}
}

func TestServer_AnalyticsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	targets := []string{
		"/api/analytics/spending-trends",
		"/api/analytics/category-performance",
		"/api/analytics/vendor-distribution",
		"/api/analytics/geographic-distribution",
	}
	for _, target := range targets {
		rec := doRequest(t, srv, http.MethodGet, target, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", target, rec.Code)
		}
	}
}

func TestServer_Advisor(t *testing.T) {
	srv := newTestServer(t)

	t.Run("recommendations", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/ai/recommendations", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var recs []core.Recommendation
		decodeBody(t, rec, &recs)
		if len(recs) != 2 {
			t.Fatalf("len(recommendations) = %d, want 2", len(recs))
		}
		if recs[0].Confidence < recs[1].Confidence {
			t.Errorf("recommendations not ordered by confidence: %v", recs)
		}
	})

	t.Run("chat", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/ai/chat", map[string]any{"message": "find dvbe vendors"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		var reply services.ChatReply
		decodeBody(t, rec, &reply)
		if reply.SessionID == "" || reply.Response == "" {
			t.Errorf("reply = %+v", reply)
		}
	})

	t.Run("chat empty message", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/ai/chat", map[string]any{"message": ""})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("insights", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/ai/insights", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var insights []services.Insight
		decodeBody(t, rec, &insights)
		if len(insights) < 2 {
			t.Errorf("len(insights) = %d, want at least 2", len(insights))
		}
	})

	t.Run("feedback", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/ai/recommendations/feedback", map[string]any{
			"recommendationId": 1,
			"feedback":         "helpful",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
	})

	t.Run("feedback invalid", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/ai/recommendations/feedback", map[string]any{
			"recommendationId": 1,
			"feedback":         "amazing",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestServer_SecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("Content-Security-Policy header missing")
	}
}

func TestServer_RateLimit(t *testing.T) {
	srv := NewServer(Config{
		Addr: ":0",
		RateLimit: ratelimit.Config{
			RequestsPerWindow: 2,
			Window:            time.Minute,
		},
	}, memory.NewSeeded(), nil)
	defer srv.Close()

	for i := 0; i < 2; i++ {
		rec := doRequest(t, srv, http.MethodGet, "/api/vendors", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/vendors", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}

	// The health endpoint sits outside the rate limited API tree.
	rec = doRequest(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}
