package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ordersight/config"
)

func restTestClient(t *testing.T, handler http.HandlerFunc) *restClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := newRESTClient(&config.RESTConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Table:   "Orders",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("new rest client: %v", err)
	}
	return c
}

func TestRESTFetchPageRequestShape(t *testing.T) {
	var gotPath string
	var gotAPIKey, gotAuth string
	c := restTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")

		q := r.URL.Query()
		if q.Get("select") != "*" || q.Get("order") != "id.asc" {
			t.Errorf("unexpected query: %v", q)
		}
		if q.Get("offset") != "2000" || q.Get("limit") != "1000" {
			t.Errorf("window: offset=%s limit=%s", q.Get("offset"), q.Get("limit"))
		}
		if q.Get("subscriber_name") != "eq.netaq_aljamal" {
			t.Errorf("scope filter = %q", q.Get("subscriber_name"))
		}
		json.NewEncoder(w).Encode([]restOrder{})
	})

	if _, err := c.FetchPage(context.Background(), "netaq_aljamal", 2000, 1000); err != nil {
		t.Fatalf("fetch page: %v", err)
	}
	if gotPath != "/rest/v1/Orders" {
		t.Errorf("path = %q, want /rest/v1/Orders", gotPath)
	}
	if gotAPIKey != "test-key" || gotAuth != "Bearer test-key" {
		t.Errorf("auth headers: apikey=%q authorization=%q", gotAPIKey, gotAuth)
	}
}

func TestRESTFetchPageUnscopedOmitsFilter(t *testing.T) {
	c := restTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["subscriber_name"]; ok {
			t.Error("unscoped request carries a subscriber filter")
		}
		json.NewEncoder(w).Encode([]restOrder{})
	})
	if _, err := c.FetchPage(context.Background(), "", 0, 1000); err != nil {
		t.Fatalf("fetch page: %v", err)
	}
}

func TestRESTFetchPageDecodesRows(t *testing.T) {
	c := restTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]restOrder{
			{ID: 35, SubscriberName: "netaq_aljamal", OrderID: "6208391577782",
				Phone: "201111035622", Status: "PENDING",
				CreatedAt: "2025-11-28T21:45:00Z"},
			{ID: 36, SubscriberName: "netaq_aljamal", OrderID: "6208391577783",
				Phone: "201111035623", Status: "CONFIRMED",
				CreatedAt: "garbage"},
		})
	})

	orders, err := c.FetchPage(context.Background(), "netaq_aljamal", 0, 1000)
	if err != nil {
		t.Fatalf("fetch page: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}
	want := time.Date(2025, 11, 28, 21, 45, 0, 0, time.UTC)
	if !orders[0].CreatedAt.Equal(want) {
		t.Errorf("created_at = %v, want %v", orders[0].CreatedAt, want)
	}
	// Unparseable timestamps degrade to the zero time instead of failing
	// the whole page.
	if !orders[1].CreatedAt.IsZero() {
		t.Errorf("bad created_at parsed to %v, want zero time", orders[1].CreatedAt)
	}
}

func TestRESTFetchPageHTTPError(t *testing.T) {
	c := restTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusForbidden)
	})

	_, err := c.FetchPage(context.Background(), "", 0, 1000)
	if err == nil {
		t.Fatal("expected error for HTTP 403")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error %q does not report the status code", err)
	}
}

func TestRESTRequiresBaseURL(t *testing.T) {
	if _, err := newRESTClient(&config.RESTConfig{}); err == nil {
		t.Fatal("expected error for missing base_url")
	}
}
