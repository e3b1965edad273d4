package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPageReturnsBodyOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.Contains(got, "Chrome") {
			t.Errorf("User-Agent = %q, want browser identity", got)
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("<html><body>maintenance</body></html>"))
	}))
	defer srv.Close()

	c := NewClient()
	body, err := c.Page(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if !strings.Contains(body, "maintenance") {
		t.Errorf("body = %q", body)
	}
}

func TestPageTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := NewClient()
	if _, err := c.Page(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestPricingRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient()
	if _, err := c.Pricing(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 pricing page")
	}
}

func TestPricingReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<main>Plans</main>"))
	}))
	defer srv.Close()

	c := NewClient()
	body, err := c.Pricing(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Pricing() error = %v", err)
	}
	if !strings.Contains(body, "Plans") {
		t.Errorf("body = %q", body)
	}
}
