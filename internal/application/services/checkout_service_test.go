package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
)

func validCheckoutRequest() CheckoutRequest {
	return CheckoutRequest{
		VehicleType:    "model-y",
		PickupDate:     "2026-09-10",
		DropoffDate:    "2026-09-20",
		PickupLocation: "los-angeles",
		CustomerEmail:  "traveler@example.com",
	}
}

func newCheckoutFixture(t *testing.T, upstream http.HandlerFunc) (*CheckoutService, *engagementFixture) {
	t.Helper()
	f := newEngagementFixture(t)
	logger := newTestLogger(t)
	svc := NewCheckoutService(logger, performance.NewTracker(100), NewAnalyticsService(f.manager, nil, logger))

	if upstream != nil {
		server := httptest.NewServer(upstream)
		t.Cleanup(server.Close)
		svc.upstreamURL = server.URL
	} else {
		// Point at a closed port so the request fails immediately.
		svc.upstreamURL = "http://127.0.0.1:1"
	}
	return svc, f
}

func TestCheckoutValidate_RejectsBadFields(t *testing.T) {
	svc, _ := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	cases := []struct {
		name   string
		mutate func(*CheckoutRequest)
	}{
		{"missing vehicle", func(r *CheckoutRequest) { r.VehicleType = "" }},
		{"missing location", func(r *CheckoutRequest) { r.PickupLocation = "" }},
		{"bad email", func(r *CheckoutRequest) { r.CustomerEmail = "not-an-email" }},
		{"bad pickup date", func(r *CheckoutRequest) { r.PickupDate = "10.09.2026" }},
		{"bad dropoff date", func(r *CheckoutRequest) { r.DropoffDate = "soon" }},
		{"dropoff before pickup", func(r *CheckoutRequest) { r.DropoffDate = "2026-09-01" }},
		{"dropoff equals pickup", func(r *CheckoutRequest) { r.DropoffDate = "2026-09-10" }},
	}

	for _, tc := range cases {
		req := validCheckoutRequest()
		tc.mutate(&req)
		if err := svc.Validate(req); !errors.Is(err, ErrCheckoutValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}

	if err := svc.Validate(validCheckoutRequest()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestCheckout_ForwardsAndFillsDefaults(t *testing.T) {
	var received CheckoutRequest
	svc, f := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"checkoutUrl":"https://pay.example.com/c/123"}`))
	})

	result, err := svc.Checkout(context.Background(), "s1", validCheckoutRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CheckoutURL != "https://pay.example.com/c/123" {
		t.Fatalf("unexpected checkout url: %s", result.CheckoutURL)
	}
	if received.Source == "" || received.Locale != "en" {
		t.Fatalf("defaults not filled: source=%q locale=%q", received.Source, received.Locale)
	}

	counts := f.manager.Journal().CountByKind()
	if counts["checkout_attempt"] != 1 || counts["checkout_forwarded"] != 1 {
		t.Fatalf("journal missing checkout entries: %v", counts)
	}
}

func TestCheckout_PassesUpstreamErrorThrough(t *testing.T) {
	svc, f := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Vehicle not available for these dates"}`))
	})

	result, err := svc.Checkout(context.Background(), "s1", validCheckoutRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.StatusCode != http.StatusConflict {
		t.Fatalf("upstream status not passed through: %d", result.StatusCode)
	}
	if result.ErrorMessage != "Vehicle not available for these dates" {
		t.Fatalf("upstream error not passed through: %q", result.ErrorMessage)
	}

	if f.manager.Journal().CountByKind()["checkout_failed"] != 1 {
		t.Fatal("journal missing checkout_failed entry")
	}
}

func TestCheckout_UnreachableUpstreamIsBadGateway(t *testing.T) {
	svc, _ := newCheckoutFixture(t, nil)

	result, err := svc.Checkout(context.Background(), "s1", validCheckoutRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.StatusCode != http.StatusBadGateway || result.CheckoutURL != "" {
		t.Fatalf("expected bad gateway result, got %+v", result)
	}
}

func TestCheckout_MalformedUpstreamBody(t *testing.T) {
	svc, _ := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	result, err := svc.Checkout(context.Background(), "s1", validCheckoutRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected bad gateway for malformed body, got %d", result.StatusCode)
	}
}
