package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPaymentClient_Status(t *testing.T) {
	t.Run("decodes payment records", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/payments/order-1" {
				t.Errorf("expected /api/payments/order-1, got %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"orderNumber":"order-1","amount":25.00,"paymentStatus":"COMPLETED"}]`))
		}))
		defer server.Close()

		client := NewPaymentClient(server.URL, server.Client())
		records, err := client.Status(context.Background(), "order-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].PaymentStatus != "COMPLETED" {
			t.Errorf("expected COMPLETED, got %s", records[0].PaymentStatus)
		}
		if !records[0].Terminal() {
			t.Error("expected COMPLETED to be terminal")
		}
	})

	t.Run("empty result means not yet known", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewPaymentClient(server.URL, server.Client())
		records, err := client.Status(context.Background(), "order-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
	})

	t.Run("reports error responses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewPaymentClient(server.URL, server.Client())
		if _, err := client.Status(context.Background(), "order-1"); err == nil {
			t.Fatal("expected an error")
		}
	})
}
