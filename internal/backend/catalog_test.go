package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/quantumstore/shopfront/internal/domain"
)

func TestCatalogClient_List(t *testing.T) {
	t.Run("fetches and decodes the full product list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/inventory" {
				t.Errorf("expected /api/inventory, got %s", r.URL.Path)
			}
			if r.Method != http.MethodGet {
				t.Errorf("expected GET, got %s", r.Method)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":1,"skuCode":"SKU-A","name":"Air Zoom","brand":"Nike","category":"Shoes","price":129.99,"originalPrice":149.99,"quantity":12}]`))
		}))
		defer server.Close()

		client := NewCatalogClient(server.URL, server.Client())
		products, err := client.List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(products) != 1 {
			t.Fatalf("expected 1 product, got %d", len(products))
		}
		if products[0].SKU != "SKU-A" {
			t.Errorf("expected SKU-A, got %s", products[0].SKU)
		}
		if !products[0].Price.Equal(decimal.NewFromFloat(129.99)) {
			t.Errorf("expected price 129.99, got %s", products[0].Price)
		}
	})

	t.Run("attaches the bearer token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer secret" {
				t.Errorf("expected Bearer secret, got %q", got)
			}
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewCatalogClient(server.URL, server.Client(), WithBearerToken("secret"))
		if _, err := client.List(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("reports non-200 responses as errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewCatalogClient(server.URL, server.Client())
		if _, err := client.List(context.Background()); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestCatalogClient_Get(t *testing.T) {
	t.Run("returns nil for an unknown SKU", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewCatalogClient(server.URL, server.Client())
		product, err := client.Get(context.Background(), "SKU-MISSING")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if product != nil {
			t.Errorf("expected nil product, got %+v", product)
		}
	})

	t.Run("decodes a found product", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/inventory/SKU-A" {
				t.Errorf("expected /api/inventory/SKU-A, got %s", r.URL.Path)
			}
			_, _ = w.Write([]byte(`{"id":1,"skuCode":"SKU-A","quantity":3}`))
		}))
		defer server.Close()

		client := NewCatalogClient(server.URL, server.Client())
		product, err := client.Get(context.Background(), "SKU-A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if product == nil || product.SKU != "SKU-A" {
			t.Errorf("unexpected product: %+v", product)
		}
	})
}

func TestCatalogClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected application/json, got %s", got)
		}

		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if product.SKU != "SKU-NEW" {
			t.Errorf("expected SKU-NEW, got %s", product.SKU)
		}

		product.ID = 42
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(product)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, server.Client())
	created, err := client.Create(context.Background(), domain.Product{SKU: "SKU-NEW", Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("expected id 42, got %d", created.ID)
	}
}

func TestCatalogClient_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/api/inventory/42" {
			t.Errorf("expected /api/inventory/42, got %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":42,"skuCode":"SKU-A","quantity":9}`))
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, server.Client())
	updated, err := client.Update(context.Background(), 42, domain.Product{SKU: "SKU-A", Quantity: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 9 {
		t.Errorf("expected quantity 9, got %d", updated.Quantity)
	}
}

func TestCatalogClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/api/inventory/42" {
			t.Errorf("expected /api/inventory/42, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, server.Client())
	if err := client.Delete(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
