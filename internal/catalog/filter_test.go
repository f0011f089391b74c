package catalog

import (
	"testing"

	"github.com/quantumstore/shopfront/internal/domain"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{SKU: "SKU-1", Name: "Air Zoom", Brand: "Nike", Category: "Shoes"},
		{SKU: "SKU-2", Name: "Clean Code", Brand: "Pearson", Category: "Books"},
		{SKU: "SKU-3", Name: "Ultraboost", Brand: "Adidas", Category: "Shoes"},
		{SKU: "SKU-4", Name: "Go in Action", Brand: "Manning", Category: "Books"},
	}
}

func TestFilter(t *testing.T) {
	t.Run("empty search and category returns the full snapshot", func(t *testing.T) {
		products := testProducts()
		got := Filter(products, "", "")
		if len(got) != len(products) {
			t.Fatalf("expected %d products, got %d", len(products), len(got))
		}
		for i := range products {
			if got[i].SKU != products[i].SKU {
				t.Errorf("position %d: expected %s, got %s", i, products[i].SKU, got[i].SKU)
			}
		}
	})

	t.Run("category filter matches exactly", func(t *testing.T) {
		got := Filter(testProducts(), "", "Books")
		if len(got) != 2 {
			t.Fatalf("expected 2 products, got %d", len(got))
		}
		for _, p := range got {
			if p.Category != "Books" {
				t.Errorf("expected category Books, got %s", p.Category)
			}
		}
	})

	t.Run("category filter is case sensitive", func(t *testing.T) {
		if got := Filter(testProducts(), "", "books"); len(got) != 0 {
			t.Errorf("expected no products for lowercase category, got %d", len(got))
		}
	})

	t.Run("search matches name brand or category case-insensitively", func(t *testing.T) {
		got := Filter(testProducts(), "nike", "")
		if len(got) != 1 || got[0].Brand != "Nike" {
			t.Fatalf("unexpected result: %+v", got)
		}

		got = Filter(testProducts(), "SHOES", "")
		if len(got) != 2 {
			t.Errorf("expected 2 products matching category text, got %d", len(got))
		}

		got = Filter(testProducts(), "action", "")
		if len(got) != 1 || got[0].SKU != "SKU-4" {
			t.Errorf("unexpected name match result: %+v", got)
		}
	})

	t.Run("search and category must both hold", func(t *testing.T) {
		got := Filter(testProducts(), "go", "Books")
		if len(got) != 1 || got[0].SKU != "SKU-4" {
			t.Fatalf("unexpected result: %+v", got)
		}

		if got := Filter(testProducts(), "nike", "Books"); len(got) != 0 {
			t.Errorf("expected no products, got %d", len(got))
		}
	})

	t.Run("preserves snapshot order", func(t *testing.T) {
		got := Filter(testProducts(), "", "Shoes")
		if len(got) != 2 {
			t.Fatalf("expected 2 products, got %d", len(got))
		}
		if got[0].SKU != "SKU-1" || got[1].SKU != "SKU-3" {
			t.Errorf("expected SKU-1 then SKU-3, got %s then %s", got[0].SKU, got[1].SKU)
		}
	})
}
