package catalog

import (
	"strings"

	"github.com/quantumstore/shopfront/internal/domain"
)

// Filter returns the products matching both the free-text search and the
// category. The search is a case-insensitive substring match against name,
// brand and category; an empty category matches everything. Snapshot order
// is preserved, no ranking is applied.
func Filter(products []domain.Product, search, category string) []domain.Product {
	if search == "" && category == "" {
		return products
	}

	needle := strings.ToLower(search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !matchesText(p, needle) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesText(p domain.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Brand), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle)
}
