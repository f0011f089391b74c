package catalog

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/quantumstore/shopfront/internal/domain"
)

// Snapshot is the client's cached copy of the full product list. It is
// replaced wholesale on every refresh; there is no incremental diffing and no
// versioning, so a late-completing fetch simply wins over an earlier one.
type Snapshot struct {
	mu       sync.RWMutex
	products []domain.Product
	bySKU    map[string]domain.Product
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		bySKU: make(map[string]domain.Product),
	}
}

// Replace swaps the snapshot for the given product list.
func (s *Snapshot) Replace(products []domain.Product) {
	bySKU := make(map[string]domain.Product, len(products))
	for _, p := range products {
		bySKU[p.SKU] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.bySKU = bySKU
}

// Products returns the snapshot contents in catalog order.
func (s *Snapshot) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// BySKU looks up a product by its SKU.
func (s *Snapshot) BySKU(sku string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.bySKU[sku]
	return p, ok
}

// Price returns the snapshot price for sku, reporting false when the SKU is
// not in the snapshot. Shaped as a cart total lookup.
func (s *Snapshot) Price(sku string) (decimal.Decimal, bool) {
	p, ok := s.BySKU(sku)
	if !ok {
		return decimal.Zero, false
	}
	return p.Price, true
}

// Len returns the number of products in the snapshot.
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
