package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/quantumstore/shopfront/internal/domain"
)

// Store holds the active session's cart lines keyed by SKU. Lines preserve
// insertion order so a checkout submits them in the order they were added.
// It performs no network I/O and no stock validation; the display layer may
// disable adds when stock is exhausted, but the store accepts every call.
type Store struct {
	mu    sync.Mutex
	quant map[string]int
	order []string
}

func NewStore() *Store {
	return &Store{
		quant: make(map[string]int),
	}
}

// Add increments the line for sku by one, inserting a new line with
// quantity 1 if none exists.
func (s *Store) Add(sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quant[sku]; !ok {
		s.order = append(s.order, sku)
	}
	s.quant[sku]++
}

// UpdateQuantity adjusts the line for sku by delta, clamping at zero. A line
// that reaches zero is removed. An unknown SKU is a no-op.
func (s *Store) UpdateQuantity(sku string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.quant[sku]
	if !ok {
		return
	}

	next := current + delta
	if next <= 0 {
		delete(s.quant, sku)
		s.removeFromOrder(sku)
		return
	}
	s.quant[sku] = next
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.CartLine, 0, len(s.order))
	for _, sku := range s.order {
		lines = append(lines, domain.CartLine{SKU: sku, Quantity: s.quant[sku]})
	}
	return lines
}

// Count returns the total number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, qty := range s.quant {
		count += qty
	}
	return count
}

// Total sums price(sku) * quantity over all lines. A SKU the lookup does not
// know contributes zero; a missing price is never an error.
func (s *Store) Total(price func(sku string) (decimal.Decimal, bool)) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for sku, qty := range s.quant {
		p, ok := price(sku)
		if !ok {
			continue
		}
		total = total.Add(p.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

// Clear empties all lines.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quant = make(map[string]int)
	s.order = s.order[:0]
}

func (s *Store) removeFromOrder(sku string) {
	for i, existing := range s.order {
		if existing == sku {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
