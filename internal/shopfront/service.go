// Package shopfront is the presentation-facing facade over the
// order-orchestration core. It owns the cart, the catalog snapshot and the
// poller lifecycle, and exposes the state the view layer renders: cart
// contents with a derived total, one human-readable status line, and busy
// flags for catalog loading and order placement.
package shopfront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/quantumstore/shopfront/internal/cart"
	"github.com/quantumstore/shopfront/internal/catalog"
	"github.com/quantumstore/shopfront/internal/checkout"
	"github.com/quantumstore/shopfront/internal/domain"
)

// ErrCheckoutInProgress is returned when a checkout is attempted while a
// previous submission is still running.
var ErrCheckoutInProgress = errors.New("checkout already in progress")

type Service struct {
	cart      *cart.Store
	snapshot  *catalog.Snapshot
	refresher *catalog.Refresher
	submitter *checkout.Submitter
	poller    *checkout.Poller
	logger    *slog.Logger

	mu             sync.Mutex
	status         string
	loadingCatalog bool
	placingOrder   bool
	active         *checkout.Handle
}

func NewService(
	cartStore *cart.Store,
	snapshot *catalog.Snapshot,
	refresher *catalog.Refresher,
	submitter *checkout.Submitter,
	poller *checkout.Poller,
	logger *slog.Logger,
) *Service {
	return &Service{
		cart:      cartStore,
		snapshot:  snapshot,
		refresher: refresher,
		submitter: submitter,
		poller:    poller,
		logger:    logger,
	}
}

// LoadCatalog refreshes the catalog snapshot, toggling the loading flag for
// the duration. A failed fetch keeps the previous snapshot; the error is
// logged by the refresher and not surfaced as a blocking condition.
func (s *Service) LoadCatalog(ctx context.Context) {
	s.mu.Lock()
	s.loadingCatalog = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loadingCatalog = false
		s.mu.Unlock()
	}()

	_ = s.refresher.Refresh(ctx)
}

// Products returns the snapshot filtered by free-text search and category.
func (s *Service) Products(search, category string) []domain.Product {
	return catalog.Filter(s.snapshot.Products(), search, category)
}

// AddToCart adds one unit of sku to the cart. The store accepts the call
// regardless of snapshot stock; the view layer decides whether to offer it.
func (s *Service) AddToCart(sku string) {
	s.cart.Add(sku)
}

// UpdateQuantity adjusts a cart line by delta, removing it at zero.
func (s *Service) UpdateQuantity(sku string, delta int) {
	s.cart.UpdateQuantity(sku, delta)
}

// CartView is the cart state the view layer renders.
type CartView struct {
	Lines []domain.CartLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

// Cart returns the current lines and the total priced from the snapshot.
// SKUs missing from the snapshot contribute zero to the total.
func (s *Service) Cart() CartView {
	return CartView{
		Lines: s.cart.Lines(),
		Total: s.cart.Total(s.snapshot.Price),
		Count: s.cart.Count(),
	}
}

// StatusView is the one-line status and busy flags for the view layer.
type StatusView struct {
	Status         string `json:"status"`
	LoadingCatalog bool   `json:"loadingCatalog"`
	PlacingOrder   bool   `json:"placingOrder"`
}

func (s *Service) Status() StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatusView{
		Status:         s.status,
		LoadingCatalog: s.loadingCatalog,
		PlacingOrder:   s.placingOrder,
	}
}

// Checkout submits the current cart. On full success the submitted lines are
// removed from the cart and a payment poller is started for the returned
// order number; any poller left over from a previous checkout is stopped and
// drained first so only one is ever active. On failure the cart is left
// untouched for retry.
func (s *Service) Checkout(ctx context.Context) (string, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return "", checkout.ErrEmptyCart
	}

	s.mu.Lock()
	if s.placingOrder {
		s.mu.Unlock()
		return "", ErrCheckoutInProgress
	}
	s.placingOrder = true
	prev := s.active
	s.active = nil
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.placingOrder = false
		s.mu.Unlock()
	}()

	if prev != nil {
		// Wait for the old poller to fully terminate so it cannot race
		// this checkout's status updates.
		prev.Stop()
		<-prev.Done()
	}

	result, err := s.submitter.Submit(ctx, lines)
	if err != nil {
		s.setStatus("Order submission failed")
		return "", err
	}

	// Remove exactly what was submitted; a line added while the submit was
	// in flight stays in the cart.
	for _, line := range lines {
		s.cart.UpdateQuantity(line.SKU, -line.Quantity)
	}
	s.setStatus("Order Placed: " + result.Confirmation)

	// The poller outlives the request that started it; only Stop or its own
	// termination ends it.
	handle := s.poller.Start(context.WithoutCancel(ctx), result.OrderNumber, s.onPaymentResult)

	s.mu.Lock()
	s.active = handle
	s.mu.Unlock()

	return result.OrderNumber, nil
}

func (s *Service) onPaymentResult(ctx context.Context, result checkout.PollResult) {
	switch result.Outcome {
	case checkout.OutcomeResolved:
		s.setStatus(fmt.Sprintf("Order %s: Payment %s", result.OrderNumber, result.Record.PaymentStatus))
		_ = s.refresher.Refresh(ctx)
	case checkout.OutcomeAbandoned:
		// No distinct shopper-facing signal; the status line keeps the
		// last submission message.
		s.logger.Warn("payment outcome unknown", "order_number", result.OrderNumber)
	}
}

// Close stops any live poller and waits for it to wind down.
func (s *Service) Close() {
	s.mu.Lock()
	handle := s.active
	s.active = nil
	s.mu.Unlock()

	if handle != nil {
		handle.Stop()
		<-handle.Done()
	}
}

func (s *Service) setStatus(status string) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
