// Package checkout implements the order-orchestration core: turning a cart
// snapshot into sequential order submissions under one order number, then
// converging on a payment outcome through bounded polling.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quantumstore/shopfront/internal/domain"
	"github.com/quantumstore/shopfront/internal/telemetry"
)

var tracer = otel.Tracer("shopfront/checkout")

// ErrEmptyCart is returned when a checkout is attempted with no cart lines.
// Callers treat it as a no-op: nothing was sent, nothing changed.
var ErrEmptyCart = errors.New("cart is empty")

// OrderPlacer issues a single order-creation call.
type OrderPlacer interface {
	Place(ctx context.Context, order domain.OrderRequest) (string, error)
}

// SubmissionError reports a checkout that failed partway through its
// sequential order-creation calls. Lines before FailedLine were already
// accepted by the order service; no compensating calls are issued.
type SubmissionError struct {
	OrderNumber string
	FailedLine  int
	Err         error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order %s: line %d failed: %v", e.OrderNumber, e.FailedLine, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Result is a fully accepted checkout.
type Result struct {
	OrderNumber  string
	Confirmation string
	Lines        int
}

// Submitter turns a non-empty cart snapshot into one order-creation call per
// line. Calls are issued strictly in cart order; line N+1 is not dispatched
// until line N has resolved, so the order service observes the lines in the
// order the shopper added them.
type Submitter struct {
	orders  OrderPlacer
	logger  *slog.Logger
	metrics *telemetry.CheckoutMetrics
}

func NewSubmitter(orders OrderPlacer, logger *slog.Logger, metrics *telemetry.CheckoutMetrics) *Submitter {
	return &Submitter{
		orders:  orders,
		logger:  logger,
		metrics: metrics,
	}
}

// Submit generates one order number for the whole checkout and issues the
// per-line calls. On any failure the entire checkout is reported failed and
// the caller's cart must be left untouched so the shopper can retry.
func (s *Submitter) Submit(ctx context.Context, lines []domain.CartLine) (*Result, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	orderNumber := uuid.New().String()

	ctx, span := tracer.Start(ctx, "checkout.submit",
		trace.WithAttributes(
			attribute.String("order.number", orderNumber),
			attribute.Int("order.lines", len(lines)),
		),
	)
	defer span.End()

	s.metrics.CheckoutStarted(ctx)
	s.logger.Info("submitting order", "order_number", orderNumber, "lines", len(lines))

	var confirmation string
	for i, line := range lines {
		conf, err := s.orders.Place(ctx, domain.OrderRequest{
			OrderNumber: orderNumber,
			SKU:         line.SKU,
			Quantity:    line.Quantity,
		})
		if err != nil {
			subErr := &SubmissionError{OrderNumber: orderNumber, FailedLine: i, Err: err}
			span.RecordError(subErr)
			span.SetStatus(codes.Error, subErr.Error())
			s.metrics.CheckoutFailed(ctx)
			s.logger.Error("order submission failed",
				"order_number", orderNumber, "line", i, "sku", line.SKU, "accepted_lines", i, "error", err)
			return nil, subErr
		}
		confirmation = conf
	}

	s.metrics.LinesSubmitted(ctx, len(lines))
	s.logger.Info("order submitted", "order_number", orderNumber, "lines", len(lines))

	return &Result{
		OrderNumber:  orderNumber,
		Confirmation: confirmation,
		Lines:        len(lines),
	}, nil
}
