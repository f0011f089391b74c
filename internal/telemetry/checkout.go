package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CheckoutMetrics holds the instruments for the order-orchestration core.
// A nil *CheckoutMetrics is valid and records nothing, so tests can run
// without a meter provider.
type CheckoutMetrics struct {
	checkoutsStarted metric.Int64Counter
	checkoutsFailed  metric.Int64Counter
	linesSubmitted   metric.Int64Counter
	pollAttempts     metric.Int64Histogram
	pollOutcomes     metric.Int64Counter
}

func NewCheckoutMetrics() (*CheckoutMetrics, error) {
	meter := otel.Meter("shopfront/checkout")

	checkoutsStarted, err := meter.Int64Counter("checkouts_started_total",
		metric.WithDescription("Number of checkouts submitted"))
	if err != nil {
		return nil, err
	}

	checkoutsFailed, err := meter.Int64Counter("checkouts_failed_total",
		metric.WithDescription("Number of checkouts that failed during order submission"))
	if err != nil {
		return nil, err
	}

	linesSubmitted, err := meter.Int64Counter("order_lines_submitted_total",
		metric.WithDescription("Number of order-creation calls accepted by the order service"))
	if err != nil {
		return nil, err
	}

	pollAttempts, err := meter.Int64Histogram("payment_poll_attempts",
		metric.WithDescription("Payment status queries issued before a poller terminated"))
	if err != nil {
		return nil, err
	}

	pollOutcomes, err := meter.Int64Counter("payment_poll_outcomes_total",
		metric.WithDescription("Payment poller terminations by outcome"))
	if err != nil {
		return nil, err
	}

	return &CheckoutMetrics{
		checkoutsStarted: checkoutsStarted,
		checkoutsFailed:  checkoutsFailed,
		linesSubmitted:   linesSubmitted,
		pollAttempts:     pollAttempts,
		pollOutcomes:     pollOutcomes,
	}, nil
}

func (m *CheckoutMetrics) CheckoutStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.checkoutsStarted.Add(ctx, 1)
}

func (m *CheckoutMetrics) CheckoutFailed(ctx context.Context) {
	if m == nil {
		return
	}
	m.checkoutsFailed.Add(ctx, 1)
}

func (m *CheckoutMetrics) LinesSubmitted(ctx context.Context, count int) {
	if m == nil {
		return
	}
	m.linesSubmitted.Add(ctx, int64(count))
}

func (m *CheckoutMetrics) PollFinished(ctx context.Context, outcome string, attempts int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.pollAttempts.Record(ctx, int64(attempts), attrs)
	m.pollOutcomes.Add(ctx, 1, attrs)
}
