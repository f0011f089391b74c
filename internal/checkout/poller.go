package checkout

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quantumstore/shopfront/internal/domain"
	"github.com/quantumstore/shopfront/internal/telemetry"
)

const (
	defaultPollPeriod  = 2 * time.Second
	defaultMaxAttempts = 10
)

// Outcome is a poller's terminal state.
type Outcome string

const (
	// OutcomeResolved means a payment record was observed.
	OutcomeResolved Outcome = "resolved"
	// OutcomeAbandoned means the attempt budget ran out with no record.
	OutcomeAbandoned Outcome = "abandoned"
	// OutcomeStopped means the poller was cancelled before terminating.
	OutcomeStopped Outcome = "stopped"
)

// PollResult describes how a poller terminated. Record is set only for
// OutcomeResolved.
type PollResult struct {
	OrderNumber string
	Outcome     Outcome
	Record      *domain.PaymentRecord
	Attempts    int
}

// StatusQuerier queries payment records for an order number.
type StatusQuerier interface {
	Status(ctx context.Context, orderNumber string) ([]domain.PaymentRecord, error)
}

// Poller repeatedly queries payment status for one order number until a
// record arrives or the attempt budget is exhausted. By default the first
// non-empty response resolves the poller even when the reported status is
// still PENDING; that mirrors the reference behavior and is kept as an
// explicit policy, with WithWaitForTerminal as the stricter alternative.
type Poller struct {
	payments        StatusQuerier
	logger          *slog.Logger
	metrics         *telemetry.CheckoutMetrics
	period          time.Duration
	maxAttempts     int
	waitForTerminal bool
}

type PollerOption func(*Poller)

// WithPeriod overrides the tick period between status queries.
func WithPeriod(period time.Duration) PollerOption {
	return func(p *Poller) {
		p.period = period
	}
}

// WithMaxAttempts overrides the attempt budget.
func WithMaxAttempts(n int) PollerOption {
	return func(p *Poller) {
		p.maxAttempts = n
	}
}

// WithWaitForTerminal keeps the poller running through PENDING responses
// until a terminal status (COMPLETED or FAILED) is observed or the attempt
// budget runs out.
func WithWaitForTerminal() PollerOption {
	return func(p *Poller) {
		p.waitForTerminal = true
	}
}

func NewPoller(payments StatusQuerier, logger *slog.Logger, metrics *telemetry.CheckoutMetrics, opts ...PollerOption) *Poller {
	p := &Poller{
		payments:    payments,
		logger:      logger,
		metrics:     metrics,
		period:      defaultPollPeriod,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle is a running poll task. Stop cancels it deterministically; Done is
// closed once the poller has terminated and its completion callback (if any)
// has returned.
type Handle struct {
	orderNumber string
	cancel      context.CancelFunc
	done        chan struct{}
	result      PollResult
}

// Stop cancels the poll task. Safe to call more than once and after the
// poller has already terminated.
func (h *Handle) Stop() {
	h.cancel()
}

// Done is closed when the poller has terminated.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Result reports how the poller terminated. It must only be called after
// Done is closed; the close is what synchronizes the result write.
func (h *Handle) Result() PollResult {
	return h.result
}

// OrderNumber returns the order this poller is watching.
func (h *Handle) OrderNumber() string {
	return h.orderNumber
}

// Start launches a poll task for orderNumber. onResult is invoked exactly
// once for a terminal outcome (Resolved or Abandoned) before Done is closed;
// a stopped poller never invokes it.
func (p *Poller) Start(ctx context.Context, orderNumber string, onResult func(context.Context, PollResult)) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		orderNumber: orderNumber,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	go p.run(ctx, orderNumber, onResult, h)
	return h
}

func (p *Poller) run(ctx context.Context, orderNumber string, onResult func(context.Context, PollResult), h *Handle) {
	ctx, span := tracer.Start(ctx, "checkout.poll_payment",
		trace.WithAttributes(attribute.String("order.number", orderNumber)),
	)

	ticker := time.NewTicker(p.period)

	finish := func(result PollResult) {
		ticker.Stop()
		// Stop can race an in-flight query; a cancelled context always
		// terminates as Stopped so a superseded poller cannot report a
		// late result.
		if ctx.Err() != nil && result.Outcome != OutcomeStopped {
			result = PollResult{OrderNumber: orderNumber, Outcome: OutcomeStopped, Attempts: result.Attempts}
		}
		span.SetAttributes(
			attribute.String("poll.outcome", string(result.Outcome)),
			attribute.Int("poll.attempts", result.Attempts),
		)
		span.End()
		p.metrics.PollFinished(context.WithoutCancel(ctx), string(result.Outcome), result.Attempts)

		// This write is published by close(h.done); Result must not be
		// read before Done.
		h.result = result
		if onResult != nil && result.Outcome != OutcomeStopped {
			onResult(context.WithoutCancel(ctx), result)
		}
		close(h.done)
	}

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("payment poller stopped", "order_number", orderNumber, "attempts", attempts)
			finish(PollResult{OrderNumber: orderNumber, Outcome: OutcomeStopped, Attempts: attempts})
			return

		case <-ticker.C:
			attempts++

			records, err := p.payments.Status(ctx, orderNumber)
			switch {
			case err != nil:
				// Transient failure: keep polling, the tick still counts
				// toward the budget.
				p.logger.Warn("payment status query failed",
					"order_number", orderNumber, "attempt", attempts, "error", err)

			case len(records) > 0:
				record := records[0]
				if !p.waitForTerminal || record.Terminal() {
					p.logger.Info("payment status resolved",
						"order_number", orderNumber, "status", record.PaymentStatus, "attempts", attempts)
					finish(PollResult{
						OrderNumber: orderNumber,
						Outcome:     OutcomeResolved,
						Record:      &record,
						Attempts:    attempts,
					})
					return
				}
				p.logger.Info("payment still pending",
					"order_number", orderNumber, "status", record.PaymentStatus, "attempt", attempts)
			}

			if attempts >= p.maxAttempts {
				p.logger.Warn("payment polling abandoned",
					"order_number", orderNumber, "attempts", attempts)
				finish(PollResult{OrderNumber: orderNumber, Outcome: OutcomeAbandoned, Attempts: attempts})
				return
			}
		}
	}
}
