package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Known payment statuses. The payment service may report other values; the
// client treats the status as opaque except for display and terminality.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// PaymentRecord is a backend-reported payment status entry. The client only
// ever reads these; absence of records means "not yet known", not "failed".
type PaymentRecord struct {
	OrderNumber     string          `json:"orderNumber"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentStatus   string          `json:"paymentStatus"`
	TransactionTime time.Time       `json:"transactionTime"`
}

// Terminal reports whether the record's status is a final payment outcome.
func (p PaymentRecord) Terminal() bool {
	return p.PaymentStatus == PaymentStatusCompleted || p.PaymentStatus == PaymentStatusFailed
}
