// Package payment reconciles booking state with the external payment
// gateway: verifying incoming payments at creation time and issuing refunds
// on cancellation.
package payment

import (
	"context"

	"hotel-booking-be/internal/entity"
)

// RefKind tags which external identifier a refund will be issued against.
type RefKind string

const (
	RefCharge RefKind = "charge"
	RefIntent RefKind = "intent"
	RefNone   RefKind = "none"
)

// PaymentRef is the resolved identifier union for one refund attempt. It is
// resolved exactly once per attempt, with charge-level ids preferred over
// intent-level ids.
type PaymentRef struct {
	Kind RefKind
	ID   string
}

// ResolvePaymentRef picks the identifier to refund against.
func ResolvePaymentRef(link entity.PaymentLink) PaymentRef {
	if link.TransactionID != "" {
		return PaymentRef{Kind: RefCharge, ID: link.TransactionID}
	}
	if link.OrderID != "" {
		return PaymentRef{Kind: RefIntent, ID: link.OrderID}
	}
	return PaymentRef{Kind: RefNone}
}

// Transaction is the gateway's view of a settled (or not) payment.
type Transaction struct {
	OrderID       string
	TransactionID string
	PaymentType   string
	Status        string
	Currency      string
	GrossAmount   float64
}

// Settled reports whether the gateway considers the payment collected.
func (t *Transaction) Settled() bool {
	return t.Status == "capture" || t.Status == "settlement"
}

// Refund is the gateway's acknowledgement of a refund request.
type Refund struct {
	ID string
}

// Gateway is the port to the external payment processor.
type Gateway interface {
	// Available reports whether the gateway is configured at all. An
	// unconfigured gateway is a deployment mode, not an error, until an
	// operation actually needs it.
	Available() bool
	GetTransaction(ctx context.Context, orderID string) (*Transaction, error)
	CreateRefund(ctx context.Context, ref PaymentRef, amount float64, refundKey string) (*Refund, error)
}
