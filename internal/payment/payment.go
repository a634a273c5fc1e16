package payment

import (
	"context"
	"fmt"
	"net/http"

	"storefront-be/internal/order"
)

type Outcome string

const (
	OutcomePaid   Outcome = "PAID"
	OutcomeFailed Outcome = "FAILED"
)

// CheckoutSession is the hosted payment page created by the provider for
// one order. The URL is handed back to the client for redirection.
type CheckoutSession struct {
	ID      string
	URL     string
	OrderID int64
}

// PaymentResult correlates an asynchronous webhook delivery with an order.
type PaymentResult struct {
	OrderID int64
	Outcome Outcome
}

// PaymentError is any failure reported by the payment provider, including
// timeouts. The reason is kept for logs; callers map it to a generic code.
type PaymentError struct {
	Reason string
	Err    error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("payment error: %s", e.Reason)
}

func (e *PaymentError) Unwrap() error { return e.Err }

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, o *order.Order) (*CheckoutSession, error)

	// ParseWebhookRequest returns nil without error for deliveries the
	// core does not care about.
	ParseWebhookRequest(r *http.Request) (*PaymentResult, error)

	VerifySignature(r *http.Request) error
}
