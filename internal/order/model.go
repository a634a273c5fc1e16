package order

import "time"

type PaymentStatus string

const (
	StatusPending  PaymentStatus = "PENDING"
	StatusPaid     PaymentStatus = "PAID"
	StatusFailed   PaymentStatus = "FAILED"
	StatusCanceled PaymentStatus = "CANCELED"
)

// Terminal reports whether the status can no longer change. Webhook
// deliveries for a terminal order are accepted as no-ops.
func (s PaymentStatus) Terminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusCanceled
}

type Order struct {
	ID         int64
	CustomerID int64
	Status     PaymentStatus
	TotalCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []OrderItem
}

// OrderItem is a denormalized snapshot of the product at purchase time.
// Later price changes on the product must not affect placed orders.
type OrderItem struct {
	ID             int64
	OrderID        int64
	ProductID      int64
	ProductName    string
	UnitPriceCents int64
	Quantity       int
	TotalCents     int64
}
