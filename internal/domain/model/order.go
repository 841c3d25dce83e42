package model

import "time"

// OrderStatus describes purchase lifecycle.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusVerification OrderStatus = "verification"
	OrderStatusCompleted    OrderStatus = "completed"

	// orderStatusPaidLegacy was written by older deployments in place of verification.
	orderStatusPaidLegacy OrderStatus = "paid"
)

// NormalizeOrderStatus maps stored status values onto the canonical set.
func NormalizeOrderStatus(raw string) OrderStatus {
	status := OrderStatus(raw)
	if status == orderStatusPaidLegacy {
		return OrderStatusVerification
	}
	return status
}

// Order describes a purchase created from the chat flow.
type Order struct {
	ID              int64
	UserID          int64
	ProductID       int64
	ProductName     string
	VariantName     *string
	TotalPrice      int64
	Status          OrderStatus
	PaymentProofURL *string
	AdminNotes      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Item returns the product name with the chosen variant, if any.
func (o Order) Item() string {
	if o.VariantName != nil && *o.VariantName != "" {
		return o.ProductName + " (" + *o.VariantName + ")"
	}
	return o.ProductName
}

// OrderView is an order joined with its owner for operator listings.
type OrderView struct {
	Order
	Username string
	FullName string
}

// OrderDraft carries the snapshotted values of a new order.
type OrderDraft struct {
	UserID      int64
	ProductID   int64
	ProductName string
	VariantName *string
	TotalPrice  int64
}
