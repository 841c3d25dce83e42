package dto

import "time"

// CompleteOrderRequest is sent by the admin panel to deliver credentials.
type CompleteOrderRequest struct {
	OrderID            int64  `json:"orderId"`
	TelegramID         int64  `json:"telegramId"`
	AccountCredentials string `json:"accountCredentials"`
}

// SuccessResponse acknowledges a state-changing admin call.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is returned by admin endpoints on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OrderResponse describes an order in admin listings.
type OrderResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Username        string    `json:"username,omitempty"`
	FullName        string    `json:"fullName,omitempty"`
	ProductID       int64     `json:"productId"`
	ProductName     string    `json:"productName"`
	VariantName     *string   `json:"variantName,omitempty"`
	TotalPrice      int64     `json:"totalPrice"`
	Status          string    `json:"status"`
	PaymentProofURL *string   `json:"paymentProofUrl,omitempty"`
	AdminNotes      *string   `json:"adminNotes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// StatsResponse holds dashboard counters.
type StatsResponse struct {
	Products       int64 `json:"products"`
	ActiveProducts int64 `json:"activeProducts"`
	Orders         int64 `json:"orders"`
	Income         int64 `json:"income"`
}
