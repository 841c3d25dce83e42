package handlers

import (
	"context"

	"github.com/polkiloo/storebot/internal/domain/model"
)

// AuthFacade describes operator authentication required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	VerifyPassword(username, password string) error
	ParseToken(token string) (string, error)
}

// WebhookFacade processes raw chat updates.
type WebhookFacade interface {
	BotEnabled() bool
	HandleUpdate(ctx context.Context, body []byte) error
}

// OrderFacade encapsulates order operations exposed to the admin panel.
type OrderFacade interface {
	CompleteOrder(ctx context.Context, orderID, userID int64, notes string) (*model.Order, error)
	Orders(ctx context.Context, status model.OrderStatus) ([]model.OrderView, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	ExportOrders(ctx context.Context, status model.OrderStatus) ([]byte, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

// ProductFacade provides catalog administration.
type ProductFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CustomerFacade exposes conversation history and direct messaging.
type CustomerFacade interface {
	Conversation(ctx context.Context, userID int64, limit int) ([]model.ChatMessage, error)
	SendMessage(ctx context.Context, userID int64, text string) error
}

// HealthFacade reports storage availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	WebhookFacade
	OrderFacade
	ProductFacade
	CustomerFacade
	HealthFacade
}
