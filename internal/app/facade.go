package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/storebot/internal/bot"
	"github.com/polkiloo/storebot/internal/config"
	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/report"
	"github.com/polkiloo/storebot/internal/usecase"
)

// HealthChecker reports backing store availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// UpdateHandler runs chat flows for a decoded update.
type UpdateHandler interface {
	Handle(ctx context.Context, update bot.Update) error
}

// DirectMessenger sends operator messages to customers.
type DirectMessenger interface {
	Direct(ctx context.Context, userID int64, text string) error
}

// StoreFacade exposes use cases to the HTTP layer.
type StoreFacade struct {
	auth       *usecase.AuthUseCase
	orders     *usecase.OrderUseCase
	products   *usecase.ProductUseCase
	customers  *usecase.CustomerUseCase
	updates    UpdateHandler
	messenger  DirectMessenger
	health     HealthChecker
	botEnabled bool
	logger     *slog.Logger
}

// FacadeParams lists StoreFacade dependencies.
type FacadeParams struct {
	fx.In

	Config    *config.Config
	Auth      *usecase.AuthUseCase
	Orders    *usecase.OrderUseCase
	Products  *usecase.ProductUseCase
	Customers *usecase.CustomerUseCase
	Updates   UpdateHandler
	Messenger DirectMessenger
	Health    HealthChecker
	Logger    *slog.Logger
}

// NewStoreFacade constructs StoreFacade.
func NewStoreFacade(p FacadeParams) *StoreFacade {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreFacade{
		auth:       p.Auth,
		orders:     p.Orders,
		products:   p.Products,
		customers:  p.Customers,
		updates:    p.Updates,
		messenger:  p.Messenger,
		health:     p.Health,
		botEnabled: p.Config.BotEnabled(),
		logger:     logger,
	}
}

// BotEnabled reports whether chat updates are processed.
func (f *StoreFacade) BotEnabled() bool {
	return f.botEnabled
}

// HandleUpdate decodes a raw webhook body and runs the matching flow.
// Update shapes the bot does not handle are skipped.
func (f *StoreFacade) HandleUpdate(ctx context.Context, body []byte) error {
	update, err := bot.Decode(body)
	if err != nil {
		if errors.Is(err, bot.ErrUnsupportedUpdate) {
			f.logger.Debug("skipping unsupported update")
			return nil
		}
		return err
	}
	return f.updates.Handle(ctx, update)
}

func (f *StoreFacade) Authenticate(ctx context.Context, username, password string) (string, error) {
	return f.auth.Authenticate(ctx, username, password)
}

func (f *StoreFacade) VerifyPassword(username, password string) error {
	return f.auth.Verify(username, password)
}

func (f *StoreFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

// CompleteOrder finalizes an order and delivers the credentials to its owner.
func (f *StoreFacade) CompleteOrder(ctx context.Context, orderID, userID int64, notes string) (*model.Order, error) {
	return f.orders.Complete(ctx, orderID, userID, notes)
}

func (f *StoreFacade) Orders(ctx context.Context, status model.OrderStatus) ([]model.OrderView, error) {
	return f.orders.List(ctx, status)
}

func (f *StoreFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

// ExportOrders renders the order listing as an XLSX workbook.
func (f *StoreFacade) ExportOrders(ctx context.Context, status model.OrderStatus) ([]byte, error) {
	orders, err := f.orders.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return report.OrdersXLSX(orders)
}

func (f *StoreFacade) Stats(ctx context.Context) (*model.Stats, error) {
	return f.orders.Stats(ctx)
}

func (f *StoreFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.products.List(ctx)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.products.Create(ctx, product)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.products.Update(ctx, product)
}

func (f *StoreFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.products.Delete(ctx, id)
}

// Conversation returns the message log of a known chat user.
func (f *StoreFacade) Conversation(ctx context.Context, userID int64, limit int) ([]model.ChatMessage, error) {
	if _, err := f.customers.Get(ctx, userID); err != nil {
		return nil, err
	}
	return f.customers.Conversation(ctx, userID, limit)
}

// SendMessage delivers an operator message and appends it to the conversation.
func (f *StoreFacade) SendMessage(ctx context.Context, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if err := f.messenger.Direct(ctx, userID, text); err != nil {
		return err
	}
	if err := f.customers.Log(ctx, userID, model.DirectionOutbound, text); err != nil {
		f.logger.Error("log operator message failed", slog.Int64("user_id", userID), slog.Any("error", err))
		return err
	}
	return nil
}

func (f *StoreFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
