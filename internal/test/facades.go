package test

import (
	"context"
	"sync"

	"github.com/polkiloo/storebot/internal/domain/model"
)

// OperatorAuthStub provides controllable admin authentication.
type OperatorAuthStub struct {
	VerifyFn func(string, string) error
	Operator string
	ParseErr error
}

// VerifyPassword delegates to VerifyFn or accepts any credentials.
func (s OperatorAuthStub) VerifyPassword(username, password string) error {
	if s.VerifyFn != nil {
		return s.VerifyFn(username, password)
	}
	return nil
}

// ParseToken returns the configured operator or error.
func (s OperatorAuthStub) ParseToken(string) (string, error) {
	if s.ParseErr != nil {
		return "", s.ParseErr
	}
	if s.Operator == "" {
		return "admin", nil
	}
	return s.Operator, nil
}

// CompleteCall records CompleteOrder arguments.
type CompleteCall struct {
	OrderID int64
	UserID  int64
	Notes   string
}

// StoreFacadeStub mimics the application facade for HTTP tests.
type StoreFacadeStub struct {
	OperatorAuthStub

	Disabled       bool
	AuthenticateFn func(context.Context, string, string) (string, error)
	HandleUpdateFn func(context.Context, []byte) error
	CompleteFn     func(context.Context, int64, int64, string) (*model.Order, error)
	OrdersFn       func(context.Context, model.OrderStatus) ([]model.OrderView, error)
	OrderFn        func(context.Context, int64) (*model.Order, error)
	ExportFn       func(context.Context, model.OrderStatus) ([]byte, error)
	StatsFn        func(context.Context) (*model.Stats, error)
	ProductsFn     func(context.Context) ([]model.Product, error)
	ProductFn      func(context.Context, int64) (*model.Product, error)
	CreateFn       func(context.Context, model.Product) (*model.Product, error)
	UpdateFn       func(context.Context, model.Product) (*model.Product, error)
	DeleteFn       func(context.Context, int64) error
	ConversationFn func(context.Context, int64, int) ([]model.ChatMessage, error)
	SendFn         func(context.Context, int64, string) error
	HealthErr      error

	mu        sync.Mutex
	Updates   [][]byte
	Completed []CompleteCall
}

// BotEnabled reports false only when Disabled is set.
func (s *StoreFacadeStub) BotEnabled() bool {
	return !s.Disabled
}

// HandleUpdate records the body and delegates to HandleUpdateFn.
func (s *StoreFacadeStub) HandleUpdate(ctx context.Context, body []byte) error {
	s.mu.Lock()
	s.Updates = append(s.Updates, body)
	s.mu.Unlock()
	if s.HandleUpdateFn != nil {
		return s.HandleUpdateFn(ctx, body)
	}
	return nil
}

// Authenticate returns a fixed token unless AuthenticateFn is set.
func (s *StoreFacadeStub) Authenticate(ctx context.Context, username, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, username, password)
	}
	return "token", nil
}

// CompleteOrder records the call and returns a completed order.
func (s *StoreFacadeStub) CompleteOrder(ctx context.Context, orderID, userID int64, notes string) (*model.Order, error) {
	s.mu.Lock()
	s.Completed = append(s.Completed, CompleteCall{OrderID: orderID, UserID: userID, Notes: notes})
	s.mu.Unlock()
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, orderID, userID, notes)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusCompleted, AdminNotes: &notes}, nil
}

func (s *StoreFacadeStub) Orders(ctx context.Context, status model.OrderStatus) ([]model.OrderView, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, status)
	}
	return nil, nil
}

func (s *StoreFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

func (s *StoreFacadeStub) ExportOrders(ctx context.Context, status model.OrderStatus) ([]byte, error) {
	if s.ExportFn != nil {
		return s.ExportFn(ctx, status)
	}
	return []byte("xlsx"), nil
}

func (s *StoreFacadeStub) Stats(ctx context.Context) (*model.Stats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return &model.Stats{}, nil
}

func (s *StoreFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return nil, nil
}

func (s *StoreFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id}, nil
}

// CreateProduct echoes the product with id 1 unless CreateFn is set.
func (s *StoreFacadeStub) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	product.ID = 1
	return &product, nil
}

func (s *StoreFacadeStub) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, product)
	}
	return &product, nil
}

func (s *StoreFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s *StoreFacadeStub) Conversation(ctx context.Context, userID int64, limit int) ([]model.ChatMessage, error) {
	if s.ConversationFn != nil {
		return s.ConversationFn(ctx, userID, limit)
	}
	return nil, nil
}

func (s *StoreFacadeStub) SendMessage(ctx context.Context, userID int64, text string) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, userID, text)
	}
	return nil
}

func (s *StoreFacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}

// UpdateCount returns the number of webhook bodies received.
func (s *StoreFacadeStub) UpdateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Updates)
}
