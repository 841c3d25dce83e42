package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	ByID  map[int64]*model.User
	Err   error
	Calls int
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{ByID: make(map[int64]*model.User)}
}

// Upsert creates or refreshes user, keeping the stored catalog revision.
func (s *UserRepositoryStub) Upsert(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return s.Err
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if existing, ok := s.ByID[user.TelegramID]; ok {
		user.CatalogRevision = existing.CatalogRevision
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()
	s.ByID[user.TelegramID] = &user
	return nil
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetCatalogRevision stores the revision, creating a bare user when missing.
func (s *UserRepositoryStub) SetCatalogRevision(_ context.Context, id int64, revision string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	user, ok := s.ByID[id]
	if !ok {
		user = &model.User{TelegramID: id}
		s.ByID[id] = user
	}
	user.CatalogRevision = revision
	return nil
}

// ProductRepositoryStub keeps products in-memory ordered by id.
type ProductRepositoryStub struct {
	mu       sync.Mutex
	Products map[int64]*model.Product
	Next     int64
	Err      error
}

// NewProductRepositoryStub seeds stub with provided products.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[int64]*model.Product), Next: 1}
	for _, p := range products {
		p := p
		s.Products[p.ID] = &p
		if p.ID >= s.Next {
			s.Next = p.ID + 1
		}
	}
	return s
}

func (s *ProductRepositoryStub) sorted(activeOnly bool) []model.Product {
	out := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListActive returns active products ordered by id.
func (s *ProductRepositoryStub) ListActive(_ context.Context, limit int) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := s.sorted(true)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountActive counts active products.
func (s *ProductRepositoryStub) CountActive(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.sorted(true)), nil
}

// GetByID returns product by id.
func (s *ProductRepositoryStub) GetByID(_ context.Context, id int64) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

// List returns all products ordered by id.
func (s *ProductRepositoryStub) List(_ context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.sorted(false), nil
}

// Create assigns the next id and stores the product.
func (s *ProductRepositoryStub) Create(_ context.Context, product model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Products == nil {
		s.Products = make(map[int64]*model.Product)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	product.ID = s.Next
	s.Next++
	s.Products[product.ID] = &product
	copied := product
	return &copied, nil
}

// Update replaces an existing product.
func (s *ProductRepositoryStub) Update(_ context.Context, product model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.Products[product.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Products[product.ID] = &product
	copied := product
	return &copied, nil
}

// Delete removes a product.
func (s *ProductRepositoryStub) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

// OrderRepositoryStub emulates conditional status updates in-memory.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[int64]*model.Order
	Next   int64
	Err    error
	// Writes counts successful mutations.
	Writes int
}

// NewOrderRepositoryStub constructs empty stub.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Create stores a pending order.
func (s *OrderRepositoryStub) Create(_ context.Context, draft model.OrderDraft) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	now := time.Now()
	order := &model.Order{
		ID:          s.Next,
		UserID:      draft.UserID,
		ProductID:   draft.ProductID,
		ProductName: draft.ProductName,
		VariantName: draft.VariantName,
		TotalPrice:  draft.TotalPrice,
		Status:      model.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.Next++
	s.Orders[order.ID] = order
	s.Writes++
	copied := *order
	return &copied, nil
}

// GetByID returns an order by id.
func (s *OrderRepositoryStub) GetByID(_ context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

// LatestPending returns the newest pending order of the user.
func (s *OrderRepositoryStub) LatestPending(_ context.Context, userID int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var latest *model.Order
	for _, o := range s.Orders {
		if o.UserID != userID || o.Status != model.OrderStatusPending {
			continue
		}
		if latest == nil || o.ID > latest.ID {
			latest = o
		}
	}
	if latest == nil {
		return nil, domainErrors.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (s *OrderRepositoryStub) transition(id int64, from, to model.OrderStatus, apply func(*model.Order)) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok || order.Status != from {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = to
	apply(order)
	order.UpdatedAt = time.Now()
	s.Writes++
	copied := *order
	return &copied, nil
}

// AttachProof moves a pending order to verification.
func (s *OrderRepositoryStub) AttachProof(_ context.Context, id int64, proofURL string) (*model.Order, error) {
	return s.transition(id, model.OrderStatusPending, model.OrderStatusVerification, func(o *model.Order) {
		o.PaymentProofURL = &proofURL
	})
}

// Complete moves an order under verification to completed.
func (s *OrderRepositoryStub) Complete(_ context.Context, id int64, notes string) (*model.Order, error) {
	return s.transition(id, model.OrderStatusVerification, model.OrderStatusCompleted, func(o *model.Order) {
		o.AdminNotes = &notes
	})
}

// List returns orders newest first.
func (s *OrderRepositoryStub) List(_ context.Context, status model.OrderStatus) ([]model.OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.OrderView, 0, len(s.Orders))
	for _, o := range s.Orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, model.OrderView{Order: *o})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Stats aggregates order figures. Product counts are left zero.
func (s *OrderRepositoryStub) Stats(_ context.Context) (*model.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stats := &model.Stats{Orders: int64(len(s.Orders))}
	for _, o := range s.Orders {
		if o.Status == model.OrderStatusCompleted || o.Status == model.OrderStatusVerification {
			stats.Income += o.TotalPrice
		}
	}
	return stats, nil
}

// MessageRepositoryStub keeps the conversation log in-memory.
type MessageRepositoryStub struct {
	mu       sync.Mutex
	Messages []model.ChatMessage
	Err      error
}

// Append stores a message.
func (s *MessageRepositoryStub) Append(_ context.Context, msg model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	msg.ID = int64(len(s.Messages) + 1)
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.Messages = append(s.Messages, msg)
	return nil
}

// ListByUser returns the newest limit messages of the user, oldest first.
func (s *MessageRepositoryStub) ListByUser(_ context.Context, userID int64, limit int) ([]model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.ChatMessage
	for _, m := range s.Messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
