package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/domain/repository"
)

// Notifier delivers order events to chat participants. Failures are
// reported but never undo a committed status change.
type Notifier interface {
	OrderCompleted(ctx context.Context, order *model.Order) error
	ProofReceived(ctx context.Context, order *model.Order) error
}

// OrderUseCase drives the pending -> verification -> completed lifecycle.
type OrderUseCase struct {
	orders   repository.OrderRepository
	notifier Notifier
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, notifier Notifier, logger *slog.Logger) *OrderUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUseCase{orders: orders, notifier: notifier, logger: logger}
}

// Checkout prices a product (or one of its variants) and creates a pending order.
// A product sold through variants cannot be bought at its base price.
func (u *OrderUseCase) Checkout(ctx context.Context, userID int64, product model.Product, variantIndex int) (*model.Order, error) {
	if variantIndex == NoVariant && product.HasVariants() {
		return nil, domainErrors.ErrInvalidVariant
	}
	quote, err := ResolveVariant(product, variantIndex)
	if err != nil {
		return nil, err
	}
	return u.Create(ctx, userID, product, quote)
}

// Create inserts a pending order with the quoted price snapshotted.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, product model.Product, quote PriceQuote) (*model.Order, error) {
	return u.orders.Create(ctx, model.OrderDraft{
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		VariantName: quote.Variant,
		TotalPrice:  quote.Price,
	})
}

// FindActivePending returns the newest pending order of the user.
func (u *OrderUseCase) FindActivePending(ctx context.Context, userID int64) (*model.Order, error) {
	order, err := u.orders.LatestPending(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNoPendingOrder
		}
		return nil, err
	}
	return order, nil
}

// AttachProof stores the proof link and moves a pending order to verification.
func (u *OrderUseCase) AttachProof(ctx context.Context, orderID int64, proofURL string) (*model.Order, error) {
	order, err := u.orders.AttachProof(ctx, orderID, proofURL)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return nil, domainErrors.ErrInvalidTransition
}

// Complete finalizes an order under verification, stores the operator note and
// notifies the customer. Completing an already completed order succeeds
// without touching it or notifying again. A non-zero userID must own the order.
func (u *OrderUseCase) Complete(ctx context.Context, orderID, userID int64, notes string) (*model.Order, error) {
	current, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if userID != 0 && current.UserID != userID {
		return nil, domainErrors.ErrUserMismatch
	}
	if current.Status == model.OrderStatusCompleted {
		return current, nil
	}

	order, err := u.orders.Complete(ctx, orderID, strings.TrimSpace(notes))
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, err
		}
		latest, getErr := u.orders.GetByID(ctx, orderID)
		if getErr != nil {
			return nil, getErr
		}
		if latest.Status == model.OrderStatusCompleted {
			return latest, nil
		}
		return nil, domainErrors.ErrInvalidTransition
	}

	if u.notifier != nil {
		if err := u.notifier.OrderCompleted(ctx, order); err != nil {
			u.logger.Warn("completion notification failed",
				slog.Int64("order_id", order.ID),
				slog.Int64("user_id", order.UserID),
				slog.Any("error", err),
			)
		}
	}
	return order, nil
}

// Get returns an order by id.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// List returns orders newest first, optionally filtered by status.
func (u *OrderUseCase) List(ctx context.Context, status model.OrderStatus) ([]model.OrderView, error) {
	return u.orders.List(ctx, status)
}

// Stats aggregates dashboard figures.
func (u *OrderUseCase) Stats(ctx context.Context) (*model.Stats, error) {
	return u.orders.Stats(ctx)
}
