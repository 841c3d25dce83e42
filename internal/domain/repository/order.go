package repository

import (
	"context"

	"github.com/polkiloo/storebot/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Status
// changes are conditional updates: they only apply when the stored status
// equals the expected one and report ErrNotFound otherwise.
type OrderRepository interface {
	Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	LatestPending(ctx context.Context, userID int64) (*model.Order, error)
	AttachProof(ctx context.Context, id int64, proofURL string) (*model.Order, error)
	Complete(ctx context.Context, id int64, notes string) (*model.Order, error)
	List(ctx context.Context, status model.OrderStatus) ([]model.OrderView, error)
	Stats(ctx context.Context) (*model.Stats, error)
}
