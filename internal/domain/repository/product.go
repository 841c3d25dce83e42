package repository

import (
	"context"

	"github.com/polkiloo/storebot/internal/domain/model"
)

// ProductRepository describes catalog persistence. ListActive must always
// return rows in ascending id order so that displayed numbers stay reproducible.
type ProductRepository interface {
	ListActive(ctx context.Context, limit int) ([]model.Product, error)
	CountActive(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	Update(ctx context.Context, product model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}
