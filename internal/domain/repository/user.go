package repository

import (
	"context"

	"github.com/polkiloo/storebot/internal/domain/model"
)

// UserRepository describes persistence operations for chat customers.
type UserRepository interface {
	Upsert(ctx context.Context, user model.User) error
	GetByID(ctx context.Context, telegramID int64) (*model.User, error)
	SetCatalogRevision(ctx context.Context, telegramID int64, revision string) error
}
