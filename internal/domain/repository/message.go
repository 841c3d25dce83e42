package repository

import (
	"context"

	"github.com/polkiloo/storebot/internal/domain/model"
)

// MessageRepository keeps the per-user conversation log.
type MessageRepository interface {
	Append(ctx context.Context, msg model.ChatMessage) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.ChatMessage, error)
}
