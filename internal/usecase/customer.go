package usecase

import (
	"context"
	"strings"

	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/domain/repository"
)

const defaultConversationLimit = 100

// CustomerUseCase keeps chat users and their conversation log.
type CustomerUseCase struct {
	users    repository.UserRepository
	messages repository.MessageRepository
}

// NewCustomerUseCase constructs CustomerUseCase.
func NewCustomerUseCase(users repository.UserRepository, messages repository.MessageRepository) *CustomerUseCase {
	return &CustomerUseCase{users: users, messages: messages}
}

// Touch creates or refreshes the user record.
func (u *CustomerUseCase) Touch(ctx context.Context, user model.User) error {
	user.Username = strings.TrimPrefix(strings.TrimSpace(user.Username), "@")
	user.FullName = strings.TrimSpace(user.FullName)
	return u.users.Upsert(ctx, user)
}

// Get returns a user by chat identity.
func (u *CustomerUseCase) Get(ctx context.Context, userID int64) (*model.User, error) {
	return u.users.GetByID(ctx, userID)
}

// Log appends one message to the user's conversation. Blank content is ignored.
func (u *CustomerUseCase) Log(ctx context.Context, userID int64, direction model.MessageDirection, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	return u.messages.Append(ctx, model.ChatMessage{UserID: userID, Direction: direction, Content: content})
}

// Conversation returns the latest messages exchanged with the user, oldest first.
func (u *CustomerUseCase) Conversation(ctx context.Context, userID int64, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultConversationLimit
	}
	return u.messages.ListByUser(ctx, userID, limit)
}
