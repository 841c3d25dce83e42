package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/storebot/internal/adapter/telegram"
	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/usecase"
)

// Notifier delivers order events over the chat transport.
type Notifier struct {
	client     telegram.Client
	operatorID int64
	logger     *slog.Logger
}

var _ usecase.Notifier = (*Notifier)(nil)

// NewNotifier constructs Notifier. operatorID 0 disables operator messages.
func NewNotifier(client telegram.Client, operatorID int64, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{client: client, operatorID: operatorID, logger: logger}
}

// OrderCompleted sends the operator note to the customer.
func (n *Notifier) OrderCompleted(ctx context.Context, order *model.Order) error {
	if _, err := n.client.SendText(ctx, order.UserID, completedText(order), telegram.SendOptions{ParseMode: telegram.ParseModeMarkdown}); err != nil {
		return fmt.Errorf("%w: %w", domainErrors.ErrNotificationFailed, err)
	}
	return nil
}

// ProofReceived tells the operator chat that an order awaits verification.
func (n *Notifier) ProofReceived(ctx context.Context, order *model.Order) error {
	if n.operatorID == 0 {
		return nil
	}
	if _, err := n.client.SendText(ctx, n.operatorID, operatorProofText(order), telegram.SendOptions{ParseMode: telegram.ParseModeHTML}); err != nil {
		return fmt.Errorf("%w: %w", domainErrors.ErrNotificationFailed, err)
	}
	return nil
}

// Direct sends a plain operator message to a customer.
func (n *Notifier) Direct(ctx context.Context, userID int64, text string) error {
	if _, err := n.client.SendText(ctx, userID, text, telegram.SendOptions{}); err != nil {
		n.logger.Warn("operator message failed", slog.Int64("user_id", userID), slog.Any("error", err))
		return fmt.Errorf("%w: %w", domainErrors.ErrNotificationFailed, err)
	}
	return nil
}
