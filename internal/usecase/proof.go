package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
)

// ImageUploader stores image bytes and returns their public URL.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// ProofImage is a payment proof received from the customer.
type ProofImage struct {
	Data        []byte
	ContentType string
}

// ProofUseCase relays payment proofs to the image host and advances the order.
type ProofUseCase struct {
	orders   *OrderUseCase
	uploader ImageUploader
	notifier Notifier
	logger   *slog.Logger
}

// NewProofUseCase constructs ProofUseCase.
func NewProofUseCase(orders *OrderUseCase, uploader ImageUploader, notifier Notifier, logger *slog.Logger) *ProofUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProofUseCase{orders: orders, uploader: uploader, notifier: notifier, logger: logger}
}

// Ingest attaches the image to the user's active pending order. Nothing is
// written when there is no pending order or the upload fails.
func (u *ProofUseCase) Ingest(ctx context.Context, userID int64, image ProofImage) (*model.Order, error) {
	order, err := u.orders.FindActivePending(ctx, userID)
	if err != nil {
		return nil, err
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	filename := ProofFilename(order.ID)

	link, err := u.uploader.Upload(ctx, image.Data, filename, contentType)
	if err != nil {
		u.logger.Error("proof upload failed",
			slog.Int64("order_id", order.ID),
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrUploadFailed, err)
	}

	updated, err := u.orders.AttachProof(ctx, order.ID, link)
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		if err := u.notifier.ProofReceived(ctx, updated); err != nil {
			u.logger.Warn("operator notification failed",
				slog.Int64("order_id", updated.ID),
				slog.Any("error", err),
			)
		}
	}
	return updated, nil
}

// ProofFilename names an uploaded proof so repeated uploads never collide.
func ProofFilename(orderID int64) string {
	return fmt.Sprintf("proof_%d_%s.jpg", orderID, uuid.NewString()[:8])
}
