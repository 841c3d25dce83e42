package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrStaleSelection     = fmt.Errorf("stale catalog selection: %w", ErrNotFound)
	ErrInvalidVariant     = errors.New("invalid variant")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrNoPendingOrder     = errors.New("no pending order")
	ErrUploadFailed       = errors.New("upload failed")
	ErrPersistence        = errors.New("persistence error")
	ErrNotificationFailed = errors.New("notification failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidProduct     = errors.New("invalid product")
	ErrUserMismatch       = errors.New("order belongs to another user")
	ErrBotDisabled        = errors.New("bot is disabled")
)
