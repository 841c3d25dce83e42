package model

import "time"

// User represents a chat customer keyed by the chat identity.
type User struct {
	TelegramID      int64
	Username        string
	FullName        string
	CatalogRevision string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
