package model

import "time"

// MessageDirection tells whether a logged message came from the customer or the operator.
type MessageDirection string

const (
	DirectionInbound  MessageDirection = "in"
	DirectionOutbound MessageDirection = "out"
)

// ChatMessage is one entry of the conversation log.
type ChatMessage struct {
	ID        int64
	UserID    int64
	Direction MessageDirection
	Content   string
	CreatedAt time.Time
}
