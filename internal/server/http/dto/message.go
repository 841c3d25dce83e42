package dto

import "time"

// MessageResponse is one conversation log entry.
type MessageResponse struct {
	ID        int64     `json:"id"`
	Direction string    `json:"direction"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// SendMessageRequest carries an operator message for a customer.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// StatusResponse is the webhook and health acknowledgement.
type StatusResponse struct {
	Status string `json:"status"`
}
