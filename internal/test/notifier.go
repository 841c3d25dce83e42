package test

import (
	"context"
	"sync"

	"github.com/polkiloo/storebot/internal/domain/model"
)

// NotifierStub records notifications and optionally fails them.
type NotifierStub struct {
	mu        sync.Mutex
	Completed []model.Order
	Proofs    []model.Order
	Err       error
}

// OrderCompleted records the completed order.
func (s *NotifierStub) OrderCompleted(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completed = append(s.Completed, *order)
	return s.Err
}

// ProofReceived records the order that received a proof.
func (s *NotifierStub) ProofReceived(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Proofs = append(s.Proofs, *order)
	return s.Err
}

// UploaderStub returns a fixed URL or error for uploads.
type UploaderStub struct {
	URL   string
	Err   error
	Calls int
	Names []string
}

// Upload records the filename and returns configured outcome.
func (s *UploaderStub) Upload(_ context.Context, _ []byte, filename, _ string) (string, error) {
	s.Calls++
	s.Names = append(s.Names, filename)
	if s.Err != nil {
		return "", s.Err
	}
	return s.URL, nil
}
