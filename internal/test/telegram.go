package test

import (
	"context"
	"sync"

	"github.com/polkiloo/storebot/internal/adapter/telegram"
)

// SentMessage is one outbound chat call recorded by ChatClientStub.
type SentMessage struct {
	Kind      string
	ChatID    int64
	MessageID int
	Text      string
	Photo     telegram.Photo
	Options   telegram.SendOptions
}

// ChatClientStub records outbound chat calls.
type ChatClientStub struct {
	mu       sync.Mutex
	Sent     []SentMessage
	Answered []string
	File     []byte
	SendErr  error
	EditErr  error
	FileErr  error
	next     int
}

var _ telegram.Client = (*ChatClientStub)(nil)

func (s *ChatClientStub) record(m SentMessage) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	if m.MessageID == 0 {
		m.MessageID = 100 + s.next
	}
	s.Sent = append(s.Sent, m)
	return m.MessageID
}

// SendText records a text message.
func (s *ChatClientStub) SendText(_ context.Context, chatID int64, text string, opts telegram.SendOptions) (int, error) {
	if s.SendErr != nil {
		return 0, s.SendErr
	}
	return s.record(SentMessage{Kind: "text", ChatID: chatID, Text: text, Options: opts}), nil
}

// SendPhoto records a photo message.
func (s *ChatClientStub) SendPhoto(_ context.Context, chatID int64, photo telegram.Photo, caption string, opts telegram.SendOptions) (int, error) {
	if s.SendErr != nil {
		return 0, s.SendErr
	}
	return s.record(SentMessage{Kind: "photo", ChatID: chatID, Text: caption, Photo: photo, Options: opts}), nil
}

// EditText records an edit.
func (s *ChatClientStub) EditText(_ context.Context, chatID int64, messageID int, text string, opts telegram.SendOptions) error {
	if s.EditErr != nil {
		return s.EditErr
	}
	s.record(SentMessage{Kind: "edit", ChatID: chatID, MessageID: messageID, Text: text, Options: opts})
	return nil
}

// DeleteMessage records a deletion.
func (s *ChatClientStub) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	s.record(SentMessage{Kind: "delete", ChatID: chatID, MessageID: messageID})
	return nil
}

// AnswerCallback records the callback id.
func (s *ChatClientStub) AnswerCallback(_ context.Context, callbackID, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Answered = append(s.Answered, callbackID)
	return nil
}

// DownloadFile returns File or FileErr.
func (s *ChatClientStub) DownloadFile(context.Context, string) ([]byte, error) {
	if s.FileErr != nil {
		return nil, s.FileErr
	}
	return s.File, nil
}

// Kinds lists the kinds of recorded calls in order.
func (s *ChatClientStub) Kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Sent))
	for i, m := range s.Sent {
		out[i] = m.Kind
	}
	return out
}

// Last returns the most recent recorded call.
func (s *ChatClientStub) Last() SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Sent) == 0 {
		return SentMessage{}
	}
	return s.Sent[len(s.Sent)-1]
}
