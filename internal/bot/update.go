package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrUnsupportedUpdate is returned for update shapes the bot does not handle.
var ErrUnsupportedUpdate = errors.New("unsupported update")

// Update is one of TextUpdate, PhotoUpdate or CallbackUpdate.
type Update interface {
	isUpdate()
}

// Sender identifies the customer behind an update.
type Sender struct {
	UserID    int64
	ChatID    int64
	Username  string
	FirstName string
	LastName  string
}

// FullName joins first and last name.
func (s Sender) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// TextUpdate is a plain text message.
type TextUpdate struct {
	Sender
	MessageID int
	Text      string
}

// PhotoUpdate is a photo message; FileID points to the largest size.
type PhotoUpdate struct {
	Sender
	MessageID int
	FileID    string
	Caption   string
}

// CallbackUpdate is an inline button press.
type CallbackUpdate struct {
	Sender
	ID        string
	MessageID int
	Data      string
}

func (TextUpdate) isUpdate()     {}
func (PhotoUpdate) isUpdate()    {}
func (CallbackUpdate) isUpdate() {}

// Decode validates a raw webhook body and converts it into a typed update.
func Decode(body []byte) (Update, error) {
	var raw tgbotapi.Update
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode update: %w", err)
	}
	return FromAPI(raw)
}

// FromAPI converts a transport update into a typed update.
func FromAPI(raw tgbotapi.Update) (Update, error) {
	if q := raw.CallbackQuery; q != nil {
		if q.Message == nil || q.Message.Chat == nil || q.ID == "" {
			return nil, ErrUnsupportedUpdate
		}
		return CallbackUpdate{
			Sender:    senderOf(q.From, q.Message.Chat),
			ID:        q.ID,
			MessageID: q.Message.MessageID,
			Data:      q.Data,
		}, nil
	}

	msg := raw.Message
	if msg == nil || msg.Chat == nil {
		return nil, ErrUnsupportedUpdate
	}
	sender := senderOf(msg.From, msg.Chat)

	switch {
	case msg.Text != "":
		return TextUpdate{Sender: sender, MessageID: msg.MessageID, Text: msg.Text}, nil
	case len(msg.Photo) > 0:
		return PhotoUpdate{Sender: sender, MessageID: msg.MessageID, FileID: largestPhoto(msg.Photo).FileID, Caption: msg.Caption}, nil
	}
	return nil, ErrUnsupportedUpdate
}

func senderOf(from *tgbotapi.User, chat *tgbotapi.Chat) Sender {
	s := Sender{UserID: chat.ID, ChatID: chat.ID, FirstName: chat.FirstName, LastName: chat.LastName, Username: chat.UserName}
	if from != nil {
		s.UserID = from.ID
		s.FirstName = from.FirstName
		s.LastName = from.LastName
		s.Username = from.UserName
	}
	return s
}

func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[0]
	for _, p := range sizes[1:] {
		if p.Width*p.Height > best.Width*best.Height || (p.Width*p.Height == best.Width*best.Height && p.FileSize > best.FileSize) {
			best = p
		}
	}
	return best
}
