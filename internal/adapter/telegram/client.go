package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
)

// Parse modes accepted by the chat transport.
const (
	ParseModeHTML     = tgbotapi.ModeHTML
	ParseModeMarkdown = tgbotapi.ModeMarkdown
)

const maxDownloadSize = 20 << 20

// SendOptions carries formatting and an optional keyboard. Markup is either
// a tgbotapi.ReplyKeyboardMarkup or a tgbotapi.InlineKeyboardMarkup.
type SendOptions struct {
	ParseMode string
	Markup    any
}

// Photo is sent either by URL or as raw bytes.
type Photo struct {
	URL  string
	Name string
	Data []byte
}

// Client is the outbound side of the chat transport.
type Client interface {
	SendText(ctx context.Context, chatID int64, text string, opts SendOptions) (int, error)
	SendPhoto(ctx context.Context, chatID int64, photo Photo, caption string, opts SendOptions) (int, error)
	EditText(ctx context.Context, chatID int64, messageID int, text string, opts SendOptions) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// BotClient implements Client on top of the Bot API.
type BotClient struct {
	api          *tgbotapi.BotAPI
	fileEndpoint string
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewBotClient connects to the Bot API and validates the token.
func NewBotClient(token string, logger *slog.Logger) (*BotClient, error) {
	return newBotClient(token, tgbotapi.APIEndpoint, tgbotapi.FileEndpoint, &http.Client{Timeout: 30 * time.Second}, logger)
}

func newBotClient(token, apiEndpoint, fileEndpoint string, httpClient *http.Client, logger *slog.Logger) (*BotClient, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("connect bot api: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("bot authorized", slog.String("username", api.Self.UserName))
	return &BotClient{api: api, fileEndpoint: fileEndpoint, httpClient: httpClient, logger: logger}, nil
}

func (c *BotClient) SendText(ctx context.Context, chatID int64, text string, opts SendOptions) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = opts.ParseMode
	msg.ReplyMarkup = opts.Markup
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (c *BotClient) SendPhoto(ctx context.Context, chatID int64, photo Photo, caption string, opts SendOptions) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var file tgbotapi.RequestFileData
	if photo.URL != "" {
		file = tgbotapi.FileURL(photo.URL)
	} else {
		name := photo.Name
		if name == "" {
			name = "photo.png"
		}
		file = tgbotapi.FileBytes{Name: name, Bytes: photo.Data}
	}
	msg := tgbotapi.NewPhoto(chatID, file)
	msg.Caption = caption
	msg.ParseMode = opts.ParseMode
	msg.ReplyMarkup = opts.Markup
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (c *BotClient) EditText(ctx context.Context, chatID int64, messageID int, text string, opts SendOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = opts.ParseMode
	if markup, ok := opts.Markup.(tgbotapi.InlineKeyboardMarkup); ok {
		edit.ReplyMarkup = &markup
	}
	_, err := c.api.Request(edit)
	return err
}

func (c *BotClient) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (c *BotClient) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// DownloadFile resolves the file path and fetches its content.
func (c *BotClient) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := c.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}
	link := fmt.Sprintf(c.fileEndpoint, c.api.Token, file.FilePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("file download failed", slog.Int("status", resp.StatusCode), slog.String("file_id", fileID))
		return nil, fmt.Errorf("download file: %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
}

// DisabledClient is used when no bot token is configured.
type DisabledClient struct{}

func (DisabledClient) SendText(context.Context, int64, string, SendOptions) (int, error) {
	return 0, domainErrors.ErrBotDisabled
}

func (DisabledClient) SendPhoto(context.Context, int64, Photo, string, SendOptions) (int, error) {
	return 0, domainErrors.ErrBotDisabled
}

func (DisabledClient) EditText(context.Context, int64, int, string, SendOptions) error {
	return domainErrors.ErrBotDisabled
}

func (DisabledClient) DeleteMessage(context.Context, int64, int) error {
	return domainErrors.ErrBotDisabled
}

func (DisabledClient) AnswerCallback(context.Context, string, string) error {
	return domainErrors.ErrBotDisabled
}

func (DisabledClient) DownloadFile(context.Context, string) ([]byte, error) {
	return nil, domainErrors.ErrBotDisabled
}

var (
	_ Client = (*BotClient)(nil)
	_ Client = DisabledClient{}
)
