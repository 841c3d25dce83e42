package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/polkiloo/storebot/internal/adapter/telegram"
	"github.com/polkiloo/storebot/internal/config"
	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/pkg/payqr"
	"github.com/polkiloo/storebot/internal/usecase"
)

// Settings tunes the chat flows.
type Settings struct {
	Keyboard     KeyboardBuilder
	WelcomePhoto string
	Bank         config.BankAccount
	PaymentQR    bool
}

// Handler runs the chat flows for inbound updates. It holds no per-user state.
type Handler struct {
	client    telegram.Client
	catalog   *usecase.CatalogUseCase
	orders    *usecase.OrderUseCase
	proofs    *usecase.ProofUseCase
	customers *usecase.CustomerUseCase
	settings  Settings
	logger    *slog.Logger
	qr        func(payqr.Transfer, int) ([]byte, error)
}

// NewHandler constructs Handler.
func NewHandler(
	client telegram.Client,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	proofs *usecase.ProofUseCase,
	customers *usecase.CustomerUseCase,
	settings Settings,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		client:    client,
		catalog:   catalog,
		orders:    orders,
		proofs:    proofs,
		customers: customers,
		settings:  settings,
		logger:    logger,
		qr:        payqr.PNG,
	}
}

// Handle dispatches a decoded update. Failures have already been reported to
// the chat when possible; the returned error is for logging only.
func (h *Handler) Handle(ctx context.Context, update Update) error {
	switch u := update.(type) {
	case TextUpdate:
		return h.handleText(ctx, u)
	case PhotoUpdate:
		return h.handlePhoto(ctx, u)
	case CallbackUpdate:
		return h.handleCallback(ctx, u)
	}
	return ErrUnsupportedUpdate
}

func (h *Handler) touch(ctx context.Context, s Sender, content string) {
	if err := h.customers.Touch(ctx, model.User{TelegramID: s.UserID, Username: s.Username, FullName: s.FullName()}); err != nil {
		h.logger.Error("upsert user failed", slog.Int64("user_id", s.UserID), slog.Any("error", err))
	}
	if err := h.customers.Log(ctx, s.UserID, model.DirectionInbound, content); err != nil {
		h.logger.Error("log message failed", slog.Int64("user_id", s.UserID), slog.Any("error", err))
	}
}

func (h *Handler) handleText(ctx context.Context, u TextUpdate) error {
	text := strings.TrimSpace(u.Text)
	h.touch(ctx, u.Sender, text)

	if usecase.IsSelectorText(text) {
		return h.handleSelection(ctx, u.Sender, text)
	}

	catalog, err := h.catalog.Snapshot(ctx)
	if err != nil {
		h.logger.Error("catalog snapshot failed", slog.Int64("user_id", u.UserID), slog.Any("error", err))
		return h.reply(ctx, u.ChatID, textStoreError, "", h.settings.Keyboard.Main(0), err)
	}
	kb := h.settings.Keyboard.Main(catalog.Shown())

	var sendErr error
	switch command(text) {
	case "/start":
		sendErr = h.sendWelcome(ctx, u.Sender, kb)
	case MenuProductList:
		_, sendErr = h.client.SendText(ctx, u.ChatID, productListText(catalog.Entries), telegram.SendOptions{ParseMode: telegram.ParseModeHTML, Markup: kb})
		if sendErr == nil {
			h.remember(ctx, u.UserID, catalog)
		}
	case MenuVoucher:
		_, sendErr = h.client.SendText(ctx, u.ChatID, textVoucher, telegram.SendOptions{Markup: kb})
	case MenuStock:
		_, sendErr = h.client.SendText(ctx, u.ChatID, stockText(catalog.Total), telegram.SendOptions{ParseMode: telegram.ParseModeHTML, Markup: kb})
	case MenuDeposit:
		_, sendErr = h.client.SendText(ctx, u.ChatID, textDeposit, telegram.SendOptions{Markup: kb})
	case MenuHowToBuy:
		_, sendErr = h.client.SendText(ctx, u.ChatID, textHowToBuy, telegram.SendOptions{ParseMode: telegram.ParseModeHTML, Markup: kb})
	case MenuInformation:
		_, sendErr = h.client.SendText(ctx, u.ChatID, textInformation, telegram.SendOptions{Markup: kb})
	default:
		_, sendErr = h.client.SendText(ctx, u.ChatID, textPickMenu, telegram.SendOptions{Markup: kb})
	}
	if sendErr != nil {
		return fmt.Errorf("send reply: %w", sendErr)
	}
	return nil
}

// command strips a bot mention suffix such as "/start@store_bot".
func command(text string) string {
	if strings.HasPrefix(text, "/") {
		if i := strings.IndexByte(text, '@'); i > 0 {
			return text[:i]
		}
		if i := strings.IndexByte(text, ' '); i > 0 {
			return text[:i]
		}
	}
	return text
}

func (h *Handler) sendWelcome(ctx context.Context, s Sender, kb tgbotapi.ReplyKeyboardMarkup) error {
	opts := telegram.SendOptions{ParseMode: telegram.ParseModeHTML, Markup: kb}
	if h.settings.WelcomePhoto != "" {
		_, err := h.client.SendPhoto(ctx, s.ChatID, telegram.Photo{URL: h.settings.WelcomePhoto}, welcomeText(s.FirstName), opts)
		if err == nil {
			return nil
		}
		h.logger.Warn("welcome photo failed", slog.Int64("user_id", s.UserID), slog.Any("error", err))
	}
	_, err := h.client.SendText(ctx, s.ChatID, welcomeText(s.FirstName), opts)
	return err
}

func (h *Handler) handleSelection(ctx context.Context, s Sender, text string) error {
	n, err := usecase.ParseSelector(text)
	if err != nil {
		return h.replyNotFound(ctx, s, text)
	}

	product, catalog, err := h.catalog.Select(ctx, s.UserID, n)
	if catalog == nil {
		h.logger.Error("catalog snapshot failed", slog.Int64("user_id", s.UserID), slog.Any("error", err))
		return h.reply(ctx, s.ChatID, textStoreError, "", h.settings.Keyboard.Main(0), err)
	}
	kb := h.settings.Keyboard.Main(catalog.Shown())

	switch {
	case errors.Is(err, domainErrors.ErrStaleSelection):
		h.logger.Info("stale catalog selection", slog.Int64("user_id", s.UserID), slog.Int("number", n))
		if _, sendErr := h.client.SendText(ctx, s.ChatID, textStale, telegram.SendOptions{}); sendErr != nil {
			return fmt.Errorf("send stale notice: %w", sendErr)
		}
		if _, sendErr := h.client.SendText(ctx, s.ChatID, productListText(catalog.Entries), telegram.SendOptions{ParseMode: telegram.ParseModeHTML, Markup: kb}); sendErr != nil {
			return fmt.Errorf("send product list: %w", sendErr)
		}
		h.remember(ctx, s.UserID, catalog)
		return nil

	case errors.Is(err, domainErrors.ErrNotFound):
		if _, sendErr := h.client.SendText(ctx, s.ChatID, notFoundText(n), telegram.SendOptions{Markup: kb}); sendErr != nil {
			return fmt.Errorf("send not found: %w", sendErr)
		}
		return nil

	case err != nil:
		h.logger.Error("catalog selection failed", slog.Int64("user_id", s.UserID), slog.Any("error", err))
		return h.reply(ctx, s.ChatID, textStoreError, "", kb, err)
	}

	if _, err := h.client.SendText(ctx, s.ChatID, productDetailText(*product), telegram.SendOptions{ParseMode: telegram.ParseModeHTML, Markup: DetailKeyboard(*product)}); err != nil {
		return fmt.Errorf("send product detail: %w", err)
	}
	return nil
}

// replyNotFound answers selector text that is not a valid number, such as "0".
func (h *Handler) replyNotFound(ctx context.Context, s Sender, text string) error {
	catalog, err := h.catalog.Snapshot(ctx)
	if err != nil {
		h.logger.Error("catalog snapshot failed", slog.Int64("user_id", s.UserID), slog.Any("error", err))
		return h.reply(ctx, s.ChatID, textStoreError, "", h.settings.Keyboard.Main(0), err)
	}
	n, _ := strconv.Atoi(text)
	if _, err := h.client.SendText(ctx, s.ChatID, notFoundText(n), telegram.SendOptions{Markup: h.settings.Keyboard.Main(catalog.Shown())}); err != nil {
		return fmt.Errorf("send not found: %w", err)
	}
	return nil
}

func (h *Handler) handleCallback(ctx context.Context, u CallbackUpdate) error {
	if err := h.client.AnswerCallback(ctx, u.ID, ""); err != nil {
		h.logger.Warn("answer callback failed", slog.String("callback_id", u.ID), slog.Any("error", err))
	}

	cb, err := ParseCallback(u.Data)
	if err != nil {
		h.logger.Warn("unknown callback", slog.String("data", u.Data))
		return nil
	}

	if cb.Kind == CallbackCancel {
		return h.client.DeleteMessage(ctx, u.ChatID, u.MessageID)
	}
	return h.checkout(ctx, u, cb)
}

func (h *Handler) checkout(ctx context.Context, u CallbackUpdate, cb Callback) error {
	product, err := h.catalog.Product(ctx, cb.ProductID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return h.reply(ctx, u.ChatID, textGone, "", nil, nil)
		}
		h.logger.Error("load product failed", slog.Int64("product_id", cb.ProductID), slog.Any("error", err))
		return h.reply(ctx, u.ChatID, textStoreError, "", nil, err)
	}

	if cb.Variant != usecase.NoVariant && cb.Revision != "" && cb.Revision != usecase.VariantRevision(product.Variants) {
		return h.reply(ctx, u.ChatID, textVariantGone, "", nil, nil)
	}

	order, err := h.orders.Checkout(ctx, u.UserID, *product, cb.Variant)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidVariant) {
			return h.reply(ctx, u.ChatID, textVariantGone, "", nil, nil)
		}
		h.logger.Error("create order failed",
			slog.Int64("user_id", u.UserID),
			slog.Int64("product_id", product.ID),
			slog.Any("error", err),
		)
		return h.reply(ctx, u.ChatID, textStoreError, "", nil, err)
	}
	h.logger.Info("order created",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", u.UserID),
		slog.Int64("total", order.TotalPrice),
	)

	invoice := invoiceText(order, product.Unit, h.settings.Bank)
	if err := h.client.EditText(ctx, u.ChatID, u.MessageID, invoice, telegram.SendOptions{ParseMode: telegram.ParseModeHTML}); err != nil {
		h.logger.Warn("edit into invoice failed, sending new message", slog.Int64("order_id", order.ID), slog.Any("error", err))
		if _, err := h.client.SendText(ctx, u.ChatID, invoice, telegram.SendOptions{ParseMode: telegram.ParseModeHTML}); err != nil {
			return fmt.Errorf("send invoice: %w", err)
		}
	}

	if h.settings.PaymentQR {
		h.sendPaymentQR(ctx, u.ChatID, order)
	}
	return nil
}

func (h *Handler) sendPaymentQR(ctx context.Context, chatID int64, order *model.Order) {
	png, err := h.qr(payqr.Transfer{
		Bank:      h.settings.Bank.Bank,
		Account:   h.settings.Bank.Number,
		Holder:    h.settings.Bank.Holder,
		Amount:    order.TotalPrice,
		Reference: fmt.Sprintf("ORDER-%d", order.ID),
	}, payqr.DefaultSize)
	if err != nil {
		h.logger.Warn("payment qr failed", slog.Int64("order_id", order.ID), slog.Any("error", err))
		return
	}
	caption := fmt.Sprintf("Scan to pay %s for order #%d", FormatRupiah(order.TotalPrice), order.ID)
	if _, err := h.client.SendPhoto(ctx, chatID, telegram.Photo{Data: png, Name: fmt.Sprintf("invoice_%d.png", order.ID)}, caption, telegram.SendOptions{}); err != nil {
		h.logger.Warn("send payment qr failed", slog.Int64("order_id", order.ID), slog.Any("error", err))
	}
}

func (h *Handler) handlePhoto(ctx context.Context, u PhotoUpdate) error {
	h.touch(ctx, u.Sender, "[photo]")

	if _, err := h.orders.FindActivePending(ctx, u.UserID); err != nil {
		if errors.Is(err, domainErrors.ErrNoPendingOrder) {
			return h.reply(ctx, u.ChatID, textNoPending, telegram.ParseModeHTML, nil, nil)
		}
		h.logger.Error("lookup pending order failed", slog.Int64("user_id", u.UserID), slog.Any("error", err))
		return h.reply(ctx, u.ChatID, textStoreError, "", nil, err)
	}

	loadingID, err := h.client.SendText(ctx, u.ChatID, textUploading, telegram.SendOptions{ParseMode: telegram.ParseModeHTML})
	if err != nil {
		h.logger.Warn("send loading message failed", slog.Int64("user_id", u.UserID), slog.Any("error", err))
	}
	clearLoading := func() {
		if loadingID == 0 {
			return
		}
		if err := h.client.DeleteMessage(ctx, u.ChatID, loadingID); err != nil {
			h.logger.Warn("delete loading message failed", slog.Int64("user_id", u.UserID), slog.Any("error", err))
		}
	}

	data, err := h.client.DownloadFile(ctx, u.FileID)
	if err != nil {
		clearLoading()
		h.logger.Error("download proof failed", slog.Int64("user_id", u.UserID), slog.Any("error", err))
		return h.reply(ctx, u.ChatID, textUploadFailed, "", nil, err)
	}

	order, err := h.proofs.Ingest(ctx, u.UserID, usecase.ProofImage{Data: data, ContentType: "image/jpeg"})
	clearLoading()
	switch {
	case err == nil:
	case errors.Is(err, domainErrors.ErrNoPendingOrder):
		return h.reply(ctx, u.ChatID, textNoPending, telegram.ParseModeHTML, nil, nil)
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		return h.reply(ctx, u.ChatID, textProofTwice, "", nil, nil)
	case errors.Is(err, domainErrors.ErrUploadFailed):
		return h.reply(ctx, u.ChatID, textUploadFailed, "", nil, err)
	default:
		h.logger.Error("attach proof failed", slog.Int64("user_id", u.UserID), slog.Any("error", err))
		return h.reply(ctx, u.ChatID, textUploadFailed, "", nil, err)
	}

	h.logger.Info("proof attached", slog.Int64("order_id", order.ID), slog.Int64("user_id", u.UserID))
	if _, err := h.client.SendText(ctx, u.ChatID, receiptText(order), telegram.SendOptions{ParseMode: telegram.ParseModeHTML}); err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}
	return nil
}

// reply sends a short message and returns cause, or the send error when there
// is no cause.
func (h *Handler) reply(ctx context.Context, chatID int64, text, parseMode string, markup any, cause error) error {
	if _, err := h.client.SendText(ctx, chatID, text, telegram.SendOptions{ParseMode: parseMode, Markup: markup}); err != nil {
		if cause != nil {
			return errors.Join(cause, err)
		}
		return fmt.Errorf("send reply: %w", err)
	}
	return cause
}

func (h *Handler) remember(ctx context.Context, userID int64, catalog *usecase.Catalog) {
	if err := h.catalog.Remember(ctx, userID, catalog.Revision); err != nil {
		h.logger.Warn("remember catalog revision failed", slog.Int64("user_id", userID), slog.Any("error", err))
	}
}
