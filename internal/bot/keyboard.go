package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/usecase"
)

// Menu button labels. Text messages equal to one of these are menu commands.
const (
	MenuProductList = "🏷 Product List"
	MenuVoucher     = "🛍 Voucher"
	MenuStock       = "📦 Stock Report"
	MenuDeposit     = "💰 Deposit"
	MenuHowToBuy    = "❓ How to Buy"
	MenuInformation = "⚠️ Information"

	keyboardPlaceholder = "Pick a menu or a product number..."
)

// Callback payloads.
const (
	callbackCancel          = "cancel"
	callbackCheckoutPrefix  = "checkout_"
	callbackVCheckoutPrefix = "vcheckout_"
)

// KeyboardBuilder lays out the reply keyboard: a top menu row, a grid of
// selector numbers and a bottom menu row.
type KeyboardBuilder struct {
	MaxDisplay    int
	ButtonsPerRow int
}

// Main builds the reply keyboard for a catalog of total active products. The
// numbered buttons are 1..usecase.DisplayCount(total, MaxDisplay), which is the
// numbering usecase.RenderList assigns.
func (b KeyboardBuilder) Main(total int) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(MenuProductList),
			tgbotapi.NewKeyboardButton(MenuVoucher),
			tgbotapi.NewKeyboardButton(MenuStock),
		),
	}
	rows = append(rows, b.NumberGrid(total)...)
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(MenuDeposit),
		tgbotapi.NewKeyboardButton(MenuHowToBuy),
		tgbotapi.NewKeyboardButton(MenuInformation),
	))

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.InputFieldPlaceholder = keyboardPlaceholder
	return kb
}

// NumberGrid returns the selector rows only.
func (b KeyboardBuilder) NumberGrid(total int) [][]tgbotapi.KeyboardButton {
	count := usecase.DisplayCount(total, b.MaxDisplay)
	perRow := b.ButtonsPerRow
	if perRow <= 0 {
		perRow = 6
	}

	var grid [][]tgbotapi.KeyboardButton
	row := make([]tgbotapi.KeyboardButton, 0, perRow)
	for i := 1; i <= count; i++ {
		row = append(row, tgbotapi.NewKeyboardButton(strconv.Itoa(i)))
		if len(row) == perRow {
			grid = append(grid, row)
			row = make([]tgbotapi.KeyboardButton, 0, perRow)
		}
	}
	if len(row) > 0 {
		grid = append(grid, row)
	}
	return grid
}

// DetailKeyboard offers one button per variant, or a single buy button, plus cancel.
func DetailKeyboard(product model.Product) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if product.HasVariants() {
		rev := usecase.VariantRevision(product.Variants)
		for i, v := range product.Variants {
			name := v.Name
			if name == "" {
				name = "Option"
			}
			label := fmt.Sprintf("🔹 %s - %s", name, FormatRupiah(v.Price))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, VariantCheckoutData(product.ID, i, rev)),
			))
		}
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Buy now", CheckoutData(product.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", callbackCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// CallbackKind enumerates inline button actions.
type CallbackKind int

const (
	CallbackCancel CallbackKind = iota + 1
	CallbackCheckout
)

// Callback is a parsed inline button payload.
type Callback struct {
	Kind      CallbackKind
	ProductID int64
	// Variant is usecase.NoVariant for base-price purchases.
	Variant int
	// Revision is the variant list digest the index was issued against.
	Revision string
}

var errBadCallback = errors.New("malformed callback data")

// CheckoutData encodes a base-price purchase button.
func CheckoutData(productID int64) string {
	return callbackCheckoutPrefix + strconv.FormatInt(productID, 10)
}

// VariantCheckoutData encodes a variant purchase button.
func VariantCheckoutData(productID int64, index int, revision string) string {
	return fmt.Sprintf("%s%d_%d_%s", callbackVCheckoutPrefix, productID, index, revision)
}

// ParseCallback decodes inline button data.
func ParseCallback(data string) (Callback, error) {
	switch {
	case data == callbackCancel:
		return Callback{Kind: CallbackCancel}, nil

	case strings.HasPrefix(data, callbackVCheckoutPrefix):
		parts := strings.Split(strings.TrimPrefix(data, callbackVCheckoutPrefix), "_")
		if len(parts) < 2 || len(parts) > 3 {
			return Callback{}, errBadCallback
		}
		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || id <= 0 {
			return Callback{}, errBadCallback
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil || idx < 0 {
			return Callback{}, errBadCallback
		}
		cb := Callback{Kind: CallbackCheckout, ProductID: id, Variant: idx}
		if len(parts) == 3 {
			cb.Revision = parts[2]
		}
		return cb, nil

	case strings.HasPrefix(data, callbackCheckoutPrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, callbackCheckoutPrefix), 10, 64)
		if err != nil || id <= 0 {
			return Callback{}, errBadCallback
		}
		return Callback{Kind: CallbackCheckout, ProductID: id, Variant: usecase.NoVariant}, nil
	}
	return Callback{}, errBadCallback
}
