// Package payqr renders bank transfer instructions as a QR code image.
package payqr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 320

// ErrEmptyAccount is returned when there is no account to pay into.
var ErrEmptyAccount = errors.New("payqr: account number is empty")

// Transfer describes a single payment into the store account.
type Transfer struct {
	Bank      string
	Account   string
	Holder    string
	Amount    int64
	Reference string
}

// Payload is the text encoded in the QR code. Fields are separated by ';'
// and the account number is stripped of formatting so banking apps can copy it.
func (t Transfer) Payload() string {
	account := strings.NewReplacer("-", "", " ", "").Replace(t.Account)
	parts := []string{
		"BANK:" + clean(t.Bank),
		"ACC:" + account,
		"NAME:" + clean(t.Holder),
		"AMOUNT:" + strconv.FormatInt(t.Amount, 10),
	}
	if t.Reference != "" {
		parts = append(parts, "REF:"+clean(t.Reference))
	}
	return strings.Join(parts, ";")
}

// PNG encodes the transfer as a PNG image of the given size.
func PNG(t Transfer, size int) ([]byte, error) {
	if strings.TrimSpace(t.Account) == "" {
		return nil, ErrEmptyAccount
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(t.Payload(), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ";", ","))
}
