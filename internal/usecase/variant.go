package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
)

// NoVariant selects the product's base price.
const NoVariant = -1

// PriceQuote is the authoritative price and label for one order line.
type PriceQuote struct {
	Price int64
	// Label is the variant name, or the product unit for base-price purchases.
	Label   string
	Variant *string
}

// ResolveVariant computes the price of a product or of one of its variants.
// An index outside the current variant list is ErrInvalidVariant; it never
// falls back to the base price.
func ResolveVariant(product model.Product, index int) (PriceQuote, error) {
	if index == NoVariant {
		return PriceQuote{Price: product.Price, Label: product.Unit}, nil
	}
	if index < 0 || index >= len(product.Variants) {
		return PriceQuote{}, domainErrors.ErrInvalidVariant
	}
	v := product.Variants[index]
	name := v.Name
	return PriceQuote{Price: v.Price, Label: name, Variant: &name}, nil
}

// VariantRevision digests the variant list so an index issued to the client
// can be checked against the list it was taken from.
func VariantRevision(variants []model.Variant) string {
	h := sha256.New()
	for _, v := range variants {
		h.Write([]byte(v.Name))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatInt(v.Price, 10)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:8]
}
