package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
)

// CatalogEntry pairs a product with the 1-based selector number shown to the customer.
type CatalogEntry struct {
	Number  int
	Product model.Product
}

// maxSelectorDigits bounds numeric chat input treated as a selector number.
const maxSelectorDigits = 3

// DisplayCount returns how many catalog positions receive a selector number.
// The keyboard builder and RenderList both derive their numbering from it.
func DisplayCount(total, maxDisplay int) int {
	if total <= 0 {
		return 0
	}
	if maxDisplay > 0 && total > maxDisplay {
		return maxDisplay
	}
	return total
}

// RenderList numbers products 1..N in the order given, truncated to maxDisplay.
// Callers must pass products fetched with the same ordering used by ResolveSelection.
func RenderList(products []model.Product, maxDisplay int) []CatalogEntry {
	count := DisplayCount(len(products), maxDisplay)
	entries := make([]CatalogEntry, 0, count)
	for i := 0; i < count; i++ {
		entries = append(entries, CatalogEntry{Number: i + 1, Product: products[i]})
	}
	return entries
}

// ResolveSelection re-applies the RenderList numbering and returns the product
// that was given number n. Numbers outside [1, min(N, maxDisplay)] are ErrNotFound.
func ResolveSelection(products []model.Product, n, maxDisplay int) (model.Product, error) {
	entries := RenderList(products, maxDisplay)
	if n < 1 || n > len(entries) {
		return model.Product{}, domainErrors.ErrNotFound
	}
	return entries[n-1].Product, nil
}

// ParseSelector converts chat text into a selector number. Anything that is not
// a short positive decimal integer is ErrNotFound.
func ParseSelector(text string) (int, error) {
	text = strings.TrimSpace(text)
	if !IsSelectorText(text) {
		return 0, domainErrors.ErrNotFound
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 {
		return 0, domainErrors.ErrNotFound
	}
	return n, nil
}

// IsSelectorText reports whether text looks like a selector number.
func IsSelectorText(text string) bool {
	if text == "" || len(text) > maxSelectorDigits {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CatalogRevision digests the product ids that received numbers, in order.
// Two listings with the same revision map every number to the same product.
func CatalogRevision(entries []CatalogEntry) string {
	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(strconv.FormatInt(e.Product.ID, 10)))
		h.Write([]byte{','})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
