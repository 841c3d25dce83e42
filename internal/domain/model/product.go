package model

import "time"

// Variant is a named sub-offering of a product. It is addressed by its
// position in Product.Variants; positions are only stable within one fetch.
type Variant struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Product is a catalog entry. Prices are in the smallest currency unit.
type Product struct {
	ID          int64
	Name        string
	Price       int64
	Unit        string
	Category    string
	Description string
	IsActive    bool
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasVariants reports whether the product is sold through variants.
func (p Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// MinVariantPrice returns the cheapest variant price, or the base price when
// the product has no variants.
func (p Product) MinVariantPrice() int64 {
	if !p.HasVariants() {
		return p.Price
	}
	lowest := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price < lowest {
			lowest = v.Price
		}
	}
	return lowest
}
