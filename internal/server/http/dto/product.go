package dto

import "time"

// VariantPayload is a named price option.
type VariantPayload struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ProductRequest creates or replaces a product.
type ProductRequest struct {
	Name        string           `json:"name"`
	Price       int64            `json:"price"`
	Unit        string           `json:"unit"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	IsActive    *bool            `json:"isActive"`
	Variants    []VariantPayload `json:"variants"`
}

// ProductResponse describes a catalog entry.
type ProductResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Price       int64            `json:"price"`
	Unit        string           `json:"unit"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	IsActive    bool             `json:"isActive"`
	Variants    []VariantPayload `json:"variants"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}
