package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/domain/repository"
)

// ProductUseCase implements operator catalog administration.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// List returns every product, active or not.
func (u *ProductUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// Get returns a product by id.
func (u *ProductUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// Create validates and stores a new product.
func (u *ProductUseCase) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	product = normalizeProduct(product)
	if err := ValidateProduct(product); err != nil {
		return nil, err
	}
	return u.products.Create(ctx, product)
}

// Update validates and replaces an existing product.
func (u *ProductUseCase) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	product = normalizeProduct(product)
	if err := ValidateProduct(product); err != nil {
		return nil, err
	}
	return u.products.Update(ctx, product)
}

// Delete removes a product. Existing orders keep their snapshotted name.
func (u *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}

// ValidateProduct checks catalog invariants.
func ValidateProduct(p model.Product) error {
	if p.Name == "" || p.Price < 0 {
		return domainErrors.ErrInvalidProduct
	}
	for _, v := range p.Variants {
		if strings.TrimSpace(v.Name) == "" || v.Price < 0 {
			return domainErrors.ErrInvalidProduct
		}
	}
	return nil
}

func normalizeProduct(p model.Product) model.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Unit = strings.TrimSpace(p.Unit)
	p.Category = strings.TrimSpace(p.Category)
	if len(p.Variants) == 0 {
		p.Variants = nil
		return p
	}
	variants := make([]model.Variant, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = model.Variant{Name: strings.TrimSpace(v.Name), Price: v.Price}
	}
	p.Variants = variants
	return p
}
