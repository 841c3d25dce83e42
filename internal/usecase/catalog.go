package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/domain/repository"
)

// Catalog is one numbered snapshot of the active products.
type Catalog struct {
	Entries []CatalogEntry
	// Total counts every active product, including the ones past the display cap.
	Total    int
	Revision string
}

// Shown returns how many numbered entries the snapshot exposes.
func (c *Catalog) Shown() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// CatalogUseCase exposes the numbered catalog to the chat flow.
type CatalogUseCase struct {
	products   repository.ProductRepository
	users      repository.UserRepository
	maxDisplay int
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, users repository.UserRepository, maxDisplay int) *CatalogUseCase {
	return &CatalogUseCase{products: products, users: users, maxDisplay: maxDisplay}
}

// Snapshot fetches active products in id order and numbers them.
func (u *CatalogUseCase) Snapshot(ctx context.Context) (*Catalog, error) {
	products, err := u.products.ListActive(ctx, u.maxDisplay)
	if err != nil {
		return nil, err
	}
	total, err := u.products.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	entries := RenderList(products, u.maxDisplay)
	if total < len(entries) {
		total = len(entries)
	}
	return &Catalog{Entries: entries, Total: total, Revision: CatalogRevision(entries)}, nil
}

// Select resolves selector number n for the user. The current snapshot is
// returned even on failure so callers can redisplay a fresh keyboard. When the
// user was last shown a different revision the selection is rejected with
// ErrStaleSelection instead of silently picking whatever now sits at n.
func (u *CatalogUseCase) Select(ctx context.Context, userID int64, n int) (*model.Product, *Catalog, error) {
	catalog, err := u.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	seen, err := u.seenRevision(ctx, userID)
	if err != nil {
		return nil, catalog, err
	}
	if seen != "" && seen != catalog.Revision {
		return nil, catalog, domainErrors.ErrStaleSelection
	}

	products := make([]model.Product, 0, len(catalog.Entries))
	for _, e := range catalog.Entries {
		products = append(products, e.Product)
	}
	product, err := ResolveSelection(products, n, u.maxDisplay)
	if err != nil {
		return nil, catalog, err
	}
	return &product, catalog, nil
}

// Remember records which catalog revision the user has just been shown.
func (u *CatalogUseCase) Remember(ctx context.Context, userID int64, revision string) error {
	return u.users.SetCatalogRevision(ctx, userID, revision)
}

// Product returns an active product by id.
func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domainErrors.ErrNotFound
	}
	return product, nil
}

func (u *CatalogUseCase) seenRevision(ctx context.Context, userID int64) (string, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return user.CatalogRevision, nil
}
