package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storebot/internal/config"
	"github.com/polkiloo/storebot/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newCatalogUseCase,
	newAdminCredentials,
	NewAuthUseCase,
	NewOrderUseCase,
	NewProofUseCase,
	NewCustomerUseCase,
	NewProductUseCase,
)

type catalogParams struct {
	fx.In

	Config   *config.Config
	Products repository.ProductRepository
	Users    repository.UserRepository
}

func newCatalogUseCase(p catalogParams) *CatalogUseCase {
	return NewCatalogUseCase(p.Products, p.Users, p.Config.CatalogMaxDisplay)
}

func newAdminCredentials(cfg *config.Config) AdminCredentials {
	return AdminCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
}
