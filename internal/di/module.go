package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storebot/internal/adapter/imagehost"
	"github.com/polkiloo/storebot/internal/adapter/telegram"
	"github.com/polkiloo/storebot/internal/app"
	"github.com/polkiloo/storebot/internal/bot"
	"github.com/polkiloo/storebot/internal/config"
	"github.com/polkiloo/storebot/internal/logger"
	"github.com/polkiloo/storebot/internal/pkg/auth"
	"github.com/polkiloo/storebot/internal/server/http/handlers"
	"github.com/polkiloo/storebot/internal/server/http/router"
	"github.com/polkiloo/storebot/internal/storage/postgres"
	"github.com/polkiloo/storebot/internal/usecase"
)

// Module assembles the application graph. Extra options are appended last,
// so tests can swap adapters with fx.Replace or fx.Decorate.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		imagehost.Module,
		telegram.Module,
		usecase.Module,
		bot.Module,
		fx.Provide(
			func(h *bot.Handler) app.UpdateHandler { return h },
			func(n *bot.Notifier) app.DirectMessenger { return n },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.StoreFacade) handlers.StoreFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
