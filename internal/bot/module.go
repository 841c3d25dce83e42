package bot

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storebot/internal/adapter/telegram"
	"github.com/polkiloo/storebot/internal/config"
	"github.com/polkiloo/storebot/internal/usecase"
)

// Module provides the chat flow handler and the order notifier.
var Module = fx.Options(
	fx.Provide(
		newSettings,
		newNotifier,
		func(n *Notifier) usecase.Notifier { return n },
		NewHandler,
	),
)

func newSettings(cfg *config.Config) Settings {
	return Settings{
		Keyboard:     KeyboardBuilder{MaxDisplay: cfg.CatalogMaxDisplay, ButtonsPerRow: cfg.ButtonsPerRow},
		WelcomePhoto: cfg.WelcomePhoto,
		Bank:         cfg.Bank,
		PaymentQR:    cfg.PaymentQR,
	}
}

type notifierParams struct {
	fx.In

	Client telegram.Client
	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) *Notifier {
	return NewNotifier(p.Client, p.Config.OperatorChatID, p.Logger)
}
