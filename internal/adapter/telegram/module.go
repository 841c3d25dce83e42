package telegram

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storebot/internal/config"
)

// Module provides the outbound chat client.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

var newBotAPIClient = NewBotClient

func newClient(p clientParams) (Client, error) {
	if !p.Config.BotEnabled() {
		p.Logger.Warn("bot token missing, chat transport disabled")
		return DisabledClient{}, nil
	}
	client, err := newBotAPIClient(p.Config.BotToken, p.Logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}
