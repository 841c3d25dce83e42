package imagehost

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storebot/internal/config"
	"github.com/polkiloo/storebot/internal/usecase"
)

// Module exposes the image host client as the proof uploader.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (usecase.ImageUploader, error) {
	return NewHTTPClient(p.Config.ImageHostURL, p.Config.ImageHostUserHash, p.Logger)
}
