package ocr

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/printq/printq/internal/config"
)

// Module exposes OCR client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.OCRServiceAddress, p.Logger)
}
