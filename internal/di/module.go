package di

import (
	"go.uber.org/fx"

	"github.com/printq/printq/internal/adapter/docproc"
	"github.com/printq/printq/internal/adapter/ocr"
	"github.com/printq/printq/internal/app"
	"github.com/printq/printq/internal/config"
	"github.com/printq/printq/internal/logger"
	"github.com/printq/printq/internal/pkg/auth"
	"github.com/printq/printq/internal/server/http/handlers"
	"github.com/printq/printq/internal/server/http/router"
	"github.com/printq/printq/internal/storage/postgres"
	"github.com/printq/printq/internal/storage/redistoken"
	"github.com/printq/printq/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redistoken.Module,
		docproc.Module,
		ocr.Module,
		usecase.Module,
		fx.Provide(func(client docproc.Client) usecase.DocumentService { return client }),
		fx.Provide(func(client ocr.Client) usecase.ExtractionService { return client }),
		fx.Provide(func(facade *app.PrintShopFacade) handlers.PrintShopFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
