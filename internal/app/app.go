package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/printq/printq/internal/config"
	"github.com/printq/printq/internal/storage/postgres"
	"github.com/printq/printq/internal/storage/redistoken"
	"github.com/printq/printq/internal/usecase"
	"github.com/printq/printq/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newFacade,
		newHTTPServer,
		newRetentionJanitor,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth     *usecase.AuthUseCase
	Orders   *usecase.OrderUseCase
	Payments *usecase.PaymentUseCase
	Service  *usecase.ServiceUseCase
	Storage  *postgres.Storage
	Tokens   *redistoken.Store
}

func newFacade(p facadeParams) *PrintShopFacade {
	return NewPrintShopFacade(p.Auth, p.Orders, p.Payments, p.Service, p.Storage, p.Tokens)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type janitorParams struct {
	fx.In

	Facade *PrintShopFacade
	Config *config.Config
	Logger *slog.Logger
}

func newRetentionJanitor(p janitorParams) *worker.RetentionJanitor {
	return worker.NewRetentionJanitor(
		p.Facade,
		p.Config.JanitorInterval,
		p.Config.RetentionPeriod,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Janitor    *worker.RetentionJanitor
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting printq", slog.String("addr", p.Server.Addr))
			p.Janitor.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Janitor.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("printq stopped")
			return nil
		},
	})
}
