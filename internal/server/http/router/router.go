package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/printq/printq/internal/server/http/handlers"
	"github.com/printq/printq/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PrintShopFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	serviceHandler := handlers.NewServiceHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Health)

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.GET("/service/status", serviceHandler.Status)
	api.GET("/payment/upi-id", paymentHandler.UPIID)
	api.POST("/verify-payment", paymentHandler.Verify)
	api.POST("/orders", orderHandler.Submit)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)

	staff := api.Group("")
	staff.Use(middleware.OperatorRequired(facade))
	staff.GET("/orders/:id/download", orderHandler.Download)
	staff.POST("/orders/:id/complete", orderHandler.Complete)
	staff.POST("/orders/:id/not-complete", orderHandler.NotComplete)
	staff.DELETE("/orders/:id", orderHandler.Delete)
	staff.GET("/stats", orderHandler.Stats)
	staff.POST("/service/stop", serviceHandler.Stop)
	staff.POST("/service/start", serviceHandler.Start)

	return engine
}
