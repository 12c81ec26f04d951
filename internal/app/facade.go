package app

import (
	"context"
	"time"

	"github.com/printq/printq/internal/domain/model"
	"github.com/printq/printq/internal/usecase"
)

// Pinger reports backing store health.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// PrintShopFacade is the application surface consumed by the HTTP layer and
// the retention janitor.
type PrintShopFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	service  *usecase.ServiceUseCase
	db       Pinger
	cache    Pinger
}

// NewPrintShopFacade constructs the facade over the use cases.
func NewPrintShopFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	service *usecase.ServiceUseCase,
	db, cache Pinger,
) *PrintShopFacade {
	return &PrintShopFacade{auth: auth, orders: orders, payments: payments, service: service, db: db, cache: cache}
}

func (f *PrintShopFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *PrintShopFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *PrintShopFacade) SubmitOrder(ctx context.Context, req usecase.SubmitRequest) (*model.QueueEntry, error) {
	return f.orders.Submit(ctx, req)
}

func (f *PrintShopFacade) Queue(ctx context.Context) ([]model.QueueEntry, error) {
	return f.orders.Queue(ctx)
}

func (f *PrintShopFacade) Orders(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return f.orders.Orders(ctx, status)
}

func (f *PrintShopFacade) Order(ctx context.Context, id string) (*model.QueueEntry, error) {
	return f.orders.Get(ctx, id)
}

func (f *PrintShopFacade) DownloadOrder(ctx context.Context, id string) (*model.Order, []byte, error) {
	return f.orders.Download(ctx, id)
}

func (f *PrintShopFacade) CompleteOrder(ctx context.Context, id string) error {
	return f.orders.Complete(ctx, id)
}

func (f *PrintShopFacade) NotCompleteOrder(ctx context.Context, id string) error {
	return f.orders.NotComplete(ctx, id)
}

func (f *PrintShopFacade) DeleteOrder(ctx context.Context, id string) error {
	return f.orders.Delete(ctx, id)
}

func (f *PrintShopFacade) Stats(ctx context.Context) (*model.QueueStats, error) {
	return f.orders.Stats(ctx)
}

func (f *PrintShopFacade) VerifyPayment(ctx context.Context, image []byte, contentType string) (*model.PaymentVerification, error) {
	return f.payments.VerifyScreenshot(ctx, image, contentType)
}

func (f *PrintShopFacade) UPIID() string {
	return f.payments.UPIID()
}

func (f *PrintShopFacade) ServiceStatus(ctx context.Context) (*model.ServiceStatus, error) {
	return f.service.Status(ctx)
}

// StopService records the stop under the authenticated operator's identity.
func (f *PrintShopFacade) StopService(ctx context.Context, message, stoppedBy string) (*model.ServiceStatus, error) {
	return f.service.Stop(ctx, message, stoppedBy)
}

func (f *PrintShopFacade) StartService(ctx context.Context) (*model.ServiceStatus, error) {
	return f.service.Start(ctx)
}

// PurgeExpired drops terminal orders older than the retention window.
func (f *PrintShopFacade) PurgeExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	return f.orders.PurgeExpired(ctx, olderThan)
}

// Health pings the order store and the token store.
func (f *PrintShopFacade) Health(ctx context.Context) error {
	if err := f.db.HealthCheck(ctx); err != nil {
		return err
	}
	return f.cache.HealthCheck(ctx)
}
