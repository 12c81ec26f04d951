package facades

import (
	"context"
	"time"

	"github.com/printq/printq/internal/domain/model"
	"github.com/printq/printq/internal/usecase"
)

// AuthFacadeStub simulates operator authentication for HTTP tests.
type AuthFacadeStub struct {
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (string, error)
}

// Authenticate returns a token for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns the operator login for authenticated requests.
func (s AuthFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "xerox_admin", nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	SubmitFn      func(context.Context, usecase.SubmitRequest) (*model.QueueEntry, error)
	QueueFn       func(context.Context) ([]model.QueueEntry, error)
	OrdersFn      func(context.Context, model.OrderStatus) ([]model.Order, error)
	OrderFn       func(context.Context, string) (*model.QueueEntry, error)
	DownloadFn    func(context.Context, string) (*model.Order, []byte, error)
	CompleteFn    func(context.Context, string) error
	NotCompleteFn func(context.Context, string) error
	DeleteFn      func(context.Context, string) error
	StatsFn       func(context.Context) (*model.QueueStats, error)
}

// SubmitOrder delegates to the override or enqueues at position one.
func (s OrderFacadeStub) SubmitOrder(ctx context.Context, req usecase.SubmitRequest) (*model.QueueEntry, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, req)
	}
	order := model.Order{
		ID:            "order-1",
		Student:       req.Student,
		Config:        req.Config,
		TransactionID: req.TransactionID,
		Status:        model.OrderStatusPending,
		SubmittedAt:   time.Unix(0, 0).UTC(),
	}
	return &model.QueueEntry{Order: order, QueuePosition: 1, IsFirst: true}, nil
}

// Queue returns the configured pending entries.
func (s OrderFacadeStub) Queue(ctx context.Context) ([]model.QueueEntry, error) {
	if s.QueueFn != nil {
		return s.QueueFn(ctx)
	}
	return nil, nil
}

// Orders returns the configured status-filtered orders.
func (s OrderFacadeStub) Orders(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, status)
	}
	return nil, nil
}

// Order returns the configured single entry.
func (s OrderFacadeStub) Order(ctx context.Context, id string) (*model.QueueEntry, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.QueueEntry{Order: model.Order{ID: id, Status: model.OrderStatusPending}, QueuePosition: 1, IsFirst: true}, nil
}

// DownloadOrder returns placeholder PDF bytes.
func (s OrderFacadeStub) DownloadOrder(ctx context.Context, id string) (*model.Order, []byte, error) {
	if s.DownloadFn != nil {
		return s.DownloadFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, []byte("%PDF-merged"), nil
}

// CompleteOrder delegates to the override or succeeds.
func (s OrderFacadeStub) CompleteOrder(ctx context.Context, id string) error {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, id)
	}
	return nil
}

// NotCompleteOrder delegates to the override or succeeds.
func (s OrderFacadeStub) NotCompleteOrder(ctx context.Context, id string) error {
	if s.NotCompleteFn != nil {
		return s.NotCompleteFn(ctx, id)
	}
	return nil
}

// DeleteOrder delegates to the override or succeeds.
func (s OrderFacadeStub) DeleteOrder(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// Stats returns the configured counters.
func (s OrderFacadeStub) Stats(ctx context.Context) (*model.QueueStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return &model.QueueStats{}, nil
}

// PaymentFacadeStub simulates the verifier gate.
type PaymentFacadeStub struct {
	VerifyFn func(context.Context, []byte, string) (*model.PaymentVerification, error)
	UPIIDVal string
}

// VerifyPayment delegates to the override or accepts with a fixed id.
func (s PaymentFacadeStub) VerifyPayment(ctx context.Context, image []byte, contentType string) (*model.PaymentVerification, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, image, contentType)
	}
	return &model.PaymentVerification{Accepted: true, TransactionID: "123456789012"}, nil
}

// UPIID returns the configured UPI address.
func (s PaymentFacadeStub) UPIID() string {
	if s.UPIIDVal != "" {
		return s.UPIIDVal
	}
	return "shop@upi"
}

// ServiceFacadeStub simulates the availability switch.
type ServiceFacadeStub struct {
	StatusFn func(context.Context) (*model.ServiceStatus, error)
	StopFn   func(context.Context, string, string) (*model.ServiceStatus, error)
	StartFn  func(context.Context) (*model.ServiceStatus, error)
}

// ServiceStatus delegates to the override or reports an active service.
func (s ServiceFacadeStub) ServiceStatus(ctx context.Context) (*model.ServiceStatus, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx)
	}
	return &model.ServiceStatus{Active: true}, nil
}

// StopService delegates to the override or records the stop.
func (s ServiceFacadeStub) StopService(ctx context.Context, message, stoppedBy string) (*model.ServiceStatus, error) {
	if s.StopFn != nil {
		return s.StopFn(ctx, message, stoppedBy)
	}
	at := time.Unix(0, 0).UTC()
	return &model.ServiceStatus{Active: false, Message: message, StoppedAt: &at, StoppedBy: stoppedBy}, nil
}

// StartService delegates to the override or reactivates the service.
func (s ServiceFacadeStub) StartService(ctx context.Context) (*model.ServiceStatus, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx)
	}
	return &model.ServiceStatus{Active: true}, nil
}

// PrintShopFacadeStub aggregates facade stubs for HTTP layer tests.
type PrintShopFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	ServiceFacadeStub

	HealthFn func(context.Context) error
}

// Health delegates to the override or reports healthy stores.
func (s PrintShopFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
