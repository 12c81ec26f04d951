package handlers

import (
	"context"

	"github.com/printq/printq/internal/domain/model"
	"github.com/printq/printq/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (string, error)
}

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, req usecase.SubmitRequest) (*model.QueueEntry, error)
	Queue(ctx context.Context) ([]model.QueueEntry, error)
	Orders(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	Order(ctx context.Context, id string) (*model.QueueEntry, error)
	DownloadOrder(ctx context.Context, id string) (*model.Order, []byte, error)
	CompleteOrder(ctx context.Context, id string) error
	NotCompleteOrder(ctx context.Context, id string) error
	DeleteOrder(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.QueueStats, error)
}

// PaymentFacade provides payment verification operations.
type PaymentFacade interface {
	VerifyPayment(ctx context.Context, image []byte, contentType string) (*model.PaymentVerification, error)
	UPIID() string
}

// ServiceFacade flips and reads the availability switch.
type ServiceFacade interface {
	ServiceStatus(ctx context.Context) (*model.ServiceStatus, error)
	StopService(ctx context.Context, message, stoppedBy string) (*model.ServiceStatus, error)
	StartService(ctx context.Context) (*model.ServiceStatus, error)
}

// HealthFacade reports backing store health.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// PrintShopFacade aggregates the full set of operations used across handlers.
type PrintShopFacade interface {
	AuthFacade
	OrderFacade
	PaymentFacade
	ServiceFacade
	HealthFacade
}
