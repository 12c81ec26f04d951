package repository

import (
	"context"
	"time"

	"github.com/printq/printq/internal/domain/model"
)

// StatusRepository persists the single service availability record.
type StatusRepository interface {
	Get(ctx context.Context) (*model.ServiceStatus, error)
	Stop(ctx context.Context, message, stoppedBy string, at time.Time) (*model.ServiceStatus, error)
	Start(ctx context.Context) (*model.ServiceStatus, error)
}
