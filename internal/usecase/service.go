package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/printq/printq/internal/domain/model"
	"github.com/printq/printq/internal/domain/repository"
)

// DefaultStopMessage is shown to students when the operator stops the
// service without a note.
const DefaultStopMessage = "The print service is temporarily unavailable. Please try again later."

// ServiceUseCase flips and reads the shop's availability switch.
type ServiceUseCase struct {
	status repository.StatusRepository
	now    func() time.Time
}

// NewServiceUseCase constructs ServiceUseCase.
func NewServiceUseCase(status repository.StatusRepository) *ServiceUseCase {
	return &ServiceUseCase{status: status, now: time.Now}
}

// Status returns the current availability record.
func (u *ServiceUseCase) Status(ctx context.Context) (*model.ServiceStatus, error) {
	return u.status.Get(ctx)
}

// Stop switches new submissions off. Orders already in the queue keep
// flowing; only Create is gated.
func (u *ServiceUseCase) Stop(ctx context.Context, message, stoppedBy string) (*model.ServiceStatus, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		message = DefaultStopMessage
	}
	return u.status.Stop(ctx, message, stoppedBy, u.now().UTC())
}

// Start switches new submissions back on.
func (u *ServiceUseCase) Start(ctx context.Context) (*model.ServiceStatus, error) {
	return u.status.Start(ctx)
}
