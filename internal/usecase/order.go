package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	"github.com/printq/printq/internal/domain/model"
	"github.com/printq/printq/internal/domain/repository"
	"github.com/printq/printq/internal/pricing"
)

// DocumentService is the document collaborator the order lifecycle depends
// on: page inspection, cover-page merge, and artifact retrieval.
type DocumentService interface {
	Inspect(ctx context.Context, files []model.FileUpload) ([]model.OrderFile, error)
	Merge(ctx context.Context, student model.Student, files []model.FileUpload) (*model.MergedArtifact, error)
	FetchArtifact(ctx context.Context, ref string) ([]byte, error)
}

// SubmitRequest carries everything needed to enqueue a print order.
type SubmitRequest struct {
	Student       model.Student
	Config        model.PrintConfig
	TransactionID string
	Files         []model.FileUpload
}

// OrderUseCase encapsulates the order lifecycle: submission through the
// payment gate, FIFO queue reads, and head-of-queue transitions.
type OrderUseCase struct {
	orders repository.OrderRepository
	status repository.StatusRepository
	tokens repository.TokenRepository
	docs   DocumentService
	now    func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	status repository.StatusRepository,
	tokens repository.TokenRepository,
	docs DocumentService,
) *OrderUseCase {
	return &OrderUseCase{orders: orders, status: status, tokens: tokens, docs: docs, now: time.Now}
}

// Submit validates the request, spends the payment token, prices the job,
// merges the documents, and enqueues the order. The token is consumed before
// the insert; a failed insert forfeits it.
func (u *OrderUseCase) Submit(ctx context.Context, req SubmitRequest) (*model.QueueEntry, error) {
	if err := ValidateSubmission(req.Student, req.Config, req.Files); err != nil {
		return nil, err
	}

	st, err := u.status.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !st.Active {
		return nil, domainErrors.ServiceUnavailableError{Message: st.Message}
	}

	token := strings.TrimSpace(req.TransactionID)
	if token == "" {
		return nil, domainErrors.ErrPaymentNotVerified
	}
	spent, err := u.tokens.Consume(ctx, token)
	if err != nil {
		return nil, err
	}
	if !spent {
		return nil, domainErrors.ErrPaymentNotVerified
	}

	files, err := u.docs.Inspect(ctx, req.Files)
	if err != nil {
		return nil, err
	}
	var totalPages int
	for _, f := range files {
		totalPages += f.PageCount
	}

	artifact, err := u.docs.Merge(ctx, req.Student, req.Files)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:            uuid.NewString(),
		Student:       req.Student,
		Files:         files,
		Config:        req.Config,
		TotalPages:    totalPages,
		EstimatedCost: pricing.ComputeCost(totalPages, req.Config),
		TransactionID: token,
		ArtifactRef:   artifact.Ref,
		FileSize:      artifact.ByteSize,
		Status:        model.OrderStatusPending,
		SubmittedAt:   u.now().UTC(),
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	rank, err := u.orders.Rank(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	return &model.QueueEntry{Order: *created, QueuePosition: rank, IsFirst: rank == 1}, nil
}

// Queue returns pending orders in processing order with 1-based positions.
func (u *OrderUseCase) Queue(ctx context.Context) ([]model.QueueEntry, error) {
	orders, err := u.orders.ListByStatus(ctx, model.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	entries := make([]model.QueueEntry, 0, len(orders))
	for i, order := range orders {
		entries = append(entries, model.QueueEntry{Order: order, QueuePosition: i + 1, IsFirst: i == 0})
	}
	return entries, nil
}

// Orders lists orders filtered by status; an empty status lists everything.
func (u *OrderUseCase) Orders(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if status != "" && !status.Valid() {
		return nil, domainErrors.ValidationError{Field: "status", Reason: "unknown order status"}
	}
	return u.orders.ListByStatus(ctx, status)
}

// Get fetches a single order with its current queue position.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.QueueEntry, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := &model.QueueEntry{Order: *order}
	if order.Status == model.OrderStatusPending {
		rank, err := u.orders.Rank(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		entry.QueuePosition = rank
		entry.IsFirst = rank == 1
	}
	return entry, nil
}

// Download fetches the merged artifact for printing. Only the order at the
// head of the pending queue is downloadable; terminal orders are gone as far
// as the printer is concerned.
func (u *OrderUseCase) Download(ctx context.Context, id string) (*model.Order, []byte, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if order.Status != model.OrderStatusPending {
		return nil, nil, domainErrors.ErrNotFound
	}
	first, err := u.orders.FirstPending(ctx)
	if err != nil {
		return nil, nil, err
	}
	if first.ID != order.ID {
		return nil, nil, domainErrors.ErrNotFirstInQueue
	}

	data, err := u.docs.FetchArtifact(ctx, order.ArtifactRef)
	if err != nil {
		return nil, nil, err
	}
	return order, data, nil
}

// Complete marks the head of the queue as printed.
func (u *OrderUseCase) Complete(ctx context.Context, id string) error {
	return u.orders.TransitionFirst(ctx, id, model.OrderStatusCompleted)
}

// NotComplete marks the head of the queue as failed without printing.
func (u *OrderUseCase) NotComplete(ctx context.Context, id string) error {
	return u.orders.TransitionFirst(ctx, id, model.OrderStatusNotCompleted)
}

// Delete removes the head of the queue without printing it.
func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	return u.orders.TransitionFirst(ctx, id, model.OrderStatusDeleted)
}

// Stats reports queue length and today's completions.
func (u *OrderUseCase) Stats(ctx context.Context) (*model.QueueStats, error) {
	now := u.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return u.orders.Stats(ctx, dayStart)
}

// PurgeExpired deletes terminal orders older than the retention window and
// returns the number of removed rows.
func (u *OrderUseCase) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	return u.orders.PurgeTerminal(ctx, u.now().Add(-retention))
}
