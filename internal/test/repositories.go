// Package test hosts hand-written stubs shared by unit tests across layers.
package test

import (
	"context"
	"sort"
	"time"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	"github.com/printq/printq/internal/domain/model"
)

// OrderRepositoryStub keeps orders in-memory and mirrors the queue semantics
// of the postgres repository closely enough for use case tests.
type OrderRepositoryStub struct {
	Orders map[string]*model.Order
	Active bool
	Err    error
}

// NewOrderRepositoryStub constructs the stub with an active service.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order), Active: true}
}

// Create stores the order unless the stub simulates a stopped service.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if !s.Active {
		return nil, domainErrors.ServiceUnavailableError{Message: "stopped"}
	}
	stored := *order
	s.Orders[stored.ID] = &stored
	result := stored
	return &result, nil
}

// GetByID fetches order by identifier or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		result := *order
		return &result, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByStatus filters stored orders; pending comes queue-ordered.
func (s *OrderRepositoryStub) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var orders []model.Order
	for _, order := range s.Orders {
		if status == "" || order.Status == status {
			orders = append(orders, *order)
		}
	}
	if status == model.OrderStatusPending {
		sort.Slice(orders, func(i, j int) bool { return queueBefore(orders[i], orders[j]) })
	} else {
		sort.Slice(orders, func(i, j int) bool { return orders[i].SubmittedAt.After(orders[j].SubmittedAt) })
	}
	return orders, nil
}

// FirstPending returns the queue head or not found when the queue is empty.
func (s *OrderRepositoryStub) FirstPending(ctx context.Context) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	pending, _ := s.ListByStatus(ctx, model.OrderStatusPending)
	if len(pending) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	result := pending[0]
	return &result, nil
}

// Rank returns the 1-based queue position of a pending order.
func (s *OrderRepositoryStub) Rank(ctx context.Context, id string) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	pending, _ := s.ListByStatus(ctx, model.OrderStatusPending)
	for i, order := range pending {
		if order.ID == id {
			return i + 1, nil
		}
	}
	return 0, domainErrors.ErrNotFound
}

// TransitionFirst moves the queue head to a terminal status.
func (s *OrderRepositoryStub) TransitionFirst(ctx context.Context, id string, status model.OrderStatus) error {
	if s.Err != nil {
		return s.Err
	}
	target, ok := s.Orders[id]
	if !ok || target.Status != model.OrderStatusPending {
		return domainErrors.ErrNotFound
	}
	first, err := s.FirstPending(ctx)
	if err != nil {
		return err
	}
	if first.ID != id {
		return domainErrors.ErrNotFirstInQueue
	}
	target.Status = status
	if status == model.OrderStatusCompleted {
		now := time.Now()
		target.CompletedAt = &now
	}
	return nil
}

// Stats counts pending orders and completions after dayStart.
func (s *OrderRepositoryStub) Stats(ctx context.Context, dayStart time.Time) (*model.QueueStats, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stats := &model.QueueStats{}
	for _, order := range s.Orders {
		switch {
		case order.Status == model.OrderStatusPending:
			stats.PendingCount++
		case order.Status == model.OrderStatusCompleted && order.CompletedAt != nil && !order.CompletedAt.Before(dayStart):
			stats.CompletedToday++
		}
	}
	return stats, nil
}

// PurgeTerminal drops terminal orders that finished before the cutoff.
func (s *OrderRepositoryStub) PurgeTerminal(ctx context.Context, before time.Time) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	var removed int64
	for id, order := range s.Orders {
		if order.Status == model.OrderStatusPending {
			continue
		}
		finished := order.SubmittedAt
		if order.CompletedAt != nil {
			finished = *order.CompletedAt
		}
		if finished.Before(before) {
			delete(s.Orders, id)
			removed++
		}
	}
	return removed, nil
}

func queueBefore(a, b model.Order) bool {
	if a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.ID < b.ID
	}
	return a.SubmittedAt.Before(b.SubmittedAt)
}

// StatusRepositoryStub holds the availability switch in memory.
type StatusRepositoryStub struct {
	State model.ServiceStatus
	Err   error
}

// NewStatusRepositoryStub constructs the stub with the service running.
func NewStatusRepositoryStub() *StatusRepositoryStub {
	return &StatusRepositoryStub{State: model.ServiceStatus{Active: true}}
}

// Get returns the current availability record.
func (s *StatusRepositoryStub) Get(ctx context.Context) (*model.ServiceStatus, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	state := s.State
	return &state, nil
}

// Stop records a stop with the operator's note.
func (s *StatusRepositoryStub) Stop(ctx context.Context, message, stoppedBy string, at time.Time) (*model.ServiceStatus, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.State = model.ServiceStatus{Active: false, Message: message, StoppedAt: &at, StoppedBy: stoppedBy}
	state := s.State
	return &state, nil
}

// Start clears the stop record.
func (s *StatusRepositoryStub) Start(ctx context.Context) (*model.ServiceStatus, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.State = model.ServiceStatus{Active: true}
	state := s.State
	return &state, nil
}

// TokenRepositoryStub records minted tokens and spends them once.
type TokenRepositoryStub struct {
	Tokens     map[string]time.Duration
	PutErr     error
	ConsumeErr error
}

// NewTokenRepositoryStub constructs stub with initialized map.
func NewTokenRepositoryStub() *TokenRepositoryStub {
	return &TokenRepositoryStub{Tokens: make(map[string]time.Duration)}
}

// Put stores the token with its TTL for later assertions.
func (s *TokenRepositoryStub) Put(ctx context.Context, token string, ttl time.Duration) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	if s.Tokens == nil {
		s.Tokens = make(map[string]time.Duration)
	}
	s.Tokens[token] = ttl
	return nil
}

// Consume removes the token and reports whether it was present.
func (s *TokenRepositoryStub) Consume(ctx context.Context, token string) (bool, error) {
	if s.ConsumeErr != nil {
		return false, s.ConsumeErr
	}
	if _, ok := s.Tokens[token]; ok {
		delete(s.Tokens, token)
		return true, nil
	}
	return false, nil
}
