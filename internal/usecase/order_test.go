package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	"github.com/printq/printq/internal/domain/model"
	testhelpers "github.com/printq/printq/internal/test"
)

func validSubmitRequest() SubmitRequest {
	return SubmitRequest{
		Student: model.Student{
			Name:        "Asha Rao",
			StudentID:   "IEM2021042",
			PhoneNumber: "9876543210",
		},
		Config: model.PrintConfig{
			ColorMode:  model.ColorModeBW,
			PaperType:  model.PaperTypeNormal,
			PrintSides: model.PrintSidesSingle,
			PageSize:   model.PageSizeA4,
			Copies:     1,
			Binding:    model.BindingNone,
		},
		TransactionID: "123456789012",
		Files: []model.FileUpload{
			{Filename: "notes.pdf", Data: []byte("%PDF-notes")},
			{Filename: "slides.pdf", Data: []byte("%PDF-slides")},
		},
	}
}

func newOrderFixture() (*OrderUseCase, *testhelpers.OrderRepositoryStub, *testhelpers.StatusRepositoryStub, *testhelpers.TokenRepositoryStub) {
	orders := testhelpers.NewOrderRepositoryStub()
	status := testhelpers.NewStatusRepositoryStub()
	tokens := testhelpers.NewTokenRepositoryStub()
	uc := NewOrderUseCase(orders, status, tokens, testhelpers.DocumentServiceStub{})
	return uc, orders, status, tokens
}

func TestSubmitSuccess(t *testing.T) {
	uc, orders, _, tokens := newOrderFixture()
	tokens.Tokens["123456789012"] = time.Minute

	entry, err := uc.Submit(context.Background(), validSubmitRequest())
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if entry.QueuePosition != 1 || !entry.IsFirst {
		t.Fatalf("expected head of queue, got %+v", entry)
	}
	// Two files at four pages each, black and white A4: 2.00 front page
	// plus 8 pages at 2.00.
	if entry.Order.TotalPages != 8 {
		t.Fatalf("unexpected total pages %d", entry.Order.TotalPages)
	}
	if entry.Order.EstimatedCost != 18 {
		t.Fatalf("unexpected cost %v", entry.Order.EstimatedCost)
	}
	if entry.Order.ArtifactRef == "" || entry.Order.ID == "" {
		t.Fatalf("artifact ref and id must be set: %+v", entry.Order)
	}
	if len(tokens.Tokens) != 0 {
		t.Fatal("payment token was not consumed")
	}
	if _, ok := orders.Orders[entry.Order.ID]; !ok {
		t.Fatal("order was not persisted")
	}
}

func TestSubmitWithoutVerifiedPayment(t *testing.T) {
	uc, orders, _, _ := newOrderFixture()

	if _, err := uc.Submit(context.Background(), validSubmitRequest()); !errors.Is(err, domainErrors.ErrPaymentNotVerified) {
		t.Fatalf("expected ErrPaymentNotVerified, got %v", err)
	}
	if len(orders.Orders) != 0 {
		t.Fatal("order must not be persisted")
	}
}

func TestSubmitEmptyTransactionID(t *testing.T) {
	uc, _, _, _ := newOrderFixture()

	req := validSubmitRequest()
	req.TransactionID = "   "
	if _, err := uc.Submit(context.Background(), req); !errors.Is(err, domainErrors.ErrPaymentNotVerified) {
		t.Fatalf("expected ErrPaymentNotVerified, got %v", err)
	}
}

func TestSubmitServiceStopped(t *testing.T) {
	uc, _, status, tokens := newOrderFixture()
	tokens.Tokens["123456789012"] = time.Minute
	if _, err := status.Stop(context.Background(), "closed for exams", "operator", time.Now()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	_, err := uc.Submit(context.Background(), validSubmitRequest())
	var unavailable domainErrors.ServiceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ServiceUnavailableError, got %v", err)
	}
	if unavailable.Message != "closed for exams" {
		t.Fatalf("operator note lost: %q", unavailable.Message)
	}
	if len(tokens.Tokens) != 1 {
		t.Fatal("token must not be spent while service is stopped")
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	uc, _, _, _ := newOrderFixture()

	req := validSubmitRequest()
	req.Config.Copies = 0
	_, err := uc.Submit(context.Background(), req)
	var validation domainErrors.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validation.Field != "copies" {
		t.Fatalf("unexpected field %q", validation.Field)
	}
}

func submitAt(t *testing.T, uc *OrderUseCase, tokens *testhelpers.TokenRepositoryStub, token string, at time.Time) *model.QueueEntry {
	t.Helper()
	tokens.Tokens[token] = time.Minute
	uc.now = func() time.Time { return at }
	req := validSubmitRequest()
	req.TransactionID = token
	entry, err := uc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return entry
}

func TestQueueOrdering(t *testing.T) {
	uc, _, _, tokens := newOrderFixture()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	first := submitAt(t, uc, tokens, "111111111111", base)
	second := submitAt(t, uc, tokens, "222222222222", base.Add(time.Minute))

	queue, err := uc.Queue(context.Background())
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(queue))
	}
	if queue[0].Order.ID != first.Order.ID || !queue[0].IsFirst {
		t.Fatalf("oldest order must head the queue: %+v", queue[0])
	}
	if queue[1].Order.ID != second.Order.ID || queue[1].QueuePosition != 2 {
		t.Fatalf("unexpected second entry: %+v", queue[1])
	}

	entry, err := uc.Get(context.Background(), second.Order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.QueuePosition != 2 || entry.IsFirst {
		t.Fatalf("unexpected position: %+v", entry)
	}
}

func TestOrdersRejectsUnknownStatus(t *testing.T) {
	uc, _, _, _ := newOrderFixture()
	var validation domainErrors.ValidationError
	if _, err := uc.Orders(context.Background(), "shredded"); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDownloadOnlyHeadOfQueue(t *testing.T) {
	uc, _, _, tokens := newOrderFixture()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	first := submitAt(t, uc, tokens, "111111111111", base)
	second := submitAt(t, uc, tokens, "222222222222", base.Add(time.Minute))

	if _, _, err := uc.Download(context.Background(), second.Order.ID); !errors.Is(err, domainErrors.ErrNotFirstInQueue) {
		t.Fatalf("expected ErrNotFirstInQueue, got %v", err)
	}

	order, data, err := uc.Download(context.Background(), first.Order.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if order.ID != first.Order.ID || len(data) == 0 {
		t.Fatalf("unexpected download result: %+v", order)
	}
}

func TestDownloadTerminalOrders(t *testing.T) {
	for _, status := range []model.OrderStatus{
		model.OrderStatusCompleted,
		model.OrderStatusNotCompleted,
		model.OrderStatusDeleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			uc, orders, _, tokens := newOrderFixture()
			entry := submitAt(t, uc, tokens, "111111111111", time.Now())
			orders.Orders[entry.Order.ID].Status = status

			if _, _, err := uc.Download(context.Background(), entry.Order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
				t.Fatalf("expected ErrNotFound for %s order, got %v", status, err)
			}
		})
	}
}

func TestCompleteHonorsQueueOrder(t *testing.T) {
	uc, orders, _, tokens := newOrderFixture()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	first := submitAt(t, uc, tokens, "111111111111", base)
	second := submitAt(t, uc, tokens, "222222222222", base.Add(time.Minute))

	if err := uc.Complete(context.Background(), second.Order.ID); !errors.Is(err, domainErrors.ErrNotFirstInQueue) {
		t.Fatalf("expected ErrNotFirstInQueue, got %v", err)
	}
	if err := uc.Complete(context.Background(), first.Order.ID); err != nil {
		t.Fatalf("complete head: %v", err)
	}
	if orders.Orders[first.Order.ID].Status != model.OrderStatusCompleted {
		t.Fatal("head order not completed")
	}
	// The queue advances: the second order becomes completable.
	if err := uc.NotComplete(context.Background(), second.Order.ID); err != nil {
		t.Fatalf("not-complete new head: %v", err)
	}
	if err := uc.Delete(context.Background(), second.Order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for settled order, got %v", err)
	}
}

func TestStats(t *testing.T) {
	uc, orders, _, tokens := newOrderFixture()
	uc.now = func() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC) }

	entry := submitAt(t, uc, tokens, "111111111111", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	done := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	orders.Orders[entry.Order.ID].Status = model.OrderStatusCompleted
	orders.Orders[entry.Order.ID].CompletedAt = &done
	submitAt(t, uc, tokens, "222222222222", time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC))

	uc.now = func() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC) }
	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PendingCount != 1 || stats.CompletedToday != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPurgeExpired(t *testing.T) {
	uc, orders, _, tokens := newOrderFixture()
	old := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	entry := submitAt(t, uc, tokens, "111111111111", old)
	orders.Orders[entry.Order.ID].Status = model.OrderStatusNotCompleted

	uc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	removed, err := uc.PurgeExpired(context.Background(), 30*24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 || len(orders.Orders) != 0 {
		t.Fatalf("expected one purged order, got %d", removed)
	}
}
