package app

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	"github.com/printq/printq/internal/domain/model"
	testhelpers "github.com/printq/printq/internal/test"
	"github.com/printq/printq/internal/usecase"
)

type pingerStub struct {
	err error
}

func (p pingerStub) HealthCheck(ctx context.Context) error { return p.err }

func newTestFacade(db, cache Pinger) (*PrintShopFacade, *testhelpers.TokenRepositoryStub, *testhelpers.StatusRepositoryStub) {
	orders := testhelpers.NewOrderRepositoryStub()
	status := testhelpers.NewStatusRepositoryStub()
	tokens := testhelpers.NewTokenRepositoryStub()

	auth := usecase.NewAuthUseCase(
		usecase.Operator{Login: "xerox_admin", PasswordHash: "hash:secret"},
		testhelpers.HasherStub{},
		testhelpers.StrategyStub{},
	)
	orderUC := usecase.NewOrderUseCase(orders, status, tokens, testhelpers.DocumentServiceStub{})
	paymentUC := usecase.NewPaymentUseCase(testhelpers.ExtractionServiceStub{
		Extraction: &model.PaymentExtraction{RawText: "Payment successful Paid to UNMAN CHAUDHURI UPI Ref No. 123456789012"},
	}, tokens, usecase.PaymentOptions{
		ReceiverName:  "Unman Chaudhuri",
		ReceiverPhone: "9876543210",
		UPIID:         "unman@upi",
		TokenTTL:      30 * time.Minute,
	})
	serviceUC := usecase.NewServiceUseCase(status)

	return NewPrintShopFacade(auth, orderUC, paymentUC, serviceUC, db, cache), tokens, status
}

func TestFacadeVerifyThenSubmit(t *testing.T) {
	facade, tokens, _ := newTestFacade(pingerStub{}, pingerStub{})
	ctx := context.Background()

	verification, err := facade.VerifyPayment(ctx, []byte("png"), "image/png")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verification.Accepted {
		t.Fatalf("expected acceptance: %+v", verification)
	}

	entry, err := facade.SubmitOrder(ctx, usecase.SubmitRequest{
		Student: model.Student{Name: "Asha Rao", StudentID: "IEM2021042", PhoneNumber: "9876543210"},
		Config: model.PrintConfig{
			ColorMode:  model.ColorModeBW,
			PaperType:  model.PaperTypeNormal,
			PrintSides: model.PrintSidesSingle,
			PageSize:   model.PageSizeA4,
			Copies:     1,
			Binding:    model.BindingNone,
		},
		TransactionID: verification.TransactionID,
		Files:         []model.FileUpload{{Filename: "notes.pdf", Data: []byte("%PDF-notes")}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !entry.IsFirst {
		t.Fatalf("expected head of queue: %+v", entry)
	}
	if len(tokens.Tokens) != 0 {
		t.Fatal("token must be spent by submission")
	}

	// The same transaction id cannot buy a second order.
	_, err = facade.SubmitOrder(ctx, usecase.SubmitRequest{
		Student: model.Student{Name: "Asha Rao", StudentID: "IEM2021042", PhoneNumber: "9876543210"},
		Config: model.PrintConfig{
			ColorMode:  model.ColorModeBW,
			PaperType:  model.PaperTypeNormal,
			PrintSides: model.PrintSidesSingle,
			PageSize:   model.PageSizeA4,
			Copies:     1,
			Binding:    model.BindingNone,
		},
		TransactionID: verification.TransactionID,
		Files:         []model.FileUpload{{Filename: "notes.pdf", Data: []byte("%PDF-notes")}},
	})
	if !errors.Is(err, domainErrors.ErrPaymentNotVerified) {
		t.Fatalf("expected ErrPaymentNotVerified on token reuse, got %v", err)
	}
}

func TestFacadeStopServiceRecordsOperator(t *testing.T) {
	facade, _, status := newTestFacade(pingerStub{}, pingerStub{})

	state, err := facade.StopService(context.Background(), "toner delivery", "xerox_admin")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if state.StoppedBy != "xerox_admin" {
		t.Fatalf("actor not recorded: %+v", state)
	}
	if status.State.Active {
		t.Fatal("switch must be off")
	}

	if _, err := facade.StartService(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	current, err := facade.ServiceStatus(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !current.Active {
		t.Fatal("switch must be back on")
	}
}

func TestFacadeAuth(t *testing.T) {
	facade, _, _ := newTestFacade(pingerStub{}, pingerStub{})

	token, err := facade.Authenticate(context.Background(), "xerox_admin", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	subject, err := facade.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if subject != "xerox_admin" {
		t.Fatalf("unexpected subject %q", subject)
	}
}

func TestFacadeHealth(t *testing.T) {
	healthy, _, _ := newTestFacade(pingerStub{}, pingerStub{})
	if err := healthy.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}

	dbErr := errors.New("db down")
	dbDown, _, _ := newTestFacade(pingerStub{err: dbErr}, pingerStub{})
	if err := dbDown.Health(context.Background()); !errors.Is(err, dbErr) {
		t.Fatalf("expected db error, got %v", err)
	}

	cacheErr := errors.New("redis down")
	cacheDown, _, _ := newTestFacade(pingerStub{}, pingerStub{err: cacheErr})
	if err := cacheDown.Health(context.Background()); !errors.Is(err, cacheErr) {
		t.Fatalf("expected cache error, got %v", err)
	}
}

func TestFacadeUPIID(t *testing.T) {
	facade, _, _ := newTestFacade(pingerStub{}, pingerStub{})
	if facade.UPIID() != "unman@upi" {
		t.Fatalf("unexpected upi id %q", facade.UPIID())
	}
}
