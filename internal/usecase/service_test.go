package usecase

import (
	"context"
	"testing"
	"time"

	testhelpers "github.com/printq/printq/internal/test"
)

func TestServiceStopWithNote(t *testing.T) {
	status := testhelpers.NewStatusRepositoryStub()
	uc := NewServiceUseCase(status)
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return at }

	state, err := uc.Stop(context.Background(), "out of toner", "operator")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if state.Active || state.Message != "out of toner" || state.StoppedBy != "operator" {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.StoppedAt == nil || !state.StoppedAt.Equal(at) {
		t.Fatalf("stop time not recorded: %+v", state.StoppedAt)
	}
}

func TestServiceStopDefaultMessage(t *testing.T) {
	uc := NewServiceUseCase(testhelpers.NewStatusRepositoryStub())

	state, err := uc.Stop(context.Background(), "   ", "operator")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if state.Message != DefaultStopMessage {
		t.Fatalf("expected default message, got %q", state.Message)
	}
}

func TestServiceStartClearsStop(t *testing.T) {
	status := testhelpers.NewStatusRepositoryStub()
	uc := NewServiceUseCase(status)

	if _, err := uc.Stop(context.Background(), "break", "operator"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	state, err := uc.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !state.Active || state.Message != "" || state.StoppedAt != nil {
		t.Fatalf("stop record not cleared: %+v", state)
	}

	current, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !current.Active {
		t.Fatal("status must report active after start")
	}
}
