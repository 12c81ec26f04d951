package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClient(t *testing.T) {
	if _, err := NewHTTPClient(":://bad", discardLogger()); err == nil {
		t.Fatal("expected error for unparsable url")
	}
	if _, err := NewHTTPClient("relative", discardLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestExtract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/extract" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("content type not forwarded: %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "png-bytes" {
			t.Errorf("image bytes not forwarded: %q", body)
		}
		_ = json.NewEncoder(w).Encode(response{
			RawText:       "Paid to UNMAN CHAUDHURI UPI Ref No. 123456789012",
			ReceiverName:  "UNMAN CHAUDHURI",
			ReceiverPhone: "9876543210",
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, discardLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	extraction, err := client.Extract(context.Background(), []byte("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if extraction.ReceiverName != "UNMAN CHAUDHURI" || extraction.ReceiverPhone != "9876543210" {
		t.Fatalf("unexpected extraction: %+v", extraction)
	}
}

func TestExtractUnreadableImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, discardLogger())
	if _, err := client.Extract(context.Background(), []byte("junk"), ""); !errors.Is(err, ErrUnreadableImage) {
		t.Fatalf("expected ErrUnreadableImage, got %v", err)
	}
}

func TestExtractServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, discardLogger())
	if _, err := client.Extract(context.Background(), []byte("x"), "image/jpeg"); err == nil {
		t.Fatal("expected error")
	}
}
