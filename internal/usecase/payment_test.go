package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	"github.com/printq/printq/internal/domain/model"
	testhelpers "github.com/printq/printq/internal/test"
)

func paymentFixture(tokens *testhelpers.TokenRepositoryStub, extractor ExtractionService) *PaymentUseCase {
	opts := PaymentOptions{
		ReceiverName:         "Unman Chaudhuri",
		ReceiverNameVariants: []string{"UNMAN CHAUDHURI", "U CHAUDHURI"},
		ReceiverPhone:        "9876543210",
		UPIID:                "unman@upi",
		TokenTTL:             30 * time.Minute,
	}
	return NewPaymentUseCase(extractor, tokens, opts)
}

func TestEvaluateAccepted(t *testing.T) {
	uc := paymentFixture(testhelpers.NewTokenRepositoryStub(), testhelpers.ExtractionServiceStub{})

	cases := map[string]string{
		"upi ref":          "Payment successful\nPaid to UNMAN CHAUDHURI\nUPI Ref No. 123456789012",
		"utr":              "Sent to U Chaudhuri via PhonePe\nUTR: AXI123456789",
		"transaction id":   "Paytm payment completed to Unman Chaudhuri Transaction ID: PTM87654321",
		"phone only":       "Paid Rs 40 to 98765 43210 successfully\nUPI Ref No. 222233334444",
		"country code":     "Transferred to +91 9876543210\nReference Number 555566667777",
		"standalone digit": "Payment completed successfully to UNMAN CHAUDHURI 123456789012",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			verification := uc.Evaluate(text)
			if !verification.Accepted {
				t.Fatalf("expected acceptance, reasons: %v", verification.Reasons)
			}
			if verification.TransactionID == "" {
				t.Fatal("transaction id missing")
			}
		})
	}
}

func TestEvaluateShortText(t *testing.T) {
	uc := paymentFixture(testhelpers.NewTokenRepositoryStub(), testhelpers.ExtractionServiceStub{})

	verification := uc.Evaluate("  too short  ")
	if verification.Accepted {
		t.Fatal("expected rejection")
	}
	if len(verification.Reasons) != 1 || !strings.Contains(verification.Reasons[0], "sufficient text") {
		t.Fatalf("unexpected reasons: %v", verification.Reasons)
	}
}

func TestEvaluateMissingTransactionID(t *testing.T) {
	uc := paymentFixture(testhelpers.NewTokenRepositoryStub(), testhelpers.ExtractionServiceStub{})

	verification := uc.Evaluate("Paid to UNMAN CHAUDHURI, thank you for shopping with us")
	if verification.Accepted {
		t.Fatal("expected rejection without transaction id")
	}
	if !strings.Contains(strings.Join(verification.Reasons, " "), "Transaction ID") {
		t.Fatalf("missing transaction id reason: %v", verification.Reasons)
	}
}

func TestEvaluateWrongReceiver(t *testing.T) {
	uc := paymentFixture(testhelpers.NewTokenRepositoryStub(), testhelpers.ExtractionServiceStub{})

	verification := uc.Evaluate("Paid to SOMEONE ELSE 1112223334 UPI Ref No. 123456789012")
	if verification.Accepted {
		t.Fatal("a transaction id alone must not pass the gate")
	}
	joined := strings.Join(verification.Reasons, " ")
	if !strings.Contains(joined, "Receiver name") || !strings.Contains(joined, "phone number") {
		t.Fatalf("expected both receiver reasons: %v", verification.Reasons)
	}
}

func TestEvaluateStandaloneDigitsNeedKeyword(t *testing.T) {
	uc := paymentFixture(testhelpers.NewTokenRepositoryStub(), testhelpers.ExtractionServiceStub{})

	// Twelve digits without any payment wording must not count as a ref.
	verification := uc.Evaluate("UNMAN CHAUDHURI account number 123456789012 branch listing")
	if verification.Accepted {
		t.Fatal("expected rejection without payment keywords")
	}
}

func TestVerifyScreenshotMintsToken(t *testing.T) {
	tokens := testhelpers.NewTokenRepositoryStub()
	extractor := testhelpers.ExtractionServiceStub{Extraction: &model.PaymentExtraction{
		RawText: "Payment successful Paid to UNMAN CHAUDHURI UPI Ref No. 123456789012",
	}}
	uc := paymentFixture(tokens, extractor)

	verification, err := uc.VerifyScreenshot(context.Background(), []byte("png"), "image/png")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verification.Accepted || verification.TransactionID != "123456789012" {
		t.Fatalf("unexpected verification: %+v", verification)
	}
	if ttl, ok := tokens.Tokens["123456789012"]; !ok || ttl != 30*time.Minute {
		t.Fatalf("token not minted with TTL: %v", tokens.Tokens)
	}
}

func TestVerifyScreenshotRejection(t *testing.T) {
	tokens := testhelpers.NewTokenRepositoryStub()
	extractor := testhelpers.ExtractionServiceStub{Extraction: &model.PaymentExtraction{
		RawText: "Paid to SOMEONE ELSE entirely, no reference visible here",
	}}
	uc := paymentFixture(tokens, extractor)

	verification, err := uc.VerifyScreenshot(context.Background(), []byte("png"), "image/png")
	var rejection domainErrors.VerificationError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected VerificationError, got %v", err)
	}
	if verification == nil || verification.Accepted {
		t.Fatalf("decision must accompany the error: %+v", verification)
	}
	if len(rejection.Reasons) == 0 {
		t.Fatal("reasons must be carried verbatim")
	}
	if len(tokens.Tokens) != 0 {
		t.Fatal("no token may be minted on rejection")
	}
}

func TestVerifyScreenshotExtractorFailure(t *testing.T) {
	wantErr := errors.New("ocr offline")
	uc := paymentFixture(testhelpers.NewTokenRepositoryStub(), testhelpers.ExtractionServiceStub{Err: wantErr})

	if _, err := uc.VerifyScreenshot(context.Background(), []byte("png"), "image/png"); !errors.Is(err, wantErr) {
		t.Fatalf("expected extractor error, got %v", err)
	}
}

func TestUPIID(t *testing.T) {
	uc := paymentFixture(testhelpers.NewTokenRepositoryStub(), testhelpers.ExtractionServiceStub{})
	if uc.UPIID() != "unman@upi" {
		t.Fatalf("unexpected upi id %q", uc.UPIID())
	}
}
