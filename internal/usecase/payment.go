package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	"github.com/printq/printq/internal/domain/model"
	"github.com/printq/printq/internal/domain/repository"
)

// ExtractionService is the OCR collaborator the verifier gate depends on.
type ExtractionService interface {
	Extract(ctx context.Context, image []byte, contentType string) (*model.PaymentExtraction, error)
}

// PaymentOptions describes the shop's UPI receiving identity.
type PaymentOptions struct {
	ReceiverName         string
	ReceiverNameVariants []string
	ReceiverPhone        string
	UPIID                string
	TokenTTL             time.Duration
}

const minExtractedRunes = 20

// Transaction id formats of the common UPI apps. First capture group is the
// id. Matched against whitespace-normalized text.
var transactionIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)UPI\s*(?:Ref(?:erence)?\.?\s*(?:No\.?|Number)?|ID)\s*[:\-]?\s*(\d{10,14})`),
	regexp.MustCompile(`(?i)UTR\s*(?:No\.?|Number)?\s*[:\-]?\s*([A-Za-z0-9]{10,22})`),
	regexp.MustCompile(`(?i)(?:Transaction\s*ID|Txn\s*ID)\s*[:\-]?\s*([A-Za-z0-9]{8,22})`),
	regexp.MustCompile(`(?i)Ref(?:erence)?\s*(?:No\.?|Number|ID)?\s*[:\-]?\s*(\d{10,14})`),
	regexp.MustCompile(`(?i)UPI\s*transaction\s*ID\s*[:\-]?\s*([A-Za-z0-9]{10,22})`),
	regexp.MustCompile(`(?i)(?:Order\s*ID|Payment\s*ID)\s*[:\-]?\s*([A-Za-z0-9]{8,22})`),
}

var (
	standaloneRefPattern = regexp.MustCompile(`\b(\d{12})\b`)
	nonDigitPattern      = regexp.MustCompile(`\D`)
	paymentKeywords      = []string{"paid", "payment", "successful", "completed", "transferred", "sent"}
)

// PaymentUseCase decides whether a UPI screenshot proves payment to the shop
// and mints single-use submission tokens for accepted ones.
type PaymentUseCase struct {
	extractor ExtractionService
	tokens    repository.TokenRepository
	opts      PaymentOptions
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(extractor ExtractionService, tokens repository.TokenRepository, opts PaymentOptions) *PaymentUseCase {
	return &PaymentUseCase{extractor: extractor, tokens: tokens, opts: opts}
}

// VerifyScreenshot runs OCR on the screenshot, evaluates the extraction, and
// on acceptance stores the transaction id as a submission token. A rejected
// screenshot yields errors.VerificationError alongside the decision.
func (u *PaymentUseCase) VerifyScreenshot(ctx context.Context, image []byte, contentType string) (*model.PaymentVerification, error) {
	extraction, err := u.extractor.Extract(ctx, image, contentType)
	if err != nil {
		return nil, err
	}

	verification := u.Evaluate(extraction.RawText)
	if !verification.Accepted {
		return verification, domainErrors.VerificationError{Reasons: verification.Reasons}
	}

	if err := u.tokens.Put(ctx, verification.TransactionID, u.opts.TokenTTL); err != nil {
		return nil, err
	}
	return verification, nil
}

// Evaluate applies the gate's decision rules to extracted screenshot text.
// Accepted requires a transaction id plus either the receiver name or phone.
func (u *PaymentUseCase) Evaluate(rawText string) *model.PaymentVerification {
	trimmed := strings.TrimSpace(rawText)
	if utf8.RuneCountInString(trimmed) < minExtractedRunes {
		return &model.PaymentVerification{
			Reasons: []string{"Could not extract sufficient text from image. Please upload a clear screenshot."},
		}
	}

	var reasons []string

	transactionID := extractTransactionID(trimmed)
	if transactionID == "" {
		reasons = append(reasons, "Transaction ID / UPI Reference Number not found in screenshot")
	}

	nameOK := u.receiverNameFound(trimmed)
	if !nameOK {
		reasons = append(reasons, fmt.Sprintf("Receiver name '%s' not found in screenshot", u.opts.ReceiverName))
	}

	phoneOK := u.receiverPhoneFound(trimmed)
	if !phoneOK {
		reasons = append(reasons, "Payment recipient phone number not verified")
	}

	if transactionID == "" || (!nameOK && !phoneOK) {
		return &model.PaymentVerification{Reasons: reasons}
	}
	return &model.PaymentVerification{Accepted: true, TransactionID: transactionID}
}

// UPIID returns the shop's UPI address shown to students before paying.
func (u *PaymentUseCase) UPIID() string {
	return u.opts.UPIID
}

func extractTransactionID(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")

	for _, pattern := range transactionIDPatterns {
		if m := pattern.FindStringSubmatch(normalized); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	// A bare 12-digit number counts only when the text looks like a payment
	// confirmation at all.
	lower := strings.ToLower(normalized)
	for _, keyword := range paymentKeywords {
		if strings.Contains(lower, keyword) {
			if m := standaloneRefPattern.FindStringSubmatch(normalized); m != nil {
				return m[1]
			}
			break
		}
	}
	return ""
}

func (u *PaymentUseCase) receiverNameFound(text string) bool {
	lower := strings.ToLower(text)
	for _, variant := range u.opts.ReceiverNameVariants {
		if variant != "" && strings.Contains(lower, strings.ToLower(variant)) {
			return true
		}
	}
	return u.opts.ReceiverName != "" && strings.Contains(lower, strings.ToLower(u.opts.ReceiverName))
}

func (u *PaymentUseCase) receiverPhoneFound(text string) bool {
	phone := nonDigitPattern.ReplaceAllString(u.opts.ReceiverPhone, "")
	if phone == "" {
		return false
	}

	textDigits := nonDigitPattern.ReplaceAllString(text, "")
	candidates := []string{phone, "91" + phone}
	if len(phone) >= 10 {
		candidates = append(candidates, phone[len(phone)-10:])
	}
	for _, candidate := range candidates {
		if strings.Contains(textDigits, candidate) {
			return true
		}
	}
	return false
}
