package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrNotFirstInQueue    = errors.New("not first in queue")
	ErrPaymentNotVerified = errors.New("payment not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ServiceUnavailableError signals that the shop stopped accepting orders.
// Message carries the operator's note for display.
type ServiceUnavailableError struct {
	Message string
}

func (e ServiceUnavailableError) Error() string {
	if e.Message == "" {
		return "service unavailable"
	}
	return fmt.Sprintf("service unavailable: %s", e.Message)
}

// ValidationError reports a user-correctable input problem.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// VerificationError carries the verifier gate's rejection reasons verbatim.
type VerificationError struct {
	Reasons []string
}

func (e VerificationError) Error() string {
	return fmt.Sprintf("payment verification failed: %s", strings.Join(e.Reasons, "; "))
}
