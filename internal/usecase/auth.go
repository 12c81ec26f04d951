package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	pkgAuth "github.com/printq/printq/internal/pkg/auth"
)

// Operator is the single staff account configured at deploy time. There is
// no user table; students interact anonymously.
type Operator struct {
	Login        string
	PasswordHash string
}

// AuthUseCase authenticates the shop operator and manages their tokens.
type AuthUseCase struct {
	operator Operator
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(operator Operator, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{operator: operator, hasher: hasher, tokens: strategy}
}

// Authenticate validates operator credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if login != u.operator.Login {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.operator.PasswordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.tokens.IssueToken(login)
}

// ParseToken extracts the operator login from provided token.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	subject, err := u.tokens.ParseToken(token)
	if err != nil {
		return "", err
	}
	if subject != u.operator.Login {
		return "", pkgAuth.ErrInvalidToken
	}
	return subject, nil
}
