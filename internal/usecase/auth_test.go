package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	pkgAuth "github.com/printq/printq/internal/pkg/auth"
	testhelpers "github.com/printq/printq/internal/test"
)

func authFixture() *AuthUseCase {
	operator := Operator{Login: "xerox_admin", PasswordHash: "hash:secret"}
	return NewAuthUseCase(operator, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
}

func TestAuthenticateSuccess(t *testing.T) {
	uc := authFixture()

	token, err := uc.Authenticate(context.Background(), " xerox_admin ", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if token != "token:xerox_admin" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthenticateRejections(t *testing.T) {
	uc := authFixture()

	cases := map[string][2]string{
		"empty login":    {"", "secret"},
		"empty password": {"xerox_admin", ""},
		"unknown login":  {"intruder", "secret"},
		"wrong password": {"xerox_admin", "guess"},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uc.Authenticate(context.Background(), creds[0], creds[1]); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestParseToken(t *testing.T) {
	uc := authFixture()

	subject, err := uc.ParseToken("token:xerox_admin")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if subject != "xerox_admin" {
		t.Fatalf("unexpected subject %q", subject)
	}

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
	if _, err := uc.ParseToken("token:someone_else"); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign subject, got %v", err)
	}
}
