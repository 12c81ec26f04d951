package usecase

import (
	"go.uber.org/fx"

	"github.com/printq/printq/internal/config"
	"github.com/printq/printq/internal/domain/repository"
	pkgAuth "github.com/printq/printq/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewOrderUseCase,
	NewServiceUseCase,
	newAuthUseCase,
	newPaymentUseCase,
)

func newAuthUseCase(cfg *config.Config, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	operator := Operator{
		Login:        cfg.OperatorLogin,
		PasswordHash: cfg.OperatorPasswordHash,
	}
	return NewAuthUseCase(operator, hasher, strategy)
}

func newPaymentUseCase(cfg *config.Config, extractor ExtractionService, tokens repository.TokenRepository) *PaymentUseCase {
	opts := PaymentOptions{
		ReceiverName:         cfg.OperatorName,
		ReceiverNameVariants: cfg.OperatorNameVariants,
		ReceiverPhone:        cfg.OperatorPhone,
		UPIID:                cfg.OperatorUPIID,
		TokenTTL:             cfg.TokenTTL,
	}
	return NewPaymentUseCase(extractor, tokens, opts)
}
