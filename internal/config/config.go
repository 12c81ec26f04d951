package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	RedisAddress      string
	DocServiceAddress string
	OCRServiceAddress string

	JWTSecret            string
	OperatorLogin        string
	OperatorPasswordHash string

	// Payment identity of the shop operator, matched against OCR output.
	OperatorName         string
	OperatorNameVariants []string
	OperatorPhone        string
	OperatorUPIID        string

	TokenTTL        time.Duration
	RetentionPeriod time.Duration
	JanitorInterval time.Duration
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultOperatorLogin   = "xerox_admin"
	defaultTokenTTL        = 30 * time.Minute
	defaultRetentionPeriod = 30 * 24 * time.Hour
	defaultJanitorInterval = time.Hour
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		RedisAddress:         getString(lookup, "REDIS_ADDRESS", ""),
		DocServiceAddress:    getString(lookup, "DOC_SERVICE_ADDRESS", ""),
		OCRServiceAddress:    getString(lookup, "OCR_SERVICE_ADDRESS", ""),
		JWTSecret:            getString(lookup, "JWT_SECRET", defaultJWTSecret),
		OperatorLogin:        getString(lookup, "OPERATOR_LOGIN", defaultOperatorLogin),
		OperatorPasswordHash: getString(lookup, "OPERATOR_PASSWORD_HASH", ""),
		OperatorName:         getString(lookup, "OPERATOR_NAME", ""),
		OperatorPhone:        getString(lookup, "OPERATOR_PHONE", ""),
		OperatorUPIID:        getString(lookup, "OPERATOR_UPI_ID", ""),
		TokenTTL:             getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		RetentionPeriod:      getDuration(lookup, "RETENTION_PERIOD", defaultRetentionPeriod),
		JanitorInterval:      getDuration(lookup, "JANITOR_INTERVAL", defaultJanitorInterval),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	variants := getString(lookup, "OPERATOR_NAME_VARIANTS", "")

	fs := flag.NewFlagSet("printq", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		retentionStr       = cfg.RetentionPeriod.String()
		janitorIntervalStr = cfg.JanitorInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the payment token registry")
	fs.StringVar(&cfg.DocServiceAddress, "doc", cfg.DocServiceAddress, "Document service base URL")
	fs.StringVar(&cfg.OCRServiceAddress, "ocr", cfg.OCRServiceAddress, "OCR service base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing operator tokens")
	fs.StringVar(&cfg.OperatorLogin, "operator-login", cfg.OperatorLogin, "Operator account login")
	fs.StringVar(&cfg.OperatorName, "operator-name", cfg.OperatorName, "Operator name on UPI payment confirmations")
	fs.StringVar(&cfg.OperatorPhone, "operator-phone", cfg.OperatorPhone, "Phone number linked to the operator UPI account")
	fs.StringVar(&cfg.OperatorUPIID, "operator-upi", cfg.OperatorUPIID, "UPI id shown to students")
	fs.StringVar(&variants, "operator-name-variants", variants, "Comma separated operator name spellings")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of an unspent payment token")
	fs.StringVar(&retentionStr, "retention", retentionStr, "How long terminal orders are kept")
	fs.StringVar(&janitorIntervalStr, "janitor-interval", janitorIntervalStr, "Interval between retention sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.RetentionPeriod, err = time.ParseDuration(retentionStr); err != nil {
		return nil, fmt.Errorf("invalid retention period: %w", err)
	}

	if cfg.JanitorInterval, err = time.ParseDuration(janitorIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid janitor interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.OperatorNameVariants = splitVariants(variants)
	if len(cfg.OperatorNameVariants) == 0 && cfg.OperatorName != "" {
		cfg.OperatorNameVariants = []string{cfg.OperatorName}
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.RetentionPeriod <= 0 {
		cfg.RetentionPeriod = defaultRetentionPeriod
	}

	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = defaultJanitorInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RedisAddress == "" {
		return nil, fmt.Errorf("redis address must be provided")
	}

	if cfg.DocServiceAddress == "" {
		return nil, fmt.Errorf("document service address must be provided")
	}

	if cfg.OCRServiceAddress == "" {
		return nil, fmt.Errorf("OCR service address must be provided")
	}

	if cfg.OperatorName == "" || cfg.OperatorPhone == "" {
		return nil, fmt.Errorf("operator payment identity must be provided")
	}

	if cfg.OperatorPasswordHash == "" {
		return nil, fmt.Errorf("operator password hash must be provided")
	}

	return cfg, nil
}

func splitVariants(raw string) []string {
	parts := strings.Split(raw, ",")
	variants := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			variants = append(variants, trimmed)
		}
	}
	return variants
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
