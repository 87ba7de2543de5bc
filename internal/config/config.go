package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode       bool   `env:"TEST_MODE"`
	Address          string `env:"ADDRESS" envDefault:"0.0.0.0:9090"`
	Secret           string `env:"SECRET,required"`
	PostgresqlURL    string `env:"POSTGRESQL_URL,required"`
	RedisURL         string `env:"REDIS_URL,required"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	ResetEnabled bool `env:"RESET_ENABLED"`
	// ServerURL is the externally reachable base URL used to build the
	// reset link mailed to the account owner.
	ServerURL string `env:"SERVER_URL,required"`
	// ServerDomain lets requesters identify themselves with the
	// username@server-domain form.
	ServerDomain      string        `env:"SERVER_DOMAIN"`
	TokenExpiresIn    time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"5h"`
	MinPasswordLength int           `env:"MIN_PASSWORD_LENGTH" envDefault:"8"`
	// 0 means no upper bound.
	MaxPasswordLength int `env:"MAX_PASSWORD_LENGTH" envDefault:"0"`

	EmailSenderName    string `env:"EMAIL_SENDER_NAME" envDefault:"Password Reset"`
	EmailSenderAddress string `env:"EMAIL_SENDER_ADDRESS,required"`
	EmailSubject       string `env:"EMAIL_SUBJECT" envDefault:"Password reset"`
	EmailBody          string `env:"EMAIL_BODY" envDefault:"Dear ${userName}\n\nTo reset the password for your ${userId} account, simply go to ${url} at any time before the link expires. After that you will need to request another reset email."`

	AwsRegion    string `env:"AWS_REGION"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}
	if cfg.MinPasswordLength < 1 {
		return nil, fmt.Errorf("MIN_PASSWORD_LENGTH must be at least 1, got %d", cfg.MinPasswordLength)
	}
	if cfg.MaxPasswordLength < 0 {
		return nil, fmt.Errorf("MAX_PASSWORD_LENGTH must not be negative, got %d", cfg.MaxPasswordLength)
	}
	if cfg.MaxPasswordLength > 0 && cfg.MaxPasswordLength < cfg.MinPasswordLength {
		return nil, fmt.Errorf(
			"MAX_PASSWORD_LENGTH %d is smaller than MIN_PASSWORD_LENGTH %d",
			cfg.MaxPasswordLength, cfg.MinPasswordLength,
		)
	}
	return cfg, nil
}
