package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
)

type AuthConfig interface {
	GetAccessSecret() string
	GetRefreshSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetBcryptCost() int
	// GetCookieSecure reports whether auth cookies carry the Secure flag.
	// Driven by COOKIE_SECURE; defaults to true everywhere except DEV so a
	// deployment behind HTTPS never ships insecure cookies by accident.
	GetCookieSecure() bool
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetAccessSecret() string {
	return os.Getenv("JWT_ACCESS_SECRET")
}

func (Auth) GetRefreshSecret() string {
	return os.Getenv("JWT_REFRESH_SECRET")
}

func (Auth) GetAccessTokenTTL() time.Duration {
	return getDuration("ACCESS_TOKEN_TTL", 30*time.Minute)
}

func (Auth) GetRefreshTokenTTL() time.Duration {
	return getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour)
}

func (Auth) GetBcryptCost() int {
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil && cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			return cost
		}
	}
	return bcrypt.DefaultCost
}

func (a Auth) GetCookieSecure() bool {
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err == nil {
			return secure
		}
	}
	return EnvVars{}.GetEnv() != "DEV"
}

func (a Auth) validate() error {
	if a.GetAccessSecret() == "" {
		return apperrors.Wrapf(apperrors.ErrConfiguration, "JWT_ACCESS_SECRET is not set")
	}
	if a.GetRefreshSecret() == "" {
		return apperrors.Wrapf(apperrors.ErrConfiguration, "JWT_REFRESH_SECRET is not set")
	}
	if a.GetAccessSecret() == a.GetRefreshSecret() {
		return apperrors.Wrapf(apperrors.ErrConfiguration, "access and refresh secrets must differ")
	}
	return nil
}

func getDuration(envVar string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(envVar); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
