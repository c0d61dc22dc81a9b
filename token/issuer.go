// Package token creates and validates the signed credentials that carry a
// session: short-lived access tokens and longer-lived refresh tokens, signed
// with distinct HMAC secrets so that one kind can never stand in for the
// other. The only identity claim embedded is the opaque user id; mutable
// fields such as email never enter a token.
package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/inkwell-labs/bookstore/internal/config"
	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type Claims struct {
	UserID string `json:"uid"`
	jwtlib.RegisteredClaims
}

// Issuer mints signed access and refresh tokens. Issuing a refresh token
// does not persist it; the login flow records it against the user row.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewIssuer validates the signing secrets up front so a missing secret fails
// at process start rather than on the first login.
func NewIssuer(cfg config.AuthConfig) (*Issuer, error) {
	if cfg.GetAccessSecret() == "" || cfg.GetRefreshSecret() == "" {
		return nil, errors.Wrap(apperrors.ErrConfiguration, "[NewIssuer] signing secret is absent")
	}
	return &Issuer{
		accessSecret:  []byte(cfg.GetAccessSecret()),
		refreshSecret: []byte(cfg.GetRefreshSecret()),
		accessTTL:     cfg.GetAccessTokenTTL(),
		refreshTTL:    cfg.GetRefreshTokenTTL(),
	}, nil
}

// IssueAccess creates an access token for the given user id (30 minutes by
// default).
func (i *Issuer) IssueAccess(userID string) (string, error) {
	return i.sign(userID, i.accessTTL, i.accessSecret)
}

// IssueRefresh creates a refresh token for the given user id (7 days by
// default).
func (i *Issuer) IssueRefresh(userID string) (string, error) {
	return i.sign(userID, i.refreshTTL, i.refreshSecret)
}

func (i *Issuer) sign(userID string, ttl time.Duration, secret []byte) (string, error) {
	now := NowTimeFunc()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "[Issuer.sign] failed to sign token")
	}
	return signed, nil
}
