package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-labs/bookstore/internal/config"
	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
)

// Verifier validates token signature and expiry and extracts the embedded
// identity claim. Verification is a pure cryptographic check: no I/O.
type Verifier struct {
	accessSecret  []byte
	refreshSecret []byte
	parser        *jwtlib.Parser
}

func NewVerifier(cfg config.AuthConfig) (*Verifier, error) {
	if cfg.GetAccessSecret() == "" || cfg.GetRefreshSecret() == "" {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "[NewVerifier] signing secret is absent")
	}
	return &Verifier{
		accessSecret:  []byte(cfg.GetAccessSecret()),
		refreshSecret: []byte(cfg.GetRefreshSecret()),
		parser: jwtlib.NewParser(
			jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
			jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
		),
	}, nil
}

// VerifyAccess validates an access token. A refresh token presented here
// fails as signature-invalid because the secrets differ.
func (v *Verifier) VerifyAccess(rawToken string) (*Claims, error) {
	return v.verify(rawToken, v.accessSecret)
}

// VerifyRefresh validates a refresh token against the refresh secret.
func (v *Verifier) VerifyRefresh(rawToken string) (*Claims, error) {
	return v.verify(rawToken, v.refreshSecret)
}

func (v *Verifier) verify(rawToken string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(rawToken, claims, func(t *jwtlib.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, mapJWTError(err)
	}
	if claims.UserID == "" && claims.Subject != "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

// mapJWTError folds the jwt library's error chain into the taxonomy the rest
// of the system responds on: expired, signature-invalid, malformed.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return apperrors.Wrapf(apperrors.ErrTokenExpired, "token verification")
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return apperrors.Wrapf(apperrors.ErrTokenSignatureInvalid, "token verification")
	case errors.Is(err, jwtlib.ErrTokenMalformed):
		return apperrors.Wrapf(apperrors.ErrTokenMalformed, "token verification")
	default:
		return apperrors.Wrapf(apperrors.ErrTokenSignatureInvalid, "token verification: %v", err)
	}
}
