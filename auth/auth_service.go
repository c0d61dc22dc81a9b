// Package auth implements the session lifecycle: registration, credential
// login, transparent access-token refresh, and logout. The server-side state
// is a single refresh-token value mirrored on the user row; a refresh token
// that no longer matches that value is stale, even when its signature and
// expiry still check out.
package auth

import (
	"context"
	"crypto/subtle"

	"github.com/pkg/errors"

	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
	"github.com/inkwell-labs/bookstore/token"
	"github.com/inkwell-labs/bookstore/users"
)

type Service struct {
	users      users.Repo
	issuer     *token.Issuer
	verifier   *token.Verifier
	validator  *Validator
	bcryptCost int
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithBcryptCost overrides the hashing cost factor.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func NewService(userRepo users.Repo, issuer *token.Issuer, verifier *token.Verifier, options ...ServiceOption) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] user repo is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewService] token issuer is required")
	}
	if verifier == nil {
		return nil, errors.New("[NewService] token verifier is required")
	}

	service := &Service{
		users:     userRepo,
		issuer:    issuer,
		verifier:  verifier,
		validator: NewValidator(),
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register validates the payload, hashes the password, and creates the user.
// Validation happens before hashing; the hasher never sees a rejected input.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*users.User, error) {
	if err := s.validator.ValidateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := users.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] HashPassword")
	}

	created, err := s.users.Create(ctx, &users.User{
		Name:         req.Name,
		Email:        users.NormalizeEmail(req.Email),
		PasswordHash: hash,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, errors.Wrap(err, "[Service.Register] users.Create")
	}

	return created, nil
}

// LoginResult carries the freshly minted token pair alongside the user. The
// refresh token has already been recorded by the time a result is returned.
type LoginResult struct {
	User         *users.User
	AccessToken  string
	RefreshToken string
}

// Login verifies credentials and mints an access+refresh pair. The store
// write for the refresh token must complete before the result (and therefore
// any cookie) exists; a failed write fails the whole login so a refresh token
// that was never recorded is never issued.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		// Same generic error as a wrong password: no account enumeration.
		return nil, apperrors.ErrInvalidCredentials
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.issuer.IssueAccess(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] IssueAccess")
	}
	refreshToken, err := s.issuer.IssueRefresh(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] IssueRefresh")
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] UpdateRefreshToken")
	}
	user.RefreshToken = refreshToken

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh validates a refresh token and, when it matches the stored value for
// its user, mints a new access token. The refresh token itself is not
// rotated here; rotation happens on login.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperrors.ErrNoRefreshToken
	}

	claims, err := s.verifier.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return "", apperrors.Wrapf(apperrors.ErrRefreshTokenMismatch, "unknown user")
		}
		return "", errors.Wrap(err, "[Service.Refresh] users.GetByID")
	}

	if subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		// Signature and expiry are fine but a later login replaced this
		// token. This is the sole revocation mechanism.
		return "", apperrors.ErrRefreshTokenMismatch
	}

	accessToken, err := s.issuer.IssueAccess(user.ID)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Refresh] IssueAccess")
	}
	return accessToken, nil
}

// Logout clears the stored refresh token for the session's user. A missing or
// invalid refresh token is not an error; the caller clears cookies either
// way. Still-unexpired access tokens remain valid until natural expiry:
// stateless tokens cannot be server-revoked.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.verifier.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}
	if err := s.users.ClearRefreshToken(ctx, claims.UserID); err != nil && !apperrors.Is(err, apperrors.ErrUserNotFound) {
		return errors.Wrap(err, "[Service.Logout] ClearRefreshToken")
	}
	return nil
}

// Profile validates an access token and returns its user. This backs the
// client's hydration check.
func (s *Service) Profile(ctx context.Context, accessToken string) (*users.User, error) {
	claims, err := s.verifier.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.Wrapf(apperrors.ErrTokenSignatureInvalid, "unknown user")
		}
		return nil, errors.Wrap(err, "[Service.Profile] users.GetByID")
	}
	return user, nil
}
