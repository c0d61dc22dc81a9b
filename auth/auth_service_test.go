package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/bookstore/auth"
	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
	"github.com/inkwell-labs/bookstore/token"
	"github.com/inkwell-labs/bookstore/users"
	"github.com/inkwell-labs/bookstore/users/repofake"
)

const (
	testUserName  = "Jane Doe"
	testUserEmail = "jane@x.com"
	testPassword  = "abcd1234"
)

type testAuthConfig struct{}

func (testAuthConfig) GetAccessSecret() string           { return "access-secret-1" }
func (testAuthConfig) GetRefreshSecret() string          { return "refresh-secret-1" }
func (testAuthConfig) GetAccessTokenTTL() time.Duration  { return 30 * time.Minute }
func (testAuthConfig) GetRefreshTokenTTL() time.Duration { return 7 * 24 * time.Hour }
func (testAuthConfig) GetBcryptCost() int                { return 4 }
func (testAuthConfig) GetCookieSecure() bool             { return false }

// testFixture holds all test dependencies
type testFixture struct {
	userRepo *repofake.FakeUserRepo
	verifier *token.Verifier
	service  *auth.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	cfg := testAuthConfig{}
	issuer, err := token.NewIssuer(cfg)
	require.NoError(t, err)
	verifier, err := token.NewVerifier(cfg)
	require.NoError(t, err)

	userRepo := repofake.NewFakeUserRepo()
	service, err := auth.NewService(userRepo, issuer, verifier, auth.WithBcryptCost(cfg.GetBcryptCost()))
	require.NoError(t, err)

	return &testFixture{
		userRepo: userRepo,
		verifier: verifier,
		service:  service,
	}
}

func (f *testFixture) register(t *testing.T) *users.User {
	t.Helper()
	user, err := f.service.Register(context.Background(), auth.RegisterRequest{
		Name:     testUserName,
		Email:    testUserEmail,
		Password: testPassword,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterCreatesUser(t *testing.T) {
	f := setupTestFixture(t)

	user := f.register(t)
	require.NotEmpty(t, user.ID)
	require.Equal(t, testUserEmail, user.Email)

	stored, err := f.userRepo.GetByEmail(context.Background(), testUserEmail)
	require.NoError(t, err)
	require.True(t, users.CheckPasswordHash(testPassword, stored.PasswordHash))
}

func TestRegisterDuplicateEmailFails(t *testing.T) {
	f := setupTestFixture(t)
	f.register(t)

	_, err := f.service.Register(context.Background(), auth.RegisterRequest{
		Name:     "Other Jane",
		Email:    "JANE@X.COM", // duplicate differs only in case
		Password: "zzzz9999",
	})
	require.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	f := setupTestFixture(t)

	tests := []struct {
		name  string
		req   auth.RegisterRequest
		field string
	}{
		{"missing name", auth.RegisterRequest{Email: testUserEmail, Password: testPassword}, "name"},
		{"missing email", auth.RegisterRequest{Name: testUserName, Password: testPassword}, "email"},
		{"bad email", auth.RegisterRequest{Name: testUserName, Email: "not-an-email", Password: testPassword}, "email"},
		{"missing password", auth.RegisterRequest{Name: testUserName, Email: testUserEmail}, "password"},
		{"weak password", auth.RegisterRequest{Name: testUserName, Email: testUserEmail, Password: "abcdefgh"}, "password"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Register(context.Background(), tc.req)
			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Contains(t, validationErr.Fields, tc.field)
		})
	}
}

func TestLoginPersistsRefreshTokenBeforeReturning(t *testing.T) {
	f := setupTestFixture(t)
	registered := f.register(t)

	result, err := f.service.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)

	stored, err := f.userRepo.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	require.Equal(t, result.RefreshToken, stored.RefreshToken)
}

func TestLoginGenericErrorForBadCredentials(t *testing.T) {
	f := setupTestFixture(t)
	f.register(t)

	_, wrongPassword := f.service.Login(context.Background(), testUserEmail, "wrong5678")
	_, unknownEmail := f.service.Login(context.Background(), "nobody@x.com", testPassword)

	// Same error either way: no account enumeration.
	require.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, apperrors.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	f := setupTestFixture(t)
	registered := f.register(t)

	result, err := f.service.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	accessToken, err := f.service.Refresh(context.Background(), result.RefreshToken)
	require.NoError(t, err)

	claims, err := f.verifier.VerifyAccess(accessToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, claims.UserID)
}

func TestRefreshRejectsTokenReplacedByLaterLogin(t *testing.T) {
	f := setupTestFixture(t)
	f.register(t)

	first, err := f.service.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	// A second login (e.g. from another device) overwrites the stored token.
	_, err = f.service.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	// The first refresh token still has a valid signature and expiry, but
	// no longer matches the store.
	_, err = f.service.Refresh(context.Background(), first.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrRefreshTokenMismatch)
}

func TestRefreshRejectsMissingToken(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Refresh(context.Background(), "")
	require.ErrorIs(t, err, apperrors.ErrNoRefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := setupTestFixture(t)
	f.register(t)

	result, err := f.service.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	// An access token can never rotate a refresh token: the secrets differ.
	_, err = f.service.Refresh(context.Background(), result.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrTokenSignatureInvalid)
}

func TestLogoutClearsStoredRefreshToken(t *testing.T) {
	f := setupTestFixture(t)
	f.register(t)

	result, err := f.service.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), result.RefreshToken))

	_, err = f.service.Refresh(context.Background(), result.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrRefreshTokenMismatch)
}

func TestLogoutWithInvalidTokenIsNoOp(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.service.Logout(context.Background(), ""))
	require.NoError(t, f.service.Logout(context.Background(), "garbage"))
}

func TestProfileReturnsUserForValidAccessToken(t *testing.T) {
	f := setupTestFixture(t)
	registered := f.register(t)

	result, err := f.service.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	user, err := f.service.Profile(context.Background(), result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.Equal(t, registered.Email, user.Email)
}

func TestProfileRejectsExpiredAccessToken(t *testing.T) {
	f := setupTestFixture(t)
	f.register(t)

	issuedAt := time.Now()
	token.NowTimeFunc = func() time.Time { return issuedAt }
	defer func() { token.NowTimeFunc = time.Now }()

	result, err := f.service.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)

	token.NowTimeFunc = func() time.Time { return issuedAt.Add(31 * time.Minute) }
	_, err = f.service.Profile(context.Background(), result.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
