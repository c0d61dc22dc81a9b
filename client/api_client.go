// Package client implements the storefront side of the session lifecycle:
// an API client that carries the auth cookies, a session manager hydrated
// from the profile endpoint, and a route guard that gates protected views.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
	"github.com/inkwell-labs/bookstore/users"
)

// ErrTransient marks a failure worth retrying on the next access, such as a
// refresh call that timed out. It must not force a logout.
var ErrTransient = errors.New("transient auth failure")

const defaultRefreshTimeout = 5 * time.Second

type APIClient struct {
	baseURL        string
	http           *http.Client
	refreshTimeout time.Duration
}

// ClientOption defines a function type to modify the APIClient instance.
type ClientOption func(*APIClient)

// WithRefreshTimeout overrides the per-call refresh deadline.
func WithRefreshTimeout(timeout time.Duration) ClientOption {
	return func(c *APIClient) {
		c.refreshTimeout = timeout
	}
}

// NewAPIClient builds a client with its own cookie jar; the server-set
// httpOnly cookies ride along on every call.
func NewAPIClient(baseURL string, options ...ClientOption) (*APIClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, apperrors.Wrapf(err, "cookie jar")
	}
	client := &APIClient{
		baseURL:        baseURL,
		http:           &http.Client{Jar: jar, Timeout: 30 * time.Second},
		refreshTimeout: defaultRefreshTimeout,
	}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

type userPayload struct {
	Message string      `json:"message,omitempty"`
	User    *users.User `json:"user"`
}

func (c *APIClient) Register(ctx context.Context, name, email, password string) (*users.User, error) {
	payload := userPayload{}
	err := c.postJSON(ctx, "/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, http.StatusCreated, &payload)
	if err != nil {
		return nil, err
	}
	return payload.User, nil
}

func (c *APIClient) Login(ctx context.Context, email, password string) (*users.User, error) {
	payload := userPayload{}
	err := c.postJSON(ctx, "/auth/login", map[string]string{
		"email": email, "password": password,
	}, http.StatusCreated, &payload)
	if err != nil {
		return nil, err
	}
	return payload.User, nil
}

// Refresh asks for a new access token using the refresh cookie. The call
// carries its own short timeout; a timeout surfaces as ErrTransient so the
// caller retries on the next access instead of logging the user out.
func (c *APIClient) Refresh(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.refreshTimeout)
	defer cancel()

	payload := struct {
		AccessToken string `json:"accessToken"`
	}{}
	err := c.postJSON(ctx, "/auth/refresh", nil, http.StatusCreated, &payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.Wrapf(ErrTransient, "refresh timed out")
		}
		return "", err
	}
	return payload.AccessToken, nil
}

func (c *APIClient) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/auth/logout", nil, http.StatusOK, nil)
}

func (c *APIClient) Profile(ctx context.Context) (*users.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user/profile", nil)
	if err != nil {
		return nil, apperrors.Wrapf(err, "profile request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, "profile call")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidCredentials, "profile returned %d", resp.StatusCode)
	}

	payload := userPayload{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Wrapf(err, "profile decode")
	}
	return payload.User, nil
}

func (c *APIClient) postJSON(ctx context.Context, path string, body interface{}, wantStatus int, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrapf(err, "encode %s", path)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrapf(err, "request %s", path)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, "call %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s returned %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(err, "decode %s", path)
	}
	return nil
}
