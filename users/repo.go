package users

import "context"

// Repo manages user persistence. The refresh-token column is the sole
// server-side session state: at most one live refresh token per user.
type Repo interface {
	// Create inserts a new user. Returns ErrDuplicateEmail if the email is
	// already registered (case-insensitive).
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// UpdateRefreshToken overwrites the stored refresh token unconditionally.
	// Concurrent logins race and the last write wins.
	UpdateRefreshToken(ctx context.Context, id, token string) error
	ClearRefreshToken(ctx context.Context, id string) error
}
