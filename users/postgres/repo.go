package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
	"github.com/inkwell-labs/bookstore/users"
)

const uniqueViolation = "23505"

var _ users.Repo = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query :=
		`INSERT INTO users (name, email, password_hash, is_admin)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	stored := *user
	stored.Email = users.NormalizeEmail(user.Email)
	err := r.db.QueryRowContext(ctx, query,
		stored.Name, stored.Email, stored.PasswordHash, stored.IsAdmin).Scan(&stored.ID, &stored.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, apperrors.Wrapf(err, "db error")
	}

	return &stored, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query :=
		`SELECT id, name, email, password_hash, COALESCE(refresh_token, ''), is_admin, created_at
		 FROM users
		 WHERE email = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, users.NormalizeEmail(email)))
}

func (r *Repository) GetByID(ctx context.Context, id string) (*users.User, error) {
	query :=
		`SELECT id, name, email, password_hash, COALESCE(refresh_token, ''), is_admin, created_at
		 FROM users
		 WHERE id = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *Repository) UpdateRefreshToken(ctx context.Context, id, token string) error {
	query :=
		`UPDATE users SET refresh_token = $1
		 WHERE id = $2
		 `

	result, err := r.db.ExecContext(ctx, query, nullable(token), id)
	if err != nil {
		return apperrors.Wrapf(err, "db error")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrapf(err, "db error")
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) ClearRefreshToken(ctx context.Context, id string) error {
	return r.UpdateRefreshToken(ctx, id, "")
}

func (r *Repository) scanUser(row *sql.Row) (*users.User, error) {
	user := &users.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.RefreshToken, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrapf(err, "db error")
	}
	return user, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
