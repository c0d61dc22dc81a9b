package database

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/inkwell-labs/bookstore/internal/database/migrations"
	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
)

// Open connects to Postgres via the pgx stdlib driver and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, apperrors.Wrapf(err, "db open error")
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, apperrors.Wrapf(err, "db ping error")
	}
	return db, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return apperrors.Wrapf(err, "goose dialect")
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return apperrors.Wrapf(err, "goose up")
	}
	return nil
}
