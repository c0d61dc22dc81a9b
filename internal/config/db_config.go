package config

import (
	"os"

	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
)

type DatabaseConfig interface {
	GetDatabaseDSN() string
}

type Database struct{}

var _ DatabaseConfig = Database{}

func (Database) GetDatabaseDSN() string {
	return os.Getenv("DATABASE_URL")
}

func (d Database) validate() error {
	if d.GetDatabaseDSN() == "" {
		return apperrors.Wrapf(apperrors.ErrConfiguration, "DATABASE_URL is not set")
	}
	return nil
}
