package database

import (
	"context"
	"fmt"
	"regexp"

	"github.com/vfg2006/paid-media-etl/internal/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Pool hands out one connection per logical database, creating databases on demand.
type Pool interface {
	Driver() string
	EnsureDatabase(ctx context.Context, name string) error
	DB(ctx context.Context, name string) (*Connection, error)
	Close() error
}

func NewPool(cfg config.Database) (Pool, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		return NewPostgresPool(cfg), nil
	case DriverSQLite:
		return NewSQLitePool(cfg.SQLiteDir), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func checkName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid database name %q", name)
	}
	return nil
}
