package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/config"
)

// duplicate_database, raised when two runs create the same database
const pqDuplicateDatabase = "42P04"

type PostgresPool struct {
	cfg config.Database

	mu          sync.Mutex
	conns       map[string]*Connection
	maintenance *Connection
}

func NewPostgresPool(cfg config.Database) *PostgresPool {
	if cfg.Maintenance == "" {
		cfg.Maintenance = "postgres"
	}
	return &PostgresPool{cfg: cfg, conns: make(map[string]*Connection)}
}

func (p *PostgresPool) Driver() string {
	return DriverPostgres
}

func (p *PostgresPool) EnsureDatabase(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.maintenance == nil {
		conn, err := NewConnection(ctx, DriverPostgres, p.cfg.Maintenance, p.cfg.DSNFor(p.cfg.Maintenance))
		if err != nil {
			return fmt.Errorf("connect to maintenance database: %w", err)
		}
		p.maintenance = conn
	}

	var exists bool
	row := p.maintenance.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("check database %s: %w", name, err)
	}
	if exists {
		return nil
	}

	_, err := p.maintenance.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateDatabase {
			return nil
		}
		return fmt.Errorf("create database %s: %w", name, err)
	}

	logrus.WithField("database", name).Info("created database")
	return nil
}

func (p *PostgresPool) DB(ctx context.Context, name string) (*Connection, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok := p.conns[name]; ok {
		return conn, nil
	}

	conn, err := NewConnection(ctx, DriverPostgres, name, p.cfg.DSNFor(name))
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", name, err)
	}
	p.conns[name] = conn
	return conn, nil
}

func (p *PostgresPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for name, conn := range p.conns {
		errs = append(errs, conn.Close())
		delete(p.conns, name)
	}
	if p.maintenance != nil {
		errs = append(errs, p.maintenance.Close())
		p.maintenance = nil
	}
	return errors.Join(errs...)
}
