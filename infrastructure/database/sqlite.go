package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLitePool stores each logical database as {dir}/{name}.db.
type SQLitePool struct {
	dir string

	mu    sync.Mutex
	conns map[string]*Connection
}

func NewSQLitePool(dir string) *SQLitePool {
	if dir == "" {
		dir = "."
	}
	return &SQLitePool{dir: dir, conns: make(map[string]*Connection)}
}

func (p *SQLitePool) Driver() string {
	return DriverSQLite
}

// Path returns the file backing a logical database.
func (p *SQLitePool) Path(name string) string {
	return filepath.Join(p.dir, name+".db")
}

func (p *SQLitePool) EnsureDatabase(ctx context.Context, name string) error {
	_, err := p.DB(ctx, name)
	return err
}

func (p *SQLitePool) DB(ctx context.Context, name string) (*Connection, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok := p.conns[name]; ok {
		return conn, nil
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	dsn := "file:" + p.Path(name) + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	conn, err := NewConnection(ctx, DriverSQLite, name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.Path(name), err)
	}
	// single writer per file
	conn.SetMaxOpenConns(1)

	p.conns[name] = conn
	return conn, nil
}

func (p *SQLitePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for name, conn := range p.conns {
		errs = append(errs, conn.Close())
		delete(p.conns, name)
	}
	return errors.Join(errs...)
}
