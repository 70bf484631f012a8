// Package storage is the runtime boundary for generated models: DuckDB
// data sources, schema update strategies and a small repository that
// reads and writes rows by entity and attribute name.
package storage

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb" // DuckDB driver

	"github.com/kyleking/quick-model/internal/errors"
)

// DataSourceFactory hands out a connection pool for a named data node
type DataSourceFactory interface {
	DataSource(ctx context.Context, nodeName string) (*sql.DB, error)
}

// DuckDBFactory opens one DuckDB database per node, either as
// <dir>/<node>.duckdb or in memory when dir is empty.
type DuckDBFactory struct {
	dir      string
	maxConns int

	mu    sync.Mutex
	pools map[string]*sql.DB
}

// NewDuckDBFactory creates a factory. maxConns below 1 is treated as 1.
func NewDuckDBFactory(dir string, maxConns int) *DuckDBFactory {
	if maxConns < 1 {
		maxConns = 1
	}

	return &DuckDBFactory{
		dir:      dir,
		maxConns: maxConns,
		pools:    make(map[string]*sql.DB),
	}
}

// Path returns the database file for nodeName, or "" for in-memory nodes
func (f *DuckDBFactory) Path(nodeName string) string {
	if f.dir == "" {
		return ""
	}

	return filepath.Join(f.dir, nodeName+".duckdb")
}

// DataSource returns the pool for nodeName, opening it on first use
func (f *DuckDBFactory) DataSource(ctx context.Context, nodeName string) (*sql.DB, error) {
	if strings.TrimSpace(nodeName) == "" || strings.ContainsAny(nodeName, `/\`) {
		return nil, errors.NewConfigError(fmt.Sprintf("invalid node name %q", nodeName), "node_name")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if db, ok := f.pools[nodeName]; ok {
		return db, nil
	}

	if f.dir != "" {
		if err := os.MkdirAll(f.dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrTypeFileSystem, "failed to create data directory %s", f.dir)
		}
	}

	db, err := sql.Open("duckdb", f.Path(nodeName))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to open data node %s", nodeName)
	}

	db.SetMaxOpenConns(f.maxConns)
	db.SetMaxIdleConns(max(f.maxConns/2, 1))
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to ping data node %s", nodeName)
	}

	f.pools[nodeName] = db

	return db, nil
}

// Close closes every pool opened so far
func (f *DuckDBFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for name, db := range f.pools {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}

		delete(f.pools, name)
	}

	return stderrors.Join(errs...)
}
