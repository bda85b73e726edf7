// Package sqlite implements the SQLite mirror for the realty store.
//
// The database holds one table per entity kind (Agents, Clients, Properties,
// Contracts). Rows keep the id the in-memory store assigned; AUTOINCREMENT
// tables let sqlite_sequence remember the highest id ever issued so that a
// restarted process does not hand out a deleted id again. The schema is
// applied with goose from the embedded migrations directory.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // Register SQLite driver.

	"github.com/mesh-intelligence/realty/pkg/types"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DBFileName is the database file created under Config.DataDir.
const DBFileName = "real_estate.db"

// Compile-time interface check.
var _ types.Backend = (*Backend)(nil)

// Backend mirrors store mutations into a SQLite database and hydrates the
// store from it on startup.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	log      *slog.Logger
}

// NewBackend creates a detached backend. Call Attach before use.
// A nil logger discards output.
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Backend{log: logger}
}

// Attach validates config, creates DataDir if needed, opens the database,
// and brings the schema up to date.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.attached = true
	b.log.Debug("sqlite backend attached", "path", dbPath)
	return nil
}

// Close releases the database connection. Close is idempotent; after it
// returns every operation fails with ErrBackendDetached.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		if err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}
	b.log.Debug("sqlite backend closed")
	return nil
}

// Path returns the database file path, or "" when detached.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return ""
	}
	dataDir := b.config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, DBFileName)
}

// conn returns the live connection or ErrBackendDetached.
// The caller must hold b.mu.
func (b *Backend) conn() (*sql.DB, error) {
	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.db, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
