// Package sqlite exposes the SQLite mirror to callers outside this module
// while keeping the implementation internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/realty/internal/sqlite"
	"github.com/mesh-intelligence/realty/pkg/types"
)

// Open attaches a SQLite backend to config.DataDir and returns it ready for
// Load and mirrored writes. The caller must Close it.
//
// Example:
//
//	backend, err := sqlite.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".realty-db",
//	}, slog.Default())
//	if err != nil {
//	    return err
//	}
//	defer backend.Close()
func Open(config types.Config, logger *slog.Logger) (types.Backend, error) {
	b := sqlite.NewBackend(logger)
	if err := b.Attach(config); err != nil {
		return nil, err
	}
	return b, nil
}
