package types

import (
	"context"
	"errors"
)

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Mirror receives the persistence write that follows a successful in-memory
// mutation. Implementations own the storage encoding; the core only relies
// on each call being issued after the matching store operation succeeded.
type Mirror interface {
	// Insert writes a newly added record, keeping its store-assigned id.
	Insert(ctx context.Context, e Entity) error

	// Update replaces the stored row for e.EntityID().
	Update(ctx context.Context, e Entity) error

	// Delete removes the row for id from the kind's table.
	Delete(ctx context.Context, kind Kind, id int) error
}

// Backend is a Mirror that can also hydrate the store on startup.
type Backend interface {
	Mirror

	// Load returns every persisted record in id order together with the
	// per-kind id high-water marks.
	Load(ctx context.Context) (Snapshot, error)

	// Export writes one JSONL file per table into dir.
	Export(ctx context.Context, dir string) error

	// Close releases the backend. Idempotent.
	Close() error
}

// Snapshot is a full copy of the four collections. NextIDs holds, per kind,
// the highest id ever issued; the next add receives NextIDs[kind]+1.
type Snapshot struct {
	Agents     []Agent      `json:"agents"`
	Clients    []Client     `json:"clients"`
	Properties []Property   `json:"properties"`
	Contracts  []Contract   `json:"contracts"`
	NextIDs    map[Kind]int `json:"next_ids"`
}
