// This file writes the JSONL export: one file per table, one JSON object per
// line, each file replaced atomically.
package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Export file names, one per table.
const (
	AgentsJSONL     = "agents.jsonl"
	ClientsJSONL    = "clients.jsonl"
	PropertiesJSONL = "properties.jsonl"
	ContractsJSONL  = "contracts.jsonl"
)

// Export writes the current database contents into dir as JSONL, creating
// dir if needed. Rows appear in id order.
func (b *Backend) Export(ctx context.Context, dir string) error {
	snap, err := b.Load(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	if err := persistTableJSONL(dir, AgentsJSONL, snap.Agents); err != nil {
		return err
	}
	if err := persistTableJSONL(dir, ClientsJSONL, snap.Clients); err != nil {
		return err
	}
	if err := persistTableJSONL(dir, PropertiesJSONL, snap.Properties); err != nil {
		return err
	}
	if err := persistTableJSONL(dir, ContractsJSONL, snap.Contracts); err != nil {
		return err
	}

	b.log.InfoContext(ctx, "exported tables", "dir", dir)
	return nil
}

// persistTableJSONL marshals rows and writes them to dir/name.
func persistTableJSONL[T any](dir, name string, rows []T) error {
	records := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		records = append(records, data)
	}
	if err := writeJSONL(filepath.Join(dir, name), records); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
