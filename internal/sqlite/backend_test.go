// Tests for the SQLite mirror.
package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/realty/pkg/types"
)

func attach(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend(nil)
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func mustDate(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend(nil)
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Close()

	dbPath := filepath.Join(tmpDir, DBFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", DBFileName)
	}
	if b.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", b.Path(), dbPath)
	}

	if err := b.Attach(config); err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	attach(t, dir)

	if _, err := os.Stat(filepath.Join(dir, DBFileName)); err != nil {
		t.Errorf("expected database under nested dir: %v", err)
	}
}

func TestBackend_AttachRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		config types.Config
		want   error
	}{
		{"empty backend", types.Config{DataDir: t.TempDir()}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "postgres", DataDir: t.TempDir()}, types.ErrBackendUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend(nil)
			assert.ErrorIs(t, b.Attach(tt.config), tt.want)
			assert.Equal(t, "", b.Path())
		})
	}
}

func TestBackend_Close(t *testing.T) {
	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))

	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close should not error, got %v", err)
	}

	ctx := context.Background()
	assert.ErrorIs(t, b.Insert(ctx, types.Agent{ID: 1}), types.ErrBackendDetached)
	assert.ErrorIs(t, b.Update(ctx, types.Agent{ID: 1}), types.ErrBackendDetached)
	assert.ErrorIs(t, b.Delete(ctx, types.KindAgent, 1), types.ErrBackendDetached)
	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, types.ErrBackendDetached)
}

func TestBackend_InsertAndLoad(t *testing.T) {
	ctx := context.Background()
	b := attach(t, t.TempDir())

	agent := types.Agent{ID: 1, FirstName: "Rana", LastName: "Haddad", Phone: "71123456",
		Email: "rana@realty.lb", StartDate: mustDate(t, "2015-03-01")}
	retired := types.Agent{ID: 2, FirstName: "Fadi", LastName: "Saab", Phone: "71654321",
		Email: "fadi@realty.lb", StartDate: mustDate(t, "2010-01-15"), EndDate: mustDate(t, "2020-06-30")}
	client := types.Client{ID: 1, FirstName: "Omar", LastName: "Khalil", Phone: "03123456",
		Email: "omar@mail.com", IsMarried: true, Budget: 1500.5, BudgetType: types.BudgetTypeRent}
	land := types.Property{ID: 1, SizeSqm: 500, Price: 250000, PropertyType: types.PropertyTypeLand,
		Place: "Batroun", Available: true, ListingType: types.ListingTypeSale}
	flat := types.Property{ID: 2, SizeSqm: 80, Price: 900, PropertyType: types.PropertyTypeApartment,
		Bedrooms: 2, Bathrooms: 1, Place: "Hamra", ListingType: types.ListingTypeRent}
	contract := types.Contract{ID: 1, PropertyID: 2, ClientID: 1, AgentID: 1, Price: 900,
		StartDate: mustDate(t, "2022-01-01"), EndDate: mustDate(t, "2022-12-01"),
		ContractType: types.ContractTypeRent, IsActive: true}

	for _, e := range []types.Entity{agent, retired, client, land, flat, contract} {
		require.NoError(t, b.Insert(ctx, e), "insert %s %d", e.EntityKind(), e.EntityID())
	}

	snap, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Agent{agent, retired}, snap.Agents)
	assert.Equal(t, []types.Client{client}, snap.Clients)
	assert.Equal(t, []types.Property{land, flat}, snap.Properties)
	assert.Equal(t, []types.Contract{contract}, snap.Contracts)
	assert.True(t, snap.Agents[0].EndDate.IsEmpty())
	assert.Equal(t, map[types.Kind]int{
		types.KindAgent:    2,
		types.KindClient:   1,
		types.KindProperty: 2,
		types.KindContract: 1,
	}, snap.NextIDs)
}

func TestBackend_InsertDuplicateID(t *testing.T) {
	ctx := context.Background()
	b := attach(t, t.TempDir())

	p := types.Property{ID: 1, SizeSqm: 80, Price: 1, PropertyType: types.PropertyTypeHouse,
		Place: "Jbeil", ListingType: types.ListingTypeSale}
	require.NoError(t, b.Insert(ctx, p))
	assert.Error(t, b.Insert(ctx, p))
}

func TestBackend_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	b := attach(t, t.TempDir())

	c := types.Client{ID: 1, FirstName: "Omar", LastName: "Khalil", Phone: "03123456",
		Email: "omar@mail.com", Budget: 100, BudgetType: types.BudgetTypeBuy}
	require.NoError(t, b.Insert(ctx, c))

	c.Budget = 250000
	c.IsMarried = true
	require.NoError(t, b.Update(ctx, c))

	snap, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Clients, 1)
	assert.Equal(t, c, snap.Clients[0])

	missing := c
	missing.ID = 9
	assert.ErrorIs(t, b.Update(ctx, missing), ErrRowMissing)

	require.NoError(t, b.Delete(ctx, types.KindClient, 1))
	assert.ErrorIs(t, b.Delete(ctx, types.KindClient, 1), ErrRowMissing)

	snap, err = b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Clients)
	assert.Equal(t, 1, snap.NextIDs[types.KindClient])
}

func TestBackend_DeleteUnknownKind(t *testing.T) {
	b := attach(t, t.TempDir())
	err := b.Delete(context.Background(), types.Kind("broker"), 1)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrRowMissing))
}

func TestBackend_UnsupportedRecord(t *testing.T) {
	b := attach(t, t.TempDir())
	p := &types.Property{ID: 1}
	assert.Error(t, b.Insert(context.Background(), p))
	assert.Error(t, b.Update(context.Background(), p))
}

func TestBackend_ReattachKeepsRowsAndSequence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b := NewBackend(nil)
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}
	require.NoError(t, b.Attach(config))

	for id := 1; id <= 3; id++ {
		a := types.Agent{ID: id, FirstName: "Agent", LastName: "Test", Phone: "71000000",
			Email: "a@b.c", StartDate: mustDate(t, "2019-05-05")}
		require.NoError(t, b.Insert(ctx, a))
	}
	require.NoError(t, b.Delete(ctx, types.KindAgent, 3))
	require.NoError(t, b.Close())

	// Same Backend value can attach again after Close.
	require.NoError(t, b.Attach(config))
	defer b.Close()

	snap, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Agents, 2)
	assert.Equal(t, 3, snap.NextIDs[types.KindAgent])
	_, ok := snap.NextIDs[types.KindContract]
	assert.False(t, ok, "untouched tables have no sequence row")
}
