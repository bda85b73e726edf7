package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/realty/internal/store"
	"github.com/mesh-intelligence/realty/pkg/sqlite"
	"github.com/mesh-intelligence/realty/pkg/types"
)

func TestOpenHydratesStore(t *testing.T) {
	ctx := context.Background()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	backend, err := sqlite.Open(config, nil)
	require.NoError(t, err)

	s := store.New()
	p := types.Property{SizeSqm: 120, Price: 180000, PropertyType: types.PropertyTypeHouse,
		Bedrooms: 3, Bathrooms: 2, Place: "Byblos", Available: true, ListingType: types.ListingTypeSale}
	p.ID = s.AddProperty(p)
	require.NoError(t, backend.Insert(ctx, p))
	require.NoError(t, backend.Close())

	backend, err = sqlite.Open(config, nil)
	require.NoError(t, err)
	defer backend.Close()

	snap, err := backend.Load(ctx)
	require.NoError(t, err)

	restored := store.New()
	restored.Restore(snap)
	got, err := restored.SearchPropertyByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, 2, restored.AddProperty(p))
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := sqlite.Open(types.Config{Backend: "memory", DataDir: t.TempDir()}, nil)
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}
