package main

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fjod/storefront/internal/config"
	"github.com/fjod/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts_AreValid(t *testing.T) {
	catalog, err := products()
	require.NoError(t, err)
	require.Len(t, catalog, 52)

	for i, p := range catalog {
		assert.NoError(t, p.Validate(), p.Name)
		assert.Equal(t, fmt.Sprintf("/images/product%d.jpg", i+1), p.Image)
	}
	assert.Equal(t, "1099.00", catalog[0].Price.StringFixed(2))
	assert.Equal(t, "79.50", catalog[2].Price.StringFixed(2))
}

func TestSeed_ReplacesCatalog(t *testing.T) {
	ctx := context.Background()
	db := config.Database{
		Driver:         repository.DriverSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "seed.db"),
		MigrationsPath: "../../internal/repository/migrations",
	}

	n, err := seed(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 52, n)

	// running twice must not duplicate
	n, err = seed(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 52, n)

	repo, err := repository.NewRepository(ctx, &repository.Credentials{Driver: db.Driver, SQLitePath: db.SQLitePath})
	require.NoError(t, err)
	defer repo.Close()

	all, err := repo.ListProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 52)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, "Musical Instruments")
}
