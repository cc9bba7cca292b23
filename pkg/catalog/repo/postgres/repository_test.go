package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/repo/postgres"
)

// newTestRepository connects to CATALOG_TEST_DATABASE_URL and skips otherwise
func newTestRepository(t *testing.T) *postgres.Repository {
	t.Helper()

	dsn := os.Getenv("CATALOG_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping postgres test: CATALOG_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := postgres.NewWithPool(pool, "")
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestPostgresRepository_RecordOperations(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// Unique collection per run keeps reruns independent
	products := catalog.Collection{
		Name:    fmt.Sprintf("ProductsTable_%d", time.Now().UnixNano()),
		IDField: "productID",
	}

	t.Run("GetMissing", func(t *testing.T) {
		_, err := repo.Get(ctx, products, "missing")
		assert.ErrorIs(t, err, catalog.ErrRecordNotFound)
	})

	t.Run("PutAndGet", func(t *testing.T) {
		result, err := repo.Put(ctx, products, catalog.Record{
			"productID": "p1",
			"name":      "Lamp",
			"price":     12.5,
			"images":    []any{},
		})
		require.NoError(t, err)
		assert.Equal(t, &catalog.PutResult{}, result)

		record, err := repo.Get(ctx, products, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Lamp", record["name"])
		assert.Equal(t, 12.5, record["price"])
		assert.Equal(t, []any{}, record["images"])
	})

	t.Run("PutReplacesPreviousVersion", func(t *testing.T) {
		result, err := repo.Put(ctx, products, catalog.Record{"productID": "p1", "name": "Lamp 2"})
		require.NoError(t, err)
		assert.Equal(t, &catalog.PutResult{}, result)

		record, err := repo.Get(ctx, products, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Lamp 2", record["name"])
	})

	t.Run("Scan", func(t *testing.T) {
		_, err := repo.Put(ctx, products, catalog.Record{"productID": "p0"})
		require.NoError(t, err)

		records, err := repo.Scan(ctx, products)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "p0", records[0]["productID"])
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, products, "p1"))
		_, err := repo.Get(ctx, products, "p1")
		assert.ErrorIs(t, err, catalog.ErrRecordNotFound)
	})
}

func TestPostgresRepository_PutWithoutIdentifier(t *testing.T) {
	// Fails before reaching the database
	repo := postgres.New(nil, "catalog")
	_, err := repo.Put(context.Background(), catalog.Collection{Name: "c", IDField: "id"}, catalog.Record{})
	assert.ErrorIs(t, err, catalog.ErrMissingIdentifier)
}
