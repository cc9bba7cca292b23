package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/repo/memory"
)

var products = catalog.Collection{Name: "ProductsTable", IDField: "productID"}

func TestMemoryRepository_RecordOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := repo.Get(ctx, products, "missing")
		assert.ErrorIs(t, err, catalog.ErrRecordNotFound)
	})

	t.Run("PutAndGet", func(t *testing.T) {
		record := catalog.Record{"productID": "p1", "name": "Lamp", "images": []any{}}
		result, err := repo.Put(ctx, products, record)
		require.NoError(t, err)
		assert.Equal(t, &catalog.PutResult{}, result)

		retrieved, err := repo.Get(ctx, products, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Lamp", retrieved["name"])
		assert.Equal(t, []any{}, retrieved["images"])
	})

	t.Run("PutReplacesPreviousVersion", func(t *testing.T) {
		_, err := repo.Put(ctx, products, catalog.Record{"productID": "p2", "name": "Old"})
		require.NoError(t, err)

		result, err := repo.Put(ctx, products, catalog.Record{"productID": "p2", "name": "New"})
		require.NoError(t, err)
		assert.Equal(t, &catalog.PutResult{}, result)

		retrieved, err := repo.Get(ctx, products, "p2")
		require.NoError(t, err)
		assert.Equal(t, "New", retrieved["name"])
	})

	t.Run("PutWithoutIdentifier", func(t *testing.T) {
		_, err := repo.Put(ctx, products, catalog.Record{"name": "Nameless"})
		assert.ErrorIs(t, err, catalog.ErrMissingIdentifier)
	})

	t.Run("Delete", func(t *testing.T) {
		_, err := repo.Put(ctx, products, catalog.Record{"productID": "p3"})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, products, "p3"))
		_, err = repo.Get(ctx, products, "p3")
		assert.ErrorIs(t, err, catalog.ErrRecordNotFound)

		assert.NoError(t, repo.Delete(ctx, products, "p3"))
	})
}

func TestMemoryRepository_CopiesRecords(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	record := catalog.Record{"productID": "p1", "images": []any{"a"}}
	_, err := repo.Put(ctx, products, record)
	require.NoError(t, err)

	record["images"] = append(record["images"].([]any), "b")

	retrieved, err := repo.Get(ctx, products, "p1")
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, retrieved["images"])

	retrieved["name"] = "mutated"
	again, err := repo.Get(ctx, products, "p1")
	require.NoError(t, err)
	assert.NotContains(t, again, "name")
}

func TestMemoryRepository_Scan(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	categories := catalog.Collection{Name: "CategoriesTable", IDField: "categoryID"}

	records, err := repo.Scan(ctx, products)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	for _, id := range []string{"b", "a", "c"} {
		_, err := repo.Put(ctx, products, catalog.Record{"productID": id})
		require.NoError(t, err)
	}
	_, err = repo.Put(ctx, categories, catalog.Record{"categoryID": "x"})
	require.NoError(t, err)

	records, err = repo.Scan(ctx, products)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0]["productID"])
	assert.Equal(t, "c", records[2]["productID"])
	assert.Equal(t, 1, repo.Len(categories))
}
