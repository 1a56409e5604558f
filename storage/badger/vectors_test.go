package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/findit/core"
	"github.com/poiesic/findit/storage"
)

func newTestRepo(t *testing.T) *VectorRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return repo
}

func testVector(id core.ID, hash core.ID, values ...float32) *core.ProductVector {
	return &core.ProductVector{
		ProductID:   id,
		ContentHash: hash,
		Values:      values,
	}
}

func TestVectorRepository_PutAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	original := testVector(42, 7, 0.1, 0.2, 0.3)
	stored, err := repo.PutVector(ctx, original)
	require.NoError(t, err)
	require.Equal(t, original.ProductID, stored.ProductID)

	got, err := repo.GetVector(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, core.ID(42), got.ProductID)
	assert.Equal(t, core.ID(7), got.ContentHash)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, got.Values)
}

func TestVectorRepository_GetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetVector(context.Background(), 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestVectorRepository_PutIsWriteOnce(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testVector(1, 100, 0.5)
	_, err := repo.PutVector(ctx, first)
	require.NoError(t, err)

	// Same content hash: the stored entry wins.
	second := testVector(1, 100, 0.9)
	stored, err := repo.PutVector(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, stored.Values)

	got, err := repo.GetVector(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, got.Values)
}

func TestVectorRepository_PutReplacesOnContentChange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.PutVector(ctx, testVector(1, 100, 0.5))
	require.NoError(t, err)

	// Different content hash means the product text changed.
	updated := testVector(1, 200, 0.9)
	stored, err := repo.PutVector(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.9}, stored.Values)

	got, err := repo.GetVector(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, core.ID(200), got.ContentHash)
}

func TestVectorRepository_GetVectorsSkipsMissing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.PutVector(ctx, testVector(1, 10, 0.1))
	require.NoError(t, err)
	_, err = repo.PutVector(ctx, testVector(3, 30, 0.3))
	require.NoError(t, err)

	vectors, err := repo.GetVectors(ctx, 1, 2, 3)
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, core.ID(1), vectors[0].ProductID)
	assert.Equal(t, core.ID(3), vectors[1].ProductID)
}

func TestVectorRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.PutVector(ctx, testVector(5, 50, 0.5))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteVector(ctx, 5))

	_, err = repo.GetVector(ctx, 5)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.DeleteVector(ctx, 5)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestVectorRepository_Count(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for i := 1; i <= 3; i++ {
		_, err := repo.PutVector(ctx, testVector(core.ID(i), core.ID(i*10), 0.1))
		require.NoError(t, err)
	}

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestVectorRepository_ClosedBackend(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	_, err = repo.GetVector(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = repo.PutVector(context.Background(), testVector(1, 1, 0.1))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
