package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDMUS_RoundTrip(t *testing.T) {
	for _, id := range []ID{0, 1, 255, 1 << 20, 1<<63 - 1} {
		buf := make([]byte, IDMUS.Size(id))
		n := IDMUS.Marshal(id, buf)
		assert.Equal(t, len(buf), n)

		decoded, read, err := IDMUS.Unmarshal(buf)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
		assert.Equal(t, n, read)
	}
}

func TestProductVectorMUS_RoundTrip(t *testing.T) {
	vector := ProductVector{
		ProductID:   42,
		ContentHash: IDFromContent("Soft Bath Mat"),
		Values:      []float32{0.25, -0.5, 0.125, 1.0},
	}

	buf := make([]byte, ProductVectorMUS.Size(vector))
	n := ProductVectorMUS.Marshal(vector, buf)
	assert.Equal(t, len(buf), n)

	decoded, read, err := ProductVectorMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, vector.ProductID, decoded.ProductID)
	assert.Equal(t, vector.ContentHash, decoded.ContentHash)
	assert.Equal(t, vector.Values, decoded.Values)
	assert.Equal(t, n, read)
}

func TestProductVectorMUS_Skip(t *testing.T) {
	vector := ProductVector{ProductID: 7, ContentHash: 9, Values: []float32{1, 2, 3}}

	buf := make([]byte, ProductVectorMUS.Size(vector))
	ProductVectorMUS.Marshal(vector, buf)

	skipped, err := ProductVectorMUS.Skip(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), skipped)
}

func TestProductVectorMUS_TruncatedInput(t *testing.T) {
	vector := ProductVector{ProductID: 7, ContentHash: 9, Values: []float32{1, 2, 3}}

	buf := make([]byte, ProductVectorMUS.Size(vector))
	ProductVectorMUS.Marshal(vector, buf)

	_, _, err := ProductVectorMUS.Unmarshal(buf[:len(buf)-2])
	assert.Error(t, err)
}
