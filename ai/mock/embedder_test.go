// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	embedder := NewMockEmbedder()

	first, err := embedder.EmbedText(context.Background(), "soft bath mat")
	require.NoError(t, err)

	second, err := embedder.EmbedText(context.Background(), "soft bath mat")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 384)
}

func TestMockEmbedder_DistinctTexts(t *testing.T) {
	embedder := NewMockEmbedder()

	a, err := embedder.EmbedText(context.Background(), "bath mat")
	require.NoError(t, err)

	b, err := embedder.EmbedText(context.Background(), "ceramic mug")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestMockEmbedder_UnitLength(t *testing.T) {
	vector := DeterministicVector("ceramic coffee mug", 384)

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sumSquares, 1e-5)
}

func TestMockEmbedder_EmbedTexts(t *testing.T) {
	embedder := NewMockEmbedder()

	vectors, err := embedder.EmbedTexts(context.Background(), []string{"bath mat", "mug"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	single, err := embedder.EmbedText(context.Background(), "bath mat")
	require.NoError(t, err)
	assert.Equal(t, single, vectors[0])
}

func TestMockEmbedder_Override(t *testing.T) {
	embedder := NewMockEmbedder()
	sentinel := errors.New("embedding backend down")
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, sentinel
	}

	_, err := embedder.EmbedText(context.Background(), "anything")
	assert.ErrorIs(t, err, sentinel)
}

func TestMockEmbedder_CallCountAndReset(t *testing.T) {
	embedder := NewMockEmbedder()

	_, err := embedder.EmbedText(context.Background(), "a")
	require.NoError(t, err)
	_, err = embedder.EmbedTexts(context.Background(), []string{"b"})
	require.NoError(t, err)

	assert.Equal(t, 2, embedder.CallCount())

	embedder.Reset()
	assert.Equal(t, 0, embedder.CallCount())
	assert.Nil(t, embedder.EmbedTextFunc)
	assert.Nil(t, embedder.EmbedTextsFunc)
}
