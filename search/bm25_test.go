package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/findit/ai/mock"
	"github.com/poiesic/findit/core"
	"github.com/poiesic/findit/index"
)

func buildLexical(t *testing.T, products []*core.ProductRecord) *index.LexicalIndex {
	t.Helper()

	builder, err := index.NewBuilder(mock.NewMockEmbedder())
	require.NoError(t, err)
	t.Cleanup(builder.Release)

	idx, err := builder.Build(context.Background(), products)
	require.NoError(t, err)
	return idx.Lexical
}

func TestBM25_ZeroMatchScoresExactlyZero(t *testing.T) {
	lexical := buildLexical(t, []*core.ProductRecord{
		{Id: 1, Name: "mat towel rug"},
		{Id: 2, Name: "lamp desk chair"},
	})

	scores := bm25Scores(lexical, []string{"mat"}, DefaultK1, DefaultB)
	require.Len(t, scores, 2)

	assert.Greater(t, scores[0], 0.0)
	assert.Equal(t, 0.0, scores[1])
}

func TestBM25_MonotonicInTermFrequency(t *testing.T) {
	// Both matching documents have three tokens, so length
	// normalization is identical and only term frequency differs.
	lexical := buildLexical(t, []*core.ProductRecord{
		{Id: 1, Name: "mat towel rug"},
		{Id: 2, Name: "mat mat rug"},
		{Id: 3, Name: "lamp desk chair"},
	})

	scores := bm25Scores(lexical, []string{"mat"}, DefaultK1, DefaultB)
	require.Len(t, scores, 3)

	assert.Greater(t, scores[1], scores[0])
	assert.Equal(t, 0.0, scores[2])
}

func TestBM25_RarerTermsScoreHigher(t *testing.T) {
	// "rug" appears in every document, "mat" in one. The matching
	// document for the rare term must outscore a common-term match of
	// equal frequency and length.
	lexical := buildLexical(t, []*core.ProductRecord{
		{Id: 1, Name: "mat towel rug"},
		{Id: 2, Name: "lamp desk rug"},
		{Id: 3, Name: "chair shelf rug"},
	})

	matScores := bm25Scores(lexical, []string{"mat"}, DefaultK1, DefaultB)
	rugScores := bm25Scores(lexical, []string{"rug"}, DefaultK1, DefaultB)

	assert.Greater(t, matScores[0], rugScores[0])
	// The smoothed IDF keeps even ubiquitous terms positive.
	assert.Greater(t, rugScores[0], 0.0)
}
