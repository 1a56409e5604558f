package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicalIndex_Postings(t *testing.T) {
	idx := newLexicalIndex([]string{
		"soft bath mat",
		"kitchen mat mat",
		"ceramic mug",
	}, DefaultTokenizer)

	require.Equal(t, 3, idx.DocCount())

	postings := idx.Postings("mat")
	require.Len(t, postings, 2)
	// Postings stay in corpus order.
	assert.Equal(t, Posting{Doc: 0, TF: 1}, postings[0])
	assert.Equal(t, Posting{Doc: 1, TF: 2}, postings[1])

	assert.Nil(t, idx.Postings("towel"))
}

func TestLexicalIndex_Lengths(t *testing.T) {
	idx := newLexicalIndex([]string{
		"one two three",
		"one",
	}, DefaultTokenizer)

	assert.Equal(t, 3, idx.DocLen(0))
	assert.Equal(t, 1, idx.DocLen(1))
	assert.Equal(t, 2.0, idx.AvgDocLen())
}

func TestLexicalIndex_Empty(t *testing.T) {
	idx := newLexicalIndex(nil, DefaultTokenizer)
	assert.Equal(t, 0, idx.DocCount())
	assert.Equal(t, 0.0, idx.AvgDocLen())
}
