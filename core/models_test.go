package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("Soft Bath Mat")
		b := IDFromContent("Soft Bath Mat")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		a := IDFromContent("Soft Bath Mat")
		b := IDFromContent("Kitchen Floor Mat")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		assert.NotPanics(t, func() { IDFromContent("") })
	})
}

func TestProductRecord_Texts(t *testing.T) {
	record := &ProductRecord{
		Id:          1,
		Name:        "Soft Bath Mat",
		Description: "Non-slip microfiber",
		Category:    "bathroom",
		Keywords:    []string{"욕실", "매트"},
	}

	lexical := record.LexicalText()
	assert.Contains(t, lexical, "Soft Bath Mat")
	assert.Contains(t, lexical, "Non-slip microfiber")
	assert.Contains(t, lexical, "bathroom")
	assert.Contains(t, lexical, "욕실")

	embed := record.EmbedText()
	assert.Contains(t, embed, "Soft Bath Mat")
	assert.Contains(t, embed, "매트")
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		input string
		want  SortOrder
	}{
		{"relevance", SortRelevance},
		{"price_asc", SortPriceAsc},
		{"PRICE_DESC", SortPriceDesc},
		{" latest ", SortLatest},
		{"newest", SortLatest},
		{"", SortRelevance},
		{"garbage", SortRelevance},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSortOrder(tt.input))
		})
	}
}

func TestSortOrder_RoundTrip(t *testing.T) {
	for _, order := range []SortOrder{SortRelevance, SortPriceAsc, SortPriceDesc, SortLatest} {
		assert.Equal(t, order, ParseSortOrder(order.String()))
	}
}

func TestFallbackIntent(t *testing.T) {
	intent := FallbackIntent("soft  bath mat")

	assert.True(t, intent.IsSearch)
	assert.Equal(t, []string{"soft", "bath", "mat"}, intent.Keywords)
	assert.Equal(t, SortRelevance, intent.Sort)
	assert.True(t, intent.Filters.IsEmpty())
	assert.Empty(t, intent.Expansion)
	assert.NoError(t, ValidateIntent(intent))
}

func TestFilters_IsEmpty(t *testing.T) {
	assert.True(t, Filters{}.IsEmpty())
	assert.False(t, Filters{Category: "kitchen"}.IsEmpty())
	assert.False(t, Filters{PriceMax: 100}.IsEmpty())
	assert.False(t, Filters{Negatives: []string{"plastic"}}.IsEmpty())
}

func TestRankedResult_IDs(t *testing.T) {
	result := &RankedResult{
		Candidates: []*Candidate{
			{Product: &ProductRecord{Id: 3}},
			{Product: &ProductRecord{Id: 1}},
		},
	}
	assert.Equal(t, []ID{3, 1}, result.IDs())
}
