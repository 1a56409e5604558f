package search

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/findit/ai/mock"
	"github.com/poiesic/findit/core"
	"github.com/poiesic/findit/index"
)

// axisEmbedder maps texts onto a 3-dimensional space by topic so dense
// rankings in tests are fully predictable.
func axisEmbedder() *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		lowered := strings.ToLower(text)
		v := []float32{0.01, 0.01, 0.01}
		if strings.Contains(lowered, "bath") || strings.Contains(lowered, "욕실") {
			v[0] = 1
		}
		if strings.Contains(lowered, "kitchen") {
			v[1] = 1
		}
		if strings.Contains(lowered, "mug") || strings.Contains(lowered, "coffee") {
			v[2] = 1
		}
		return v, nil
	}
	return embedder
}

func retrievalCorpus() []*core.ProductRecord {
	return []*core.ProductRecord{
		{Id: 1, Name: "Soft Bath Mat", Description: "Non-slip microfiber bath mat", Category: "bathroom", Keywords: []string{"욕실", "매트"}, Price: 12000},
		{Id: 2, Name: "Kitchen Floor Mat", Description: "Cushioned anti-fatigue kitchen mat", Category: "kitchen", Keywords: []string{"mat"}, Price: 25000},
		{Id: 3, Name: "Ceramic Mug", Description: "Handmade ceramic coffee mug", Category: "kitchen", Keywords: []string{"mug"}, Price: 8000},
		{Id: 4, Name: "Bath Towel Set", Description: "Plush cotton bath towels", Category: "bathroom", Keywords: []string{"towel"}, Price: 18000},
	}
}

func newTestRetriever(t *testing.T, opts ...Option) *Retriever {
	t.Helper()
	embedder := axisEmbedder()

	builder, err := index.NewBuilder(embedder)
	require.NoError(t, err)
	t.Cleanup(builder.Release)

	idx, err := builder.Build(context.Background(), retrievalCorpus())
	require.NoError(t, err)

	retriever, err := NewRetriever(idx, embedder, opts...)
	require.NoError(t, err)
	return retriever
}

func relevanceIntent(keywords ...string) *core.Intent {
	return &core.Intent{IsSearch: true, Keywords: keywords, Sort: core.SortRelevance}
}

func candidateIDs(candidates []*core.Candidate) []core.ID {
	ids := make([]core.ID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.Product.Id
	}
	return ids
}

func TestSearchLexical_ExcludesZeroMatches(t *testing.T) {
	retriever := newTestRetriever(t)

	candidates, err := retriever.SearchLexical(context.Background(), relevanceIntent("bath", "mat"), 10)
	require.NoError(t, err)

	// The mug matches no query term and must not appear at any depth.
	for _, c := range candidates {
		assert.NotEqual(t, core.ID(3), c.Product.Id)
		assert.Positive(t, c.Lexical)
	}

	// The bath mat matches both terms and ranks first.
	require.NotEmpty(t, candidates)
	assert.Equal(t, core.ID(1), candidates[0].Product.Id)
}

func TestSearchLexical_KoreanTerms(t *testing.T) {
	retriever := newTestRetriever(t)

	candidates, err := retriever.SearchLexical(context.Background(), relevanceIntent("욕실", "매트"), 10)
	require.NoError(t, err)

	require.NotEmpty(t, candidates)
	assert.Equal(t, core.ID(1), candidates[0].Product.Id)
}

func TestSearchLexical_ExpansionTermsWiden(t *testing.T) {
	retriever := newTestRetriever(t)

	intent := relevanceIntent("coffee")
	narrow, err := retriever.SearchLexical(context.Background(), intent, 10)
	require.NoError(t, err)

	intent.Expansion = []string{"towel"}
	widened, err := retriever.SearchLexical(context.Background(), intent, 10)
	require.NoError(t, err)

	assert.Greater(t, len(widened), len(narrow))
}

func TestSearchDense_AlwaysFillsDepth(t *testing.T) {
	retriever := newTestRetriever(t)
	ctx := context.Background()

	// The query shares no topic with mats or towels, yet dense search
	// still returns min(topK, corpus) entries.
	candidates, err := retriever.SearchDense(ctx, "mug", relevanceIntent("mug"), 10)
	require.NoError(t, err)
	assert.Len(t, candidates, 4)
	assert.Equal(t, core.ID(3), candidates[0].Product.Id)

	limited, err := retriever.SearchDense(ctx, "mug", relevanceIntent("mug"), 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSearchDense_SelfSimilarity(t *testing.T) {
	retriever := newTestRetriever(t)
	products := retrievalCorpus()

	// Querying with a product's own indexed text must score that
	// product at (near) maximum cosine similarity.
	candidates, err := retriever.SearchDense(context.Background(), products[0].EmbedText(), relevanceIntent(), 4)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	assert.Equal(t, core.ID(1), candidates[0].Product.Id)
	assert.GreaterOrEqual(t, candidates[0].RawDense, 0.99)
}

func TestSearchHybrid_RanksBothMatsAboveGlove(t *testing.T) {
	embedder := axisEmbedder()

	builder, err := index.NewBuilder(embedder)
	require.NoError(t, err)
	t.Cleanup(builder.Release)

	idx, err := builder.Build(context.Background(), []*core.ProductRecord{
		{Id: 1, Name: "bath mat A"},
		{Id: 2, Name: "bath mat B"},
		{Id: 3, Name: "golf glove C"},
	})
	require.NoError(t, err)

	retriever, err := NewRetriever(idx, embedder)
	require.NoError(t, err)

	ctx := context.Background()
	intent := relevanceIntent("bath", "mat")

	lexical, err := retriever.SearchLexical(ctx, intent, 3)
	require.NoError(t, err)
	require.NotEmpty(t, lexical)
	assert.Contains(t, []core.ID{1, 2}, lexical[0].Product.Id)

	hybrid, err := retriever.SearchHybrid(ctx, "bath mat", intent, 3)
	require.NoError(t, err)
	require.Len(t, hybrid, 3)
	assert.ElementsMatch(t, []core.ID{1, 2}, candidateIDs(hybrid[:2]))
	assert.Equal(t, core.ID(3), hybrid[2].Product.Id)
}

func TestSearchHybrid_AlphaZeroMatchesLexicalOrder(t *testing.T) {
	retriever := newTestRetriever(t, WithAlpha(0))
	ctx := context.Background()
	intent := relevanceIntent("bath", "mat")

	lexical, err := retriever.SearchLexical(ctx, intent, 10)
	require.NoError(t, err)
	hybrid, err := retriever.SearchHybrid(ctx, "bath mat", intent, 10)
	require.NoError(t, err)

	// Hybrid includes zero-lexical docs at the tail; the scored prefix
	// must order identically to the lexical ranking.
	require.GreaterOrEqual(t, len(hybrid), len(lexical))
	assert.Equal(t, candidateIDs(lexical), candidateIDs(hybrid[:len(lexical)]))
}

func TestSearchHybrid_AlphaOneMatchesDenseOrder(t *testing.T) {
	retriever := newTestRetriever(t, WithAlpha(1))
	ctx := context.Background()
	intent := relevanceIntent("bath", "mat")

	dense, err := retriever.SearchDense(ctx, "bath mat", intent, 10)
	require.NoError(t, err)
	hybrid, err := retriever.SearchHybrid(ctx, "bath mat", intent, 10)
	require.NoError(t, err)

	assert.Equal(t, candidateIDs(dense), candidateIDs(hybrid))
}

func TestSearchHybrid_ScoresNormalized(t *testing.T) {
	retriever := newTestRetriever(t)

	candidates, err := retriever.SearchHybrid(context.Background(), "bath mat", relevanceIntent("bath", "mat"), 10)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	for _, c := range candidates {
		assert.GreaterOrEqual(t, c.Lexical, 0.0)
		assert.LessOrEqual(t, c.Lexical, 1.0)
		assert.LessOrEqual(t, c.Dense, 1.0)
		assert.LessOrEqual(t, c.Hybrid, 1.0)
	}
	assert.InDelta(t, 1.0, candidates[0].Hybrid, 0.0001)
}

func TestSearchHybrid_CategoryFilter(t *testing.T) {
	retriever := newTestRetriever(t)

	intent := relevanceIntent("mat")
	intent.Filters.Category = "bathroom"

	candidates, err := retriever.SearchHybrid(context.Background(), "mat", intent, 10)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.Equal(t, "bathroom", c.Product.Category)
	}
}

func TestSearchHybrid_PriceFilters(t *testing.T) {
	retriever := newTestRetriever(t)
	ctx := context.Background()

	intent := relevanceIntent("mat")
	intent.Filters.PriceMax = 15000

	candidates, err := retriever.SearchHybrid(ctx, "mat", intent, 10)
	require.NoError(t, err)
	for _, c := range candidates {
		assert.LessOrEqual(t, c.Product.Price, int64(15000))
	}

	intent.Filters.PriceMax = 0
	intent.Filters.PriceMin = 20000
	candidates, err = retriever.SearchHybrid(ctx, "mat", intent, 10)
	require.NoError(t, err)
	for _, c := range candidates {
		assert.GreaterOrEqual(t, c.Product.Price, int64(20000))
	}
}

func TestSearchHybrid_NegativeTermsExclude(t *testing.T) {
	retriever := newTestRetriever(t)

	intent := relevanceIntent("bath")
	intent.Filters.Negatives = []string{"towel"}

	candidates, err := retriever.SearchHybrid(context.Background(), "bath", intent, 10)
	require.NoError(t, err)
	for _, c := range candidates {
		assert.NotEqual(t, core.ID(4), c.Product.Id)
	}
}

func TestSearchHybrid_EmptyFilterUniverse(t *testing.T) {
	retriever := newTestRetriever(t)

	intent := relevanceIntent("mat")
	intent.Filters.Category = "garden"

	candidates, err := retriever.SearchHybrid(context.Background(), "mat", intent, 10)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSearchHybrid_PriceSortPreferences(t *testing.T) {
	retriever := newTestRetriever(t)
	ctx := context.Background()

	intent := relevanceIntent("mat")
	intent.Sort = core.SortPriceAsc
	candidates, err := retriever.SearchHybrid(ctx, "mat", intent, 10)
	require.NoError(t, err)
	for i := 1; i < len(candidates); i++ {
		assert.LessOrEqual(t, candidates[i-1].Product.Price, candidates[i].Product.Price)
	}

	intent.Sort = core.SortPriceDesc
	candidates, err = retriever.SearchHybrid(ctx, "mat", intent, 10)
	require.NoError(t, err)
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Product.Price, candidates[i].Product.Price)
	}
}

func TestNewRetriever_OptionValidation(t *testing.T) {
	embedder := axisEmbedder()
	builder, err := index.NewBuilder(embedder)
	require.NoError(t, err)
	defer builder.Release()
	idx, err := builder.Build(context.Background(), retrievalCorpus())
	require.NoError(t, err)

	_, err = NewRetriever(idx, embedder, WithAlpha(1.5))
	assert.ErrorIs(t, err, ErrInvalidAlpha)

	_, err = NewRetriever(idx, embedder, WithBM25Params(-1, 0.75))
	assert.ErrorIs(t, err, ErrInvalidBM25Params)

	_, err = NewRetriever(nil, embedder)
	assert.ErrorIs(t, err, ErrIndexRequired)
}

// recordingMonitor captures every SearchMonitor callback for assertions.
type recordingMonitor struct {
	query    string
	terms    []string
	eligible int
	lexical  int
	dense    int
	finished []core.ID
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) Start(query string, terms []string) {
	m.query = query
	m.terms = terms
}
func (m *recordingMonitor) AfterFilter(eligible int)         { m.eligible = eligible }
func (m *recordingMonitor) AfterLexicalScoring(scored int)   { m.lexical = scored }
func (m *recordingMonitor) AfterDenseScoring(scored int)     { m.dense = scored }
func (m *recordingMonitor) Finish(results []*core.Candidate) { m.finished = candidateIDs(results) }

func TestSearchHybridWithMonitor_ReportsStages(t *testing.T) {
	retriever := newTestRetriever(t)
	monitor := &recordingMonitor{}

	candidates, err := retriever.SearchHybridWithMonitor(context.Background(), "bath mat", relevanceIntent("bath", "mat"), 10, monitor)
	require.NoError(t, err)

	assert.Equal(t, "bath mat", monitor.query)
	assert.Equal(t, []string{"bath", "mat"}, monitor.terms)
	assert.Equal(t, 4, monitor.eligible)
	// The mug matches neither query term.
	assert.Equal(t, 3, monitor.lexical)
	assert.Equal(t, 4, monitor.dense)
	assert.Equal(t, candidateIDs(candidates), monitor.finished)
}
