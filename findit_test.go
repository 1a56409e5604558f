package findit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/findit/ai"
	"github.com/poiesic/findit/ai/mock"
	"github.com/poiesic/findit/core"
	"github.com/poiesic/findit/eval"
)

func demoCorpus() []*core.ProductRecord {
	return []*core.ProductRecord{
		{Id: 1, Name: "Soft Bath Mat", Description: "Non-slip microfiber bath mat", Category: "bathroom", Price: 12000},
		{Id: 2, Name: "Kitchen Floor Mat", Description: "Cushioned anti-fatigue kitchen mat", Category: "kitchen", Price: 25000},
		{Id: 3, Name: "Ceramic Mug", Description: "Handmade ceramic coffee mug", Category: "kitchen", Price: 8000},
	}
}

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	opts = append([]EngineOption{
		WithProvider(mock.NewMockProvider()),
		WithInMemoryCache(),
	}, opts...)

	engine, err := NewEngine("", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

func TestEngine_IndexAndSearch(t *testing.T) {
	engine := newTestEngine(t)

	stats, err := engine.Index(context.Background(), demoCorpus())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.ProductCount)
	assert.Equal(t, 3, stats.EmbeddedCount)

	result, err := engine.Search(context.Background(), "bath mat", 5)
	require.NoError(t, err)
	require.NotNil(t, result.Ranked)
	assert.NotEmpty(t, result.Ranked.Candidates)
	assert.NotNil(t, result.Intent)
	// The mock selector keeps retrieval order and picks the head.
	require.NotNil(t, result.Ranked.TopPick)
}

func TestEngine_SearchBeforeIndex(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Search(context.Background(), "bath mat", 5)
	assert.ErrorIs(t, err, ErrNotIndexed)

	_, err = engine.NewEvaluator()
	assert.ErrorIs(t, err, ErrNotIndexed)
}

func TestEngine_UnderstandingFailureDegradesNotFails(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockUnderstander().UnderstandFunc = func(ctx context.Context, query string) (*core.Intent, error) {
		return nil, errors.New("understander down")
	}

	engine, err := NewEngine("", WithProvider(provider), WithInMemoryCache())
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.Index(context.Background(), demoCorpus())
	require.NoError(t, err)

	result, err := engine.Search(context.Background(), "bath mat", 5)
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.NotEmpty(t, result.Ranked.Candidates)
}

func TestEngine_RerankParseFailureKeepsRetrievalOrder(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockSelector().SelectFunc = func(ctx context.Context, query string, intent *core.Intent, candidates []*core.ProductRecord) (*ai.Selection, error) {
		return nil, core.ErrRerankParse
	}

	engine, err := NewEngine("", WithProvider(provider), WithInMemoryCache())
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.Index(context.Background(), demoCorpus())
	require.NoError(t, err)

	result, err := engine.Search(context.Background(), "bath mat", 5)
	require.NoError(t, err)
	assert.True(t, result.Ranked.Fallback)
	assert.NotEmpty(t, result.Ranked.Candidates)
}

func TestEngine_NonSearchIntentSkipsRetrieval(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockUnderstander().UnderstandFunc = func(ctx context.Context, query string) (*core.Intent, error) {
		return &core.Intent{IsSearch: false, Keywords: []string{}, Sort: core.SortRelevance}, nil
	}

	engine, err := NewEngine("", WithProvider(provider), WithInMemoryCache())
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.Index(context.Background(), demoCorpus())
	require.NoError(t, err)

	result, err := engine.Search(context.Background(), "hello there", 5)
	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Empty(t, result.Ranked.Candidates)
	assert.Nil(t, result.Ranked.TopPick)
}

func TestEngine_CrossEncoderStrategy(t *testing.T) {
	engine := newTestEngine(t, WithRerankStrategy(RerankCrossEncoder))

	_, err := engine.Index(context.Background(), demoCorpus())
	require.NoError(t, err)

	result, err := engine.Search(context.Background(), "ceramic mug", 5)
	require.NoError(t, err)
	require.NotEmpty(t, result.Ranked.Candidates)
	// The mock scorer counts query-token overlap; the mug wins.
	assert.Equal(t, core.ID(3), result.Ranked.Candidates[0].Product.Id)
}

func TestEngine_NoRerankStrategy(t *testing.T) {
	engine := newTestEngine(t, WithRerankStrategy(RerankNone))

	_, err := engine.Index(context.Background(), demoCorpus())
	require.NoError(t, err)

	result, err := engine.Search(context.Background(), "mug", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Ranked.Candidates)
	assert.Nil(t, result.Ranked.TopPick)
}

func TestEngine_Evaluate(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Index(context.Background(), demoCorpus())
	require.NoError(t, err)

	evaluator, err := engine.NewEvaluator(eval.WithMethods(eval.MethodHybrid, eval.MethodReranked), eval.WithCutoffs(3))
	require.NoError(t, err)

	report, err := evaluator.Run(context.Background(), []*core.GroundTruthCase{
		{Query: "bath mat", TruthIDs: []core.ID{1}},
		{Query: "unlabeled query"},
	})
	require.NoError(t, err)
	assert.Equal(t, report.TotalCases, report.ScoredCases+report.UnscoredCases)
	// The engine hands its own reranker to the evaluator, so the
	// reranked method scores without extra wiring.
	require.NotNil(t, report.Cell(eval.MethodReranked, 3))
	assert.Equal(t, 1.0, report.Cell(eval.MethodReranked, 3).HitRate)
}
