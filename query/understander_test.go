package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/findit/ai/mock"
	"github.com/poiesic/findit/core"
)

func TestUnderstand_Success(t *testing.T) {
	provider := mock.NewMockUnderstander()
	provider.UnderstandFunc = func(ctx context.Context, query string) (*core.Intent, error) {
		return &core.Intent{
			IsSearch: true,
			Keywords: []string{"bath", "mat"},
			Filters:  core.Filters{Category: "bathroom"},
			Sort:     core.SortPriceAsc,
		}, nil
	}

	understander, err := NewUnderstander(provider)
	require.NoError(t, err)

	result, err := understander.Understand(context.Background(), "cheap bath mat")
	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Equal(t, []string{"bath", "mat"}, result.Intent.Keywords)
	assert.Equal(t, core.SortPriceAsc, result.Intent.Sort)
}

func TestUnderstand_RetriesOnceThenSucceeds(t *testing.T) {
	calls := 0
	provider := mock.NewMockUnderstander()
	provider.UnderstandFunc = func(ctx context.Context, query string) (*core.Intent, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient provider failure")
		}
		return core.FallbackIntent(query), nil
	}

	understander, err := NewUnderstander(provider)
	require.NoError(t, err)

	result, err := understander.Understand(context.Background(), "bath mat")
	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Equal(t, 2, calls)
}

func TestUnderstand_FallsBackAfterRetry(t *testing.T) {
	provider := mock.NewMockUnderstander()
	provider.UnderstandFunc = func(ctx context.Context, query string) (*core.Intent, error) {
		return nil, errors.New("provider down")
	}

	understander, err := NewUnderstander(provider)
	require.NoError(t, err)

	result, err := understander.Understand(context.Background(), "soft bath mat")
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.NotEmpty(t, result.DegradedReason)
	assert.Equal(t, []string{"soft", "bath", "mat"}, result.Intent.Keywords)
	assert.Equal(t, core.SortRelevance, result.Intent.Sort)
	assert.True(t, result.Intent.Filters.IsEmpty())

	// Exactly one retry: two provider calls total.
	assert.Equal(t, 2, provider.CallCount())
}

func TestUnderstand_InvalidIntentFallsBack(t *testing.T) {
	provider := mock.NewMockUnderstander()
	provider.UnderstandFunc = func(ctx context.Context, query string) (*core.Intent, error) {
		return &core.Intent{IsSearch: true, Keywords: nil, Sort: core.SortRelevance}, nil
	}

	understander, err := NewUnderstander(provider)
	require.NoError(t, err)

	result, err := understander.Understand(context.Background(), "bath mat")
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.Equal(t, []string{"bath", "mat"}, result.Intent.Keywords)
}

func TestUnderstand_EmptyQuery(t *testing.T) {
	understander, err := NewUnderstander(mock.NewMockUnderstander())
	require.NoError(t, err)

	_, err = understander.Understand(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrEmptyQuery)
}

func TestNewUnderstander_RequiresProvider(t *testing.T) {
	_, err := NewUnderstander(nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}
