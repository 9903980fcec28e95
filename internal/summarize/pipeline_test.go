package summarize

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stretchr/testify/require"

	"github.com/briefly-ai/briefly/internal/model"
	appErr "github.com/briefly-ai/briefly/internal/pkg/errors"
)

func newTestPipeline(provider *fakeProvider, size int) *Pipeline {
	var cache *expirable.LRU[string, model.SummaryResult]
	if size > 0 {
		cache = expirable.NewLRU[string, model.SummaryResult](size, nil, time.Hour)
	}
	return NewPipeline(newTestDriver(provider, DriverConfig{}), cache)
}

func TestProduceSummary_RejectsEmptyInput(t *testing.T) {
	pipeline := newTestPipeline(&fakeProvider{}, 0)
	for _, input := range []string{"", "   ", "\n\t\n"} {
		_, err := pipeline.ProduceSummary(context.Background(), input, model.SourceText)
		require.ErrorIs(t, err, appErr.ErrEmptyInput)
	}
}

func TestProduceSummary_EndToEnd(t *testing.T) {
	provider := &fakeProvider{}
	pipeline := newTestPipeline(provider, 0)

	result, err := pipeline.ProduceSummary(context.Background(), "A short harmless note about the weekly status of things.", model.SourceText)
	require.NoError(t, err)
	require.Equal(t, "summary.", result.Summary)
	require.Equal(t, profileTable[ProfileGeneral].ModelID, result.ModelUsed)
	require.Equal(t, model.DocTypeGeneral, result.DocumentType)
	require.Greater(t, result.CompressionRatio, 0.0)
	require.False(t, result.Cached)
	require.Equal(t, 1, provider.callCount())
}

func TestProduceSummary_CacheHitSkipsBackend(t *testing.T) {
	provider := &fakeProvider{}
	pipeline := newTestPipeline(provider, 8)
	text := "A short harmless note about the weekly status of things."

	first, err := pipeline.ProduceSummary(context.Background(), text, model.SourceText)
	require.NoError(t, err)
	require.False(t, first.Cached)

	second, err := pipeline.ProduceSummary(context.Background(), text, model.SourceText)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, first.Summary, second.Summary)
	require.Equal(t, 1, provider.callCount(), "cache hit must not call the backend")
}

func TestProduceSummary_CacheKeyIncludesSourceKind(t *testing.T) {
	provider := &fakeProvider{}
	pipeline := newTestPipeline(provider, 8)
	text := "The same text arriving through two different source kinds."

	_, err := pipeline.ProduceSummary(context.Background(), text, model.SourceText)
	require.NoError(t, err)
	_, err = pipeline.ProduceSummary(context.Background(), text, model.SourceURL)
	require.NoError(t, err)
	require.Equal(t, 2, provider.callCount())
}

func TestProduceSummary_EvictionRecomputes(t *testing.T) {
	provider := &fakeProvider{}
	pipeline := newTestPipeline(provider, 1)

	_, err := pipeline.ProduceSummary(context.Background(), "First document body for the bounded cache.", model.SourceText)
	require.NoError(t, err)
	_, err = pipeline.ProduceSummary(context.Background(), "Second document body displacing the first.", model.SourceText)
	require.NoError(t, err)
	// First entry was evicted; recomputation must succeed.
	_, err = pipeline.ProduceSummary(context.Background(), "First document body for the bounded cache.", model.SourceText)
	require.NoError(t, err)
	require.Equal(t, 3, provider.callCount())
}
