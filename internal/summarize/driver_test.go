package summarize

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/briefly-ai/briefly/internal/backend"
	"github.com/briefly-ai/briefly/internal/model"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	inputs  []string
	failSeq []error
	reply   func(text string) string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Summarize(ctx context.Context, modelID string, text string, params model.GenerationParams) (string, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	f.inputs = append(f.inputs, text)
	f.mu.Unlock()
	if call < len(f.failSeq) && f.failSeq[call] != nil {
		return "", f.failSeq[call]
	}
	if f.reply != nil {
		return f.reply(text), nil
	}
	return "summary.", nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestDriver(provider backend.Provider, cfg DriverConfig) *Driver {
	d := NewDriver(provider, cfg)
	d.sleep = func(ctx context.Context, _ time.Duration) error { return nil }
	return d
}

func generalDoc(text string) model.Document {
	return model.Document{CleanedText: text, Length: len(text), Type: model.DocTypeGeneral}
}

func TestDriver_SingleChunkSingleCall(t *testing.T) {
	provider := &fakeProvider{}
	driver := newTestDriver(provider, DriverConfig{})

	doc := generalDoc("A fifty character input, short and fully harmless.")
	out, err := driver.Summarize(context.Background(), doc, profileTable[ProfileGeneral])
	require.NoError(t, err)
	require.Equal(t, "summary.", out)
	require.Equal(t, 1, provider.callCount(), "short input must cause exactly one backend call")
}

func TestDriver_ScalesParamsToInput(t *testing.T) {
	var got model.GenerationParams
	provider := &capturingProvider{capture: func(p model.GenerationParams) { got = p }}
	driver := newTestDriver(provider, DriverConfig{})

	doc := generalDoc(strings.Repeat("word ", 40)) // 200 chars
	_, err := driver.Summarize(context.Background(), doc, profileTable[ProfileGeneral])
	require.NoError(t, err)
	require.Less(t, got.MaxLength, profileTable[ProfileGeneral].MaxLength, "max length should scale down for short input")
	require.GreaterOrEqual(t, got.MaxLength, minScaledLen)
	require.Less(t, got.MinLength, got.MaxLength)
}

type capturingProvider struct {
	capture func(model.GenerationParams)
}

func (c *capturingProvider) Name() string { return "capture" }

func (c *capturingProvider) Summarize(ctx context.Context, modelID string, text string, params model.GenerationParams) (string, error) {
	c.capture(params)
	return "ok.", nil
}

func TestDriver_FanOutMergesInChunkOrder(t *testing.T) {
	provider := &fakeProvider{reply: func(text string) string {
		// Echo the chunk back so merge order is observable.
		return text
	}}
	driver := newTestDriver(provider, DriverConfig{
		MaxDepth:            1,
		CompressionAttempts: 1,
		Chunker:             ChunkerConfig{ChunkSize: 60, Overlap: 10},
	})

	text := "alpha one two three four five six. bravo one two three four five six. charlie one two three four five six."
	doc := generalDoc(text)
	_, err := driver.Summarize(context.Background(), doc, profileTable[ProfileGeneral])
	require.NoError(t, err)
	// Depth 1 is the limit, so the merged partials are summarized once
	// more in a single call; that final input must preserve chunk order
	// regardless of which chunk call finished first.
	require.Greater(t, provider.callCount(), 1)
	final := provider.inputs[len(provider.inputs)-1]
	alphaIdx := strings.Index(final, "alpha")
	bravoIdx := strings.Index(final, "bravo")
	charlieIdx := strings.Index(final, "charlie")
	require.GreaterOrEqual(t, alphaIdx, 0)
	require.Greater(t, bravoIdx, alphaIdx)
	require.Greater(t, charlieIdx, bravoIdx)
}

func TestDriver_RateLimitedRetriesThenSucceeds(t *testing.T) {
	provider := &fakeProvider{failSeq: []error{&backend.StatusError{Status: http.StatusTooManyRequests}}}
	var slept []time.Duration
	driver := NewDriver(provider, DriverConfig{})
	driver.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	doc := generalDoc("Short input that produces a rate limit on the first try.")
	out, err := driver.Summarize(context.Background(), doc, profileTable[ProfileGeneral])
	require.NoError(t, err, "429 must be retried, not surfaced")
	require.Equal(t, "summary.", out)
	require.Equal(t, 2, provider.callCount())
	require.Equal(t, []time.Duration{2 * time.Second}, slept)
}

func TestDriver_AuthErrorIsFatal(t *testing.T) {
	provider := &fakeProvider{failSeq: []error{
		&backend.StatusError{Status: http.StatusUnauthorized},
		&backend.StatusError{Status: http.StatusUnauthorized},
	}}
	driver := newTestDriver(provider, DriverConfig{})

	doc := generalDoc("Anything at all.")
	_, err := driver.Summarize(context.Background(), doc, profileTable[ProfileGeneral])
	require.ErrorIs(t, err, backend.ErrAuth)
	require.Equal(t, 1, provider.callCount(), "auth failures must not be retried")
}

func TestDriver_WarmingExhaustsRetryBudget(t *testing.T) {
	warming := &backend.StatusError{Status: http.StatusServiceUnavailable}
	provider := &fakeProvider{failSeq: []error{warming, warming, warming, warming}}
	driver := newTestDriver(provider, DriverConfig{CallRetries: 2})

	doc := generalDoc("Anything at all.")
	_, err := driver.Summarize(context.Background(), doc, profileTable[ProfileGeneral])
	require.ErrorIs(t, err, ErrAllAttemptsFailed)
	require.ErrorIs(t, err, backend.ErrModelWarming)
	require.Equal(t, 3, provider.callCount(), "initial attempt plus two retries")
}

func TestDriver_ChunkFailureAbortsJob(t *testing.T) {
	provider := &fakeProvider{failSeq: []error{nil, &backend.StatusError{Status: http.StatusBadRequest}}}
	driver := newTestDriver(provider, DriverConfig{
		MaxConcurrency: 1,
		Chunker:        ChunkerConfig{ChunkSize: 60, Overlap: 10},
	})

	text := "alpha one two three four five six. bravo one two three four five six. charlie one two three four five six."
	_, err := driver.Summarize(context.Background(), generalDoc(text), profileTable[ProfileGeneral])
	require.Error(t, err, "one failed chunk must fail the whole job")
}

func TestDriver_DepthLimit(t *testing.T) {
	provider := &fakeProvider{reply: func(text string) string {
		// Refuse to compress: output as long as the input.
		return text
	}}
	driver := newTestDriver(provider, DriverConfig{
		MaxDepth:            2,
		CompressionAttempts: 1,
		Chunker:             ChunkerConfig{ChunkSize: 100, Overlap: 10},
	})

	var sb strings.Builder
	for sb.Len() < 1000 {
		sb.WriteString("Sentences keep arriving without mercy. ")
	}
	doc := generalDoc(strings.TrimSpace(sb.String()))
	_, err := driver.Summarize(context.Background(), doc, profileTable[ProfileGeneral])
	require.NoError(t, err)
	// With an incompressible backend the recursion must still terminate
	// at the depth limit instead of looping forever.
	require.Less(t, provider.callCount(), 100)
}

func TestDriver_CompressionRetryTightens(t *testing.T) {
	provider := &fakeProvider{reply: func(text string) string {
		return strings.Repeat("x", len(text)/2) // ratio 0.5, above target
	}}
	driver := newTestDriver(provider, DriverConfig{CompressionTarget: 0.4, CompressionAttempts: 2})

	doc := generalDoc("A single chunk input that the fake backend refuses to compress to the requested ratio, sadly.")
	out, err := driver.Summarize(context.Background(), doc, profileTable[ProfileGeneral])
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.Equal(t, 2, provider.callCount(), "one retry with a tighter compression factor")
}
