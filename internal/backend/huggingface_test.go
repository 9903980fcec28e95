package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/briefly-ai/briefly/internal/model"
)

func newTestHF(t *testing.T, handler http.HandlerFunc) (*hfProvider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &hfProvider{
		apiKey:  "test-key",
		baseURL: server.URL,
		client:  server.Client(),
	}, server
}

func TestHFSummarize_Success(t *testing.T) {
	var gotAuth string
	provider, _ := newTestHF(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/models/facebook/bart-large-cnn", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"summary_text":"  a short summary  "}]`))
	})

	out, err := provider.Summarize(context.Background(), "facebook/bart-large-cnn", "long input text", model.GenerationParams{MaxLength: 120, MinLength: 30})
	require.NoError(t, err)
	require.Equal(t, "a short summary", out)
	require.Equal(t, "Bearer test-key", gotAuth)
}

func TestHFSummarize_StatusClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantKind  error
		retryable bool
	}{
		{name: "auth", status: http.StatusUnauthorized, wantKind: ErrAuth, retryable: false},
		{name: "rate limited", status: http.StatusTooManyRequests, wantKind: ErrRateLimited, retryable: true},
		{name: "model warming", status: http.StatusServiceUnavailable, wantKind: ErrModelWarming, retryable: true},
		{name: "server error", status: http.StatusInternalServerError, wantKind: ErrUnreachable, retryable: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, _ := newTestHF(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "backend says no", tt.status)
			})
			_, err := provider.Summarize(context.Background(), "m", "text", model.GenerationParams{})
			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantKind)
			require.Equal(t, tt.retryable, Retryable(err))
		})
	}
}

func TestHFSummarize_RetryAfterHeader(t *testing.T) {
	provider, _ := newTestHF(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})
	_, err := provider.Summarize(context.Background(), "m", "text", model.GenerationParams{})
	require.Error(t, err)
	require.Equal(t, 7*time.Second, RetryDelay(err))
}

func TestHFSummarize_NoKeyIsAuthError(t *testing.T) {
	provider := &hfProvider{baseURL: defaultHFBaseURL, client: http.DefaultClient}
	_, err := provider.Summarize(context.Background(), "m", "text", model.GenerationParams{})
	require.ErrorIs(t, err, ErrAuth)
}

func TestRetryDelay_Defaults(t *testing.T) {
	require.Equal(t, 2*time.Second, RetryDelay(&StatusError{Status: http.StatusTooManyRequests}))
	require.Equal(t, time.Second, RetryDelay(&StatusError{Status: http.StatusServiceUnavailable}))
	require.Equal(t, time.Duration(0), RetryDelay(&StatusError{Status: http.StatusBadRequest}))
	require.Equal(t, time.Duration(0), RetryDelay(nil))
}

func TestRetryable_Timeout(t *testing.T) {
	require.True(t, Retryable(context.DeadlineExceeded))
	require.False(t, Retryable(errors.New("boom")))
}
