package rates

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherPrimaryCrossRates(t *testing.T) {
	calls := 0
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"success": true, "rates": {"BRL": 5.0, "EUR": 0.9, "JPY": 150.0, "BTC": 0.00001}}`))
	}))
	defer primary.Close()

	fetcher := NewFetcher(Config{
		APIKey:     "test-key",
		PrimaryURL: primary.URL,
	}, slog.Default())

	snap := fetcher.Latest(context.Background())

	assert.InDelta(t, 5.0, snap["USD"], 0.001)
	assert.InDelta(t, 5.0/0.9, snap["EUR"], 0.001)
	assert.InDelta(t, 5.0/150.0, snap["JPY"], 0.001)
	assert.InDelta(t, 500000.0, snap["BTC"], 0.001)
	assert.Equal(t, 1, calls)

	// Within the TTL the snapshot comes from cache.
	again := fetcher.Latest(context.Background())
	assert.Equal(t, snap, again)
	assert.Equal(t, 1, calls)
}

func TestFetcherFallback(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"USDBRL": {"bid": "5.12"},
			"EURBRL": {"bid": "6.01"},
			"BTCBRL": {"bid": "510000.00"}
		}`))
	}))
	defer fallback.Close()

	fetcher := NewFetcher(Config{
		APIKey:      "test-key",
		PrimaryURL:  primary.URL,
		FallbackURL: fallback.URL,
	}, slog.Default())

	snap := fetcher.Latest(context.Background())

	assert.InDelta(t, 5.12, snap["USD"], 0.001)
	assert.InDelta(t, 6.01, snap["EUR"], 0.001)
	assert.InDelta(t, 510000.0, snap["BTC"], 0.001)
	assert.NotContains(t, snap, "GBP")
}

func TestFetcherNoKeySkipsPrimary(t *testing.T) {
	primaryCalls := 0
	primary := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		primaryCalls++
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"USDBRL": {"bid": "5.00"}}`))
	}))
	defer fallback.Close()

	fetcher := NewFetcher(Config{
		PrimaryURL:  primary.URL,
		FallbackURL: fallback.URL,
	}, slog.Default())

	snap := fetcher.Latest(context.Background())
	assert.Zero(t, primaryCalls)
	assert.InDelta(t, 5.0, snap["USD"], 0.001)
}

func TestFetcherOfflineDefaults(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	down.Close() // refuse connections entirely

	fetcher := NewFetcher(Config{
		PrimaryURL:  down.URL,
		FallbackURL: down.URL,
		Timeout:     500 * time.Millisecond,
	}, slog.Default())

	snap := fetcher.Latest(context.Background())

	require.NotEmpty(t, snap)
	assert.InDelta(t, 5.0, snap["USD"], 0.001)
	assert.InDelta(t, 6.0, snap["EUR"], 0.001)
	assert.InDelta(t, 500000.0, snap["BTC"], 0.001)
}

func TestFetcherRejectsBadPrimaryPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "reported failure", body: `{"success": false}`},
		{name: "missing BRL", body: `{"success": true, "rates": {"EUR": 0.9}}`},
		{name: "not json", body: `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer primary.Close()

			fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"USDBRL": {"bid": "5.55"}}`))
			}))
			defer fallback.Close()

			fetcher := NewFetcher(Config{
				APIKey:      "test-key",
				PrimaryURL:  primary.URL,
				FallbackURL: fallback.URL,
			}, slog.Default())

			snap := fetcher.Latest(context.Background())
			assert.InDelta(t, 5.55, snap["USD"], 0.001)
		})
	}
}
