// Package rates fetches reference currency quotes against the home
// currency (BRL) for the classifier prompt and the coach. Callers pass the
// snapshot into the pipeline explicitly; nothing here is read globally.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/smartwallet/smartwallet/internal/common"
	"github.com/smartwallet/smartwallet/internal/service"
)

// Snapshot maps a currency code to its value in BRL.
type Snapshot map[string]float64

// defaultSnapshot is the offline safety net.
var defaultSnapshot = Snapshot{
	"USD": 5.0, "EUR": 6.0, "GBP": 7.0,
	"JPY": 0.03, "CNY": 0.70, "BTC": 500000.0,
}

const (
	defaultPrimaryURL  = "https://api.fxratesapi.com/latest"
	defaultFallbackURL = "https://economia.awesomeapi.com.br/last/USD-BRL,EUR-BRL,GBP-BRL,JPY-BRL,CNY-BRL,BTC-BRL"
	defaultCacheTTL    = 5 * time.Minute
)

// Fetcher retrieves quotes with a keyed primary source, a free fallback,
// and a TTL snapshot cache so repeated classifications within a session
// don't refetch.
type Fetcher struct {
	httpClient  *http.Client
	logger      *slog.Logger
	cached      Snapshot
	primaryURL  string
	fallbackURL string
	apiKey      string
	retryOpts   service.RetryOptions
	cacheExpiry time.Time
	cacheTTL    time.Duration
	mu          sync.Mutex
}

// Config holds configuration for the rate fetcher.
type Config struct {
	APIKey      string
	PrimaryURL  string
	FallbackURL string
	CacheTTL    time.Duration
	Timeout     time.Duration
}

// NewFetcher creates a rate fetcher.
func NewFetcher(cfg Config, logger *slog.Logger) *Fetcher {
	primaryURL := cfg.PrimaryURL
	if primaryURL == "" {
		primaryURL = defaultPrimaryURL
	}
	fallbackURL := cfg.FallbackURL
	if fallbackURL == "" {
		fallbackURL = defaultFallbackURL
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Fetcher{
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
		apiKey:      cfg.APIKey,
		cacheTTL:    cacheTTL,
		retryOpts: service.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: 200 * time.Millisecond,
		},
	}
}

// Latest returns the current snapshot: cache, then the keyed primary
// source, then the free fallback, then the offline defaults. It never
// fails; at worst the defaults come back.
func (f *Fetcher) Latest(ctx context.Context) Snapshot {
	f.mu.Lock()
	if f.cached != nil && time.Now().Before(f.cacheExpiry) {
		snap := f.cached
		f.mu.Unlock()
		return snap
	}
	f.mu.Unlock()

	snap, err := f.fetch(ctx)
	if err != nil {
		f.logger.Warn("market rates unavailable, using defaults", "error", err)
		return defaultSnapshot
	}

	f.mu.Lock()
	f.cached = snap
	f.cacheExpiry = time.Now().Add(f.cacheTTL)
	f.mu.Unlock()

	return snap
}

func (f *Fetcher) fetch(ctx context.Context) (Snapshot, error) {
	if f.apiKey != "" {
		var snap Snapshot
		err := common.WithRetry(ctx, func() error {
			var fetchErr error
			snap, fetchErr = f.fetchPrimary(ctx)
			if fetchErr != nil {
				return &common.RetryableError{Err: fetchErr, Retryable: true}
			}
			return nil
		}, f.retryOpts)
		if err == nil {
			return snap, nil
		}
		f.logger.Warn("primary rate source failed, trying fallback", "error", err)
	}

	snap, err := f.fetchFallback(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRatesOffline, err)
	}
	return snap, nil
}

// fetchPrimary queries the keyed source, which quotes everything against
// USD; cross-rates derive the BRL values.
func (f *Fetcher) fetchPrimary(ctx context.Context) (Snapshot, error) {
	url := fmt.Sprintf("%s?base=USD&currencies=BRL,EUR,GBP,JPY,CNY,BTC&api_key=%s", f.primaryURL, f.apiKey)

	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Success bool               `json:"success"`
		Rates   map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse primary response: %w", err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("primary source reported failure")
	}

	usdBRL, ok := payload.Rates["BRL"]
	if !ok || usdBRL <= 0 {
		return nil, fmt.Errorf("primary response missing BRL rate")
	}

	snap := Snapshot{"USD": usdBRL}
	// (1 USD in BRL) / (1 USD in X) = value of 1 X in BRL
	for _, code := range []string{"EUR", "GBP", "JPY", "CNY", "BTC"} {
		if perUSD, ok := payload.Rates[code]; ok && perUSD > 0 {
			snap[code] = usdBRL / perUSD
		}
	}

	return snap, nil
}

// fetchFallback queries the free source, which quotes pairs against BRL
// directly.
func (f *Fetcher) fetchFallback(ctx context.Context) (Snapshot, error) {
	body, err := f.get(ctx, f.fallbackURL)
	if err != nil {
		return nil, err
	}

	var payload map[string]struct {
		Bid string `json:"bid"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse fallback response: %w", err)
	}

	snap := make(Snapshot, len(payload))
	for _, code := range []string{"USD", "EUR", "GBP", "JPY", "CNY", "BTC"} {
		pair, ok := payload[code+"BRL"]
		if !ok {
			continue
		}
		if bid, err := strconv.ParseFloat(pair.Bid, 64); err == nil && bid > 0 {
			snap[code] = bid
		}
	}
	if len(snap) == 0 {
		return nil, fmt.Errorf("fallback response contained no usable quotes")
	}

	return snap, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "smartwallet/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate source error (status %d)", resp.StatusCode)
	}

	return body, nil
}
