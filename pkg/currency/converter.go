// Package currency resolves exchange rates for reconciling booking amounts
// against the gateway's settlement currency.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hotel-booking-be/internal/pkg/logger"

	"github.com/patrickmn/go-cache"
)

const (
	// Rates are refreshed at most every 12 hours.
	rateTTL       = 12 * time.Hour
	cleanupPeriod = 1 * time.Hour
)

type Config struct {
	ProviderURL string
	// StaticOverride, when > 0, short-circuits every lookup. Useful for
	// environments without provider access.
	StaticOverride float64
	// Fallback is used when the provider is unreachable.
	Fallback float64
}

// Converter owns its cache explicitly; there is no process-wide rate state.
type Converter struct {
	cfg    Config
	client *http.Client
	cache  *cache.Cache
	logger logger.ILogger
}

func NewConverter(cfg Config, log logger.ILogger) *Converter {
	return &Converter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache.New(rateTTL, cleanupPeriod),
		logger: log,
	}
}

type rateResponse struct {
	Rate float64 `json:"rate"`
}

// Rate returns the from->to conversion rate. It never fails: a missing or
// unreachable provider yields the configured fallback so payment
// verification can still proceed.
func (c *Converter) Rate(ctx context.Context, from, to string) float64 {
	if from == to {
		return 1
	}
	if c.cfg.StaticOverride > 0 {
		return c.cfg.StaticOverride
	}

	key := from + ":" + to
	if cached, found := c.cache.Get(key); found {
		return cached.(float64)
	}

	rate, err := c.fetch(ctx, from, to)
	if err != nil {
		c.logger.Warn("CURRENCY", "Rate provider unreachable, using fallback rate", map[string]interface{}{
			"from":     from,
			"to":       to,
			"fallback": c.cfg.Fallback,
			"error":    err.Error(),
		})
		return c.cfg.Fallback
	}

	c.cache.Set(key, rate, cache.DefaultExpiration)
	return rate
}

func (c *Converter) fetch(ctx context.Context, from, to string) (float64, error) {
	if c.cfg.ProviderURL == "" {
		return 0, fmt.Errorf("no rate provider configured")
	}

	url := fmt.Sprintf("%s/rate?from=%s&to=%s", c.cfg.ProviderURL, from, to)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	if body.Rate <= 0 {
		return 0, fmt.Errorf("rate provider returned non-positive rate %f", body.Rate)
	}
	return body.Rate, nil
}
