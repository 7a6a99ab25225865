package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-booking-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestRate_SameCurrency(t *testing.T) {
	c := NewConverter(Config{Fallback: 99}, logger.NewNopLogger())
	assert.Equal(t, 1.0, c.Rate(context.Background(), "IDR", "IDR"))
}

func TestRate_StaticOverride(t *testing.T) {
	c := NewConverter(Config{StaticOverride: 15500, Fallback: 1}, logger.NewNopLogger())
	assert.Equal(t, 15500.0, c.Rate(context.Background(), "USD", "IDR"))
}

func TestRate_FetchesAndCaches(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "IDR", r.URL.Query().Get("to"))
		w.Write([]byte(`{"rate": 16000}`))
	}))
	defer srv.Close()

	c := NewConverter(Config{ProviderURL: srv.URL, Fallback: 1}, logger.NewNopLogger())

	assert.Equal(t, 16000.0, c.Rate(context.Background(), "USD", "IDR"))
	assert.Equal(t, 16000.0, c.Rate(context.Background(), "USD", "IDR"))
	assert.Equal(t, 1, calls)
}

func TestRate_FallbackOnProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewConverter(Config{ProviderURL: srv.URL, Fallback: 15000}, logger.NewNopLogger())
	assert.Equal(t, 15000.0, c.Rate(context.Background(), "USD", "IDR"))
}

func TestRate_FallbackIsNotCached(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"rate": 16000}`))
	}))
	defer srv.Close()

	c := NewConverter(Config{ProviderURL: srv.URL, Fallback: 1}, logger.NewNopLogger())

	// First call falls back, second reaches the recovered provider.
	assert.Equal(t, 1.0, c.Rate(context.Background(), "USD", "IDR"))
	assert.Equal(t, 16000.0, c.Rate(context.Background(), "USD", "IDR"))
}

func TestRate_NoProviderConfigured(t *testing.T) {
	c := NewConverter(Config{Fallback: 15000}, logger.NewNopLogger())
	assert.Equal(t, 15000.0, c.Rate(context.Background(), "USD", "IDR"))
}

func TestRate_NonPositiveRateRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rate": 0}`))
	}))
	defer srv.Close()

	c := NewConverter(Config{ProviderURL: srv.URL, Fallback: 15000}, logger.NewNopLogger())
	assert.Equal(t, 15000.0, c.Rate(context.Background(), "USD", "IDR"))
}
