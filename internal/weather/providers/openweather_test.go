package providers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/comfortdash/weather-comfort/internal/apperr"
)

const sampleBody = `{
	"main": {"temp": 295.15, "feels_like": 293.15, "humidity": 55},
	"wind": {"speed": 3.4},
	"clouds": {"all": 20},
	"weather": [{"description": "scattered clouds"}]
}`

func newTestProvider(serverURL string) *OpenWeather {
	p := NewOpenWeather(&http.Client{Timeout: 2 * time.Second}, "test-key")
	p.baseURL = serverURL
	// Keep retries fast in tests.
	p.httpCfg.Backoff = BackoffConfig{MaxRetries: 1, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}
	return p
}

func TestFetchNormalizesResponse(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	r, err := p.Fetch(context.Background(), 2643743)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(r.TemperatureC-22.0) > 0.001 {
		t.Fatalf("expected 295.15K to normalize to 22C, got %v", r.TemperatureC)
	}
	if math.Abs(r.FeelsLikeC-20.0) > 0.001 {
		t.Fatalf("expected feels-like 20C, got %v", r.FeelsLikeC)
	}
	if r.HumidityPct != 55 || r.WindSpeedMS != 3.4 || r.CloudinessPct != 20 {
		t.Fatalf("unexpected normalized reading: %+v", r)
	}
	if r.Description != "scattered clouds" {
		t.Fatalf("unexpected description: %q", r.Description)
	}
	if r.CityID != 2643743 {
		t.Fatalf("expected city id carried through, got %d", r.CityID)
	}

	req := httptest.NewRequest(http.MethodGet, "/?"+gotQuery, nil)
	q := req.URL.Query()
	if q.Get("id") != "2643743" || q.Get("appid") != "test-key" {
		t.Fatalf("unexpected request query: %s", gotQuery)
	}
}

func TestFetchDefaultsOptionalFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main": {"temp": 280.15, "feels_like": 278.15, "humidity": 70},
			"weather": [{"description": "mist"}]}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	r, err := p.Fetch(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.WindSpeedMS != 0 || r.CloudinessPct != 0 {
		t.Fatalf("absent wind/clouds should default to zero: %+v", r)
	}
}

func TestFetchEmptyWeatherListIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main": {"temp": 280.15, "humidity": 70}, "weather": []}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Fetch(context.Background(), 1)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestFetchUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Fetch(context.Background(), 1)
	if !apperr.Is(err, apperr.KindUpstreamStatus) {
		t.Fatalf("expected upstream_status error, got %v", err)
	}

	var e *apperr.Error
	if !errors.As(err, &e) || e.Status != http.StatusNotFound {
		t.Fatalf("expected status 404 carried on the error, got %v", err)
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Fetch(context.Background(), 1)
	if !apperr.Is(err, apperr.KindMalformed) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Fetch(ctx, 1)
	if !apperr.Is(err, apperr.KindCancelled) {
		t.Fatalf("expected cancelled error, got %v", err)
	}
}

func TestFetchWithoutAPIKey(t *testing.T) {
	p := NewOpenWeather(&http.Client{}, "")
	if _, err := p.Fetch(context.Background(), 1); err == nil {
		t.Fatal("expected error when api key is not configured")
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	if _, err := p.Fetch(context.Background(), 1); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls)
	}
}
