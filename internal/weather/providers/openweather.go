package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/comfortdash/weather-comfort/internal/apperr"
	"github.com/comfortdash/weather-comfort/internal/weather"
)

const kelvinToCelsiusOffset = 273.15

// ErrNoData marks a syntactically valid response that carries no usable
// weather description. Callers treat it as a per-city "no data" outcome.
var ErrNoData = apperr.New(apperr.KindMalformed, "provider response carries no weather description")

// OpenWeather implements the weather.Provider interface for OpenWeatherMap,
// querying by city id. Temperatures arrive in Kelvin and are converted
// to Celsius here.
type OpenWeather struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeather(client *http.Client, apiKey string) *OpenWeather {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeather{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *OpenWeather) Name() string {
	return p.name
}

func (p *OpenWeather) Fetch(ctx context.Context, cityID int) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("id", strconv.Itoa(cityID))
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Clouds struct {
			All int `json:"all"`
		} `json:"clouds"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, apperr.Wrap(apperr.KindMalformed, "invalid JSON in provider response", err)
	}

	// A response without a weather block is unusable for the dashboard.
	if len(payload.Weather) == 0 {
		return weather.Reading{}, ErrNoData
	}

	return weather.Reading{
		CityID:        cityID,
		TemperatureC:  payload.Main.Temp - kelvinToCelsiusOffset,
		FeelsLikeC:    payload.Main.FeelsLike - kelvinToCelsiusOffset,
		HumidityPct:   payload.Main.Humidity,
		WindSpeedMS:   payload.Wind.Speed,
		CloudinessPct: payload.Clouds.All,
		Description:   payload.Weather[0].Description,
	}, nil
}
