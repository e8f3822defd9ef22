// Package dashboard assembles the combined ranked city view served to
// the front-end.
package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/comfortdash/weather-comfort/internal/comfort"
	"github.com/comfortdash/weather-comfort/internal/weather"
)

// City is one row of the combined dashboard view.
type City struct {
	CityID       int     `json:"cityId"`
	CityName     string  `json:"cityName"`
	Description  string  `json:"description"`
	TemperatureC float64 `json:"temperatureC"`
	ComfortIndex float64 `json:"comfortIndex"`
	Rank         int     `json:"rank"`
}

// WeatherSource yields readings for every catalog city, tolerating
// per-city failures.
type WeatherSource interface {
	WeatherForAllCities(ctx context.Context) ([]weather.Reading, error)
}

// Service orchestrates the fetch -> score -> rank -> join pipeline.
type Service struct {
	weather WeatherSource
	scorer  *comfort.Scorer
	log     *zap.SugaredLogger
}

func NewService(weatherSource WeatherSource, scorer *comfort.Scorer, log *zap.SugaredLogger) *Service {
	return &Service{
		weather: weatherSource,
		scorer:  scorer,
		log:     log,
	}
}

// Dashboard returns the ranked city list. Per-city failures have already
// been dropped upstream; an empty result at any stage short-circuits to
// an empty list. Only a total pipeline failure (catalog unreadable)
// returns an error.
func (s *Service) Dashboard(ctx context.Context) ([]City, error) {
	readings, err := s.weather.WeatherForAllCities(ctx)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		s.log.Infow("no weather data available")
		return []City{}, nil
	}

	indices := s.scorer.ScoreAll(readings)
	if len(indices) == 0 {
		s.log.Warnw("no comfort indices calculated", "readings", len(readings))
		return []City{}, nil
	}

	ranked := comfort.Rank(indices)
	if len(ranked) == 0 {
		s.log.Warnw("ranking produced no cities", "indices", len(indices))
		return []City{}, nil
	}

	byID := make(map[int]weather.Reading, len(readings))
	for _, r := range readings {
		byID[r.CityID] = r
	}

	cities := make([]City, 0, len(ranked))
	for _, rc := range ranked {
		row := City{
			CityID:       rc.CityID,
			CityName:     rc.CityName,
			ComfortIndex: rc.Score,
			Rank:         rc.Rank,
		}
		// Defensive join: a ranked city without a reading keeps defaults.
		if r, ok := byID[rc.CityID]; ok {
			row.Description = r.Description
			row.TemperatureC = r.TemperatureC
		}
		cities = append(cities, row)
	}

	s.log.Infow("prepared dashboard", "cities", len(cities))
	return cities, nil
}
