// Package catalog loads the fixed set of cities the dashboard tracks.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/comfortdash/weather-comfort/internal/apperr"
)

// MinCities is the smallest catalog the dashboard is willing to serve.
const MinCities = 10

var validate = validator.New()

// City identifies one catalog entry. ID is the OpenWeatherMap city id.
type City struct {
	ID          int    `json:"id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	CountryCode string `json:"countryCode" validate:"required,len=2"`
}

// Loader reads the city catalog from a JSON file. The file is static
// configuration, so a successful parse is kept for the process lifetime;
// failures are retried on the next call.
type Loader struct {
	path string
	log  *zap.SugaredLogger

	mu     sync.Mutex
	cities []City
}

func NewLoader(path string, log *zap.SugaredLogger) *Loader {
	return &Loader{path: path, log: log}
}

// Cities returns the validated city list.
func (l *Loader) Cities() ([]City, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cities != nil {
		return l.cities, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.log.Errorw("cities file not found", "path", l.path)
			return nil, apperr.Wrap(apperr.KindNotFound, "cities file not found at "+l.path, err)
		}
		return nil, apperr.Wrap(apperr.KindNotFound, "cities file unreadable at "+l.path, err)
	}

	var cities []City
	if err := json.Unmarshal(data, &cities); err != nil {
		l.log.Errorw("cities file is not valid JSON", "path", l.path, "error", err)
		return nil, apperr.Wrap(apperr.KindMalformed, "invalid JSON in cities file", err)
	}

	if len(cities) < MinCities {
		l.log.Errorw("too few cities in catalog", "count", len(cities), "minimum", MinCities)
		return nil, apperr.New(apperr.KindValidation,
			fmt.Sprintf("cities file must contain at least %d cities, found %d", MinCities, len(cities)))
	}

	for i, c := range cities {
		if err := validate.Struct(c); err != nil {
			l.log.Errorw("invalid city entry", "index", i, "error", err)
			return nil, apperr.Wrap(apperr.KindValidation,
				fmt.Sprintf("invalid city entry at index %d", i), err)
		}
	}

	l.log.Infow("loaded city catalog", "count", len(cities), "path", l.path)
	l.cities = cities
	return l.cities, nil
}
