package weather

import (
	"context"

	"github.com/comfortdash/weather-comfort/internal/catalog"
)

// Provider abstracts the upstream current-weather source (e.g. OpenWeatherMap).
// Fetch returns a Reading without CityName; the service joins the name in
// from the catalog.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, cityID int) (Reading, error)
}

// Catalog supplies the fixed city list.
type Catalog interface {
	Cities() ([]catalog.City, error)
}

// Cache is the freshness-bounded per-city store readings pass through.
// Get only returns live entries; Set overwrites unconditionally.
type Cache interface {
	Get(cityID int) (Reading, bool)
	Set(cityID int, r Reading)
}
