package weather

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Service fronts the provider with the per-city cache and fans out over
// the whole catalog.
type Service struct {
	catalog     Catalog
	provider    Provider
	cache       Cache
	concurrency int
	log         *zap.SugaredLogger
}

// NewService creates a new Service. concurrency bounds parallel provider
// fetches during fan-out; values below 1 are treated as 1.
func NewService(catalog Catalog, provider Provider, cache Cache, concurrency int, log *zap.SugaredLogger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		catalog:     catalog,
		provider:    provider,
		cache:       cache,
		concurrency: concurrency,
		log:         log,
	}
}

// WeatherForCity returns the reading for one city, serving it from the
// cache when fresh and fetching from the provider otherwise. Failed or
// cancelled fetches never write a cache entry.
func (s *Service) WeatherForCity(ctx context.Context, cityID int) (Reading, error) {
	if r, ok := s.cache.Get(cityID); ok {
		s.log.Debugw("cache hit", "cityId", cityID)
		return r, nil
	}

	s.log.Debugw("cache miss, fetching from provider", "cityId", cityID)

	r, err := s.provider.Fetch(ctx, cityID)
	if err != nil {
		return Reading{}, err
	}
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	r.CityName = s.cityName(cityID)
	s.cache.Set(cityID, r)
	return r, nil
}

// WeatherForAllCities fetches readings for every catalog city with bounded
// parallelism. Per-city failures are logged and the city is dropped;
// only a catalog failure aborts the whole batch.
func (s *Service) WeatherForAllCities(ctx context.Context) ([]Reading, error) {
	cities, err := s.catalog.Cities()
	if err != nil {
		return nil, err
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings = make([]Reading, 0, len(cities))
	)
	sem := make(chan struct{}, s.concurrency)

	for _, city := range cities {
		wg.Add(1)
		go func(id int, name string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			r, err := s.WeatherForCity(ctx, id)
			if err != nil {
				// Log and continue; we want partial success when possible.
				s.log.Warnw("weather fetch failed, skipping city",
					"cityId", id, "cityName", name, "error", err)
				return
			}

			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}(city.ID, city.Name)
	}

	wg.Wait()

	s.log.Infow("retrieved weather readings", "ok", len(readings), "total", len(cities))
	return readings, nil
}

// CacheStatus reports HIT or MISS for a city without fetching or
// mutating cache state.
func (s *Service) CacheStatus(cityID int) string {
	if _, ok := s.cache.Get(cityID); ok {
		return StatusHit
	}
	return StatusMiss
}

func (s *Service) cityName(cityID int) string {
	cities, err := s.catalog.Cities()
	if err != nil {
		return "Unknown"
	}
	for _, c := range cities {
		if c.ID == cityID {
			return c.Name
		}
	}
	return "Unknown"
}
