package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/comfortdash/weather-comfort/internal/dashboard"
	"github.com/comfortdash/weather-comfort/internal/weather"
)

// DashboardService serves the combined ranked city view.
type DashboardService interface {
	Dashboard(ctx context.Context) ([]dashboard.City, error)
}

// WeatherService is the slice of the weather service the cache debug
// endpoints need.
type WeatherService interface {
	CacheStatus(cityID int) string
	WeatherForAllCities(ctx context.Context) ([]weather.Reading, error)
}

// CacheStatus is the payload returned by the cache debug endpoints.
type CacheStatus struct {
	CityID int    `json:"cityId"`
	Status string `json:"status"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, dash DashboardService, weatherSvc WeatherService, log *zap.SugaredLogger) {
	api := app.Group("/api")

	api.Get("/weather/dashboard", func(c *fiber.Ctx) error {
		data, err := dash.Dashboard(c.UserContext())
		if err != nil {
			log.Errorw("dashboard request failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "an error occurred while fetching dashboard data",
			})
		}
		return c.JSON(data)
	})

	// The literal route must be registered before the param route.
	api.Get("/cachedebug/all", func(c *fiber.Ctx) error {
		readings, err := weatherSvc.WeatherForAllCities(c.UserContext())
		if err != nil {
			log.Errorw("cache status request failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "an error occurred while checking cache statuses",
			})
		}

		seen := make(map[int]bool, len(readings))
		statuses := make([]CacheStatus, 0, len(readings))
		for _, r := range readings {
			if seen[r.CityID] {
				continue
			}
			seen[r.CityID] = true
			statuses = append(statuses, CacheStatus{
				CityID: r.CityID,
				Status: weatherSvc.CacheStatus(r.CityID),
			})
		}
		return c.JSON(statuses)
	})

	api.Get("/cachedebug/:cityId", func(c *fiber.Ctx) error {
		cityID, err := c.ParamsInt("cityId")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cityId must be an integer")
		}
		return c.JSON(CacheStatus{
			CityID: cityID,
			Status: weatherSvc.CacheStatus(cityID),
		})
	})
}
