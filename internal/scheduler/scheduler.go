package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/comfortdash/weather-comfort/internal/weather"
)

// Warmer is the slice of the weather service the warm job needs.
type Warmer interface {
	WeatherForAllCities(ctx context.Context) ([]weather.Reading, error)
}

// Scheduler periodically refreshes weather data for the whole catalog so
// dashboard requests are served from a warm cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Warmer
	interval  time.Duration
	log       *zap.SugaredLogger
}

// New creates a new Scheduler. An interval of 0 disables it.
func New(interval time.Duration, service Warmer, log *zap.SugaredLogger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic warm job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Infow("cache warm scheduler disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.log.Infow("running cache warm job")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		readings, err := s.service.WeatherForAllCities(ctx)
		if err != nil {
			s.log.Warnw("cache warm job failed", "error", err)
			return
		}
		s.log.Infow("completed cache warm job", "cities", len(readings))
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
