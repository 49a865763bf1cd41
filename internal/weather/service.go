package weather

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Service fetches from every configured provider and folds the results into
// one Observation, substituting mock data when nothing usable comes back.
type Service struct {
	providers []Provider
	timeout   time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new Service. timeout bounds one Observe call; zero disables the bound.
func NewService(providers []Provider, timeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		providers: providers,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
	}
}

// Providers returns the names of the configured providers.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Observe never fails: provider errors, timeouts and a missing provider set
// all degrade to MockObservation for the location.
func (s *Service) Observe(ctx context.Context, loc Location) Observation {
	if len(s.providers) == 0 {
		s.logger.Warn("no weather providers configured, using mock data", "city", loc.Key())
		return MockObservation(loc, s.now())
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// One slot per provider keeps aggregation order equal to configuration order.
	slots := make([]*ProviderReading, len(s.providers))

	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()

			r, err := p.Fetch(ctx, loc)
			if err != nil {
				// Log and continue; we want partial success when possible.
				s.logger.Warn("provider fetch failed", "provider", p.Name(), "city", loc.Key(), "error", err)
				return
			}
			slots[i] = &r
		}(i, p)
	}
	wg.Wait()

	readings := make([]ProviderReading, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			readings = append(readings, *r)
		}
	}

	if len(readings) == 0 {
		s.logger.Warn("no successful provider readings, using mock data", "city", loc.Key())
		return MockObservation(loc, s.now())
	}

	obs := AggregateReadings(loc, readings)
	s.logger.Debug("weather observed",
		"city", loc.Key(),
		"providers", len(readings),
		"condition", obs.Condition,
		"temperature", obs.Temperature,
	)
	return obs
}
