package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/activity-recommender/internal/activity"
	"github.com/i474232898/activity-recommender/internal/clock"
	"github.com/i474232898/activity-recommender/internal/metrics"
	"github.com/i474232898/activity-recommender/internal/report"
	"github.com/i474232898/activity-recommender/internal/weather"
)

// Observer supplies the weather for a city. It must not fail.
type Observer interface {
	Observe(ctx context.Context, loc weather.Location) weather.Observation
}

// Publisher persists a finished report.
type Publisher interface {
	Write(r report.Report) error
}

// Sink receives every finished report, e.g. for serving over HTTP.
type Sink interface {
	Save(r report.Report)
}

// Deps bundles the collaborators of a Generator. Publisher and Sink are optional.
type Deps struct {
	Engine    *activity.Engine
	Weather   Observer
	Clock     clock.Clock
	Publisher Publisher
	Sink      Sink
	Logger    *slog.Logger
}

// Generator produces one report per configured city.
type Generator struct {
	cities []weather.Location
	deps   Deps
}

// CityFailure is a city that produced no report in a run.
type CityFailure struct {
	City string
	Err  error
}

// RunSummary describes one batch run.
type RunSummary struct {
	RunID     string
	StartedAt time.Time
	Succeeded []string
	Failed    []CityFailure
}

// New creates a Generator over cities, processed in the given order.
func New(cities []weather.Location, deps Deps) *Generator {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Generator{cities: cities, deps: deps}
}

// Cities returns the configured city names.
func (g *Generator) Cities() []string {
	names := make([]string, 0, len(g.cities))
	for _, c := range g.cities {
		names = append(names, c.Key())
	}
	return names
}

// Run generates every city's report. A failing city is logged and skipped;
// Run itself never fails.
func (g *Generator) Run(ctx context.Context) RunSummary {
	summary := RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: g.deps.Clock.Now(),
	}
	logger := g.deps.Logger.With("run_id", summary.RunID)
	logger.Info("starting activity recommendation generation", "cities", len(g.cities))

	for _, loc := range g.cities {
		city := loc.Key()
		if err := ctx.Err(); err != nil {
			summary.Failed = append(summary.Failed, CityFailure{City: city, Err: err})
			continue
		}

		logger.Info("generating city data", "city", city)
		r, err := g.generateCity(ctx, loc)
		metrics.RecordReport(city, err == nil)
		if err != nil {
			logger.Error("city generation failed", "city", city, "error", err)
			summary.Failed = append(summary.Failed, CityFailure{City: city, Err: err})
			continue
		}

		summary.Succeeded = append(summary.Succeeded, city)
		if len(r.Recommendations) > 0 {
			metrics.RecordTopScore(city, r.Recommendations[0].Score)
		}
	}

	metrics.RecordRun(g.deps.Clock.Now())
	logger.Info("generation done", "succeeded", len(summary.Succeeded), "failed", len(summary.Failed))
	return summary
}

func (g *Generator) generateCity(ctx context.Context, loc weather.Location) (r report.Report, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while generating %s: %v", loc.Key(), rec)
		}
	}()

	obs := g.deps.Weather.Observe(ctx, loc)
	// A lookup cut short by cancellation has degraded to mock data. Never publish it.
	if err := ctx.Err(); err != nil {
		return report.Report{}, fmt.Errorf("weather for %s: %w", loc.Key(), err)
	}
	metrics.RecordWeatherSource(loc.Key(), string(obs.Source))

	cond, err := activity.ParseWeatherCondition(string(obs.Condition))
	if err != nil {
		return report.Report{}, fmt.Errorf("weather for %s: %w", loc.Key(), err)
	}

	now := g.deps.Clock.Now()
	actx := activity.Context{
		Weather:     cond,
		Temperature: obs.Temperature,
		WindSpeed:   obs.WindSpeedKmh,
		TimeOfDay:   clock.TimeOfDay(now),
		DayType:     clock.DayType(now),
	}

	results, err := g.deps.Engine.Recommend(actx)
	if err != nil {
		return report.Report{}, fmt.Errorf("recommend for %s: %w", loc.Key(), err)
	}

	r = report.Assemble(loc.Key(), now, obs, actx, results)

	if g.deps.Publisher != nil {
		if err := g.deps.Publisher.Write(r); err != nil {
			return report.Report{}, err
		}
	}
	if g.deps.Sink != nil {
		g.deps.Sink.Save(r)
	}
	return r, nil
}
