package report

import (
	"math"
	"time"

	"github.com/i474232898/activity-recommender/internal/activity"
	"github.com/i474232898/activity-recommender/internal/weather"
)

// Report is the document published for one city per run.
type Report struct {
	City            string                 `json:"city"`
	GeneratedAt     string                 `json:"generated_at"`
	Weather         WeatherSummary         `json:"weather"`
	Context         ContextSummary         `json:"context"`
	Recommendations []activity.ScoreResult `json:"recommendations"`
}

// WeatherSummary is the weather block shown on the site's weather card.
type WeatherSummary struct {
	Temperature  float64 `json:"temperature"`
	Condition    string  `json:"condition"`
	Description  string  `json:"description"`
	WindSpeedKmh float64 `json:"wind_speed_kmh"`
	Icon         string  `json:"icon,omitempty"`
}

// ContextSummary is the time context the scores were computed for.
type ContextSummary struct {
	TimeOfDay activity.TimeOfDay `json:"time_of_day"`
	DayType   activity.DayType   `json:"day_type"`
}

// Assemble packages one city's results. results are copied, so the report
// does not alias the caller's slice.
func Assemble(city string, now time.Time, obs weather.Observation, ctx activity.Context, results []activity.ScoreResult) Report {
	recs := make([]activity.ScoreResult, len(results))
	copy(recs, results)

	return Report{
		City:        city,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Weather: WeatherSummary{
			Temperature:  obs.Temperature,
			Condition:    string(obs.Condition),
			Description:  obs.Description,
			WindSpeedKmh: math.Round(obs.WindSpeedKmh*10) / 10,
			Icon:         obs.Icon,
		},
		Context: ContextSummary{
			TimeOfDay: ctx.TimeOfDay,
			DayType:   ctx.DayType,
		},
		Recommendations: recs,
	}
}
