package weather

import (
	"math"
	"time"
)

// AggregateReadings combines provider readings into a single Observation.
// Temperature and wind are averaged and the temperature is rounded to a whole
// degree. The majority condition wins; ties go to the condition seen first.
// Description and icon come from the first reading with the winning condition.
func AggregateReadings(loc Location, readings []ProviderReading) Observation {
	if len(readings) == 0 {
		return Observation{
			Location:  loc,
			Timestamp: time.Now().UTC(),
			Condition: ConditionCloudy,
			Source:    SourceLive,
		}
	}

	var (
		sumTemp float64
		sumWind float64
	)

	conditionCounts := make(map[Condition]int)
	order := make([]Condition, 0, len(readings))
	providers := make([]ProviderContribution, 0, len(readings))
	var newestTS time.Time

	for _, r := range readings {
		sumTemp += r.TemperatureC
		sumWind += r.WindSpeedKmh

		if conditionCounts[r.Condition] == 0 {
			order = append(order, r.Condition)
		}
		conditionCounts[r.Condition]++

		if r.Timestamp.After(newestTS) {
			newestTS = r.Timestamp
		}

		providers = append(providers, ProviderContribution{
			ProviderName: r.ProviderName,
			Timestamp:    r.Timestamp,
		})
	}

	n := float64(len(readings))

	bestCond := order[0]
	for _, cond := range order[1:] {
		if conditionCounts[cond] > conditionCounts[bestCond] {
			bestCond = cond
		}
	}

	var description, icon string
	for _, r := range readings {
		if r.Condition == bestCond {
			description, icon = r.Description, r.Icon
			break
		}
	}
	if icon == "" {
		icon = DefaultIcon(bestCond)
	}

	if newestTS.IsZero() {
		newestTS = time.Now().UTC()
	}

	return Observation{
		Location:     loc,
		Timestamp:    newestTS,
		Temperature:  math.Round(sumTemp / n),
		WindSpeedKmh: sumWind / n,
		Condition:    bestCond,
		Description:  description,
		Icon:         icon,
		Source:       SourceLive,
		Providers:    providers,
	}
}
