package weather

import (
	"strings"

	"github.com/i474232898/activity-recommender/internal/common"
)

// Classify maps provider condition text onto the three scoring conditions.
// Rain wins over clear sky; anything unrecognized (snow, fog, storms) counts as cloudy.
func Classify(text string) Condition {
	t := strings.ToLower(text)
	switch {
	case common.HasAny(t, "rain", "drizzle"):
		return ConditionRainy
	case common.HasAny(t, "clear", "sunny"):
		return ConditionSunny
	default:
		return ConditionCloudy
	}
}

// DefaultIcon returns an OpenWeatherMap-style daytime icon code for a condition,
// for providers that do not supply one.
func DefaultIcon(c Condition) string {
	switch c {
	case ConditionSunny:
		return "01d"
	case ConditionRainy:
		return "10d"
	default:
		return "04d"
	}
}
