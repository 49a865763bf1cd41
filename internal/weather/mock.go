package weather

import "time"

type mockWeather struct {
	temperature float64
	condition   Condition
	windKmh     float64
	description string
	icon        string
}

var mockTable = map[string]mockWeather{
	"paris":     {8, ConditionCloudy, 12, "Mostly cloudy", "02d"},
	"lyon":      {6, ConditionRainy, 15, "Light rain", "10d"},
	"marseille": {12, ConditionSunny, 8, "Clear sky", "01d"},
	"tokyo":     {5, ConditionCloudy, 10, "Overcast", "04d"},
	"new_york":  {2, ConditionRainy, 20, "Light snow", "13d"},
	"sydney":    {26, ConditionSunny, 14, "Clear sky", "01d"},
}

var mockDefault = mockWeather{15, ConditionCloudy, 10, "Unknown", "04d"}

// MockObservation returns the deterministic fallback weather for a location.
// Unknown cities get a mild cloudy day.
func MockObservation(loc Location, now time.Time) Observation {
	m, ok := mockTable[loc.Key()]
	if !ok {
		m = mockDefault
	}
	return Observation{
		Location:     loc,
		Timestamp:    now.UTC(),
		Temperature:  m.temperature,
		WindSpeedKmh: m.windKmh,
		Condition:    m.condition,
		Description:  m.description,
		Icon:         m.icon,
		Source:       SourceMock,
	}
}
