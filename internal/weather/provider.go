package weather

import (
	"context"
	"time"
)

// ProviderReading is one provider's normalized reading. Wind is already in km/h
// and Condition is already classified.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time

	TemperatureC float64
	WindSpeedKmh float64
	Condition    Condition
	Description  string
	Icon         string
}

// Provider abstracts a weather data source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (ProviderReading, error)
}
