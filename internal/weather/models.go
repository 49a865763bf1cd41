package weather

import (
	"time"
)

// Condition is the coarse weather classification used for scoring.
type Condition string

const (
	ConditionSunny  Condition = "sunny"
	ConditionRainy  Condition = "rainy"
	ConditionCloudy Condition = "cloudy"
)

// Location is a city we generate recommendations for.
// Name is the slug used for output files (e.g. "new_york").
type Location struct {
	Name    string   `json:"name"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string key for indexing this location.
func (l Location) Key() string {
	return l.Name
}

// HasCoordinates reports whether both latitude and longitude are known.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// Source tells whether an observation came from providers or the mock table.
type Source string

const (
	SourceLive Source = "live"
	SourceMock Source = "mock"
)

// Observation is the classified, unit-normalized weather record handed to scoring.
type Observation struct {
	Location     Location  `json:"location"`
	Timestamp    time.Time `json:"timestamp"` // always UTC
	Temperature  float64   `json:"temperature"`
	WindSpeedKmh float64   `json:"windSpeedKmh"`
	Condition    Condition `json:"condition"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon,omitempty"`
	Source       Source    `json:"source"`

	// Providers contributing to this observation.
	Providers []ProviderContribution `json:"providers,omitempty"`
}

// ProviderContribution describes data coming from a single provider used in aggregation.
type ProviderContribution struct {
	ProviderName string    `json:"provider"`
	Timestamp    time.Time `json:"timestamp"`
}
