package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/activity-recommender/internal/weather"
)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// It needs no API key but only works with coordinates.
type OpenMeteoProvider struct {
	endpoint
}

func NewOpenMeteoProvider(client *http.Client, opts ...Option) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		endpoint: newEndpoint("openmeteo", "https://api.open-meteo.com/v1/forecast", client, opts),
	}
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	if !loc.HasCoordinates() {
		return weather.ProviderReading{}, fmt.Errorf("openmeteo: %w", errNoCoordinates)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(*loc.Lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(*loc.Lon, 'f', -1, 64))
		values.Set("current_weather", "true")
		values.Set("timezone", "UTC")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ProviderReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather *struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"` // km/h by default
			Time        string  `json:"time"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ProviderReading{}, fmt.Errorf("openmeteo: decode: %w", err)
	}
	if payload.CurrentWeather == nil {
		return weather.ProviderReading{}, fmt.Errorf("openmeteo: %w", errEmptyPayload)
	}
	current := payload.CurrentWeather

	// Open-Meteo reports minutes without seconds or zone ("2026-10-19T09:00").
	ts, err := time.Parse("2006-01-02T15:04", current.Time)
	if err != nil {
		ts = time.Now().UTC()
	}

	description := describeWMOCode(current.WeatherCode)
	cond := weather.Classify(description)

	return weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts.UTC(),
		TemperatureC: current.Temperature,
		WindSpeedKmh: current.WindSpeed,
		Condition:    cond,
		Description:  description,
		Icon:         weather.DefaultIcon(cond),
	}, nil
}

// describeWMOCode renders a WMO weather interpretation code as text that
// weather.Classify understands.
func describeWMOCode(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code == 1:
		return "Mainly clear"
	case code == 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case (code >= 61 && code <= 67) || (code >= 80 && code <= 82):
		return "Rain"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return "Snow"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
