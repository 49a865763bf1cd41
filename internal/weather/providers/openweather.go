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

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	endpoint
	apiKey string
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		endpoint: newEndpoint("openweathermap", "https://api.openweathermap.org/data/2.5/weather", client, opts),
		apiKey:   apiKey,
	}
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	if p.apiKey == "" {
		return weather.ProviderReading{}, fmt.Errorf("openweathermap: %w", errMissingAPIKey)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")

		if loc.HasCoordinates() {
			values.Set("lat", strconv.FormatFloat(*loc.Lat, 'f', -1, 64))
			values.Set("lon", strconv.FormatFloat(*loc.Lon, 'f', -1, 64))
		} else {
			q := loc.Name
			if loc.Country != "" {
				q = fmt.Sprintf("%s,%s", loc.Name, loc.Country)
			}
			values.Set("q", q)
		}

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ProviderReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"` // m/s with units=metric
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ProviderReading{}, fmt.Errorf("openweathermap: decode: %w", err)
	}
	if len(payload.Weather) == 0 {
		return weather.ProviderReading{}, fmt.Errorf("openweathermap: %w", errEmptyPayload)
	}

	ts := time.Now().UTC()
	if payload.Dt > 0 {
		ts = time.Unix(payload.Dt, 0).UTC()
	}

	current := payload.Weather[0]
	cond := weather.Classify(current.Main)
	icon := current.Icon
	if icon == "" {
		icon = weather.DefaultIcon(cond)
	}

	return weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts,
		TemperatureC: payload.Main.Temp,
		WindSpeedKmh: msToKmh(payload.Wind.Speed),
		Condition:    cond,
		Description:  current.Description,
		Icon:         icon,
	}, nil
}
