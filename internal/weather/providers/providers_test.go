package providers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/activity-recommender/internal/weather"
)

var fastBackoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}

func testOpts(baseURL string) []Option {
	return []Option{
		WithBaseURL(baseURL),
		WithBackoff(fastBackoff),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func paris() weather.Location {
	lat, lon := 48.8566, 2.3522
	return weather.Location{Name: "paris", Lat: &lat, Lon: &lon}
}

func TestOpenWeatherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "secret", q.Get("appid"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "48.8566", q.Get("lat"))
		assert.Equal(t, "2.3522", q.Get("lon"))
		_, _ = io.WriteString(w, `{
			"dt": 1792400000,
			"main": {"temp": 7.6},
			"wind": {"speed": 5},
			"weather": [{"main": "Drizzle", "description": "light intensity drizzle", "icon": "09d"}]
		}`)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "secret", testOpts(srv.URL)...)
	r, err := p.Fetch(context.Background(), paris())
	require.NoError(t, err)
	require.Equal(t, "openweathermap", r.ProviderName)
	require.Equal(t, 7.6, r.TemperatureC)
	require.InDelta(t, 18.0, r.WindSpeedKmh, 1e-9)
	require.Equal(t, weather.ConditionRainy, r.Condition)
	require.Equal(t, "light intensity drizzle", r.Description)
	require.Equal(t, "09d", r.Icon)
	require.Equal(t, time.Unix(1792400000, 0).UTC(), r.Timestamp)
}

func TestOpenWeatherByCityName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "lyon,FR", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, `{"main":{"temp":12},"wind":{"speed":1},"weather":[{"main":"Clear","description":"clear sky","icon":"01d"}]}`)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "secret", testOpts(srv.URL)...)
	r, err := p.Fetch(context.Background(), weather.Location{Name: "lyon", Country: "FR"})
	require.NoError(t, err)
	require.Equal(t, weather.ConditionSunny, r.Condition)
}

func TestOpenWeatherRequiresKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "")
	_, err := p.Fetch(context.Background(), paris())
	require.ErrorIs(t, err, errMissingAPIKey)
}

func TestWeatherAPIFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.URL.Query().Get("key"))
		_, _ = io.WriteString(w, `{"current":{"last_updated_epoch":1792400000,"temp_c":3.2,"wind_kph":27.4,"condition":{"text":"Partly cloudy"}}}`)
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "key", testOpts(srv.URL)...)
	r, err := p.Fetch(context.Background(), paris())
	require.NoError(t, err)
	require.Equal(t, 27.4, r.WindSpeedKmh)
	require.Equal(t, weather.ConditionCloudy, r.Condition)
	require.Equal(t, "04d", r.Icon)
}

func TestOpenMeteoFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		_, _ = io.WriteString(w, `{"current_weather":{"temperature":31.4,"windspeed":9.7,"time":"2026-10-19T09:00","weathercode":0}}`)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), testOpts(srv.URL)...)
	r, err := p.Fetch(context.Background(), paris())
	require.NoError(t, err)
	require.Equal(t, weather.ConditionSunny, r.Condition)
	require.Equal(t, "Clear sky", r.Description)
	require.Equal(t, time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), r.Timestamp)
}

func TestOpenMeteoRequiresCoordinates(t *testing.T) {
	p := NewOpenMeteoProvider(http.DefaultClient)
	_, err := p.Fetch(context.Background(), weather.Location{Name: "paris"})
	require.ErrorIs(t, err, errNoCoordinates)
}

func TestDescribeWMOCode(t *testing.T) {
	require.Equal(t, weather.ConditionRainy, weather.Classify(describeWMOCode(53)))
	require.Equal(t, weather.ConditionRainy, weather.Classify(describeWMOCode(81)))
	require.Equal(t, weather.ConditionSunny, weather.Classify(describeWMOCode(1)))
	require.Equal(t, weather.ConditionCloudy, weather.Classify(describeWMOCode(3)))
	require.Equal(t, weather.ConditionCloudy, weather.Classify(describeWMOCode(73)))
}

func TestResilienceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"main":{"temp":20},"wind":{"speed":2},"weather":[{"main":"Clouds","description":"few clouds","icon":"02d"}]}`)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "secret", testOpts(srv.URL)...)
	r, err := p.Fetch(context.Background(), paris())
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())
	require.Equal(t, weather.ConditionCloudy, r.Condition)
}

func TestResilienceGivesUpOnClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "bad", testOpts(srv.URL)...)
	_, err := p.Fetch(context.Background(), paris())
	require.True(t, errors.Is(err, errUnexpected), "got %v", err)
	require.Equal(t, int32(1), calls.Load())
}

func TestResilienceStopsAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "secret", testOpts(srv.URL)...)
	_, err := p.Fetch(context.Background(), paris())
	require.ErrorIs(t, err, errRateLimited)
	require.Equal(t, int32(fastBackoff.MaxRetries+1), calls.Load())
}
