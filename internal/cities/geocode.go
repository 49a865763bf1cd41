package cities

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/activity-recommender/internal/weather"
)

// ErrNoCoordinates marks a city that could not be placed on the map.
var ErrNoCoordinates = errors.New("city has no coordinates")

// Geocoder resolves a city to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city, country string) (lat, lon float64, err error)
}

// GoogleGeocoder uses the Google Geocoding API through kelvins/geocoder.
type GoogleGeocoder struct{}

// NewGoogleGeocoder configures the geocoder package with apiKey.
// kelvins/geocoder keeps the key in a package variable, so only one key is in use per process.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, city, country string) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	loc, err := geocoder.Geocoding(geocoder.Address{
		City:    strings.ReplaceAll(city, "_", " "),
		Country: country,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %s: %w", city, err)
	}
	return loc.Latitude, loc.Longitude, nil
}

// Resolve fills in missing coordinates. Cities that cannot be resolved are
// dropped and reported in the returned error list; the rest keep their order.
// A nil geocoder leaves coordinate-less cities as they are: providers that
// query by name can still serve them.
func Resolve(ctx context.Context, locs []weather.Location, g Geocoder, logger *slog.Logger) ([]weather.Location, []error) {
	if logger == nil {
		logger = slog.Default()
	}

	out := make([]weather.Location, 0, len(locs))
	var failures []error
	for _, loc := range locs {
		if loc.HasCoordinates() || g == nil {
			out = append(out, loc)
			continue
		}

		lat, lon, err := g.Geocode(ctx, loc.Name, loc.Country)
		if err != nil {
			logger.Error("city skipped", "city", loc.Key(), "error", err)
			failures = append(failures, fmt.Errorf("%s: %w: %v", loc.Key(), ErrNoCoordinates, err))
			continue
		}

		loc.Lat, loc.Lon = &lat, &lon
		logger.Info("city geocoded", "city", loc.Key(), "lat", lat, "lon", lon)
		out = append(out, loc)
	}
	return out, failures
}
