package cities

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/activity-recommender/internal/report"
	"github.com/i474232898/activity-recommender/internal/weather"
)

type stubGeocoder map[string][2]float64

func (s stubGeocoder) Geocode(_ context.Context, city, _ string) (float64, float64, error) {
	c, ok := s[city]
	if !ok {
		return 0, 0, errors.New("ZERO_RESULTS")
	}
	return c[0], c[1], nil
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultRegistry(t *testing.T) {
	locs := Default()
	names := make([]string, 0, len(locs))
	for _, l := range locs {
		require.True(t, l.HasCoordinates(), l.Name)
		names = append(names, l.Name)
	}
	require.Equal(t, []string{"paris", "lyon", "marseille", "tokyo", "new_york", "sydney"}, names)
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
cities:
  - name: New York
    country: US
    lat: 40.7128
    lon: -74.0060
  - name: berlin
    country: DE
`)
	locs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, locs, 2)
	require.Equal(t, "new_york", locs[0].Name)
	require.InDelta(t, -74.006, *locs[0].Lon, 1e-9)
	require.Equal(t, "berlin", locs[1].Name)
	require.False(t, locs[1].HasCoordinates())
}

func TestLoadRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"missing name":   "cities:\n  - country: FR\n",
		"bad latitude":   "cities:\n  - {name: x, lat: 120, lon: 10}\n",
		"half coords":    "cities:\n  - {name: x, lat: 10}\n",
		"duplicate slug": "cities:\n  - {name: New York}\n  - {name: new_york}\n",
		"empty":          "cities: []\n",
		"blank name":     "cities:\n  - {name: \"   \"}\n",
		"symbols only":   "cities:\n  - {name: \"...\"}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoadSlugsAreFileSafe(t *testing.T) {
	locs, err := Load(writeFile(t, `
cities:
  - {name: St. Louis, country: US}
  - {name: São Paulo, country: BR}
`))
	require.NoError(t, err)
	require.Len(t, locs, 2)
	require.Equal(t, "st_louis", locs[0].Name)
	require.Equal(t, "so_paulo", locs[1].Name)

	w := report.NewFileWriter(t.TempDir())
	for _, loc := range locs {
		require.NoError(t, w.Write(report.Report{City: loc.Name}))
	}
}

func TestResolve(t *testing.T) {
	lat, lon := 1.0, 2.0
	locs := []weather.Location{
		{Name: "known", Lat: &lat, Lon: &lon},
		{Name: "berlin", Country: "DE"},
		{Name: "atlantis"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	out, failures := Resolve(context.Background(), locs, stubGeocoder{"berlin": {52.52, 13.405}}, logger)
	require.Len(t, out, 2)
	require.Equal(t, "known", out[0].Name)
	require.Equal(t, "berlin", out[1].Name)
	require.InDelta(t, 52.52, *out[1].Lat, 1e-9)
	require.Len(t, failures, 1)
	require.ErrorIs(t, failures[0], ErrNoCoordinates)

	kept, failures := Resolve(context.Background(), locs, nil, logger)
	require.Len(t, kept, 3)
	require.Empty(t, failures)
}
