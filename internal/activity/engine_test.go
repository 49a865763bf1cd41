package activity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func find(t *testing.T, name string) Activity {
	t.Helper()
	for _, a := range DefaultCatalog() {
		if a.Name == name {
			return a
		}
	}
	t.Fatalf("activity %q not in catalog", name)
	return Activity{}
}

func TestScoreSunnyBeachClampsToMax(t *testing.T) {
	ctx := Context{Weather: WeatherSunny, Temperature: 25, WindSpeed: 5, TimeOfDay: Morning, DayType: Weekday}

	res, err := Score(find(t, "beach"), ctx)
	require.NoError(t, err)
	require.Equal(t, 100, res.Score)
	require.Equal(t, []string{"sunny weather favors outdoor activities"}, res.Reasons)
	require.Equal(t, "Relax and swim at the beach", res.Description)
}

func TestScoreRainyFreezingEveningHike(t *testing.T) {
	ctx := Context{Weather: WeatherRainy, Temperature: -5, WindSpeed: 10, TimeOfDay: Evening, DayType: Weekend}

	res, err := Score(find(t, "hiking"), ctx)
	require.NoError(t, err)
	require.Equal(t, 10, res.Score)
	require.Equal(t, []string{
		"rain reduces outdoor activities",
		"cold temperature (-5°C)",
		"limited daylight",
		"great weekend activity",
	}, res.Reasons)
}

func TestScoreCloudyWindyAfternoonCycling(t *testing.T) {
	ctx := Context{Weather: WeatherCloudy, Temperature: 2, WindSpeed: 30, TimeOfDay: Afternoon, DayType: Weekday}

	res, err := Score(find(t, "cycling"), ctx)
	require.NoError(t, err)
	require.Equal(t, 65, res.Score)
	require.Equal(t, []string{
		"cloud slightly reduces outdoor appeal",
		"cool temperature (2°C)",
		"great afternoon activity",
		"high wind speed (30.0 km/h)",
	}, res.Reasons)
}

func TestScoreDefaultReasonWhenNothingFires(t *testing.T) {
	ctx := Context{Weather: WeatherCloudy, Temperature: 20, WindSpeed: 0, TimeOfDay: Morning, DayType: Weekday}

	res, err := Score(find(t, "museum"), ctx)
	require.NoError(t, err)
	require.Equal(t, 65, res.Score)
	require.Equal(t, []string{"suitable for current conditions"}, res.Reasons)
}

func TestScoreClampsAtZero(t *testing.T) {
	ctx := Context{Weather: WeatherRainy, Temperature: -10, WindSpeed: 40, TimeOfDay: Evening, DayType: Weekday}

	// 60 - 40 - 20 - 15 - 10 = -25
	res, err := Score(find(t, "park_walk"), ctx)
	require.NoError(t, err)
	require.Equal(t, 0, res.Score)
	require.Len(t, res.Reasons, 4)
}

func TestScoreRejectsUnknownEnums(t *testing.T) {
	valid := Context{Weather: WeatherSunny, Temperature: 20, TimeOfDay: Morning, DayType: Weekday}

	cases := []struct {
		name  string
		ctx   Context
		act   Activity
		field string
	}{
		{"weather", Context{Weather: "snowy", TimeOfDay: Morning, DayType: Weekday}, find(t, "yoga"), "weather_condition"},
		{"time of day", Context{Weather: WeatherSunny, TimeOfDay: "night", DayType: Weekday}, find(t, "yoga"), "time_of_day"},
		{"day type", Context{Weather: WeatherSunny, TimeOfDay: Morning, DayType: "holiday"}, find(t, "yoga"), "day_type"},
		{"negative wind", Context{Weather: WeatherSunny, WindSpeed: -1, TimeOfDay: Morning, DayType: Weekday}, find(t, "yoga"), "wind_speed"},
		{"category", valid, Activity{Name: "sailing", Category: "water", BaseScore: 50}, "category"},
		{"base score", valid, Activity{Name: "sailing", Category: Outdoor, BaseScore: 101}, "base_score"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Score(tc.act, tc.ctx)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
			require.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestScoreInvariantsAcrossContexts(t *testing.T) {
	weathers := []WeatherCondition{WeatherSunny, WeatherRainy, WeatherCloudy}
	times := []TimeOfDay{Morning, Afternoon, Evening}
	days := []DayType{Weekday, Weekend}
	temps := []float64{-40, -0.5, 0, 5, 9.99, 10, 20, 30, 30.5, 55}
	winds := []float64{0, 25, 25.1, 90}

	engine, err := NewEngine(DefaultCatalog())
	require.NoError(t, err)

	for _, w := range weathers {
		for _, tod := range times {
			for _, d := range days {
				for _, temp := range temps {
					for _, wind := range winds {
						ctx := Context{Weather: w, Temperature: temp, WindSpeed: wind, TimeOfDay: tod, DayType: d}
						for _, a := range engine.Catalog() {
							first, err := engine.Score(a, ctx)
							require.NoError(t, err)
							require.GreaterOrEqual(t, first.Score, 0)
							require.LessOrEqual(t, first.Score, 100)
							require.NotEmpty(t, first.Reasons)

							second, err := engine.Score(a, ctx)
							require.NoError(t, err)
							require.Equal(t, first, second)
						}
					}
				}
			}
		}
	}
}

func TestWeekdayQuickWalkBonusNeverFires(t *testing.T) {
	for _, a := range DefaultCatalog() {
		require.NotEqual(t, "quick_walk", a.Name)
	}

	ctx := Context{Weather: WeatherCloudy, Temperature: 20, WindSpeed: 0, TimeOfDay: Afternoon, DayType: Weekday}
	engine, err := NewEngine(DefaultCatalog(), WithLimit(0))
	require.NoError(t, err)

	results, err := engine.Recommend(ctx)
	require.NoError(t, err)

	var bonus []string
	for _, r := range results {
		for _, reason := range r.Reasons {
			if reason == "good weekday activity" {
				bonus = append(bonus, r.Name)
			}
		}
	}
	require.ElementsMatch(t, []string{"cafe", "yoga"}, bonus)
}

func TestRecommendRanksAndTruncates(t *testing.T) {
	ctx := Context{Weather: WeatherCloudy, Temperature: 20, WindSpeed: 5, TimeOfDay: Afternoon, DayType: Weekend}

	results, err := Recommend(ctx, DefaultCatalog())
	require.NoError(t, err)
	require.Len(t, results, DefaultLimit)

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{
		"beach", "restaurant",
		"cycling", "cinema",
		"hiking", "running", "swimming",
		"picnic", "tennis",
		"park_walk",
	}, names)
	require.Equal(t, 90, results[0].Score)
	require.Equal(t, 70, results[len(results)-1].Score)
}

func TestRecommendIsStableOnTies(t *testing.T) {
	catalog := DefaultCatalog()
	index := make(map[string]int, len(catalog))
	for i, a := range catalog {
		index[a.Name] = i
	}

	engine, err := NewEngine(catalog, WithLimit(0))
	require.NoError(t, err)

	ctx := Context{Weather: WeatherCloudy, Temperature: 15, WindSpeed: 0, TimeOfDay: Morning, DayType: Weekday}
	results, err := engine.Recommend(ctx)
	require.NoError(t, err)
	require.Len(t, results, len(catalog))

	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		require.GreaterOrEqual(t, prev.Score, cur.Score)
		if prev.Score == cur.Score {
			require.Less(t, index[prev.Name], index[cur.Name], "%s and %s out of catalog order", prev.Name, cur.Name)
		}
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	ctx := Context{Weather: WeatherSunny, Temperature: 20, TimeOfDay: Morning, DayType: Weekday}

	results, err := Recommend(ctx, Catalog{})
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
}

func TestRecommendSmallCatalogReturnsAll(t *testing.T) {
	catalog := Catalog{
		{Name: "chess", Category: Indoor, BaseScore: 40, Description: "Play chess"},
		{Name: "kayak", Category: Outdoor, BaseScore: 60, Description: "Paddle"},
	}
	ctx := Context{Weather: WeatherRainy, Temperature: 15, TimeOfDay: Morning, DayType: Weekday}

	results, err := Recommend(ctx, catalog)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "chess", results[0].Name)
	require.Equal(t, 55, results[0].Score)
	require.Equal(t, "kayak", results[1].Name)
	require.Equal(t, 20, results[1].Score)
}

func TestNewEngineRejectsInvalidCatalog(t *testing.T) {
	dup := Catalog{
		{Name: "chess", Category: Indoor, BaseScore: 40},
		{Name: "chess", Category: Sports, BaseScore: 40},
	}
	_, err := NewEngine(dup)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "name", cfgErr.Field)
}

func TestEngineDoesNotShareCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	engine, err := NewEngine(catalog)
	require.NoError(t, err)

	catalog[0].BaseScore = 0
	require.Equal(t, 70, engine.Catalog()[0].BaseScore)
}
