package activity

import (
	"fmt"
	"strconv"
)

// Predicate decides whether a rule row applies to an activity in a context.
type Predicate func(a Activity, c Context) bool

// Rule is one row of a rule table.
type Rule struct {
	When   Predicate
	Delta  int
	Reason func(c Context) string
}

// RuleSet is an ordered rule table. At most one row fires: the first whose predicate holds.
type RuleSet struct {
	Name  string
	Rules []Rule
}

// Apply evaluates the table and returns the fired row's delta and reason.
func (rs RuleSet) Apply(a Activity, c Context) (delta int, reason string, fired bool) {
	for _, r := range rs.Rules {
		if r.When(a, c) {
			return r.Delta, r.Reason(c), true
		}
	}
	return 0, "", false
}

// DefaultRules returns the rule tables in evaluation order:
// weather, temperature, time of day, day type, wind.
func DefaultRules() []RuleSet {
	return []RuleSet{
		WeatherRules(),
		TemperatureRules(),
		TimeOfDayRules(),
		DayTypeRules(),
		WindRules(),
	}
}

// WeatherRules adjusts for the classified weather condition.
// Cloudy weather leaves non-outdoor activities untouched.
func WeatherRules() RuleSet {
	return RuleSet{
		Name: "weather",
		Rules: []Rule{
			{When: all(weatherIs(WeatherRainy), inCategory(Outdoor)), Delta: -40, Reason: text("rain reduces outdoor activities")},
			{When: weatherIs(WeatherRainy), Delta: +15, Reason: text("indoor preferred in rain")},
			{When: all(weatherIs(WeatherSunny), inCategory(Outdoor)), Delta: +25, Reason: text("sunny weather favors outdoor activities")},
			{When: weatherIs(WeatherSunny), Delta: -10, Reason: text("nice weather available outside")},
			{When: all(weatherIs(WeatherCloudy), inCategory(Outdoor)), Delta: -5, Reason: text("cloud slightly reduces outdoor appeal")},
		},
	}
}

// TemperatureRules is tiered: below 0, [0,10) and above 30. Within a tier
// name matches take priority over category matches. [10,30] has no rows.
func TemperatureRules() RuleSet {
	freezing := func(_ Activity, c Context) bool { return c.Temperature < 0 }
	cool := func(_ Activity, c Context) bool { return c.Temperature >= 0 && c.Temperature < 10 }
	hot := func(_ Activity, c Context) bool { return c.Temperature > 30 }

	return RuleSet{
		Name: "temperature",
		Rules: []Rule{
			{When: all(freezing, named("beach", "picnic", "cycling")), Delta: -30, Reason: withTemp("too cold (%s°C) for this activity")},
			{When: all(freezing, inCategory(Outdoor)), Delta: -20, Reason: withTemp("cold temperature (%s°C)")},
			{When: freezing, Delta: +10, Reason: text("cold favors indoor activities")},

			{When: all(cool, named("beach", "swimming")), Delta: -25, Reason: withTemp("cold (%s°C) for water activities")},
			{When: all(cool, inCategory(Outdoor)), Delta: -10, Reason: withTemp("cool temperature (%s°C)")},

			{When: all(hot, named("hiking", "running")), Delta: -15, Reason: withTemp("very hot (%s°C) for strenuous activities")},
			{When: all(hot, named("beach", "swimming")), Delta: +20, Reason: withTemp("hot weather (%s°C) suits water activities")},
		},
	}
}

// TimeOfDayRules favors activities typical for the current part of the day.
func TimeOfDayRules() RuleSet {
	return RuleSet{
		Name: "time_of_day",
		Rules: []Rule{
			{When: all(timeIs(Morning), named("running", "yoga")), Delta: +20, Reason: text("ideal morning activity")},
			{When: all(timeIs(Afternoon), named("cycling", "park_walk", "beach")), Delta: +15, Reason: text("great afternoon activity")},
			{When: all(timeIs(Evening), named("cinema", "restaurant", "cafe")), Delta: +20, Reason: text("popular evening activity")},
			{When: all(timeIs(Evening), inCategory(Outdoor)), Delta: -15, Reason: text("limited daylight")},
		},
	}
}

// DayTypeRules rewards weekend and weekday staples.
//
// quick_walk is not in the catalog, so it never matches. It is kept so the
// weekday table stays identical to the published scoring rules.
func DayTypeRules() RuleSet {
	return RuleSet{
		Name: "day_type",
		Rules: []Rule{
			{When: all(dayIs(Weekend), named("picnic", "hiking", "cinema", "restaurant")), Delta: +15, Reason: text("great weekend activity")},
			{When: all(dayIs(Weekday), named("cafe", "quick_walk", "yoga")), Delta: +10, Reason: text("good weekday activity")},
		},
	}
}

// WindRules penalizes outdoor activities in strong wind.
func WindRules() RuleSet {
	return RuleSet{
		Name: "wind",
		Rules: []Rule{
			{
				When:  all(func(_ Activity, c Context) bool { return c.WindSpeed > 25 }, inCategory(Outdoor)),
				Delta: -10,
				Reason: func(c Context) string {
					return fmt.Sprintf("high wind speed (%.1f km/h)", c.WindSpeed)
				},
			},
		},
	}
}

func all(preds ...Predicate) Predicate {
	return func(a Activity, c Context) bool {
		for _, p := range preds {
			if !p(a, c) {
				return false
			}
		}
		return true
	}
}

func named(names ...string) Predicate {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(a Activity, _ Context) bool {
		_, ok := set[a.Name]
		return ok
	}
}

func inCategory(cat Category) Predicate {
	return func(a Activity, _ Context) bool { return a.Category == cat }
}

func weatherIs(w WeatherCondition) Predicate {
	return func(_ Activity, c Context) bool { return c.Weather == w }
}

func timeIs(t TimeOfDay) Predicate {
	return func(_ Activity, c Context) bool { return c.TimeOfDay == t }
}

func dayIs(d DayType) Predicate {
	return func(_ Activity, c Context) bool { return c.DayType == d }
}

func text(s string) func(Context) string {
	return func(Context) string { return s }
}

func withTemp(format string) func(Context) string {
	return func(c Context) string {
		return fmt.Sprintf(format, strconv.FormatFloat(c.Temperature, 'f', -1, 64))
	}
}
