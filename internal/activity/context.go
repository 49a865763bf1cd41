package activity

import "fmt"

// WeatherCondition is the classified weather the scorer understands.
type WeatherCondition string

const (
	WeatherSunny  WeatherCondition = "sunny"
	WeatherRainy  WeatherCondition = "rainy"
	WeatherCloudy WeatherCondition = "cloudy"
)

// TimeOfDay buckets the current UTC hour.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// DayType distinguishes weekends from working days.
type DayType string

const (
	Weekday DayType = "weekday"
	Weekend DayType = "weekend"
)

// ParseWeatherCondition converts a collaborator-supplied string into a WeatherCondition.
func ParseWeatherCondition(s string) (WeatherCondition, error) {
	c := WeatherCondition(s)
	if err := c.validate(); err != nil {
		return "", err
	}
	return c, nil
}

// ParseTimeOfDay converts a string into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t := TimeOfDay(s)
	if err := t.validate(); err != nil {
		return "", err
	}
	return t, nil
}

// ParseDayType converts a string into a DayType.
func ParseDayType(s string) (DayType, error) {
	d := DayType(s)
	if err := d.validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (c WeatherCondition) validate() error {
	switch c {
	case WeatherSunny, WeatherRainy, WeatherCloudy:
		return nil
	}
	return invalidEnum("weather_condition", string(c), string(WeatherSunny), string(WeatherRainy), string(WeatherCloudy))
}

func (t TimeOfDay) validate() error {
	switch t {
	case Morning, Afternoon, Evening:
		return nil
	}
	return invalidEnum("time_of_day", string(t), string(Morning), string(Afternoon), string(Evening))
}

func (d DayType) validate() error {
	switch d {
	case Weekday, Weekend:
		return nil
	}
	return invalidEnum("day_type", string(d), string(Weekday), string(Weekend))
}

// Context is the situational snapshot every activity in one run is scored against.
// Build it once per city and share it read-only.
type Context struct {
	Weather     WeatherCondition
	Temperature float64 // degrees Celsius
	WindSpeed   float64 // km/h
	TimeOfDay   TimeOfDay
	DayType     DayType
}

// Validate reports the first field holding a value outside its enumeration.
func (c Context) Validate() error {
	if err := c.Weather.validate(); err != nil {
		return err
	}
	if err := c.TimeOfDay.validate(); err != nil {
		return err
	}
	if err := c.DayType.validate(); err != nil {
		return err
	}
	if c.WindSpeed < 0 {
		return &ConfigurationError{Field: "wind_speed", Value: fmt.Sprintf("%g", c.WindSpeed), Reason: "must not be negative"}
	}
	return nil
}
