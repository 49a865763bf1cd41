package clock

import (
	"time"

	"github.com/i474232898/activity-recommender/internal/activity"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is the wall clock, always in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f).UTC()
}

// TimeOfDay buckets t's UTC hour: [06,12) morning, [12,18) afternoon, otherwise evening.
func TimeOfDay(t time.Time) activity.TimeOfDay {
	hour := t.UTC().Hour()
	switch {
	case hour >= 6 && hour < 12:
		return activity.Morning
	case hour >= 12 && hour < 18:
		return activity.Afternoon
	default:
		return activity.Evening
	}
}

// DayType reports weekend for Saturday and Sunday in UTC.
func DayType(t time.Time) activity.DayType {
	switch t.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return activity.Weekend
	default:
		return activity.Weekday
	}
}
