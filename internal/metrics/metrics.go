package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	reportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_recommender",
		Subsystem: "generator",
		Name:      "city_reports_total",
		Help:      "City report attempts by outcome (ok, failed).",
	}, []string{"city", "outcome"})
	weatherSourceTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_recommender",
		Subsystem: "weather",
		Name:      "observations_total",
		Help:      "Weather observations by source (live, mock).",
	}, []string{"city", "source"})
	topScore = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "activity_recommender",
		Subsystem: "generator",
		Name:      "top_score",
		Help:      "Score of the highest ranked activity in the latest report.",
	}, []string{"city"})
	lastRunGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activity_recommender",
		Subsystem: "generator",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed batch run.",
	})
)

func init() {
	prometheus.MustRegister(reportsTotal, weatherSourceTotal, topScore, lastRunGauge)
}

// RecordReport counts one city report attempt.
func RecordReport(city string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	reportsTotal.WithLabelValues(city, outcome).Inc()
}

// RecordWeatherSource counts where a city's weather came from.
func RecordWeatherSource(city, source string) {
	weatherSourceTotal.WithLabelValues(city, source).Inc()
}

// RecordTopScore publishes the best score of a city's report.
func RecordTopScore(city string, score int) {
	topScore.WithLabelValues(city).Set(float64(score))
}

// RecordRun updates the batch watermark gauge.
func RecordRun(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastRunGauge.Set(float64(ts.Unix()))
}
