// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus business metrics for the guide pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	guideFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "epgview_guide_fetch_total",
		Help: "Guide document fetch attempts by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	guideChannels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgview_guide_channels",
		Help: "Number of channels in the applied guide document",
	})

	guideProgrammes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgview_guide_programmes",
		Help: "Number of programmes in the applied guide document",
	})

	guideLoadedTime = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgview_guide_loaded_timestamp",
		Help: "Timestamp of the last applied guide document (Unix timestamp)",
	})

	scheduleBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "epgview_schedule_build_duration_seconds",
		Help:    "Duration of schedule construction in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2.0, 12), // 1ms .. ~4s
	})

	sourcesListTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "epgview_sources_list_total",
		Help: "Source listing attempts by outcome",
	}, []string{"outcome"}) // outcome=success|failure
)

// RecordGuideFetch counts one guide fetch attempt.
func RecordGuideFetch(outcome string) {
	guideFetchTotal.WithLabelValues(outcome).Inc()
}

// SetGuideCounts records the shape of the applied guide document.
func SetGuideCounts(channels, programmes int) {
	guideChannels.Set(float64(channels))
	guideProgrammes.Set(float64(programmes))
	guideLoadedTime.Set(float64(time.Now().Unix()))
}

// ObserveScheduleBuild records one schedule construction.
func ObserveScheduleBuild(d time.Duration) {
	scheduleBuildDuration.Observe(d.Seconds())
}

// RecordSourcesList counts one source listing attempt.
func RecordSourcesList(outcome string) {
	sourcesListTotal.WithLabelValues(outcome).Inc()
}
