// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the detection pipeline:
// - run counts and durations
// - detections, AIS pings and dark vessel findings per run
// - matcher decisions by outcome
// - degraded-mode fallbacks (detector, time authority, missing image)

var (
	PipelineRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "darkwatch_pipeline_runs_total",
			Help: "Total number of pipeline invocations",
		},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "darkwatch_pipeline_duration_seconds",
			Help:    "Duration of full pipeline runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	AISPingsCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "darkwatch_ais_pings_total",
			Help: "Total AIS position broadcasts collected",
		},
	)

	RadarDetections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "darkwatch_radar_detections_total",
			Help: "Total radar detections returned by the vision detector",
		},
	)

	MatcherDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darkwatch_matcher_decisions_total",
			Help: "Total matcher decisions by outcome",
		},
		[]string{"outcome"}, // "matched", "unmatched"
	)

	DarkVessels = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "darkwatch_dark_vessels_total",
			Help: "Total dark vessel incidents classified",
		},
	)

	DetectorFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darkwatch_detector_fallbacks_total",
			Help: "Vision detector calls degraded to the simulated detector",
		},
		[]string{"reason"}, // "configuration_gap", "external_service", "malformed_response"
	)

	TimestampFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "darkwatch_timestamp_fallbacks_total",
			Help: "Time-seal requests degraded to the local system clock",
		},
	)

	MissingImages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "darkwatch_missing_images_total",
			Help: "Evidence hashes computed with a missing SAR image",
		},
	)
)

// Fallback reasons for DetectorFallbacks.
const (
	ReasonConfigurationGap  = "configuration_gap"
	ReasonExternalService   = "external_service"
	ReasonMalformedResponse = "malformed_response"
)

// RecordRun observes one completed pipeline invocation.
func RecordRun(duration time.Duration, detections, darkVessels, pings int) {
	PipelineRuns.Inc()
	PipelineDuration.Observe(duration.Seconds())
	RadarDetections.Add(float64(detections))
	DarkVessels.Add(float64(darkVessels))
	AISPingsCollected.Add(float64(pings))
}

// RecordMatcherOutcomes observes matcher decisions for one run.
func RecordMatcherOutcomes(matched, unmatched int) {
	MatcherDecisions.WithLabelValues("matched").Add(float64(matched))
	MatcherDecisions.WithLabelValues("unmatched").Add(float64(unmatched))
}
