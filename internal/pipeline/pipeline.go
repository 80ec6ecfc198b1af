// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

// Package pipeline runs one surveillance batch end to end: select a
// SAR scene, collect AIS pings, detect vessels, fuse, seal the
// evidence and render the report. Stages run strictly sequentially
// and every Run starts from fresh state.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seafence/darkwatch/internal/detect"
	"github.com/seafence/darkwatch/internal/forensics"
	"github.com/seafence/darkwatch/internal/fusion"
	"github.com/seafence/darkwatch/internal/ingest"
	"github.com/seafence/darkwatch/internal/logging"
	"github.com/seafence/darkwatch/internal/metrics"
	"github.com/seafence/darkwatch/internal/models"
	"github.com/seafence/darkwatch/internal/report"
)

// Failure taxonomy. Collaborator failures are classified, logged and
// degraded; only a missing SAR scene aborts a run.
var (
	ErrExternalService   = errors.New("external service failure")
	ErrMalformedResponse = errors.New("malformed response")
	ErrMissingResource   = errors.New("missing resource")
	ErrConfigurationGap  = errors.New("configuration gap")
)

// Runner wires the batch stages together. Scenes, AIS, Detector and
// Reports are required; GeoFilter, Matcher and Timestamps default to
// their standard configurations when nil.
type Runner struct {
	Scenes     ingest.SARSource
	AIS        ingest.AISSource
	Detector   detect.Detector
	GeoFilter  *fusion.GeoFilter
	Matcher    *fusion.Matcher
	Timestamps forensics.TimestampSource
	Reports    *report.Generator

	// ZoneName labels the monitored area in the report header.
	ZoneName string
}

// Result is the artifact summary of one completed batch.
type Result struct {
	Scene       models.Scene
	Pings       []models.AISPing
	Detections  []models.RadarDetection
	DarkVessels []models.DarkVesselIncident
	Hashes      models.EvidenceHashes
	Timestamp   models.TimestampRecord
	ReportPath  string
}

// Run executes one batch. AIS and detector failures degrade to empty
// inputs with a warning; the batch still seals and reports whatever
// evidence it has.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	geoFilter := r.GeoFilter
	if geoFilter == nil {
		geoFilter = fusion.NewGeoFilter(fusion.DefaultGeoThreshold)
	}
	matcher := r.Matcher
	if matcher == nil {
		matcher = fusion.NewMatcher(nil)
	}
	timestamps := r.Timestamps
	if timestamps == nil {
		timestamps = &forensics.LocalClock{}
	}

	scene, err := r.Scenes.Scene(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: selecting SAR scene: %v", ErrMissingResource, err)
	}
	logging.Info().
		Str("image", scene.ImageName).
		Str("lat", scene.LatString()).
		Str("lon", scene.LonString()).
		Msg("SAR scene selected")

	pings, err := r.AIS.Pings(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("AIS collection failed, continuing with no pings")
		pings = nil
	}
	logging.Info().Int("pings", len(pings)).Msg("AIS broadcasts collected")

	detections, err := r.Detector.Detect(ctx, scene.ImagePath)
	if err != nil {
		logging.Warn().Err(err).Msg("vessel detection failed, continuing with no detections")
		detections = nil
	}

	candidates := geoFilter.Filter(pings, scene.Latitude, scene.Longitude)
	outcomes := matcher.Match(detections, candidates, scene.Latitude, scene.Longitude)

	matched := 0
	for _, o := range outcomes {
		if o.Matched {
			matched++
		}
	}
	metrics.RecordMatcherOutcomes(matched, len(outcomes)-matched)

	darkVessels := fusion.Classify(fusion.Unmatched(detections, outcomes), scene)
	logging.Info().
		Int("detections", len(detections)).
		Int("candidates", len(candidates)).
		Int("matched", matched).
		Int("dark_vessels", len(darkVessels)).
		Msg("fusion complete")

	hashes, err := forensics.HashEvidence(scene.ImagePath, detections, darkVessels)
	if err != nil {
		return nil, fmt.Errorf("%w: sealing evidence: %v", ErrMalformedResponse, err)
	}

	ts := timestamps.Timestamp(ctx)

	reportPath, err := r.Reports.Generate(report.Input{
		Scene:       scene,
		ZoneName:    r.ZoneName,
		Pings:       pings,
		Detections:  detections,
		DarkVessels: darkVessels,
		Hashes:      hashes,
		Timestamp:   ts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: writing report: %v", ErrMissingResource, err)
	}

	metrics.RecordRun(time.Since(start), len(detections), len(darkVessels), len(pings))
	logging.Info().
		Str("report", reportPath).
		Dur("duration", time.Since(start)).
		Msg("surveillance batch complete")

	return &Result{
		Scene:       scene,
		Pings:       pings,
		Detections:  detections,
		DarkVessels: darkVessels,
		Hashes:      hashes,
		Timestamp:   ts,
		ReportPath:  reportPath,
	}, nil
}
