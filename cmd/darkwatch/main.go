// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

// Package main is the entry point for the Darkwatch surveillance
// batch.
//
// Each invocation runs one batch over the monitored zone:
//
//  1. Configuration: Koanf v2 layering (defaults, darkwatch.yaml, DARKWATCH_* env)
//  2. SAR scene: one image selected from the local data directory
//  3. AIS collection: simulated transponder pings for the monitored window
//  4. Detection: vision-model analysis of the SAR image, with a seeded
//     simulated fallback when no API key is configured
//  5. Fusion: geographic filtering, AIS matching, dark vessel classification
//  6. Forensics: SHA-256 evidence sealing and an IST time seal
//  7. Reporting: a markdown forensic report in the reports directory
//
// The vision API key is read from DARKWATCH_DETECTOR_API_KEY or, when
// unset, from GEMINI_API_KEY. A -seed flag pins every simulated
// collaborator for reproducible demo runs.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seafence/darkwatch/internal/config"
	"github.com/seafence/darkwatch/internal/detect"
	"github.com/seafence/darkwatch/internal/forensics"
	"github.com/seafence/darkwatch/internal/fusion"
	"github.com/seafence/darkwatch/internal/ingest"
	"github.com/seafence/darkwatch/internal/logging"
	"github.com/seafence/darkwatch/internal/pipeline"
	"github.com/seafence/darkwatch/internal/report"
)

func main() {
	seedFlag := flag.Int64("seed", 0, "fix the RNG seed for reproducible demo runs (0 = derive from clock)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		// Default logger; configuration is not available yet.
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if cfg.Detector.APIKey == "" {
		cfg.Detector.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	seed := cfg.Ingest.Seed
	if *seedFlag != 0 {
		seed = *seedFlag
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logging.Info().
		Str("zone", cfg.Zone.Name).
		Str("data_dir", cfg.Ingest.DataDir).
		Str("reports_dir", cfg.Ingest.ReportsDir).
		Bool("vision_api", cfg.Detector.APIKey != "").
		Int64("seed", seed).
		Msg("starting Darkwatch surveillance batch")

	ais := ingest.NewSimulatedAIS(seed)
	ais.NumShips = cfg.Ingest.NumShips
	ais.PingsPerShip = cfg.Ingest.PingsPerShip
	ais.MaxDrift = cfg.Ingest.MaxDrift

	runner := &pipeline.Runner{
		Scenes:   ingest.NewLocalStore(cfg.Ingest.DataDir, seed),
		AIS:      ais,
		Detector: &detect.VisionDetector{
			APIKey:   cfg.Detector.APIKey,
			Endpoint: cfg.Detector.Endpoint,
			Model:    cfg.Detector.Model,
			Timeout:  cfg.Detector.Timeout,
			Fallback: detect.NewSimulatedDetector(seed),
		},
		GeoFilter:  fusion.NewGeoFilter(cfg.Fusion.GeoThreshold),
		Matcher:    fusion.NewMatcher(fusion.NewProximityPolicy(cfg.Fusion.MatchThreshold)),
		Timestamps: &forensics.RemoteAuthority{
			URL:      cfg.Timestamp.AuthorityURL,
			Timeout:  cfg.Timestamp.Timeout,
			Fallback: &forensics.LocalClock{},
		},
		Reports:  report.NewGenerator(cfg.Ingest.ReportsDir),
		ZoneName: cfg.Zone.Name,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("surveillance batch failed")
	}

	logging.Info().
		Str("report", result.ReportPath).
		Int("detections", len(result.Detections)).
		Int("dark_vessels", len(result.DarkVessels)).
		Str("evidence_hash", result.Hashes.EvidenceHash).
		Str("timestamp_source", result.Timestamp.Source).
		Msg("surveillance batch complete")
}
