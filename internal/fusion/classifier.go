// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package fusion

import (
	"fmt"

	"github.com/seafence/darkwatch/internal/models"
)

// Fixed labels stamped on every dark vessel incident. These strings
// are part of the hashed evidence record; changing them invalidates
// previously sealed bundles.
const (
	AISStatusNoSignal = "NO SIGNAL DETECTED"
	ViolationDarkOp   = "AIS Transponder Disabled — Unauthorized Dark Operation"
)

// Classify builds one DarkVesselIncident for every unmatched radar
// detection, in input order. Pure data transformation: no randomness,
// no external calls.
func Classify(unmatched []models.RadarDetection, scene models.Scene) []models.DarkVesselIncident {
	incidents := make([]models.DarkVesselIncident, 0, len(unmatched))

	for _, detection := range unmatched {
		incidents = append(incidents, models.DarkVesselIncident{
			RadarID:           detection.VesselID,
			VesselType:        orUnknown(detection.VesselType),
			EstimatedLengthM:  detection.EstimatedLengthM,
			EstimatedWidthM:   detection.EstimatedWidthM,
			Confidence:        detection.Confidence,
			RelativePosition:  orDefault(detection.RelativePosition, "unknown"),
			SARLatitude:       scene.Latitude,
			SARLongitude:      scene.Longitude,
			SARDate:           scene.Date,
			AISStatus:         AISStatusNoSignal,
			ViolationType:     ViolationDarkOp,
			BehavioralAnomaly: anomalyNarrative(scene),
		})
	}

	return incidents
}

// anomalyNarrative renders the templated incident narrative with the
// scene position (absolute value plus hemisphere letter) and date.
func anomalyNarrative(scene models.Scene) string {
	return fmt.Sprintf(
		"Vessel detected via SAR at %s, %s on %s. No AIS transponder signal was "+
			"received from this location, creating a 'Dark Period' in protected waters.",
		scene.LatString(), scene.LonString(), scene.Date,
	)
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
