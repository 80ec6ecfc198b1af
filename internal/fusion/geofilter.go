// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package fusion

import (
	"math"

	"github.com/seafence/darkwatch/internal/models"
)

// DefaultGeoThreshold is the default per-axis bounding distance, in
// degrees, used to consider an AIS ping relevant to a scene.
const DefaultGeoThreshold = 1.0

// GeoFilter reduces an AIS ping set to the subset relevant to a scene
// location. The threshold is applied independently per axis (a
// bounding box, not a geodesic radius), matching the coarse accuracy
// of the radar-side position estimates.
type GeoFilter struct {
	// Threshold is the per-axis distance in degrees. Zero or negative
	// values fall back to DefaultGeoThreshold.
	Threshold float64
}

// NewGeoFilter creates a GeoFilter with the given per-axis threshold.
func NewGeoFilter(threshold float64) *GeoFilter {
	if threshold <= 0 {
		threshold = DefaultGeoThreshold
	}
	return &GeoFilter{Threshold: threshold}
}

// Filter returns the pings within the bounding box around the scene
// center, de-duplicated to one entry per ship. When a ship has
// several in-area pings, the first in input order is kept.
//
// An empty input or empty result is valid; there are no error
// conditions.
func (f *GeoFilter) Filter(pings []models.AISPing, sceneLat, sceneLon float64) []models.AISPing {
	threshold := f.Threshold
	if threshold <= 0 {
		threshold = DefaultGeoThreshold
	}

	seen := make(map[string]struct{}, len(pings))
	candidates := make([]models.AISPing, 0, len(pings))

	for _, ping := range pings {
		if !withinBox(ping.Latitude, ping.Longitude, sceneLat, sceneLon, threshold) {
			continue
		}
		if _, dup := seen[ping.ShipID]; dup {
			continue
		}
		seen[ping.ShipID] = struct{}{}
		candidates = append(candidates, ping)
	}

	return candidates
}

// withinBox reports whether (lat, lon) lies strictly inside the
// per-axis threshold box around (centerLat, centerLon).
func withinBox(lat, lon, centerLat, centerLon, threshold float64) bool {
	return math.Abs(lat-centerLat) < threshold && math.Abs(lon-centerLon) < threshold
}
