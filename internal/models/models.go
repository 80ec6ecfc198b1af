// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package models

import "fmt"

// AISPing is a single self-reported ship position broadcast.
// A vessel typically produces several pings per monitored window.
type AISPing struct {
	ShipID    string  `json:"ship_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Time      string  `json:"time"` // HH:MM:SS
}

// RadarDetection is one vessel found in a SAR scene by the vision
// detector. The pipeline treats it as opaque upstream input: fields
// are copied into incidents and hashed, never recomputed.
type RadarDetection struct {
	VesselID         string `json:"vessel_id"`
	VesselType       string `json:"vessel_type"`
	EstimatedLengthM int    `json:"estimated_length_m"`
	EstimatedWidthM  int    `json:"estimated_width_m"`
	Confidence       int    `json:"confidence"` // 0-100
	RelativePosition string `json:"relative_position"`
}

// Scene is the geospatial/temporal metadata identifying one SAR image.
type Scene struct {
	ImagePath    string  `json:"image_path"`
	ImageName    string  `json:"image_name"`
	ImageID      string  `json:"image_id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LatDirection string  `json:"lat_direction"` // N or S
	LonDirection string  `json:"lon_direction"` // E or W
	Date         string  `json:"date"`          // YYYY-MM-DD
}

// LatString renders the scene latitude as an absolute value with a
// hemisphere letter, e.g. "11.26284°N".
func (s Scene) LatString() string {
	return fmt.Sprintf("%.5f°%s", abs(s.Latitude), hemisphereLat(s.Latitude))
}

// LonString renders the scene longitude as an absolute value with a
// hemisphere letter, e.g. "66.40861°W".
func (s Scene) LonString() string {
	return fmt.Sprintf("%.5f°%s", abs(s.Longitude), hemisphereLon(s.Longitude))
}

// MatchOutcome records the matcher's decision for one radar detection.
// Exactly one outcome exists per detection; Ping is nil for no-match.
type MatchOutcome struct {
	VesselID string   `json:"vessel_id"`
	Matched  bool     `json:"matched"`
	Ping     *AISPing `json:"ping,omitempty"`
}

// DarkVesselIncident is the structured finding for a radar detection
// with no corresponding AIS broadcast.
type DarkVesselIncident struct {
	RadarID           string  `json:"radar_id"`
	VesselType        string  `json:"vessel_type"`
	EstimatedLengthM  int     `json:"estimated_length_m"`
	EstimatedWidthM   int     `json:"estimated_width_m"`
	Confidence        int     `json:"confidence"`
	RelativePosition  string  `json:"relative_position"`
	SARLatitude       float64 `json:"sar_latitude"`
	SARLongitude      float64 `json:"sar_longitude"`
	SARDate           string  `json:"sar_date"`
	AISStatus         string  `json:"ais_status"`
	ViolationType     string  `json:"violation_type"`
	BehavioralAnomaly string  `json:"behavioral_anomaly"`
}

// EvidenceHashes is the digest triple sealing one evidence bundle.
// Immutable once computed; a pure function of the image bytes and the
// canonical encoding of the finding set.
type EvidenceHashes struct {
	EvidenceHash string `json:"evidence_hash"`
	ImageHash    string `json:"image_hash"`
	DataHash     string `json:"data_hash"`
	Algorithm    string `json:"algorithm"`
}

// TimestampRecord is the time-seal attached to an evidence bundle.
// Timezone is always the fixed IST offset regardless of source.
type TimestampRecord struct {
	DatetimeIST string `json:"datetime_ist"` // YYYY-MM-DD HH:MM:SS
	DatetimeUTC string `json:"datetime_utc"` // YYYY-MM-DD HH:MM:SS
	Source      string `json:"source"`
	Timezone    string `json:"timezone"`
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func hemisphereLat(lat float64) string {
	if lat >= 0 {
		return "N"
	}
	return "S"
}

func hemisphereLon(lon float64) string {
	if lon >= 0 {
		return "E"
	}
	return "W"
}
