// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

// Package config loads the layered Darkwatch configuration: struct
// defaults, then an optional YAML file, then DARKWATCH_* environment
// variable overrides. The loaded Config is validated before use.
package config

import (
	"fmt"
	"time"

	"github.com/seafence/darkwatch/internal/validation"
)

// Config is the full runtime configuration.
type Config struct {
	Zone      ZoneConfig      `koanf:"zone"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Detector  DetectorConfig  `koanf:"detector"`
	Fusion    FusionConfig    `koanf:"fusion"`
	Timestamp TimestampConfig `koanf:"timestamp"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ZoneConfig describes the monitored maritime area.
type ZoneConfig struct {
	Name      string  `koanf:"name" validate:"required"`
	CenterLat float64 `koanf:"center_lat" validate:"latitude"`
	CenterLon float64 `koanf:"center_lon" validate:"longitude"`
	MinLat    float64 `koanf:"min_lat" validate:"latitude"`
	MaxLat    float64 `koanf:"max_lat" validate:"latitude"`
	MinLon    float64 `koanf:"min_lon" validate:"longitude"`
	MaxLon    float64 `koanf:"max_lon" validate:"longitude"`
}

// IngestConfig controls the SAR store and the AIS simulator.
type IngestConfig struct {
	DataDir    string `koanf:"data_dir" validate:"required"`
	ReportsDir string `koanf:"reports_dir" validate:"required"`

	// NumShips fixes how many tracked ships broadcast per batch.
	// Zero keeps the simulator's random 3-5 selection.
	NumShips     int     `koanf:"num_ships" validate:"gte=0"`
	PingsPerShip int     `koanf:"pings_per_ship" validate:"gte=1"`
	MaxDrift     float64 `koanf:"max_drift" validate:"gte=0"`

	// Seed fixes the RNGs of the simulated collaborators. Zero means
	// derive a seed from the wall clock.
	Seed int64 `koanf:"seed"`
}

// DetectorConfig configures the vision-model detector. An empty API
// key selects the simulated detector.
type DetectorConfig struct {
	APIKey   string        `koanf:"api_key"`
	Endpoint string        `koanf:"endpoint" validate:"omitempty,url"`
	Model    string        `koanf:"model" validate:"required"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

// FusionConfig holds the geographic and matching thresholds in
// degrees.
type FusionConfig struct {
	GeoThreshold   float64 `koanf:"geo_threshold" validate:"gt=0"`
	MatchThreshold float64 `koanf:"match_threshold" validate:"gt=0"`
}

// TimestampConfig configures the remote time authority.
type TimestampConfig struct {
	AuthorityURL string        `koanf:"authority_url" validate:"required,url"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
}

// LoggingConfig mirrors the logging package configuration.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the struct tags plus the cross-field zone bounds.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if c.Zone.MinLat >= c.Zone.MaxLat {
		return fmt.Errorf("zone min_lat %v must be below max_lat %v", c.Zone.MinLat, c.Zone.MaxLat)
	}
	if c.Zone.MinLon >= c.Zone.MaxLon {
		return fmt.Errorf("zone min_lon %v must be below max_lon %v", c.Zone.MinLon, c.Zone.MaxLon)
	}
	return nil
}
