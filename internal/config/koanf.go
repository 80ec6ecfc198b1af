// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/seafence/darkwatch/internal/detect"
	"github.com/seafence/darkwatch/internal/forensics"
	"github.com/seafence/darkwatch/internal/fusion"
)

// DefaultConfigPaths lists where a config file is searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"darkwatch.yaml",
	"darkwatch.yml",
	"/etc/darkwatch/darkwatch.yaml",
	"/etc/darkwatch/darkwatch.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces the environment overrides, e.g.
// DARKWATCH_DETECTOR_API_KEY.
const envPrefix = "DARKWATCH_"

// defaultConfig returns the built-in defaults. The monitoring zone
// matches the bundled Caribbean sample imagery.
func defaultConfig() *Config {
	return &Config{
		Zone: ZoneConfig{
			Name:      "Caribbean Restricted Artisanal Zone",
			CenterLat: 13.5,
			CenterLon: -67.0,
			MinLat:    10.0,
			MaxLat:    17.0,
			MinLon:    -70.0,
			MaxLon:    -62.0,
		},
		Ingest: IngestConfig{
			DataDir:      "data",
			ReportsDir:   "reports",
			NumShips:     0,
			PingsPerShip: 3,
			MaxDrift:     0.1,
			Seed:         0,
		},
		Detector: DetectorConfig{
			APIKey:   "",
			Endpoint: detect.DefaultEndpoint,
			Model:    detect.DefaultModel,
			Timeout:  detect.DefaultTimeout,
		},
		Fusion: FusionConfig{
			GeoThreshold:   fusion.DefaultGeoThreshold,
			MatchThreshold: fusion.DefaultMatchThreshold,
		},
		Timestamp: TimestampConfig{
			AuthorityURL: forensics.DefaultAuthorityURL,
			Timeout:      forensics.DefaultAuthorityTimeout,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the Config from defaults, an optional YAML file and
// DARKWATCH_* environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envTransform maps DARKWATCH_SECTION_SOME_KEY to section.some_key.
// Only the first underscore separates the section from the key.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
