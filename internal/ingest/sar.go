// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package ingest

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/seafence/darkwatch/internal/logging"
	"github.com/seafence/darkwatch/internal/models"
	"github.com/seafence/darkwatch/internal/validation"
)

// SARSource produces the scene descriptor for one pipeline run.
type SARSource interface {
	Scene(ctx context.Context) (models.Scene, error)
}

// sceneNamePattern matches the SAR image filename convention, e.g.
// 11.26284N_66.40861W_2026-02-20.jpeg. S and W negate the parsed
// coordinate.
var sceneNamePattern = regexp.MustCompile(`^([\d.]+)([NS])_([\d.]+)([EW])_(\d{4}-\d{2}-\d{2})\.(jpeg|jpg)$`)

// sceneCoordinates carries the parsed values through validation.
type sceneCoordinates struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
	Date      string  `validate:"required,datetime=2006-01-02"`
}

// ParseSceneName extracts scene metadata from a SAR image filename.
// The returned Scene carries coordinates, hemisphere letters, date
// and derived image id; path fields are left for the caller.
func ParseSceneName(name string) (models.Scene, error) {
	m := sceneNamePattern.FindStringSubmatch(name)
	if m == nil {
		return models.Scene{}, fmt.Errorf("parse scene name %q: does not match <lat><N|S>_<lon><E|W>_<yyyy-mm-dd>.<ext>", name)
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return models.Scene{}, fmt.Errorf("parse scene name %q: latitude: %w", name, err)
	}
	lon, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return models.Scene{}, fmt.Errorf("parse scene name %q: longitude: %w", name, err)
	}

	latDir, lonDir, date := m[2], m[4], m[5]
	if latDir == "S" {
		lat = -lat
	}
	if lonDir == "W" {
		lon = -lon
	}

	if err := validation.ValidateStruct(sceneCoordinates{Latitude: lat, Longitude: lon, Date: date}); err != nil {
		return models.Scene{}, fmt.Errorf("parse scene name %q: %w", name, err)
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	imageID := "S1-" + strings.ReplaceAll(strings.ReplaceAll(stem, ".", ""), "_", "-")

	return models.Scene{
		ImageName:    name,
		ImageID:      imageID,
		Latitude:     lat,
		Longitude:    lon,
		LatDirection: latDir,
		LonDirection: lonDir,
		Date:         date,
	}, nil
}

// LocalStore selects a SAR scene from a local image directory,
// standing in for a satellite archive query.
type LocalStore struct {
	Dir string

	rng *rand.Rand
}

// NewLocalStore creates a store over dir with a seeded selector.
func NewLocalStore(dir string, seed int64) *LocalStore {
	return &LocalStore{
		Dir: dir,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Scene implements SARSource: pick one parseable image from the
// store. Files that do not follow the naming convention are skipped
// with a warning. An empty or wholly unparsable directory is an
// error; the pipeline cannot degrade around a missing scene.
func (s *LocalStore) Scene(_ context.Context) (models.Scene, error) {
	names, err := s.imageNames()
	if err != nil {
		return models.Scene{}, err
	}
	if len(names) == 0 {
		return models.Scene{}, fmt.Errorf("no SAR images found in %s", s.Dir)
	}

	scenes := make([]models.Scene, 0, len(names))
	for _, name := range names {
		scene, err := ParseSceneName(filepath.Base(name))
		if err != nil {
			logging.Warn().Str("file", name).Err(err).Msg("skipping SAR image with unparsable name")
			continue
		}
		scene.ImagePath = name
		scenes = append(scenes, scene)
	}
	if len(scenes) == 0 {
		return models.Scene{}, fmt.Errorf("no SAR image in %s matches the scene naming convention", s.Dir)
	}

	selected := scenes[s.rng.Intn(len(scenes))]

	logging.Info().
		Str("image", selected.ImageName).
		Str("image_id", selected.ImageID).
		Str("position", selected.LatString()+", "+selected.LonString()).
		Str("date", selected.Date).
		Msg("SAR scene selected")

	return selected, nil
}

// imageNames lists candidate image paths in deterministic order so a
// fixed seed always selects the same scene.
func (s *LocalStore) imageNames() ([]string, error) {
	var names []string
	for _, pattern := range []string{"*.jpeg", "*.jpg"} {
		matches, err := filepath.Glob(filepath.Join(s.Dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan SAR store %s: %w", s.Dir, err)
		}
		names = append(names, matches...)
	}
	sort.Strings(names)
	return names, nil
}
