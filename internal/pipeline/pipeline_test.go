// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/seafence/darkwatch/internal/forensics"
	"github.com/seafence/darkwatch/internal/metrics"
	"github.com/seafence/darkwatch/internal/models"
	"github.com/seafence/darkwatch/internal/report"
)

type fakeSAR struct {
	scene models.Scene
	err   error
}

func (f *fakeSAR) Scene(_ context.Context) (models.Scene, error) { return f.scene, f.err }

type fakeAIS struct {
	pings []models.AISPing
	err   error
}

func (f *fakeAIS) Pings(_ context.Context) ([]models.AISPing, error) { return f.pings, f.err }

type fakeDetector struct {
	detections []models.RadarDetection
	err        error
}

func (f *fakeDetector) Detect(_ context.Context, _ string) ([]models.RadarDetection, error) {
	return f.detections, f.err
}

func testScene(t *testing.T) models.Scene {
	t.Helper()
	path := filepath.Join(t.TempDir(), "13.50000N_67.00000W_2026-02-18.jpeg")
	if err := os.WriteFile(path, []byte("sar-image"), 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return models.Scene{
		ImagePath:    path,
		ImageName:    "13.50000N_67.00000W_2026-02-18.jpeg",
		ImageID:      "S1-1350000N-6700000W-2026-02-18",
		Latitude:     13.5,
		Longitude:    -67.0,
		LatDirection: "N",
		LonDirection: "W",
		Date:         "2026-02-18",
	}
}

func fixedClock() *forensics.LocalClock {
	return &forensics.LocalClock{Now: func() time.Time {
		return time.Date(2026, 2, 18, 17, 35, 23, 0, time.UTC)
	}}
}

func testRunner(t *testing.T, sar *fakeSAR, ais *fakeAIS, det *fakeDetector) *Runner {
	t.Helper()
	return &Runner{
		Scenes:     sar,
		AIS:        ais,
		Detector:   det,
		Timestamps: fixedClock(),
		Reports:    report.NewGenerator(t.TempDir()),
		ZoneName:   "Caribbean Restricted Artisanal Zone",
	}
}

func TestRunner_Run_FullBatch(t *testing.T) {
	scene := testScene(t)
	sar := &fakeSAR{scene: scene}
	ais := &fakeAIS{pings: []models.AISPing{
		// Within the match threshold of the scene center.
		{ShipID: "SHIP_1000", Latitude: 13.51, Longitude: -67.01, Date: "2026-02-18", Time: "11:00:00"},
		// Inside the geo bbox but too far to match any detection.
		{ShipID: "SHIP_1001", Latitude: 14.2, Longitude: -67.0, Date: "2026-02-18", Time: "11:00:00"},
		// Outside the geo bbox entirely.
		{ShipID: "SHIP_1002", Latitude: 20.0, Longitude: -67.0, Date: "2026-02-18", Time: "11:00:00"},
	}}
	det := &fakeDetector{detections: []models.RadarDetection{
		{VesselID: "RADAR_001", VesselType: "Cargo Ship", Confidence: 90},
		{VesselID: "RADAR_002", VesselType: "Industrial Trawler", Confidence: 85},
	}}

	runsBefore := testutil.ToFloat64(metrics.PipelineRuns)

	result, err := testRunner(t, sar, ais, det).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(metrics.PipelineRuns) - runsBefore; got != 1 {
		t.Errorf("PipelineRuns delta = %v, want 1", got)
	}
	if result.Scene.ImageID != scene.ImageID {
		t.Errorf("result scene = %s, want %s", result.Scene.ImageID, scene.ImageID)
	}
	if len(result.Detections) != 2 {
		t.Fatalf("got %d detections, want 2", len(result.Detections))
	}
	// RADAR_001 claims SHIP_1000; nothing is close enough for
	// RADAR_002, so it classifies as dark.
	if len(result.DarkVessels) != 1 {
		t.Fatalf("got %d dark vessels, want 1", len(result.DarkVessels))
	}
	if result.DarkVessels[0].RadarID != "RADAR_002" {
		t.Errorf("dark vessel = %s, want RADAR_002", result.DarkVessels[0].RadarID)
	}
	if result.Hashes.Algorithm != "SHA-256" {
		t.Errorf("hash algorithm = %s, want SHA-256", result.Hashes.Algorithm)
	}
	if len(result.Hashes.EvidenceHash) != 64 {
		t.Errorf("evidence hash length = %d, want 64", len(result.Hashes.EvidenceHash))
	}
	if result.Timestamp.DatetimeIST != "2026-02-18 23:05:23" {
		t.Errorf("timestamp IST = %s, want 2026-02-18 23:05:23", result.Timestamp.DatetimeIST)
	}

	content, err := os.ReadFile(result.ReportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(content), "### Dark Vessel #1: RADAR_002") {
		t.Errorf("report does not list the dark vessel")
	}
	if !strings.Contains(string(content), "**Status:** Verified Violation") {
		t.Errorf("report status is not Verified Violation")
	}
}

func TestRunner_Run_SceneFailureAborts(t *testing.T) {
	sar := &fakeSAR{err: errors.New("no imagery on disk")}

	_, err := testRunner(t, sar, &fakeAIS{}, &fakeDetector{}).Run(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrMissingResource) {
		t.Errorf("error = %v, want ErrMissingResource", err)
	}
}

func TestRunner_Run_AISFailureDegrades(t *testing.T) {
	sar := &fakeSAR{scene: testScene(t)}
	ais := &fakeAIS{err: errors.New("stream unavailable")}
	det := &fakeDetector{detections: []models.RadarDetection{
		{VesselID: "RADAR_001", Confidence: 70},
	}}

	result, err := testRunner(t, sar, ais, det).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Pings) != 0 {
		t.Errorf("got %d pings, want 0", len(result.Pings))
	}
	// No AIS coverage: every detection classifies as dark.
	if len(result.DarkVessels) != 1 {
		t.Errorf("got %d dark vessels, want 1", len(result.DarkVessels))
	}
}

func TestRunner_Run_DetectorFailureDegrades(t *testing.T) {
	sar := &fakeSAR{scene: testScene(t)}
	det := &fakeDetector{err: errors.New("model offline")}

	result, err := testRunner(t, sar, &fakeAIS{}, det).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Detections) != 0 || len(result.DarkVessels) != 0 {
		t.Errorf("degraded run produced detections %d / dark %d, want 0 / 0",
			len(result.Detections), len(result.DarkVessels))
	}
	if result.ReportPath == "" {
		t.Error("degraded run must still write a report")
	}
}

func TestRunner_Run_NoDarkVessels(t *testing.T) {
	sar := &fakeSAR{scene: testScene(t)}
	ais := &fakeAIS{pings: []models.AISPing{
		{ShipID: "SHIP_1000", Latitude: 13.51, Longitude: -67.01, Date: "2026-02-18", Time: "11:00:00"},
	}}
	det := &fakeDetector{detections: []models.RadarDetection{
		{VesselID: "RADAR_001", Confidence: 90},
	}}

	result, err := testRunner(t, sar, ais, det).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.DarkVessels) != 0 {
		t.Fatalf("got %d dark vessels, want 0", len(result.DarkVessels))
	}

	content, err := os.ReadFile(result.ReportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(content), "**Status:** No Violation") {
		t.Errorf("report status is not No Violation")
	}
}
