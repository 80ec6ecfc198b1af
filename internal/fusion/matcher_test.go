// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package fusion

import (
	"testing"

	"github.com/seafence/darkwatch/internal/models"
)

func TestNewMatcher_NilPolicyFallsBackToProximity(t *testing.T) {
	m := NewMatcher(nil)
	if m.policy == nil {
		t.Fatal("matcher policy should never be nil")
	}
	if _, ok := m.policy.(*ProximityPolicy); !ok {
		t.Errorf("default policy = %T, want *ProximityPolicy", m.policy)
	}
}

func TestMatcher_Match_DelegatesToPolicy(t *testing.T) {
	m := NewMatcher(NewProximityPolicy(0.15))
	detections := []models.RadarDetection{detection("RADAR_001"), detection("RADAR_002")}
	candidates := []models.AISPing{
		{ShipID: "SHIP_1000", Latitude: 13.51, Longitude: -67.01},
	}

	outcomes := m.Match(detections, candidates, 13.5, -67.0)

	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	if !outcomes[0].Matched || outcomes[1].Matched {
		t.Errorf("unexpected outcome set: %+v", outcomes)
	}
}

func TestUnmatched(t *testing.T) {
	detections := []models.RadarDetection{
		detection("RADAR_001"), detection("RADAR_002"), detection("RADAR_003"),
	}
	outcomes := []models.MatchOutcome{
		{VesselID: "RADAR_001", Matched: true, Ping: &models.AISPing{ShipID: "SHIP_1000"}},
		{VesselID: "RADAR_002"},
		{VesselID: "RADAR_003"},
	}

	unmatched := Unmatched(detections, outcomes)

	if len(unmatched) != 2 {
		t.Fatalf("got %d unmatched, want 2", len(unmatched))
	}
	if unmatched[0].VesselID != "RADAR_002" || unmatched[1].VesselID != "RADAR_003" {
		t.Errorf("unmatched order wrong: %+v", unmatched)
	}
}

func TestUnmatched_Empty(t *testing.T) {
	if got := Unmatched(nil, nil); len(got) != 0 {
		t.Errorf("Unmatched(nil, nil) = %d entries, want 0", len(got))
	}
}
