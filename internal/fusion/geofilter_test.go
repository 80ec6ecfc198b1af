// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package fusion

import (
	"math"
	"testing"

	"github.com/seafence/darkwatch/internal/models"
)

func TestNewGeoFilter_DefaultThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		want      float64
	}{
		{"explicit threshold", 0.5, 0.5},
		{"zero falls back to default", 0, DefaultGeoThreshold},
		{"negative falls back to default", -1, DefaultGeoThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewGeoFilter(tt.threshold)
			if f.Threshold != tt.want {
				t.Errorf("Threshold = %v, want %v", f.Threshold, tt.want)
			}
		})
	}
}

func TestGeoFilter_Filter_BoundingBox(t *testing.T) {
	sceneLat, sceneLon := 13.5, -67.0
	pings := []models.AISPing{
		{ShipID: "SHIP_1000", Latitude: 13.9, Longitude: -66.8},  // inside
		{ShipID: "SHIP_1001", Latitude: 14.6, Longitude: -67.0},  // lat out
		{ShipID: "SHIP_1002", Latitude: 13.5, Longitude: -65.9},  // lon out
		{ShipID: "SHIP_1003", Latitude: 12.6, Longitude: -67.9},  // inside
		{ShipID: "SHIP_1004", Latitude: 14.5, Longitude: -67.0},  // on boundary: excluded (strict)
		{ShipID: "SHIP_1005", Latitude: -13.5, Longitude: 67.0},  // opposite hemisphere
	}

	got := NewGeoFilter(1.0).Filter(pings, sceneLat, sceneLon)

	want := []string{"SHIP_1000", "SHIP_1003"}
	if len(got) != len(want) {
		t.Fatalf("Filter returned %d pings, want %d", len(got), len(want))
	}
	for i, ship := range want {
		if got[i].ShipID != ship {
			t.Errorf("pings[%d].ShipID = %s, want %s", i, got[i].ShipID, ship)
		}
	}
}

func TestGeoFilter_Filter_DeduplicatesKeepingFirst(t *testing.T) {
	pings := []models.AISPing{
		{ShipID: "SHIP_1000", Latitude: 13.1, Longitude: -67.1, Time: "11:00:00"},
		{ShipID: "SHIP_1000", Latitude: 13.2, Longitude: -67.2, Time: "11:30:00"},
		{ShipID: "SHIP_1000", Latitude: 13.3, Longitude: -67.3, Time: "12:00:00"},
		{ShipID: "SHIP_1001", Latitude: 13.4, Longitude: -67.4, Time: "11:00:00"},
	}

	got := NewGeoFilter(1.0).Filter(pings, 13.5, -67.0)

	if len(got) != 2 {
		t.Fatalf("Filter returned %d pings, want 2", len(got))
	}
	if got[0].ShipID != "SHIP_1000" || got[0].Time != "11:00:00" {
		t.Errorf("first occurrence not kept: got %+v", got[0])
	}
}

func TestGeoFilter_Filter_EmptyInput(t *testing.T) {
	got := NewGeoFilter(1.0).Filter(nil, 13.5, -67.0)
	if len(got) != 0 {
		t.Errorf("Filter(nil) returned %d pings, want 0", len(got))
	}
}

// Property from the contract: every returned ping satisfies the
// per-axis bound and no ship identifier repeats.
func TestGeoFilter_Filter_OutputInvariants(t *testing.T) {
	sceneLat, sceneLon, threshold := 11.26284, -66.40861, 0.75
	pings := []models.AISPing{
		{ShipID: "A", Latitude: 11.3, Longitude: -66.4},
		{ShipID: "B", Latitude: 11.9, Longitude: -66.5},
		{ShipID: "A", Latitude: 11.2, Longitude: -66.3},
		{ShipID: "C", Latitude: 10.6, Longitude: -66.0},
		{ShipID: "D", Latitude: 11.0, Longitude: -67.5},
	}

	got := NewGeoFilter(threshold).Filter(pings, sceneLat, sceneLon)

	seen := make(map[string]bool)
	for _, ping := range got {
		if seen[ping.ShipID] {
			t.Errorf("duplicate ship %s in output", ping.ShipID)
		}
		seen[ping.ShipID] = true

		if math.Abs(ping.Latitude-sceneLat) >= threshold {
			t.Errorf("ship %s latitude %.5f outside threshold", ping.ShipID, ping.Latitude)
		}
		if math.Abs(ping.Longitude-sceneLon) >= threshold {
			t.Errorf("ship %s longitude %.5f outside threshold", ping.ShipID, ping.Longitude)
		}
	}
}
