// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package ingest

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/seafence/darkwatch/internal/logging"
	"github.com/seafence/darkwatch/internal/models"
)

// AISSource produces the self-reported position broadcasts for one
// monitored window.
type AISSource interface {
	Pings(ctx context.Context) ([]models.AISPing, error)
}

// ShipTrack is one known vessel track the simulator drifts pings
// around.
type ShipTrack struct {
	ShipID  string
	BaseLat float64
	BaseLon float64
	Heading string
}

// DefaultShipTracks are the sample vessel tracks for the Caribbean
// monitoring zone.
func DefaultShipTracks() []ShipTrack {
	return []ShipTrack{
		{ShipID: "SHIP_1000", BaseLat: 16.53534, BaseLon: -69.42185, Heading: "NW"},
		{ShipID: "SHIP_1001", BaseLat: 11.26284, BaseLon: -66.40861, Heading: "S"},
		{ShipID: "SHIP_1002", BaseLat: 10.96187, BaseLon: -62.11715, Heading: "SE"},
		{ShipID: "SHIP_1003", BaseLat: 14.85200, BaseLon: -65.30000, Heading: "E"},
		{ShipID: "SHIP_1004", BaseLat: 12.10000, BaseLon: -68.75000, Heading: "NE"},
	}
}

const (
	defaultPingsPerShip = 3
	defaultMaxDrift     = 0.1
	pingInterval        = 30 * time.Minute
	windowLookback      = time.Hour
)

// SimulatedAIS generates drifted position pings from a fixed track
// table. The RNG and clock are injected so a fixed seed reproduces
// the exact ping set, which the fusion tests rely on.
type SimulatedAIS struct {
	Tracks       []ShipTrack
	NumShips     int // 0 picks a random 3-5
	PingsPerShip int // 0 falls back to 3
	MaxDrift     float64

	rng *rand.Rand
	now func() time.Time
}

// NewSimulatedAIS creates a simulator over the default track table.
func NewSimulatedAIS(seed int64) *SimulatedAIS {
	return &SimulatedAIS{
		Tracks:       DefaultShipTracks(),
		PingsPerShip: defaultPingsPerShip,
		MaxDrift:     defaultMaxDrift,
		rng:          rand.New(rand.NewSource(seed)),
		now:          time.Now,
	}
}

// WithClock replaces the simulator clock. Returns the receiver for
// chaining during test setup.
func (s *SimulatedAIS) WithClock(now func() time.Time) *SimulatedAIS {
	s.now = now
	return s
}

// Pings implements AISSource. Each selected ship reports pings at
// thirty-minute intervals starting one hour before the current time.
func (s *SimulatedAIS) Pings(_ context.Context) ([]models.AISPing, error) {
	tracks := s.Tracks
	if len(tracks) == 0 {
		tracks = DefaultShipTracks()
	}

	numShips := s.NumShips
	if numShips <= 0 {
		numShips = 3 + s.rng.Intn(3)
	}
	if numShips > len(tracks) {
		numShips = len(tracks)
	}

	pingsPerShip := s.PingsPerShip
	if pingsPerShip <= 0 {
		pingsPerShip = defaultPingsPerShip
	}

	maxDrift := s.MaxDrift
	if maxDrift < 0 {
		maxDrift = defaultMaxDrift
	}

	now := s.now
	if now == nil {
		now = time.Now
	}
	baseTime := now().Add(-windowLookback)

	selected := s.rng.Perm(len(tracks))[:numShips]

	records := make([]models.AISPing, 0, numShips*pingsPerShip)
	for _, idx := range selected {
		track := tracks[idx]
		for ping := 0; ping < pingsPerShip; ping++ {
			at := baseTime.Add(time.Duration(ping) * pingInterval)
			records = append(records, models.AISPing{
				ShipID:    track.ShipID,
				Latitude:  s.drift(track.BaseLat, maxDrift),
				Longitude: s.drift(track.BaseLon, maxDrift),
				Date:      at.Format("2006-01-02"),
				Time:      at.Format("15:04:05"),
			})
		}
	}

	logging.Info().
		Int("pings", len(records)).
		Int("ships", numShips).
		Msg("AIS pings collected")

	return records, nil
}

// drift offsets a base coordinate by up to ±maxDrift degrees, rounded
// to five decimals to mirror broadcast precision.
func (s *SimulatedAIS) drift(base, maxDrift float64) float64 {
	v := base + (s.rng.Float64()*2-1)*maxDrift
	return math.Round(v*1e5) / 1e5
}
