// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package fusion

import (
	"math"
	"math/rand"

	"github.com/seafence/darkwatch/internal/models"
)

// DefaultMatchThreshold is the default per-axis plausibility distance,
// in degrees, for associating an AIS candidate with a radar detection.
// Radar detections carry only a relative position label, so the
// plausibility test is anchored on the scene center.
const DefaultMatchThreshold = 0.15

// MatchingPolicy decides, for every radar detection, whether a
// corresponding AIS broadcast exists among the candidates.
//
// Implementations must return exactly one MatchOutcome per detection,
// in detection input order. Production policies must be deterministic:
// outcomes feed the evidentiary data hash, so identical detection and
// candidate sets must always produce identical outcome sets.
type MatchingPolicy interface {
	Match(detections []models.RadarDetection, candidates []models.AISPing, sceneLat, sceneLon float64) []models.MatchOutcome
}

// ProximityPolicy is the production matching policy. A candidate is
// plausible when it lies within MatchThreshold degrees of the scene
// center on both axes. Among plausible candidates the one with the
// minimum combined absolute coordinate offset from the scene center
// wins; remaining ties break by ascending ship identifier. Each ship
// is claimed by at most one detection, in detection input order.
type ProximityPolicy struct {
	// MatchThreshold is the per-axis plausibility distance in degrees.
	// Configuration, never derived at runtime. Zero or negative falls
	// back to DefaultMatchThreshold.
	MatchThreshold float64
}

// NewProximityPolicy creates a ProximityPolicy with the given
// threshold.
func NewProximityPolicy(matchThreshold float64) *ProximityPolicy {
	if matchThreshold <= 0 {
		matchThreshold = DefaultMatchThreshold
	}
	return &ProximityPolicy{MatchThreshold: matchThreshold}
}

// Match implements MatchingPolicy.
func (p *ProximityPolicy) Match(detections []models.RadarDetection, candidates []models.AISPing, sceneLat, sceneLon float64) []models.MatchOutcome {
	threshold := p.MatchThreshold
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}

	outcomes := make([]models.MatchOutcome, 0, len(detections))
	claimed := make(map[string]struct{}, len(candidates))

	for _, detection := range detections {
		best := -1
		bestOffset := math.MaxFloat64

		for i, candidate := range candidates {
			if _, taken := claimed[candidate.ShipID]; taken {
				continue
			}
			if !withinBox(candidate.Latitude, candidate.Longitude, sceneLat, sceneLon, threshold) {
				continue
			}

			offset := math.Abs(candidate.Latitude-sceneLat) + math.Abs(candidate.Longitude-sceneLon)
			switch {
			case offset < bestOffset:
				best = i
				bestOffset = offset
			case offset == bestOffset && best >= 0 && candidate.ShipID < candidates[best].ShipID:
				best = i
			}
		}

		if best < 0 {
			outcomes = append(outcomes, models.MatchOutcome{VesselID: detection.VesselID})
			continue
		}

		matched := candidates[best]
		claimed[matched.ShipID] = struct{}{}
		outcomes = append(outcomes, models.MatchOutcome{
			VesselID: detection.VesselID,
			Matched:  true,
			Ping:     &matched,
		})
	}

	return outcomes
}

// RandomPolicy accepts each plausible candidate with a fixed
// probability. It reproduces the legacy per-candidate acceptance
// behavior for test fixtures and MUST NOT be used in production: it
// violates the determinism contract unless callers pin the seed.
type RandomPolicy struct {
	rng  *rand.Rand
	prob float64
}

// NewSeededRandomPolicy creates a RandomPolicy with an explicit seed
// and acceptance probability. The seed parameter is mandatory so that
// no call site can construct an unseeded stochastic matcher.
func NewSeededRandomPolicy(seed int64, acceptProbability float64) *RandomPolicy {
	return &RandomPolicy{
		rng:  rand.New(rand.NewSource(seed)),
		prob: acceptProbability,
	}
}

// Match implements MatchingPolicy.
func (p *RandomPolicy) Match(detections []models.RadarDetection, candidates []models.AISPing, _, _ float64) []models.MatchOutcome {
	outcomes := make([]models.MatchOutcome, 0, len(detections))

	for _, detection := range detections {
		outcome := models.MatchOutcome{VesselID: detection.VesselID}
		for i := range candidates {
			if p.rng.Float64() < p.prob {
				candidate := candidates[i]
				outcome.Matched = true
				outcome.Ping = &candidate
				break
			}
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
