// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package fusion

import (
	"github.com/seafence/darkwatch/internal/logging"
	"github.com/seafence/darkwatch/internal/models"
)

// Matcher runs a MatchingPolicy over the detection set and logs each
// decision. It holds no per-run state; every call operates only on
// its arguments.
type Matcher struct {
	policy MatchingPolicy
}

// NewMatcher creates a Matcher backed by the given policy. A nil
// policy falls back to the deterministic ProximityPolicy with
// defaults.
func NewMatcher(policy MatchingPolicy) *Matcher {
	if policy == nil {
		policy = NewProximityPolicy(DefaultMatchThreshold)
	}
	return &Matcher{policy: policy}
}

// Match produces exactly one outcome per detection, in input order.
func (m *Matcher) Match(detections []models.RadarDetection, candidates []models.AISPing, sceneLat, sceneLon float64) []models.MatchOutcome {
	outcomes := m.policy.Match(detections, candidates, sceneLat, sceneLon)

	for _, outcome := range outcomes {
		if outcome.Matched {
			logging.Debug().
				Str("vessel_id", outcome.VesselID).
				Str("ship_id", outcome.Ping.ShipID).
				Msg("radar detection matched to AIS broadcast")
		} else {
			logging.Debug().
				Str("vessel_id", outcome.VesselID).
				Msg("no AIS match for radar detection")
		}
	}

	return outcomes
}

// Unmatched returns the detections whose outcome has no match, in
// input order. Outcomes must be positionally aligned with detections,
// which Match guarantees.
func Unmatched(detections []models.RadarDetection, outcomes []models.MatchOutcome) []models.RadarDetection {
	unmatched := make([]models.RadarDetection, 0, len(detections))
	for i, outcome := range outcomes {
		if i >= len(detections) {
			break
		}
		if !outcome.Matched {
			unmatched = append(unmatched, detections[i])
		}
	}
	return unmatched
}
