// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package forensics

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/seafence/darkwatch/internal/logging"
	"github.com/seafence/darkwatch/internal/metrics"
	"github.com/seafence/darkwatch/internal/models"
)

// Algorithm names the digest algorithm recorded in every evidence
// bundle.
const Algorithm = "SHA-256"

// evidencePayload is the hashed finding set. Key order in the
// canonical form is alphabetical regardless of field order here.
type evidencePayload struct {
	Detections  []models.RadarDetection     `json:"detections"`
	DarkVessels []models.DarkVesselIncident `json:"dark_vessels"`
}

// HashEvidence produces the digest triple over one evidence bundle:
//
//   - image hash: digest of the raw image bytes
//   - data hash: digest of the canonical finding-set encoding
//   - evidence hash: one digest fed the image bytes then the
//     canonical data bytes, in that order
//
// A missing image is not an error: the run continues with a warning
// and the image contribution degrades to the empty byte sequence.
// The only error path is a canonical-encoding failure.
func HashEvidence(imagePath string, detections []models.RadarDetection, darkVessels []models.DarkVesselIncident) (models.EvidenceHashes, error) {
	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		// MissingResource: degraded hashing, never fatal.
		metrics.MissingImages.Inc()
		logging.Warn().
			Str("image_path", imagePath).
			Err(err).
			Msg("SAR image unreadable, hashing empty byte sequence in its place")
		imageBytes = nil
	} else {
		logging.Debug().
			Str("image_path", imagePath).
			Int("bytes", len(imageBytes)).
			Msg("SAR image read for hashing")
	}

	dataBytes, err := CanonicalEncode(evidencePayload{
		Detections:  nonNilDetections(detections),
		DarkVessels: nonNilIncidents(darkVessels),
	})
	if err != nil {
		return models.EvidenceHashes{}, fmt.Errorf("hash evidence: %w", err)
	}

	imageSum := sha256.Sum256(imageBytes)
	dataSum := sha256.Sum256(dataBytes)

	// The combined digest chains raw inputs through a single hash
	// instance; it is NOT a hash of the two hex digests.
	full := sha256.New()
	full.Write(imageBytes)
	full.Write(dataBytes)

	hashes := models.EvidenceHashes{
		EvidenceHash: hex.EncodeToString(full.Sum(nil)),
		ImageHash:    hex.EncodeToString(imageSum[:]),
		DataHash:     hex.EncodeToString(dataSum[:]),
		Algorithm:    Algorithm,
	}

	logging.Info().
		Str("evidence_hash", hashes.EvidenceHash).
		Str("algorithm", Algorithm).
		Msg("evidence bundle sealed")

	return hashes, nil
}

// nonNilDetections normalizes a nil slice to an empty one so the
// canonical encoding is identical for "no findings" regardless of how
// the caller built the slice.
func nonNilDetections(in []models.RadarDetection) []models.RadarDetection {
	if in == nil {
		return []models.RadarDetection{}
	}
	return in
}

func nonNilIncidents(in []models.DarkVesselIncident) []models.DarkVesselIncident {
	if in == nil {
		return []models.DarkVesselIncident{}
	}
	return in
}
