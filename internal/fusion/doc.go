// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

// Package fusion correlates radar detections against AIS broadcasts.
//
// The stage runs in three steps:
//
//  1. GeoFilter reduces the AIS ping set to one candidate per ship
//     near the scene center.
//  2. Matcher decides, per detection, whether a candidate broadcast
//     exists. The production policy is deterministic: identical
//     inputs always yield identical outcomes, because outcomes feed
//     the evidentiary data hash.
//  3. Classifier turns every unmatched detection into a
//     DarkVesselIncident record.
//
// A stochastic matching policy exists for test fixtures only; it must
// be constructed with an explicit seed and is never the default.
package fusion
