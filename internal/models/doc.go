// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

// Package models defines the transient domain entities passed between
// pipeline stages: AIS pings, radar detections, scene metadata, match
// outcomes, dark vessel incidents, and the evidence seal artifacts.
//
// All entities are constructed fresh per pipeline run, never mutated
// after construction, and discarded once handed to the reporting
// stage. There is no persistence layer behind them.
//
// JSON field names are part of the evidence wire format: the forensic
// data hash is computed over the canonical encoding of these structs,
// so renaming a tag changes every sealed digest.
package models
