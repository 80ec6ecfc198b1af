// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

// Package ingest provides the pipeline's input collaborators: an AIS
// source producing position broadcasts and a SAR source producing one
// scene descriptor per run.
//
// The shipped implementations are a deterministic simulator (seeded
// RNG, injected clock) and a local image store that derives scene
// metadata from the filename convention
// <lat><N|S>_<lon><E|W>_<yyyy-mm-dd>.<ext>. Live feed adapters plug
// in behind the same two interfaces.
package ingest
