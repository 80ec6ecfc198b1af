// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

// Package forensics seals a finding set into a tamper-evident
// evidence bundle: a deterministic SHA-256 digest triple over the SAR
// image and the canonically encoded findings, plus a time-seal drawn
// from a remote time authority with local-clock fallback.
//
// The canonical encoder guarantees the data hash is reproducible
// byte-for-byte: object keys sorted ascending, UTF-8, no incidental
// whitespace, numeric literals preserved verbatim. Two runs over the
// same logical content always produce the same digests.
package forensics
