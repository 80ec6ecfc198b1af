// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package forensics

import (
	"bytes"
	"testing"
)

func TestCanonicalEncode_SortsObjectKeys(t *testing.T) {
	type unsorted struct {
		Zebra  string `json:"zebra"`
		Alpha  string `json:"alpha"`
		Middle int    `json:"middle"`
	}

	got, err := CanonicalEncode(unsorted{Zebra: "z", Alpha: "a", Middle: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"alpha":"a","middle":1,"zebra":"z"}`
	if string(got) != want {
		t.Errorf("CanonicalEncode = %s, want %s", got, want)
	}
}

func TestCanonicalEncode_StructAndMapAgree(t *testing.T) {
	type payload struct {
		B int    `json:"b"`
		A string `json:"a"`
	}

	fromStruct, err := CanonicalEncode(payload{B: 2, A: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromMap, err := CanonicalEncode(map[string]any{"a": "x", "b": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(fromStruct, fromMap) {
		t.Errorf("struct and map encodings differ: %s vs %s", fromStruct, fromMap)
	}
}

func TestCanonicalEncode_PreservesNumericLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"integer", map[string]any{"n": 45}, `{"n":45}`},
		{"coordinate precision", map[string]any{"lat": 11.26284}, `{"lat":11.26284}`},
		{"negative float", map[string]any{"lon": -66.40861}, `{"lon":-66.40861}`},
		{"zero", map[string]any{"n": 0}, `{"n":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalEncode(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("CanonicalEncode = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCanonicalEncode_NestedStructures(t *testing.T) {
	input := map[string]any{
		"list": []any{
			map[string]any{"b": 2, "a": 1},
			"plain",
			nil,
			true,
		},
	}

	got, err := CanonicalEncode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"list":[{"a":1,"b":2},"plain",null,true]}`
	if string(got) != want {
		t.Errorf("CanonicalEncode = %s, want %s", got, want)
	}
}

func TestCanonicalEncode_NoIncidentalWhitespace(t *testing.T) {
	got, err := CanonicalEncode(map[string]any{"a": []any{1, 2}, "b": "x y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"a":[1,2],"b":"x y"}`
	if string(got) != want {
		t.Errorf("CanonicalEncode = %s, want %s", got, want)
	}
}

func TestCanonicalEncode_Deterministic(t *testing.T) {
	input := map[string]any{
		"detections":   []any{map[string]any{"vessel_id": "RADAR_001", "confidence": 85}},
		"dark_vessels": []any{},
	}

	first, err := CanonicalEncode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CanonicalEncode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("repeated encodings differ: %s vs %s", first, second)
	}
}
