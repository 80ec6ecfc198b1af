// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package validation

import (
	"errors"
	"strings"
	"testing"
)

type sceneFields struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
	Date      string  `validate:"required,datetime=2006-01-02"`
}

func TestValidateStruct_Valid(t *testing.T) {
	s := sceneFields{Latitude: 11.26284, Longitude: -66.40861, Date: "2026-02-20"}
	if err := ValidateStruct(s); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     sceneFields
		wantField string
	}{
		{
			name:      "latitude out of range",
			input:     sceneFields{Latitude: 91, Longitude: 0, Date: "2026-02-20"},
			wantField: "Latitude",
		},
		{
			name:      "longitude out of range",
			input:     sceneFields{Latitude: 0, Longitude: -181, Date: "2026-02-20"},
			wantField: "Longitude",
		},
		{
			name:      "bad date layout",
			input:     sceneFields{Latitude: 0, Longitude: 0, Date: "20-02-2026"},
			wantField: "Date",
		},
		{
			name:      "missing date",
			input:     sceneFields{Latitude: 0, Longitude: 0},
			wantField: "Date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var structErr *StructError
			if !errors.As(err, &structErr) {
				t.Fatalf("error type = %T, want *StructError", err)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not mention field %s", err.Error(), tt.wantField)
			}
		})
	}
}

func TestValidateStruct_CollectsAllFailures(t *testing.T) {
	err := ValidateStruct(sceneFields{Latitude: 100, Longitude: 200, Date: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var structErr *StructError
	if !errors.As(err, &structErr) {
		t.Fatalf("error type = %T, want *StructError", err)
	}
	if len(structErr.Fields) != 3 {
		t.Errorf("got %d field errors, want 3: %v", len(structErr.Fields), err)
	}
}
