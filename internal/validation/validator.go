// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

// Package validation wraps go-playground/validator v10 behind a
// thread-safe singleton. The built-in latitude, longitude and
// datetime validators cover the coordinate and date fields that ride
// through scene metadata and configuration.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field string
	Tag   string
	Param string
	Value any
}

// Error returns a human-readable message for the failed rule.
func (e FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "latitude":
		return fmt.Sprintf("%s must be a valid latitude (-90 to 90)", e.Field)
	case "longitude":
		return fmt.Sprintf("%s must be a valid longitude (-180 to 180)", e.Field)
	case "datetime":
		return fmt.Sprintf("%s must match the %s layout", e.Field, e.Param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", e.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, e.Param)
	case "gte":
		return fmt.Sprintf("%s must be >= %s", e.Field, e.Param)
	case "lte":
		return fmt.Sprintf("%s must be <= %s", e.Field, e.Param)
	case "gt":
		return fmt.Sprintf("%s must be > %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s failed %s validation", e.Field, e.Tag)
	}
}

// StructError is the combined error for a struct that failed one or
// more validation rules.
type StructError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *StructError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Error())
	}
	return strings.Join(messages, "; ")
}

// Validator returns the singleton validator instance. Thread-safe;
// struct metadata is cached across calls.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates s against its `validate` tags. Returns nil
// on success or a *StructError listing every failed rule.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: s was not a struct.
		return fmt.Errorf("validate struct: %w", err)
	}

	structErr := &StructError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		structErr.Fields = append(structErr.Fields, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return structErr
}
