// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError], plus the pure
// pre-check parsers for user-typed catalog input (chapter numbers, episode
// numbers, link labels, URLs, chapter lists).
//
// # Architecture
//
// This package is used exclusively in the service and session layers — never
// in handlers or storage. It ensures that business logic only operates on
// semantically valid data.
package validate

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/internal/platform/constants"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// EntryNumber fails unless the value is a valid chapter/episode number.
func (v *Validator) EntryNumber(field string, value int) *Validator {
	return v.Range(field, value, constants.MinEntryNumber, constants.MaxEntryNumber)
}

// SourceLabel fails unless the value is a valid link source label.
func (v *Validator) SourceLabel(field, value string) *Validator {
	trimmed := strings.TrimSpace(value)
	return v.Required(field, trimmed).
		MinLen(field, trimmed, constants.MinSourceLabelLen).
		MaxLen(field, trimmed, constants.MaxSourceLabelLen)
}

// URL fails unless the value parses as an absolute http(s) URL.
func (v *Validator) URL(field, value string) *Validator {
	if !IsAbsoluteURL(value) {
		v.add(field, "Must be a full URL starting with http:// or https://")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("chapters", len(chapters) == 0, "At least one chapter is required")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}

// # Pure Pre-Checks
//
// The parsers below turn raw user-typed strings into validated values. They
// are the boundary between the interactive form layer and the stores: input
// that fails here never reaches persistence.

// ParseEntryNumber parses a chapter or episode number typed by a user.
func ParseEntryNumber(field, raw string) (int, error) {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, RequiredError(field, "Must be a whole number")
	}

	if number < constants.MinEntryNumber {
		return 0, RequiredError(field, fmt.Sprintf("Must be at least %d", constants.MinEntryNumber))
	}

	if number > constants.MaxEntryNumber {
		return 0, RequiredError(field, fmt.Sprintf("Must be at most %d", constants.MaxEntryNumber))
	}

	return number, nil
}

// ParseChapterList parses a user-typed chapter specification.
//
// # Accepted Forms
//
//   - A comma-separated list: "121, 122, 125"
//   - An inclusive range: "121-123"
//
// The result is deduplicated, sorted ascending, and capped at
// [constants.MaxChaptersPerMapping] entries.
func ParseChapterList(field, raw string) ([]int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, RequiredError(field, "Chapter list cannot be empty")
	}

	var chapters []int

	if strings.Contains(trimmed, "-") {
		parts := strings.Split(trimmed, "-")
		if len(parts) != 2 {
			return nil, RequiredError(field, "Invalid range format, use: 121-123")
		}

		start, err := ParseEntryNumber(field, parts[0])
		if err != nil {
			return nil, err
		}
		end, err := ParseEntryNumber(field, parts[1])
		if err != nil {
			return nil, err
		}

		if start > end {
			return nil, RequiredError(field, "Range start must not exceed range end")
		}
		if end-start >= constants.MaxChaptersPerMapping {
			return nil, RequiredError(field, fmt.Sprintf("At most %d chapters per submission", constants.MaxChaptersPerMapping))
		}

		for number := start; number <= end; number++ {
			chapters = append(chapters, number)
		}
	} else {
		for _, piece := range strings.Split(trimmed, ",") {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}

			number, err := ParseEntryNumber(field, piece)
			if err != nil {
				return nil, err
			}

			if slices.Contains(chapters, number) {
				return nil, RequiredError(field, fmt.Sprintf("Chapter %d is listed twice", number))
			}
			chapters = append(chapters, number)
		}
	}

	if len(chapters) == 0 {
		return nil, RequiredError(field, "Chapter list cannot be empty")
	}
	if len(chapters) > constants.MaxChaptersPerMapping {
		return nil, RequiredError(field, fmt.Sprintf("At most %d chapters per submission", constants.MaxChaptersPerMapping))
	}

	slices.Sort(chapters)
	return chapters, nil
}

// IsAbsoluteURL reports whether raw parses as an absolute http(s) URL.
func IsAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
