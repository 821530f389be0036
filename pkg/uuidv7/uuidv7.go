// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 generates the record identifiers used for mappings and
// contributions. Version 7 UUIDs embed a millisecond timestamp, so ids
// created later sort later and the PostgreSQL primary-key index stays
// append-mostly instead of fragmenting the way random v4 ids would.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// Generation fails only when the OS entropy source is unavailable, which
// is not a recoverable condition for a serving process, so it panics
// rather than returning an error every call site would have to thread.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}
