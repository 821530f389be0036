// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages the novel-chapter axis of the catalog.

A chapter is keyed by its natural chapter number. Records are created on
first reference — either an explicit upsert or the first approved link
contribution — and accumulate external reading links over time.
*/
package chapter

import (
	"time"

	"github.com/taibuivan/tamgioi/internal/core/link"
)

// Chapter is one novel chapter and its known reading sources.
type Chapter struct {
	// Number is the chapter's natural, unique identity.
	Number int `json:"number"`

	// Title is optional; bulk-imported chapters frequently have none.
	Title string `json:"title"`

	// Links is the ordered list of reading sources. URLs are unique
	// within this list.
	Links []link.Link `json:"links"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation in the chapter domain.
const (
	FieldNumber = "number"
	FieldTitle  = "title"
	FieldSource = "source"
	FieldURL    = "url"
)
