// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package episode provides the episode catalog for both adaptation axes.

# Architecture

Episodes from the two adaptations share one table and one code path; the
[Axis] value keeps their identity spaces disjoint. Episode 12 of the 3D
series and episode 12 of the 2D series are unrelated records.
*/
package episode

import (
	"time"

	"github.com/taibuivan/tamgioi/internal/core/link"
)

// Axis identifies which adaptation an episode belongs to.
type Axis string

const (
	// Axis3D is the live-action ("3D") adaptation.
	Axis3D Axis = "3d"

	// Axis2D is the animated ("2D") adaptation.
	Axis2D Axis = "2d"
)

// Valid reports whether the axis is one of the two known adaptations.
func (a Axis) Valid() bool {
	return a == Axis3D || a == Axis2D
}

// Episode is a single numbered entry of one adaptation.
type Episode struct {
	Axis      Axis        `json:"axis"`
	Number    int         `json:"number"`
	Title     string      `json:"title,omitempty"`
	Links     []link.Link `json:"links"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Field identifiers used in validation errors.
const (
	FieldAxis   = "axis"
	FieldNumber = "number"
	FieldTitle  = "title"
	FieldSource = "source"
	FieldURL    = "url"
)
