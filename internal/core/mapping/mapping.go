// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mapping provides the cross-reference records that tie novel
chapters to adaptation episodes.

# Data Model

A mapping carries a set of chapter numbers and at most one episode per
adaptation axis. Either episode field may be nil (the adaptation has not
reached that point, or the contributor does not know it), but never both:
a mapping with no episode reference would cross-reference nothing.

Each episode number appears in at most one mapping per axis. Submitting a
mapping for an already-mapped episode merges into the existing record
instead of creating a rival one.
*/
package mapping

import "time"

// Mapping links a run of chapters to its adaptation episodes.
type Mapping struct {
	ID        string    `json:"id"`
	Chapters  []int     `json:"chapters"`
	Episode3D *int      `json:"episode_3d,omitempty"`
	Episode2D *int      `json:"episode_2d,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Covers reports whether the mapping includes the given chapter number.
func (m *Mapping) Covers(chapterNumber int) bool {
	for _, number := range m.Chapters {
		if number == chapterNumber {
			return true
		}
	}
	return false
}

// Field identifiers used in validation errors.
const (
	FieldChapters  = "chapters"
	FieldEpisode3D = "episode_3d"
	FieldEpisode2D = "episode_2d"
)
