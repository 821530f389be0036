// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mapping

import (
	"context"

	"github.com/taibuivan/tamgioi/internal/core/episode"
)

// # Mapping Data Access

// Repository defines the data access contract for chapter/episode mappings.
//
// The merge-on-collision policy lives in the service layer; the store only
// offers narrow primitives so the policy stays unit-testable.
type Repository interface {

	/*
		FindByID retrieves a mapping by its identifier.

		Returns:
		  - *Mapping: The mapping, or nil when no record exists
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Mapping, error)

	/*
		FindByEpisode retrieves the mapping referencing the given episode.

		Description: Episode references are unique per axis, so at most one
		record can match.

		Returns:
		  - *Mapping: The mapping, or nil when the episode is unmapped
		  - error: Database retrieval failures
	*/
	FindByEpisode(context context.Context, axis episode.Axis, number int) (*Mapping, error)

	/*
		FindByChapter retrieves all mappings whose chapter set contains the
		given chapter number, ordered by creation time.

		Returns:
		  - []*Mapping: Matching mappings, possibly empty
		  - error: Database retrieval failures
	*/
	FindByChapter(context context.Context, chapterNumber int) ([]*Mapping, error)

	/*
		List returns a page of mappings ordered by 3D episode descending,
		then 2D episode descending, plus the total record count.
	*/
	List(context context.Context, limit, offset int) ([]*Mapping, int, error)

	// Insert persists a new mapping. The unique episode constraints guard
	// against races with a concurrent merge; violations surface as Conflict.
	Insert(context context.Context, m *Mapping) error

	// Update rewrites the chapters and episode references of an existing
	// mapping.
	Update(context context.Context, m *Mapping) error

	// Delete removes a mapping. Admin tooling only.
	Delete(context context.Context, id string) error

	// Count returns the total number of mapping records.
	Count(context context.Context) (int64, error)
}
