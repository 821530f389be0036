// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package episode

import (
	"context"

	"github.com/taibuivan/tamgioi/internal/core/link"
)

// # Episode Data Access

// Repository defines the data access contract for adaptation episodes.
type Repository interface {

	/*
		Find retrieves an episode by axis and number.

		Parameters:
		  - context: context.Context
		  - axis: Axis
		  - number: int

		Returns:
		  - *Episode: The episode, or nil when no record exists. Absence is
		    a normal outcome for the resolver, not an error.
		  - error: Database retrieval failures
	*/
	Find(context context.Context, axis Axis, number int) (*Episode, error)

	/*
		Upsert inserts the episode or refreshes its title if it already exists.

		Description: The link list of an existing record is never replaced
		by an upsert; links are mutated exclusively through AppendLink.

		Parameters:
		  - context: context.Context
		  - e: *Episode

		Returns:
		  - error: Database execution errors
	*/
	Upsert(context context.Context, e *Episode) error

	/*
		AppendLink atomically appends a link to an episode, creating the
		episode if absent.

		Returns:
		  - bool: true if the link was appended, false if a link with the
		    same URL was already present (no mutation performed)
		  - error: Database execution errors
	*/
	AppendLink(context context.Context, axis Axis, number int, l link.Link) (bool, error)

	// Delete removes an episode record entirely. Admin tooling only.
	Delete(context context.Context, axis Axis, number int) error

	// Count returns the number of episode records on one axis.
	Count(context context.Context, axis Axis) (int64, error)
}
