// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"

	"github.com/taibuivan/tamgioi/internal/core/link"
)

// # Chapter Data Access

// Repository defines the data access contract for novel chapters.
type Repository interface {

	/*
		Find retrieves a chapter by its chapter number.

		Parameters:
		  - context: context.Context
		  - number: int (chapter number)

		Returns:
		  - *Chapter: The chapter, or nil when no record exists. Absence is
		    a normal outcome for the resolver, not an error.
		  - error: Database retrieval failures
	*/
	Find(context context.Context, number int) (*Chapter, error)

	/*
		FindMany retrieves all existing chapters among the given numbers.

		Description: Numbers without a record are simply omitted; results
		are ordered ascending by chapter number.

		Parameters:
		  - context: context.Context
		  - numbers: []int

		Returns:
		  - []*Chapter: Existing chapters, ascending
		  - error: Database retrieval failures
	*/
	FindMany(context context.Context, numbers []int) ([]*Chapter, error)

	/*
		Upsert inserts the chapter or refreshes its title if it already exists.

		Description: The link list of an existing record is never replaced
		by an upsert; links are mutated exclusively through AppendLink.

		Parameters:
		  - context: context.Context
		  - c: *Chapter

		Returns:
		  - error: Database execution errors
	*/
	Upsert(context context.Context, c *Chapter) error

	/*
		AppendLink atomically appends a link to a chapter, creating the
		chapter if absent.

		Description: The duplicate-URL check and the append happen in a
		single statement relative to the target row, so two concurrent
		approvals about the same chapter cannot lose an update.

		Parameters:
		  - context: context.Context
		  - number: int
		  - l: link.Link

		Returns:
		  - bool: true if the link was appended, false if a link with the
		    same URL was already present (no mutation performed)
		  - error: Database execution errors
	*/
	AppendLink(context context.Context, number int, l link.Link) (bool, error)

	// Delete removes a chapter record entirely. Not reachable from the
	// moderated pipeline; admin tooling only.
	Delete(context context.Context, number int) error

	// Count returns the total number of chapter records.
	Count(context context.Context) (int64, error)
}
