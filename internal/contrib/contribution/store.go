// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contribution

import "context"

// # Contribution Data Access

// Repository defines the data access contract for contributions.
type Repository interface {

	/*
		Insert persists a new pending contribution.
	*/
	Insert(context context.Context, c *Contribution) error

	/*
		FindByID retrieves a contribution by its identifier.

		Returns:
		  - *Contribution: The contribution, or nil when no record exists
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Contribution, error)

	/*
		MarkReviewed conditionally flips a pending contribution to its
		final status.

		Description: The update carries a status guard, so only one of two
		racing reviewers can win. The loser observes false.

		Parameters:
		  - context: context.Context
		  - id: string
		  - status: Status (StatusApproved or StatusRejected)
		  - reviewerID: int64
		  - note: string (optional reviewer note)

		Returns:
		  - bool: true if the record was still pending and is now flipped
		  - error: Database execution errors
	*/
	MarkReviewed(context context.Context, id string, status Status, reviewerID int64, note string) (bool, error)

	/*
		ListByStatus returns a page of contributions in the given status,
		newest first, plus the total count for that status.
	*/
	ListByStatus(context context.Context, status Status, limit, offset int) ([]*Contribution, int, error)

	/*
		ListByUser returns a page of one user's contributions, newest
		first, plus that user's total count.
	*/
	ListByUser(context context.Context, userID int64, limit, offset int) ([]*Contribution, int, error)

	/*
		TopContributors aggregates approved contribution counts per user,
		descending, limited to the given size.
	*/
	TopContributors(context context.Context, limit int) ([]ContributorRank, error)

	// CountByStatus returns the number of contributions in one status.
	CountByStatus(context context.Context, status Status) (int64, error)
}
