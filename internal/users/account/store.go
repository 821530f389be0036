// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"time"
)

// # Account Data Access

// Repository defines the data access contract for user accounts.
type Repository interface {

	/*
		Find retrieves an account by its platform user id.

		Returns:
		  - *Account: The account, or nil when no record exists
		  - error: Database retrieval failures
	*/
	Find(context context.Context, userID int64) (*Account, error)

	/*
		Upsert creates the account on first contact or refreshes its
		profile snapshot and last-active timestamp.

		Description: The whole track operation is one INSERT ... ON
		CONFLICT statement, so concurrent interactions from the same user
		cannot race into duplicate rows.
	*/
	Upsert(context context.Context, p Profile) error

	/*
		AddExp atomically increments a user's experience.

		Returns:
		  - bool: true when the account existed and was credited
		  - error: Database execution errors
	*/
	AddExp(context context.Context, userID int64, amount int) (bool, error)

	/*
		SetAdmin grants or revokes moderator standing.

		Returns:
		  - bool: true when the account existed and was updated
		  - error: Database execution errors
	*/
	SetAdmin(context context.Context, userID int64, isAdmin bool) (bool, error)

	/*
		SetPasswordHash stores login credentials for an account.

		Returns:
		  - bool: true when the account existed and was updated
		  - error: Database execution errors
	*/
	SetPasswordHash(context context.Context, userID int64, hash string) (bool, error)

	/*
		List returns a page of accounts ordered by last activity, newest
		first, plus the total account count.
	*/
	List(context context.Context, limit, offset int) ([]*Account, int, error)

	// ListAdmins returns every account with moderator standing.
	ListAdmins(context context.Context) ([]*Account, error)

	// Count returns the total number of accounts.
	Count(context context.Context) (int64, error)

	// CountActiveSince returns how many accounts interacted after the
	// given instant.
	CountActiveSince(context context.Context, since time.Time) (int64, error)
}
