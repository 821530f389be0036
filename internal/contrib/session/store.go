// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import "context"

// # Session Data Access

// Repository defines the volatile storage contract for submission forms.
type Repository interface {

	/*
		Find retrieves a user's in-progress form.

		Returns:
		  - *Session: The session, or nil when the user has none (or it
		    expired)
		  - error: Storage failures
	*/
	Find(context context.Context, userID int64) (*Session, error)

	/*
		Save persists the form and refreshes its expiry.
	*/
	Save(context context.Context, s *Session) error

	/*
		Delete discards the form. Deleting an absent form is a no-op.
	*/
	Delete(context context.Context, userID int64) error
}
