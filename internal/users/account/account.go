// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages the user directory: who has interacted with the
catalog, how much they have contributed, and who moderates.

# Identity

Users are keyed by a numeric platform id supplied by the client (the
messenger identity the original audience arrives with), not by an id we
mint. Tracking is an upsert: any interaction refreshes the profile
snapshot and the last-active timestamp.
*/
package account

import "time"

// Account is one user's profile and standing.
type Account struct {
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	Exp          int64     `json:"exp"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// Profile is the mutable snapshot refreshed on every interaction.
type Profile struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Field identifiers used in validation errors.
const (
	FieldUserID   = "user_id"
	FieldUsername = "username"
	FieldPassword = "password"
)
