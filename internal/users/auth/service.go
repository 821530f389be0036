// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth issues access tokens for the moderation surfaces.

# Scope

Ordinary contributors never log in; they are tracked by platform id and
submit through the form. Credentials exist only for accounts that need
the admin API: the root admin (configured at deploy time) and accounts a
moderator has promoted and provisioned with a password.
*/
package auth

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/internal/platform/constants"
	"github.com/taibuivan/tamgioi/internal/platform/sec"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
	"github.com/taibuivan/tamgioi/internal/users/account"
)

// # Directory Interface

// Directory is the slice of the account service the auth layer reads.
type Directory interface {
	GetAccount(context context.Context, userID int64) (*account.Account, error)
	SetAdmin(context context.Context, userID int64, isAdmin bool) error
}

// CredentialStore writes password hashes.
type CredentialStore interface {
	SetPasswordHash(context context.Context, userID int64, hash string) (bool, error)
}

// # Service Layer

// Service authenticates moderators and mints access tokens.
type Service struct {
	directory   Directory
	credentials CredentialStore
	tokens      *sec.TokenService
	rootAdminID int64
	logger      *slog.Logger
}

// NewService constructs a new [Service].
func NewService(directory Directory, credentials CredentialStore, tokens *sec.TokenService,
	rootAdminID int64, logger *slog.Logger) *Service {
	return &Service{
		directory:   directory,
		credentials: credentials,
		tokens:      tokens,
		rootAdminID: rootAdminID,
		logger:      logger,
	}
}

// TokenPair is the login response payload.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// # Auth Operations

/*
Login verifies credentials and mints a signed access token.

Description: The root admin configured at deploy time is always treated
as an admin, regardless of the directory flag. Unknown accounts and bad
passwords produce the same Unauthorized answer.

Parameters:
  - context: context.Context
  - userID: int64 (platform user id)
  - password: string

Returns:
  - *TokenPair: Signed access token and its lifetime
  - error: Unauthorized on any credential failure
*/
func (service *Service) Login(context context.Context, userID int64, password string) (*TokenPair, error) {

	acct, err := service.directory.GetAccount(context, userID)
	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if acct.PasswordHash == "" || !sec.CheckPasswordHash(password, acct.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	role := sec.RoleMember
	if acct.IsAdmin || acct.UserID == service.rootAdminID {
		role = sec.RoleAdmin
	}

	token, err := service.tokens.GenerateAccessToken(acct.UserID, acct.Username, role, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &TokenPair{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(constants.AccessTokenTTL.Seconds()),
	}, nil
}

/*
SetCredentials provisions or replaces a password for an account.

Description: Reached only through the admin API. Promoting an account to
moderator and giving it a password are separate steps so a password can
also be set for the root admin account itself.

Parameters:
  - context: context.Context
  - userID: int64
  - password: string (plain text, hashed before storage)

Returns:
  - error: Validation errors, or NotFound when no such account exists
*/
func (service *Service) SetCredentials(context context.Context, userID int64, password string) error {

	validator := &validate.Validator{}
	validator.MinLen("password", password, constants.MinPasswordLen)
	if err := validator.Err(); err != nil {
		return err
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return apperr.Internal(err)
	}

	updated, err := service.credentials.SetPasswordHash(context, userID, hash)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("Account")
	}

	return nil
}
