// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the user directory.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Account Operations

/*
Track records an interaction: the account is created on first contact,
and its profile snapshot plus last-active timestamp are refreshed on
every call.

Parameters:
  - context: context.Context
  - p: Profile (platform id and display names)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) Track(context context.Context, p Profile) error {
	if p.UserID <= 0 {
		return validate.RequiredError(FieldUserID, "Must be a positive platform id")
	}
	return service.repo.Upsert(context, p)
}

/*
GetAccount retrieves an account by its platform user id.

Returns:
  - *Account: The hydrated account
  - error: NotFound when no such account exists
*/
func (service *Service) GetAccount(context context.Context, userID int64) (*Account, error) {
	account, err := service.repo.Find(context, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperr.NotFound("Account")
	}
	return account, nil
}

/*
AddExp credits experience to an account.

Returns:
  - error: NotFound when no such account exists
*/
func (service *Service) AddExp(context context.Context, userID int64, amount int) error {
	credited, err := service.repo.AddExp(context, userID, amount)
	if err != nil {
		return err
	}
	if !credited {
		return apperr.NotFound("Account")
	}
	return nil
}

/*
SetAdmin grants or revokes moderator standing.

Returns:
  - error: NotFound when no such account exists
*/
func (service *Service) SetAdmin(context context.Context, userID int64, isAdmin bool) error {
	updated, err := service.repo.SetAdmin(context, userID, isAdmin)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("Account")
	}
	return nil
}

/*
ListAccounts returns a page of accounts, most recently active first.
*/
func (service *Service) ListAccounts(context context.Context, limit, offset int) ([]*Account, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
ListAdmins returns every account with moderator standing.
*/
func (service *Service) ListAdmins(context context.Context) ([]*Account, error) {
	return service.repo.ListAdmins(context)
}

/*
CountAccounts returns the total number of accounts.
*/
func (service *Service) CountAccounts(context context.Context) (int64, error) {
	return service.repo.Count(context)
}

/*
CountActiveSince returns how many accounts interacted after the instant.
*/
func (service *Service) CountActiveSince(context context.Context, since time.Time) (int64, error) {
	return service.repo.CountActiveSince(context, since)
}
