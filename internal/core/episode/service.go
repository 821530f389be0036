// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package episode

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tamgioi/internal/core/link"
	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/internal/platform/constants"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for adaptation episodes.
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

// # Episode Operations

/*
GetEpisode retrieves metadata for a single episode by axis and number.

Parameters:
  - context: context.Context
  - axis: Axis
  - number: int

Returns:
  - *Episode: The hydrated domain entity
  - error: NotFound when no such episode exists
*/
func (service *Service) GetEpisode(context context.Context, axis Axis, number int) (*Episode, error) {
	if !axis.Valid() {
		return nil, validate.RequiredError(FieldAxis, "Must be '3d' or '2d'")
	}

	episode, err := service.repo.Find(context, axis, number)
	if err != nil {
		return nil, err
	}
	if episode == nil {
		return nil, apperr.NotFound("Episode")
	}
	return episode, nil
}

/*
UpsertEpisode creates an episode or refreshes the title of an existing one.

Description: Link lists are owned by the contribution pipeline; an upsert
never replaces them.

Parameters:
  - context: context.Context
  - episode: *Episode (axis, number and optional title)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) UpsertEpisode(context context.Context, episode *Episode) error {

	validator := &validate.Validator{}
	validator.Custom(FieldAxis, !episode.Axis.Valid(), "Must be '3d' or '2d'")
	validator.EntryNumber(FieldNumber, episode.Number)
	validator.MaxLen(FieldTitle, episode.Title, constants.MaxTitleLen)
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.Upsert(context, episode)
}

/*
AppendLink records an external viewing link on an episode.

Description: The episode is created on first reference, same contract as
the chapter catalog.

Returns:
  - bool: true when the link was added, false when the URL was already present
  - error: Validation or persistence errors
*/
func (service *Service) AppendLink(context context.Context, axis Axis, number int, l link.Link) (bool, error) {

	validator := &validate.Validator{}
	validator.Custom(FieldAxis, !axis.Valid(), "Must be '3d' or '2d'")
	validator.EntryNumber(FieldNumber, number)
	validator.SourceLabel(FieldSource, l.Source)
	validator.URL(FieldURL, l.URL)
	if err := validator.Err(); err != nil {
		return false, err
	}

	return service.repo.AppendLink(context, axis, number, l)
}

/*
DeleteEpisode removes an episode and its links from the catalog.
*/
func (service *Service) DeleteEpisode(context context.Context, axis Axis, number int) error {
	if !axis.Valid() {
		return validate.RequiredError(FieldAxis, "Must be '3d' or '2d'")
	}
	return service.repo.Delete(context, axis, number)
}

/*
CountEpisodes returns the number of catalogued episodes on one axis.
*/
func (service *Service) CountEpisodes(context context.Context, axis Axis) (int64, error) {
	return service.repo.Count(context, axis)
}
