// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tamgioi/internal/core/link"
	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/internal/platform/constants"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for novel chapters.
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

// # Chapter Operations

/*
GetChapter retrieves metadata for a single chapter by its number.

Parameters:
  - context: context.Context
  - number: int (chapter number)

Returns:
  - *Chapter: The hydrated domain entity
  - error: NotFound when no such chapter exists
*/
func (service *Service) GetChapter(context context.Context, number int) (*Chapter, error) {
	chapter, err := service.repo.Find(context, number)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, apperr.NotFound("Chapter")
	}
	return chapter, nil
}

/*
UpsertChapter creates a chapter or refreshes the title of an existing one.

Description: Link lists are owned by the contribution pipeline; an upsert
never replaces them. Any links carried on the input are ignored for
existing records.

Parameters:
  - context: context.Context
  - chapter: *Chapter (number and optional title)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) UpsertChapter(context context.Context, chapter *Chapter) error {

	validator := &validate.Validator{}
	validator.EntryNumber(FieldNumber, chapter.Number)
	validator.MaxLen(FieldTitle, chapter.Title, constants.MaxTitleLen)
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.Upsert(context, chapter)
}

/*
AppendLink records an external reading link on a chapter.

Description: The chapter is created on first reference. The append is
atomic with its duplicate check, so two reviewers approving the same
link concurrently produce exactly one copy.

Parameters:
  - context: context.Context
  - number: int (chapter number)
  - l: link.Link (source label and absolute URL)

Returns:
  - bool: true when the link was added, false when the URL was already present
  - error: Validation or persistence errors
*/
func (service *Service) AppendLink(context context.Context, number int, l link.Link) (bool, error) {

	validator := &validate.Validator{}
	validator.EntryNumber(FieldNumber, number)
	validator.SourceLabel(FieldSource, l.Source)
	validator.URL(FieldURL, l.URL)
	if err := validator.Err(); err != nil {
		return false, err
	}

	return service.repo.AppendLink(context, number, l)
}

/*
DeleteChapter removes a chapter and its links from the catalog.

Parameters:
  - context: context.Context
  - number: int (chapter number)

Returns:
  - error: NotFound when no such chapter exists
*/
func (service *Service) DeleteChapter(context context.Context, number int) error {
	return service.repo.Delete(context, number)
}

/*
CountChapters returns the total number of catalogued chapters.
*/
func (service *Service) CountChapters(context context.Context) (int64, error) {
	return service.repo.Count(context)
}
