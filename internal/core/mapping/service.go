// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mapping

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/internal/platform/constants"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
	"github.com/taibuivan/tamgioi/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for chapter/episode mappings,
// including the merge-on-collision policy.
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

// # Mapping Operations

/*
GetMapping retrieves a mapping by its identifier.

Returns:
  - *Mapping: The hydrated domain entity
  - error: NotFound when no such mapping exists
*/
func (service *Service) GetMapping(context context.Context, id string) (*Mapping, error) {
	mapping, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return nil, apperr.NotFound("Mapping")
	}
	return mapping, nil
}

/*
ListMappings returns a page of mappings, newest episodes first.
*/
func (service *Service) ListMappings(context context.Context, limit, offset int) ([]*Mapping, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
UpsertMapping records a chapter/episode cross-reference, merging into an
existing mapping when either episode is already mapped.

Description: The existing record is located by the 3D episode first, then
the 2D episode. On a merge the chapter set is overwritten with the new
submission (the newer set is assumed to be a correction), and any episode
the submission supplies replaces the stored value; a nil episode field
never clears a populated one. The chapter list may be empty: a pure
episode-to-episode correspondence is valid before chapters are known.

Parameters:
  - context: context.Context
  - chapters: []int (sorted, deduplicated chapter numbers; may be empty)
  - episode3D: *int (nil when unknown)
  - episode2D: *int (nil when unknown)

Returns:
  - *Mapping: The inserted or merged record
  - bool: true when the submission merged into an existing mapping
  - error: Validation or persistence errors
*/
func (service *Service) UpsertMapping(context context.Context, chapters []int, episode3D, episode2D *int) (*Mapping, bool, error) {

	if err := validateMappingInput(chapters, episode3D, episode2D); err != nil {
		return nil, false, err
	}

	// A nil slice would reach the store as NULL rather than an empty array.
	if chapters == nil {
		chapters = []int{}
	}

	existing, err := service.findCollision(context, episode3D, episode2D)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		mapping := &Mapping{
			ID:        uuidv7.New(),
			Chapters:  chapters,
			Episode3D: episode3D,
			Episode2D: episode2D,
		}
		if err := service.repo.Insert(context, mapping); err != nil {
			return nil, false, err
		}
		return mapping, false, nil
	}

	// Merge: chapters are replaced, and any episode the submission
	// supplies replaces the stored value. A nil field never clears one.
	existing.Chapters = chapters
	if episode3D != nil {
		existing.Episode3D = episode3D
	}
	if episode2D != nil {
		existing.Episode2D = episode2D
	}

	if err := service.repo.Update(context, existing); err != nil {
		return nil, false, err
	}

	return existing, true, nil
}

/*
DeleteMapping removes a mapping record.
*/
func (service *Service) DeleteMapping(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}

/*
CountMappings returns the total number of mapping records.
*/
func (service *Service) CountMappings(context context.Context) (int64, error) {
	return service.repo.Count(context)
}

// findCollision locates the mapping a new submission must merge into, if
// any. The 3D axis is probed first so a submission carrying both episodes
// merges deterministically.
func (service *Service) findCollision(context context.Context, episode3D, episode2D *int) (*Mapping, error) {
	if episode3D != nil {
		existing, err := service.repo.FindByEpisode(context, episode.Axis3D, *episode3D)
		if err != nil || existing != nil {
			return existing, err
		}
	}
	if episode2D != nil {
		return service.repo.FindByEpisode(context, episode.Axis2D, *episode2D)
	}
	return nil, nil
}

func validateMappingInput(chapters []int, episode3D, episode2D *int) error {

	validator := &validate.Validator{}
	validator.Custom(FieldChapters, len(chapters) > constants.MaxChaptersPerMapping,
		"Too many chapters in one mapping")
	for _, number := range chapters {
		if number < constants.MinEntryNumber || number > constants.MaxEntryNumber {
			validator.Custom(FieldChapters, true, "Chapter number out of range")
			break
		}
	}

	if episode3D == nil && episode2D == nil {
		validator.Custom(FieldEpisode3D, true, "At least one episode reference is required")
	}
	if episode3D != nil {
		validator.EntryNumber(FieldEpisode3D, *episode3D)
	}
	if episode2D != nil {
		validator.EntryNumber(FieldEpisode2D, *episode2D)
	}

	return validator.Err()
}
