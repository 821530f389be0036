// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contribution

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/core/link"
	"github.com/taibuivan/tamgioi/internal/core/mapping"
	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/internal/platform/constants"
	"github.com/taibuivan/tamgioi/internal/platform/ctxutil"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
	"github.com/taibuivan/tamgioi/pkg/uuidv7"
)

// # Catalog Interfaces

// MappingCatalog is the slice of the mapping service the pipeline drives.
type MappingCatalog interface {
	UpsertMapping(context context.Context, chapters []int, episode3D, episode2D *int) (*mapping.Mapping, bool, error)
}

// ChapterCatalog is the slice of the chapter service the pipeline drives.
type ChapterCatalog interface {
	AppendLink(context context.Context, number int, l link.Link) (bool, error)
}

// EpisodeCatalog is the slice of the episode service the pipeline drives.
type EpisodeCatalog interface {
	AppendLink(context context.Context, axis episode.Axis, number int, l link.Link) (bool, error)
}

// Rewarder credits contributors for approved submissions.
type Rewarder interface {
	AddExp(context context.Context, userID int64, amount int) error
}

// # Service Layer

// Service runs the moderated pipeline: submissions in, reviews out,
// catalog mutations only on approval.
type Service struct {
	repo     Repository
	mappings MappingCatalog
	chapters ChapterCatalog
	episodes EpisodeCatalog
	rewarder Rewarder
	logger   *slog.Logger
}

// NewService constructs a new [Service] wired to the catalog services.
func NewService(repo Repository, mappings MappingCatalog, chapters ChapterCatalog,
	episodes EpisodeCatalog, rewarder Rewarder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		mappings: mappings,
		chapters: chapters,
		episodes: episodes,
		rewarder: rewarder,
		logger:   logger,
	}
}

// # Submission Operations

/*
SubmitMapping records a pending mapping proposal.

Description: Validation happens at submission time, not review time: a
proposal that cannot possibly merge (no episode reference, out-of-range
numbers) is rejected immediately and no record is created.

Parameters:
  - context: context.Context
  - userID: int64 (submitting user)
  - username: string (display name snapshot)
  - chapters: []int (sorted, deduplicated chapter numbers; may be empty)
  - episode3D: *int (nil when unknown)
  - episode2D: *int (nil when unknown)

Returns:
  - *Contribution: The pending record
  - error: Validation or persistence errors
*/
func (service *Service) SubmitMapping(context context.Context, userID int64, username string,
	chapters []int, episode3D, episode2D *int) (*Contribution, error) {

	validator := &validate.Validator{}
	validator.Custom("chapters", len(chapters) > constants.MaxChaptersPerMapping,
		"Too many chapters in one mapping")
	for _, number := range chapters {
		if number < constants.MinEntryNumber || number > constants.MaxEntryNumber {
			validator.Custom("chapters", true, "Chapter number out of range")
			break
		}
	}
	validator.Custom("episode_3d", episode3D == nil && episode2D == nil,
		"At least one episode reference is required")
	if episode3D != nil {
		validator.EntryNumber("episode_3d", *episode3D)
	}
	if episode2D != nil {
		validator.EntryNumber("episode_2d", *episode2D)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(MappingPayload{
		Chapters:  chapters,
		Episode3D: episode3D,
		Episode2D: episode2D,
	})
	if err != nil {
		return nil, fmt.Errorf("contribution: failed to marshal mapping payload: %w", err)
	}

	return service.insert(context, userID, username, KindMapping, payload)
}

/*
SubmitLink records a pending external-link proposal.

Parameters:
  - context: context.Context
  - userID: int64 (submitting user)
  - username: string (display name snapshot)
  - target: TargetKind (chapter, episode_3d or episode_2d)
  - number: int (target entry number)
  - l: link.Link (source label and absolute URL)

Returns:
  - *Contribution: The pending record
  - error: Validation or persistence errors
*/
func (service *Service) SubmitLink(context context.Context, userID int64, username string,
	target TargetKind, number int, l link.Link) (*Contribution, error) {

	validator := &validate.Validator{}
	validator.Custom(FieldTarget, !target.Valid(), "Unknown link target")
	validator.EntryNumber(FieldNumber, number)
	validator.SourceLabel(FieldSource, l.Source)
	validator.URL(FieldURL, l.URL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(LinkPayload{Target: target, Number: number, Link: l})
	if err != nil {
		return nil, fmt.Errorf("contribution: failed to marshal link payload: %w", err)
	}

	return service.insert(context, userID, username, KindLink, payload)
}

func (service *Service) insert(context context.Context, userID int64, username string,
	kind Kind, payload []byte) (*Contribution, error) {

	contribution := &Contribution{
		ID:       uuidv7.New(),
		UserID:   userID,
		Username: username,
		Kind:     kind,
		Payload:  payload,
		Status:   StatusPending,
	}

	if err := service.repo.Insert(context, contribution); err != nil {
		return nil, err
	}

	return contribution, nil
}

// # Review Operations

/*
Approve merges a pending contribution into the catalog, then flips its
status.

Description: Merge first, flip second. If the merge fails the record
stays pending and can be retried; if the flip loses a race with another
reviewer the earlier merge was idempotent, so the catalog is still
consistent. A link whose URL is already catalogued surfaces as Duplicate
and the record stays pending for the reviewer to reject instead.

The contributor reward is best-effort: a failure there is logged and
never rolls back the approval.

Parameters:
  - context: context.Context
  - id: string (contribution ID)
  - reviewerID: int64
  - note: string (optional reviewer note)

Returns:
  - *Contribution: The approved record
  - error: NotFound, Conflict (already processed), Duplicate, or merge errors
*/
func (service *Service) Approve(context context.Context, id string, reviewerID int64, note string) (*Contribution, error) {

	contribution, err := service.loadPending(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.merge(context, contribution); err != nil {
		return nil, err
	}

	flipped, err := service.repo.MarkReviewed(context, id, StatusApproved, reviewerID, note)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return nil, apperr.Conflict("Contribution already processed")
	}

	if err := service.rewarder.AddExp(context, contribution.UserID, constants.ContributionReward); err != nil {
		ctxutil.GetLogger(context).Warn("failed to credit contributor",
			"user_id", contribution.UserID, "contribution_id", id, "error", err)
	}

	contribution.Status = StatusApproved
	contribution.Note = note

	return contribution, nil
}

/*
Reject flips a pending contribution to rejected without touching the
catalog.

Returns:
  - *Contribution: The rejected record
  - error: NotFound or Conflict (already processed)
*/
func (service *Service) Reject(context context.Context, id string, reviewerID int64, note string) (*Contribution, error) {

	contribution, err := service.loadPending(context, id)
	if err != nil {
		return nil, err
	}

	flipped, err := service.repo.MarkReviewed(context, id, StatusRejected, reviewerID, note)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return nil, apperr.Conflict("Contribution already processed")
	}

	contribution.Status = StatusRejected
	contribution.Note = note

	return contribution, nil
}

func (service *Service) loadPending(context context.Context, id string) (*Contribution, error) {
	contribution, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if contribution == nil {
		return nil, apperr.NotFound("Contribution")
	}
	if contribution.Status != StatusPending {
		return nil, apperr.Conflict(fmt.Sprintf("Contribution already %s", contribution.Status))
	}
	return contribution, nil
}

// merge applies the contribution's payload to the catalog.
func (service *Service) merge(context context.Context, contribution *Contribution) error {
	switch contribution.Kind {

	case KindMapping:
		payload, err := contribution.MappingBody()
		if err != nil {
			return apperr.Internal(fmt.Errorf("contribution: corrupt mapping payload: %w", err))
		}
		_, _, err = service.mappings.UpsertMapping(context,
			payload.Chapters, payload.Episode3D, payload.Episode2D)
		return err

	case KindLink:
		payload, err := contribution.LinkBody()
		if err != nil {
			return apperr.Internal(fmt.Errorf("contribution: corrupt link payload: %w", err))
		}

		var added bool
		switch payload.Target {
		case TargetChapter:
			added, err = service.chapters.AppendLink(context, payload.Number, payload.Link)
		case TargetEpisode3D:
			added, err = service.episodes.AppendLink(context, episode.Axis3D, payload.Number, payload.Link)
		case TargetEpisode2D:
			added, err = service.episodes.AppendLink(context, episode.Axis2D, payload.Number, payload.Link)
		default:
			return apperr.Internal(fmt.Errorf("contribution: unknown link target %q", payload.Target))
		}
		if err != nil {
			return err
		}
		if !added {
			return apperr.Duplicate("Link URL is already catalogued")
		}
		return nil

	default:
		return apperr.Internal(fmt.Errorf("contribution: unknown kind %q", contribution.Kind))
	}
}

// # Query Operations

/*
GetContribution retrieves a contribution by its identifier.
*/
func (service *Service) GetContribution(context context.Context, id string) (*Contribution, error) {
	contribution, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if contribution == nil {
		return nil, apperr.NotFound("Contribution")
	}
	return contribution, nil
}

/*
ListPending returns the review queue, newest first.
*/
func (service *Service) ListPending(context context.Context, limit, offset int) ([]*Contribution, int, error) {
	return service.repo.ListByStatus(context, StatusPending, limit, offset)
}

/*
ListByUser returns one user's submission history, newest first.
*/
func (service *Service) ListByUser(context context.Context, userID int64, limit, offset int) ([]*Contribution, int, error) {
	return service.repo.ListByUser(context, userID, limit, offset)
}

/*
TopContributors returns the approved-count leaderboard.
*/
func (service *Service) TopContributors(context context.Context, limit int) ([]ContributorRank, error) {
	if limit <= 0 || limit > constants.MaxLeaderboardSize {
		limit = constants.DefaultLeaderboardSize
	}
	return service.repo.TopContributors(context, limit)
}
