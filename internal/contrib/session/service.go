// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/tamgioi/internal/contrib/contribution"
	"github.com/taibuivan/tamgioi/internal/core/link"
	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
)

// # Pipeline Interface

// Submitter is the slice of the contribution service a completed form
// feeds into.
type Submitter interface {
	SubmitMapping(context context.Context, userID int64, username string,
		chapters []int, episode3D, episode2D *int) (*contribution.Contribution, error)
	SubmitLink(context context.Context, userID int64, username string,
		target contribution.TargetKind, number int, l link.Link) (*contribution.Contribution, error)
}

// # Service Layer

// Service drives the submission form state machine.
type Service struct {
	repo      Repository
	submitter Submitter
	logger    *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, submitter Submitter, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		submitter: submitter,
		logger:    logger,
	}
}

// Result is what one form interaction produces. Submitted is non-nil only
// when the final answer completed the form; otherwise Prompt carries the
// question the form is now asking.
type Result struct {
	Session   *Session                   `json:"session,omitempty"`
	Prompt    string                     `json:"prompt,omitempty"`
	Submitted *contribution.Contribution `json:"submitted,omitempty"`
}

// # Form Operations

/*
Start opens a fresh submission form, discarding any form the user already
had in flight.

Parameters:
  - context: context.Context
  - userID: int64
  - username: string (display name snapshot)

Returns:
  - *Session: The new form, positioned at the kind question
  - error: Storage failures
*/
func (service *Service) Start(context context.Context, userID int64, username string) (*Session, error) {

	now := time.Now().UTC()
	s := &Session{
		UserID:    userID,
		Username:  username,
		State:     StateChooseKind,
		StartedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Save(context, s); err != nil {
		return nil, err
	}

	return s, nil
}

/*
Current returns the user's in-progress form.

Returns:
  - *Session: The form
  - error: NotFound when the user has none
*/
func (service *Service) Current(context context.Context, userID int64) (*Session, error) {
	s, err := service.repo.Find(context, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.NotFound("Session")
	}
	return s, nil
}

/*
Cancel discards the user's form. Cancelling when no form exists is a
no-op.
*/
func (service *Service) Cancel(context context.Context, userID int64) error {
	return service.repo.Delete(context, userID)
}

/*
Input feeds one answer into the form.

Description: Invalid input returns a validation error and leaves the
form exactly where it was; the user answers the same question again. The
final answer auto-submits the draft into the moderated pipeline and the
form is deleted. If the pipeline itself rejects the draft the form
survives at its last step, so the user can correct the offending answer.

Parameters:
  - context: context.Context
  - userID: int64
  - text: string (the raw answer)

Returns:
  - *Result: The advanced form, or the created contribution
  - error: NotFound (no form), validation or submission errors
*/
func (service *Service) Input(context context.Context, userID int64, text string) (*Result, error) {

	s, err := service.Current(context, userID)
	if err != nil {
		return nil, err
	}

	answer := strings.TrimSpace(text)

	switch s.State {

	case StateChooseKind:
		switch strings.ToLower(answer) {
		case string(contribution.KindMapping):
			s.Draft.Kind = contribution.KindMapping
			s.State = StateMappingEpisode3D
		case string(contribution.KindLink):
			s.Draft.Kind = contribution.KindLink
			s.State = StateLinkTarget
		default:
			return nil, validate.RequiredError("kind", "Reply 'mapping' or 'link'")
		}

	case StateMappingEpisode3D:
		if !strings.EqualFold(answer, SkipKeyword) {
			number, err := validate.ParseEntryNumber("episode_3d", answer)
			if err != nil {
				return nil, err
			}
			s.Draft.Episode3D = &number
		}
		s.State = StateMappingChapters

	case StateMappingChapters:
		if !strings.EqualFold(answer, SkipKeyword) {
			chapters, err := validate.ParseChapterList("chapters", answer)
			if err != nil {
				return nil, err
			}
			s.Draft.Chapters = chapters
		}
		s.State = StateMappingEpisode2D

	case StateMappingEpisode2D:
		if !strings.EqualFold(answer, SkipKeyword) {
			number, err := validate.ParseEntryNumber("episode_2d", answer)
			if err != nil {
				return nil, err
			}
			s.Draft.Episode2D = &number
		} else if s.Draft.Episode3D == nil {
			// Both episodes skipped would produce an unanchored mapping.
			return nil, validate.RequiredError("episode_2d",
				"At least one episode is required; reply a number")
		}
		return service.complete(context, s)

	case StateLinkTarget:
		target := contribution.TargetKind(strings.ToLower(answer))
		if !target.Valid() {
			return nil, validate.RequiredError("target",
				"Reply 'chapter', 'episode_3d' or 'episode_2d'")
		}
		s.Draft.Target = target
		s.State = StateLinkNumber

	case StateLinkNumber:
		number, err := validate.ParseEntryNumber("number", answer)
		if err != nil {
			return nil, err
		}
		s.Draft.Number = number
		s.State = StateLinkSource

	case StateLinkSource:
		validator := &validate.Validator{}
		validator.SourceLabel("source", answer)
		if err := validator.Err(); err != nil {
			return nil, err
		}
		s.Draft.Source = answer
		s.State = StateLinkURL

	case StateLinkURL:
		if !validate.IsAbsoluteURL(answer) {
			return nil, validate.RequiredError("url", "Must be an absolute http(s) URL")
		}
		s.Draft.URL = answer
		return service.complete(context, s)

	default:
		return nil, apperr.Internal(fmt.Errorf("session: unknown state %q", s.State))
	}

	s.UpdatedAt = time.Now().UTC()
	if err := service.repo.Save(context, s); err != nil {
		return nil, err
	}

	return &Result{Session: s, Prompt: s.Prompt()}, nil
}

// complete submits the finished draft and deletes the form.
func (service *Service) complete(context context.Context, s *Session) (*Result, error) {

	var submitted *contribution.Contribution
	var err error

	switch s.Draft.Kind {
	case contribution.KindMapping:
		submitted, err = service.submitter.SubmitMapping(context, s.UserID, s.Username,
			s.Draft.Chapters, s.Draft.Episode3D, s.Draft.Episode2D)
	case contribution.KindLink:
		submitted, err = service.submitter.SubmitLink(context, s.UserID, s.Username,
			s.Draft.Target, s.Draft.Number,
			link.Link{Source: s.Draft.Source, URL: s.Draft.URL})
	default:
		err = apperr.Internal(fmt.Errorf("session: unknown draft kind %q", s.Draft.Kind))
	}
	if err != nil {
		return nil, err
	}

	if err := service.repo.Delete(context, s.UserID); err != nil {
		// The submission already landed; a stale form is only cosmetic.
		service.logger.Warn("failed to delete completed session",
			"user_id", s.UserID, "error", err)
	}

	return &Result{Submitted: submitted}, nil
}
