// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin carries the moderation-only operations that span more than
one domain: catalog statistics and user broadcasts.
*/
package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/tamgioi/internal/contrib/contribution"
	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
	"github.com/taibuivan/tamgioi/internal/users/account"
)

// # Source Interfaces

// CatalogCounts is the slice of the catalog services statistics read.
type CatalogCounts interface {
	CountChapters(context context.Context) (int64, error)
}

// EpisodeCounts counts episode records per axis.
type EpisodeCounts interface {
	CountEpisodes(context context.Context, axis episode.Axis) (int64, error)
}

// MappingCounts counts mapping records.
type MappingCounts interface {
	CountMappings(context context.Context) (int64, error)
}

// PipelineCounts is the slice of the contribution store statistics read.
type PipelineCounts interface {
	CountByStatus(context context.Context, status contribution.Status) (int64, error)
}

// UserDirectory is the slice of the account service the admin surface
// reads for statistics and broadcast recipients.
type UserDirectory interface {
	CountAccounts(context context.Context) (int64, error)
	CountActiveSince(context context.Context, since time.Time) (int64, error)
	ListAccounts(context context.Context, limit, offset int) ([]*account.Account, int, error)
}

// # Service Layer

// Service implements the cross-domain moderation operations.
type Service struct {
	chapters CatalogCounts
	episodes EpisodeCounts
	mappings MappingCounts
	pipeline PipelineCounts
	users    UserDirectory
	notifier Notifier
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(chapters CatalogCounts, episodes EpisodeCounts, mappings MappingCounts,
	pipeline PipelineCounts, users UserDirectory, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		chapters: chapters,
		episodes: episodes,
		mappings: mappings,
		pipeline: pipeline,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// Statistics is the operational snapshot shown to moderators.
type Statistics struct {
	Chapters             int64 `json:"chapters"`
	Episodes3D           int64 `json:"episodes_3d"`
	Episodes2D           int64 `json:"episodes_2d"`
	Mappings             int64 `json:"mappings"`
	PendingContributions int64 `json:"pending_contributions"`
	ApprovedTotal        int64 `json:"approved_total"`
	Users                int64 `json:"users"`
	ActiveToday          int64 `json:"active_today"`
	ActiveLastWeek       int64 `json:"active_last_week"`
	ActiveLastMonth      int64 `json:"active_last_month"`
}

// BroadcastReport tallies one fan-out run.
type BroadcastReport struct {
	Recipients int `json:"recipients"`
	Delivered  int `json:"delivered"`
	Failed     int `json:"failed"`
}

// # Operations

/*
GetStatistics assembles the catalog and community snapshot.
*/
func (service *Service) GetStatistics(context context.Context) (*Statistics, error) {

	stats := &Statistics{}
	var err error

	if stats.Chapters, err = service.chapters.CountChapters(context); err != nil {
		return nil, err
	}
	if stats.Episodes3D, err = service.episodes.CountEpisodes(context, episode.Axis3D); err != nil {
		return nil, err
	}
	if stats.Episodes2D, err = service.episodes.CountEpisodes(context, episode.Axis2D); err != nil {
		return nil, err
	}
	if stats.Mappings, err = service.mappings.CountMappings(context); err != nil {
		return nil, err
	}
	if stats.PendingContributions, err = service.pipeline.CountByStatus(context, contribution.StatusPending); err != nil {
		return nil, err
	}
	if stats.ApprovedTotal, err = service.pipeline.CountByStatus(context, contribution.StatusApproved); err != nil {
		return nil, err
	}
	if stats.Users, err = service.users.CountAccounts(context); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if stats.ActiveToday, err = service.users.CountActiveSince(context, todayStart); err != nil {
		return nil, err
	}
	if stats.ActiveLastWeek, err = service.users.CountActiveSince(context, now.AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	if stats.ActiveLastMonth, err = service.users.CountActiveSince(context, now.AddDate(0, 0, -30)); err != nil {
		return nil, err
	}

	return stats, nil
}

/*
Broadcast sends a message to every known user.

Description: Delivery is best-effort per recipient: one failed delivery
is logged and counted, never aborts the run. The report tells the
moderator how it went.

Parameters:
  - context: context.Context
  - message: string

Returns:
  - *BroadcastReport: Recipient, delivered and failed tallies
  - error: Validation errors or directory failures
*/
func (service *Service) Broadcast(context context.Context, message string) (*BroadcastReport, error) {

	validator := &validate.Validator{}
	validator.Required("message", message)
	validator.MaxLen("message", message, maxBroadcastLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	report := &BroadcastReport{}

	offset := 0
	for {
		recipients, _, err := service.users.ListAccounts(context, broadcastPageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(recipients) == 0 {
			break
		}

		for _, recipient := range recipients {
			report.Recipients++
			if err := service.notifier.Notify(context, recipient.UserID, message); err != nil {
				report.Failed++
				service.logger.Warn("broadcast delivery failed",
					slog.Int64("user_id", recipient.UserID), slog.Any("error", err))
				continue
			}
			report.Delivered++
		}

		offset += len(recipients)
	}

	return report, nil
}

const (
	// broadcastPageSize bounds how many recipients are held in memory at once.
	broadcastPageSize = 200

	// maxBroadcastLen keeps messages inside typical messenger limits.
	maxBroadcastLen = 4000
)
