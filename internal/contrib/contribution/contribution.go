// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package contribution implements the moderated pipeline between user
submissions and the catalog.

# Lifecycle

A contribution is born pending, then reviewed exactly once: approval
merges it into the catalog and flips its status, rejection only flips
the status. The flip is conditional on the record still being pending,
so two moderators racing on the same submission produce exactly one
catalog mutation. A submission whose merge turns out to be a no-op
(duplicate link URL) stays pending and the reviewer is told why.
*/
package contribution

import (
	"encoding/json"
	"time"

	"github.com/taibuivan/tamgioi/internal/core/link"
)

// Kind discriminates the two payload shapes a contribution can carry.
type Kind string

const (
	// KindMapping proposes a chapter/episode cross-reference.
	KindMapping Kind = "mapping"

	// KindLink proposes an external link for a chapter or episode.
	KindLink Kind = "link"
)

// Valid reports whether the kind is known.
func (k Kind) Valid() bool {
	return k == KindMapping || k == KindLink
}

// Status is the review state of a contribution.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// TargetKind says what a link contribution points at.
type TargetKind string

const (
	TargetChapter   TargetKind = "chapter"
	TargetEpisode3D TargetKind = "episode_3d"
	TargetEpisode2D TargetKind = "episode_2d"
)

// Valid reports whether the target kind is known.
func (t TargetKind) Valid() bool {
	return t == TargetChapter || t == TargetEpisode3D || t == TargetEpisode2D
}

// MappingPayload is the body of a KindMapping contribution.
type MappingPayload struct {
	Chapters  []int `json:"chapters"`
	Episode3D *int  `json:"episode_3d,omitempty"`
	Episode2D *int  `json:"episode_2d,omitempty"`
}

// LinkPayload is the body of a KindLink contribution.
type LinkPayload struct {
	Target TargetKind `json:"target"`
	Number int        `json:"number"`
	Link   link.Link  `json:"link"`
}

// Contribution is one user submission moving through review.
//
// Payload holds the kind-specific body as raw JSON; use [MappingBody] or
// [LinkBody] to decode it according to Kind.
type Contribution struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"user_id"`
	Username    string          `json:"username,omitempty"`
	Kind        Kind            `json:"kind"`
	Payload     json.RawMessage `json:"payload"`
	Status      Status          `json:"status"`
	Note        string          `json:"note,omitempty"`
	SubmittedAt time.Time       `json:"submitted_at"`
	ReviewedAt  *time.Time      `json:"reviewed_at,omitempty"`
	ReviewedBy  *int64          `json:"reviewed_by,omitempty"`
}

// MappingBody decodes the payload of a KindMapping contribution.
func (c *Contribution) MappingBody() (*MappingPayload, error) {
	var payload MappingPayload
	if err := json.Unmarshal(c.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// LinkBody decodes the payload of a KindLink contribution.
func (c *Contribution) LinkBody() (*LinkPayload, error) {
	var payload LinkPayload
	if err := json.Unmarshal(c.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ContributorRank is one row of the top-contributors leaderboard.
type ContributorRank struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	Approved int64  `json:"approved"`
}

// Field identifiers used in validation errors.
const (
	FieldKind   = "kind"
	FieldTarget = "target"
	FieldNumber = "number"
	FieldSource = "source"
	FieldURL    = "url"
	FieldNote   = "note"
)
