// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package resolver answers the catalog's central question: "given this
chapter or episode, what corresponds to it on the other axes?"

# Architecture

The resolver is a read-only composition layer over the chapter, episode
and mapping stores. It never mutates the catalog. Narrow source
interfaces keep it decoupled from the concrete repositories and easy to
exercise with in-memory fakes.

# Placeholders

A mapping may reference a chapter or episode that has no catalog record
yet (nobody has contributed links for it). The resolver synthesizes a
placeholder view for those references rather than dropping them, so a
cross-reference is never silently incomplete. Placeholder views carry
the number, an empty link list and Placeholder = true; they are never
persisted.
*/
package resolver

import (
	"context"

	"github.com/taibuivan/tamgioi/internal/core/chapter"
	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/core/link"
	"github.com/taibuivan/tamgioi/internal/core/mapping"
)

// # Source Interfaces

// ChapterSource is the slice of the chapter store the resolver reads.
type ChapterSource interface {
	FindMany(context context.Context, numbers []int) ([]*chapter.Chapter, error)
}

// EpisodeSource is the slice of the episode store the resolver reads.
type EpisodeSource interface {
	Find(context context.Context, axis episode.Axis, number int) (*episode.Episode, error)
}

// MappingSource is the slice of the mapping store the resolver reads.
type MappingSource interface {
	FindByChapter(context context.Context, chapterNumber int) ([]*mapping.Mapping, error)
	FindByEpisode(context context.Context, axis episode.Axis, number int) (*mapping.Mapping, error)
	List(context context.Context, limit, offset int) ([]*mapping.Mapping, int, error)
}

// # View Types

// ChapterView is a chapter as presented in a resolution.
type ChapterView struct {
	Number      int         `json:"number"`
	Title       string      `json:"title,omitempty"`
	Links       []link.Link `json:"links"`
	Placeholder bool        `json:"placeholder"`
}

// EpisodeView is an episode as presented in a resolution.
type EpisodeView struct {
	Axis        episode.Axis `json:"axis"`
	Number      int          `json:"number"`
	Title       string       `json:"title,omitempty"`
	Links       []link.Link  `json:"links"`
	Placeholder bool         `json:"placeholder"`
}

// Entry is one fully hydrated mapping inside a resolution.
type Entry struct {
	MappingID string        `json:"mapping_id"`
	Chapters  []ChapterView `json:"chapters"`
	Episode3D *EpisodeView  `json:"episode_3d,omitempty"`
	Episode2D *EpisodeView  `json:"episode_2d,omitempty"`
}

// Query restates what was asked, echoed back in the resolution.
type Query struct {
	Kind   string `json:"kind"` // "chapter", "3d" or "2d"
	Number int    `json:"number"`
}

// Resolution is the full answer to a cross-reference query.
//
// Exactly one of Chapter or Episode carries the queried entry's own view,
// depending on the query kind. It is nil only when the entry has neither a
// catalog record nor a mapping. An empty Entries slice means the queried
// entry is not referenced by any mapping yet; that is a normal answer,
// not an error.
type Resolution struct {
	Query   Query        `json:"query"`
	Chapter *ChapterView `json:"chapter,omitempty"`
	Episode *EpisodeView `json:"episode,omitempty"`
	Entries []Entry      `json:"entries"`
}
