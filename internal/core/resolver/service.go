// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resolver

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tamgioi/internal/core/chapter"
	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/core/link"
	"github.com/taibuivan/tamgioi/internal/core/mapping"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
)

// # Service Layer

// Service composes the catalog stores into cross-reference answers.
type Service struct {
	chapters ChapterSource
	episodes EpisodeSource
	mappings MappingSource
	logger   *slog.Logger
}

// NewService constructs a new [Service] over its read sources.
func NewService(chapters ChapterSource, episodes EpisodeSource, mappings MappingSource, logger *slog.Logger) *Service {
	return &Service{
		chapters: chapters,
		episodes: episodes,
		mappings: mappings,
		logger:   logger,
	}
}

// # Resolution Operations

/*
ResolveChapter answers "which episodes correspond to this chapter?".

Description: A chapter may appear in several mappings (a long chapter can
span episode boundaries); every matching mapping becomes one entry. An
empty resolution means the chapter is unmapped.

Parameters:
  - context: context.Context
  - number: int (chapter number)

Returns:
  - *Resolution: The hydrated cross-reference, possibly with no entries
  - error: Validation or retrieval errors
*/
func (service *Service) ResolveChapter(context context.Context, number int) (*Resolution, error) {

	validator := &validate.Validator{}
	validator.EntryNumber("number", number)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	matches, err := service.mappings.FindByChapter(context, number)
	if err != nil {
		return nil, err
	}

	resolution := &Resolution{
		Query:   Query{Kind: "chapter", Number: number},
		Entries: []Entry{},
	}

	stored, err := service.chapters.FindMany(context, []int{number})
	if err != nil {
		return nil, err
	}
	switch {
	case len(stored) > 0:
		resolution.Chapter = &ChapterView{
			Number: stored[0].Number,
			Title:  stored[0].Title,
			Links:  stored[0].Links,
		}
	case len(matches) > 0:
		resolution.Chapter = &ChapterView{
			Number:      number,
			Links:       []link.Link{},
			Placeholder: true,
		}
	}

	for _, m := range matches {
		entry, err := service.hydrate(context, m)
		if err != nil {
			return nil, err
		}
		resolution.Entries = append(resolution.Entries, entry)
	}

	return resolution, nil
}

/*
ResolveEpisode answers "which chapters and counterpart episode correspond
to this episode?".

Description: Episode references are unique per axis, so the resolution
carries at most one entry. An empty resolution means the episode is
unmapped.

Parameters:
  - context: context.Context
  - axis: episode.Axis
  - number: int

Returns:
  - *Resolution: The hydrated cross-reference, possibly with no entries
  - error: Validation or retrieval errors
*/
func (service *Service) ResolveEpisode(context context.Context, axis episode.Axis, number int) (*Resolution, error) {

	validator := &validate.Validator{}
	validator.Custom("axis", !axis.Valid(), "Must be '3d' or '2d'")
	validator.EntryNumber("number", number)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	resolution := &Resolution{
		Query:   Query{Kind: string(axis), Number: number},
		Entries: []Entry{},
	}

	match, err := service.mappings.FindByEpisode(context, axis, number)
	if err != nil {
		return nil, err
	}

	stored, err := service.episodes.Find(context, axis, number)
	if err != nil {
		return nil, err
	}
	switch {
	case stored != nil:
		resolution.Episode = &EpisodeView{
			Axis:   stored.Axis,
			Number: stored.Number,
			Title:  stored.Title,
			Links:  stored.Links,
		}
	case match != nil:
		resolution.Episode = &EpisodeView{
			Axis:        axis,
			Number:      number,
			Links:       []link.Link{},
			Placeholder: true,
		}
	}

	if match == nil {
		return resolution, nil
	}

	entry, err := service.hydrate(context, match)
	if err != nil {
		return nil, err
	}
	resolution.Entries = append(resolution.Entries, entry)

	return resolution, nil
}

/*
FullList returns a hydrated page of the whole catalog, newest episodes
first, plus the total mapping count.
*/
func (service *Service) FullList(context context.Context, limit, offset int) ([]Entry, int, error) {

	matches, total, err := service.mappings.List(context, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]Entry, 0, len(matches))
	for _, m := range matches {
		entry, err := service.hydrate(context, m)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

// # Hydration

// hydrate expands one mapping into chapter and episode views, synthesizing
// placeholders for references without catalog records.
func (service *Service) hydrate(context context.Context, m *mapping.Mapping) (Entry, error) {

	entry := Entry{MappingID: m.ID}

	stored, err := service.chapters.FindMany(context, m.Chapters)
	if err != nil {
		return Entry{}, err
	}

	byNumber := make(map[int]*chapter.Chapter, len(stored))
	for _, c := range stored {
		byNumber[c.Number] = c
	}

	entry.Chapters = make([]ChapterView, 0, len(m.Chapters))
	for _, number := range m.Chapters {
		if c, ok := byNumber[number]; ok {
			entry.Chapters = append(entry.Chapters, ChapterView{
				Number: c.Number,
				Title:  c.Title,
				Links:  c.Links,
			})
			continue
		}
		entry.Chapters = append(entry.Chapters, ChapterView{
			Number:      number,
			Links:       []link.Link{},
			Placeholder: true,
		})
	}

	if m.Episode3D != nil {
		view, err := service.episodeView(context, episode.Axis3D, *m.Episode3D)
		if err != nil {
			return Entry{}, err
		}
		entry.Episode3D = view
	}
	if m.Episode2D != nil {
		view, err := service.episodeView(context, episode.Axis2D, *m.Episode2D)
		if err != nil {
			return Entry{}, err
		}
		entry.Episode2D = view
	}

	return entry, nil
}

func (service *Service) episodeView(context context.Context, axis episode.Axis, number int) (*EpisodeView, error) {
	stored, err := service.episodes.Find(context, axis, number)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return &EpisodeView{
			Axis:        axis,
			Number:      number,
			Links:       []link.Link{},
			Placeholder: true,
		}, nil
	}
	return &EpisodeView{
		Axis:   stored.Axis,
		Number: stored.Number,
		Title:  stored.Title,
		Links:  stored.Links,
	}, nil
}
