// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resolver_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tamgioi/internal/core/chapter"
	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/core/link"
	"github.com/taibuivan/tamgioi/internal/core/mapping"
	"github.com/taibuivan/tamgioi/internal/core/resolver"
	"github.com/taibuivan/tamgioi/pkg/pointer"
)

// # Fakes

type fakeChapters struct {
	chapters map[int]*chapter.Chapter
}

func (f *fakeChapters) FindMany(_ context.Context, numbers []int) ([]*chapter.Chapter, error) {
	var found []*chapter.Chapter
	for _, number := range numbers {
		if c, ok := f.chapters[number]; ok {
			found = append(found, c)
		}
	}
	return found, nil
}

type fakeEpisodes struct {
	episodes map[string]*episode.Episode
}

func episodeKey(axis episode.Axis, number int) string {
	return fmt.Sprintf("%s:%d", axis, number)
}

func (f *fakeEpisodes) Find(_ context.Context, axis episode.Axis, number int) (*episode.Episode, error) {
	return f.episodes[episodeKey(axis, number)], nil
}

type fakeMappings struct {
	mappings []*mapping.Mapping
}

func (f *fakeMappings) FindByChapter(_ context.Context, chapterNumber int) ([]*mapping.Mapping, error) {
	var found []*mapping.Mapping
	for _, m := range f.mappings {
		if m.Covers(chapterNumber) {
			found = append(found, m)
		}
	}
	return found, nil
}

func (f *fakeMappings) FindByEpisode(_ context.Context, axis episode.Axis, number int) (*mapping.Mapping, error) {
	for _, m := range f.mappings {
		ref := m.Episode3D
		if axis == episode.Axis2D {
			ref = m.Episode2D
		}
		if ref != nil && *ref == number {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMappings) List(_ context.Context, limit, offset int) ([]*mapping.Mapping, int, error) {
	return f.mappings, len(f.mappings), nil
}

func newTestService(chapters *fakeChapters, episodes *fakeEpisodes, mappings *fakeMappings) *resolver.Service {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return resolver.NewService(chapters, episodes, mappings, logger)
}

// # Tests

/*
TestResolveChapter_Unmapped verifies an unmapped chapter yields an empty
resolution rather than an error.
*/
func TestResolveChapter_Unmapped(t *testing.T) {
	service := newTestService(
		&fakeChapters{chapters: map[int]*chapter.Chapter{}},
		&fakeEpisodes{episodes: map[string]*episode.Episode{}},
		&fakeMappings{},
	)

	resolution, err := service.ResolveChapter(context.Background(), 99)

	require.NoError(t, err)
	assert.Equal(t, "chapter", resolution.Query.Kind)
	assert.Nil(t, resolution.Chapter)
	assert.Empty(t, resolution.Entries)
}

/*
TestResolveChapter_Placeholders verifies mapped-but-uncatalogued chapters
and episodes are synthesized as placeholders instead of dropped.
*/
func TestResolveChapter_Placeholders(t *testing.T) {
	// Mapping covers chapters 50-51 and 3D episode 7; only chapter 50 has
	// a catalog record, and episode 7 has none.
	chapters := &fakeChapters{chapters: map[int]*chapter.Chapter{
		50: {Number: 50, Title: "Stored", Links: []link.Link{{Source: "Readhub", URL: "https://example.com/c/50"}}},
	}}
	episodes := &fakeEpisodes{episodes: map[string]*episode.Episode{}}
	mappings := &fakeMappings{mappings: []*mapping.Mapping{
		{ID: "m-1", Chapters: []int{50, 51}, Episode3D: pointer.To(7)},
	}}
	service := newTestService(chapters, episodes, mappings)

	resolution, err := service.ResolveChapter(context.Background(), 50)

	require.NoError(t, err)

	require.NotNil(t, resolution.Chapter)
	assert.False(t, resolution.Chapter.Placeholder)
	assert.Equal(t, "Stored", resolution.Chapter.Title)

	require.Len(t, resolution.Entries, 1)
	entry := resolution.Entries[0]

	require.Len(t, entry.Chapters, 2)
	assert.False(t, entry.Chapters[0].Placeholder)
	assert.Equal(t, "Stored", entry.Chapters[0].Title)
	assert.True(t, entry.Chapters[1].Placeholder)
	assert.Equal(t, 51, entry.Chapters[1].Number)
	assert.Empty(t, entry.Chapters[1].Links)

	require.NotNil(t, entry.Episode3D)
	assert.True(t, entry.Episode3D.Placeholder)
	assert.Equal(t, 7, entry.Episode3D.Number)
	assert.Nil(t, entry.Episode2D)
}

/*
TestResolveChapter_CataloguedButUnmapped verifies a chapter with a catalog
record and no mapping still surfaces its own links.
*/
func TestResolveChapter_CataloguedButUnmapped(t *testing.T) {
	chapters := &fakeChapters{chapters: map[int]*chapter.Chapter{
		12: {Number: 12, Links: []link.Link{{Source: "Readhub", URL: "https://example.com/c/12"}}},
	}}
	service := newTestService(chapters, &fakeEpisodes{episodes: map[string]*episode.Episode{}}, &fakeMappings{})

	resolution, err := service.ResolveChapter(context.Background(), 12)

	require.NoError(t, err)
	assert.Empty(t, resolution.Entries)
	require.NotNil(t, resolution.Chapter)
	assert.False(t, resolution.Chapter.Placeholder)
	require.Len(t, resolution.Chapter.Links, 1)
}

/*
TestResolveEpisode_SingleEntry verifies an episode resolves to exactly the
one mapping that references it.
*/
func TestResolveEpisode_SingleEntry(t *testing.T) {
	chapters := &fakeChapters{chapters: map[int]*chapter.Chapter{}}
	episodes := &fakeEpisodes{episodes: map[string]*episode.Episode{}}
	mappings := &fakeMappings{mappings: []*mapping.Mapping{
		{ID: "m-1", Chapters: []int{1, 2}, Episode3D: pointer.To(1), Episode2D: pointer.To(4)},
		{ID: "m-2", Chapters: []int{3, 4}, Episode3D: pointer.To(2)},
	}}
	service := newTestService(chapters, episodes, mappings)

	resolution, err := service.ResolveEpisode(context.Background(), episode.Axis2D, 4)

	require.NoError(t, err)
	require.Len(t, resolution.Entries, 1)
	assert.Equal(t, "m-1", resolution.Entries[0].MappingID)
	assert.Equal(t, "2d", resolution.Query.Kind)

	// The episode has no catalog record, only the mapping: the queried
	// entry itself comes back as a placeholder.
	require.NotNil(t, resolution.Episode)
	assert.True(t, resolution.Episode.Placeholder)
	assert.Equal(t, 4, resolution.Episode.Number)
}

/*
TestResolveEpisode_InvalidAxis rejects unknown axis values.
*/
func TestResolveEpisode_InvalidAxis(t *testing.T) {
	service := newTestService(
		&fakeChapters{chapters: map[int]*chapter.Chapter{}},
		&fakeEpisodes{episodes: map[string]*episode.Episode{}},
		&fakeMappings{},
	)

	_, err := service.ResolveEpisode(context.Background(), episode.Axis("4d"), 1)

	assert.Error(t, err)
}

/*
TestFullList_Hydrated verifies the full catalog listing hydrates every
mapping.
*/
func TestFullList_Hydrated(t *testing.T) {
	chapters := &fakeChapters{chapters: map[int]*chapter.Chapter{}}
	episodes := &fakeEpisodes{episodes: map[string]*episode.Episode{}}
	mappings := &fakeMappings{mappings: []*mapping.Mapping{
		{ID: "m-1", Chapters: []int{1}, Episode3D: pointer.To(1)},
		{ID: "m-2", Chapters: []int{2}, Episode2D: pointer.To(1)},
	}}
	service := newTestService(chapters, episodes, mappings)

	entries, total, err := service.FullList(context.Background(), 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, entries, 2)
	assert.NotNil(t, entries[0].Episode3D)
	assert.NotNil(t, entries[1].Episode2D)
}
