// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tamgioi/internal/core/chapter"
	"github.com/taibuivan/tamgioi/internal/core/link"
	"github.com/taibuivan/tamgioi/internal/platform/apperr"
)

// fakeRepository is an in-memory chapter store for service tests.
type fakeRepository struct {
	chapters map[int]*chapter.Chapter
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{chapters: make(map[int]*chapter.Chapter)}
}

func (f *fakeRepository) Find(_ context.Context, number int) (*chapter.Chapter, error) {
	return f.chapters[number], nil
}

func (f *fakeRepository) FindMany(_ context.Context, numbers []int) ([]*chapter.Chapter, error) {
	var found []*chapter.Chapter
	for _, number := range numbers {
		if c, ok := f.chapters[number]; ok {
			found = append(found, c)
		}
	}
	return found, nil
}

func (f *fakeRepository) Upsert(_ context.Context, c *chapter.Chapter) error {
	if existing, ok := f.chapters[c.Number]; ok {
		existing.Title = c.Title
		return nil
	}
	copied := *c
	f.chapters[c.Number] = &copied
	return nil
}

func (f *fakeRepository) AppendLink(_ context.Context, number int, l link.Link) (bool, error) {
	existing, ok := f.chapters[number]
	if !ok {
		f.chapters[number] = &chapter.Chapter{Number: number, Links: []link.Link{l}}
		return true, nil
	}
	if link.ContainsURL(existing.Links, l.URL) {
		return false, nil
	}
	existing.Links = append(existing.Links, l)
	return true, nil
}

func (f *fakeRepository) Delete(_ context.Context, number int) error {
	if _, ok := f.chapters[number]; !ok {
		return apperr.NotFound("Chapter")
	}
	delete(f.chapters, number)
	return nil
}

func (f *fakeRepository) Count(_ context.Context) (int64, error) {
	return int64(len(f.chapters)), nil
}

func newTestService(repo chapter.Repository) *chapter.Service {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return chapter.NewService(repo, logger)
}

/*
TestGetChapter_NotFound verifies that an absent chapter surfaces as NotFound.
*/
func TestGetChapter_NotFound(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.GetChapter(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestUpsertChapter_Validation rejects out-of-range numbers and oversized titles.
*/
func TestUpsertChapter_Validation(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.UpsertChapter(context.Background(), &chapter.Chapter{Number: 0})
	assert.Error(t, err)

	err = service.UpsertChapter(context.Background(), &chapter.Chapter{Number: 10001})
	assert.Error(t, err)
}

/*
TestUpsertChapter_KeepsLinks verifies refreshing a title never touches links.
*/
func TestUpsertChapter_KeepsLinks(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, service.UpsertChapter(ctx, &chapter.Chapter{Number: 7, Title: "First"}))

	added, err := service.AppendLink(ctx, 7, link.Link{Source: "Readhub", URL: "https://example.com/c/7"})
	require.NoError(t, err)
	assert.True(t, added)

	require.NoError(t, service.UpsertChapter(ctx, &chapter.Chapter{Number: 7, Title: "Renamed"}))

	stored, err := service.GetChapter(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Len(t, stored.Links, 1)
}

/*
TestAppendLink_Dedup verifies that the same URL is recorded only once.
*/
func TestAppendLink_Dedup(t *testing.T) {
	service := newTestService(newFakeRepository())
	ctx := context.Background()
	l := link.Link{Source: "Readhub", URL: "https://example.com/c/9"}

	added, err := service.AppendLink(ctx, 9, l)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = service.AppendLink(ctx, 9, l)
	require.NoError(t, err)
	assert.False(t, added)

	stored, err := service.GetChapter(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, stored.Links, 1)
}

/*
TestAppendLink_Validation rejects malformed labels and relative URLs.
*/
func TestAppendLink_Validation(t *testing.T) {
	service := newTestService(newFakeRepository())
	ctx := context.Background()

	_, err := service.AppendLink(ctx, 3, link.Link{Source: "x", URL: "https://example.com/c/3"})
	assert.Error(t, err, "single-character source label")

	_, err = service.AppendLink(ctx, 3, link.Link{Source: "Readhub", URL: "/relative/path"})
	assert.Error(t, err, "relative url")
}
