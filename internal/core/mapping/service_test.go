// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mapping_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/core/mapping"
	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/pkg/pointer"
)

// fakeRepository is an in-memory mapping store for service tests.
type fakeRepository struct {
	mappings map[string]*mapping.Mapping
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{mappings: make(map[string]*mapping.Mapping)}
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*mapping.Mapping, error) {
	return f.mappings[id], nil
}

func (f *fakeRepository) FindByEpisode(_ context.Context, axis episode.Axis, number int) (*mapping.Mapping, error) {
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

func (f *fakeRepository) FindByChapter(_ context.Context, chapterNumber int) ([]*mapping.Mapping, error) {
	var found []*mapping.Mapping
	for _, m := range f.mappings {
		if m.Covers(chapterNumber) {
			found = append(found, m)
		}
	}
	return found, nil
}

func (f *fakeRepository) List(_ context.Context, limit, offset int) ([]*mapping.Mapping, int, error) {
	var all []*mapping.Mapping
	for _, m := range f.mappings {
		all = append(all, m)
	}
	return all, len(all), nil
}

func (f *fakeRepository) Insert(_ context.Context, m *mapping.Mapping) error {
	copied := *m
	f.mappings[m.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, m *mapping.Mapping) error {
	if _, ok := f.mappings[m.ID]; !ok {
		return apperr.NotFound("Mapping")
	}
	copied := *m
	f.mappings[m.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.mappings[id]; !ok {
		return apperr.NotFound("Mapping")
	}
	delete(f.mappings, id)
	return nil
}

func (f *fakeRepository) Count(_ context.Context) (int64, error) {
	return int64(len(f.mappings)), nil
}

func newTestService(repo mapping.Repository) *mapping.Service {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return mapping.NewService(repo, logger)
}

/*
TestUpsertMapping_Insert verifies a fresh submission creates a new record.
*/
func TestUpsertMapping_Insert(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, merged, err := service.UpsertMapping(context.Background(),
		[]int{1, 2, 3}, pointer.To(10), nil)

	require.NoError(t, err)
	assert.False(t, merged)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []int{1, 2, 3}, created.Chapters)
	assert.Len(t, repo.mappings, 1)
}

/*
TestUpsertMapping_MergeReplacesChapters verifies merging into an
already-mapped episode overwrites the chapter set instead of creating a
second record.
*/
func TestUpsertMapping_MergeReplacesChapters(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	first, merged, err := service.UpsertMapping(ctx, []int{1, 2}, pointer.To(10), nil)
	require.NoError(t, err)
	require.False(t, merged)

	second, merged, err := service.UpsertMapping(ctx, []int{3, 4}, pointer.To(10), nil)
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []int{3, 4}, second.Chapters)
	assert.Len(t, repo.mappings, 1)
}

/*
TestUpsertMapping_MergeFillsEpisodeFields verifies a merge fills a nil
episode field without ever clearing a populated one.
*/
func TestUpsertMapping_MergeFillsEpisodeFields(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	_, _, err := service.UpsertMapping(ctx, []int{5, 6}, pointer.To(10), nil)
	require.NoError(t, err)

	// Same 3D episode, now also carrying the 2D reference.
	merged3d, merged, err := service.UpsertMapping(ctx, []int{5, 6}, pointer.To(10), pointer.To(20))
	require.NoError(t, err)
	assert.True(t, merged)
	require.NotNil(t, merged3d.Episode2D)
	assert.Equal(t, 20, *merged3d.Episode2D)

	// A later merge found via the 2D axis must not clear the 3D reference.
	via2d, merged, err := service.UpsertMapping(ctx, []int{5, 6, 7}, nil, pointer.To(20))
	require.NoError(t, err)
	assert.True(t, merged)
	require.NotNil(t, via2d.Episode3D)
	assert.Equal(t, 10, *via2d.Episode3D)
	assert.Equal(t, []int{5, 6, 7}, via2d.Chapters)
}

/*
TestUpsertMapping_EpisodeOnly verifies a submission with no chapters is
accepted: a pure 3D-to-2D correspondence is valid before chapters are
known, and the stored chapter set is empty rather than NULL.
*/
func TestUpsertMapping_EpisodeOnly(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, merged, err := service.UpsertMapping(context.Background(),
		nil, pointer.To(10), pointer.To(20))

	require.NoError(t, err)
	assert.False(t, merged)
	require.NotNil(t, created.Chapters)
	assert.Empty(t, created.Chapters)
	assert.Len(t, repo.mappings, 1)
}

/*
TestUpsertMapping_MergeCorrectsOtherAxis verifies a merge found via one
episode axis replaces the other axis with the value the submission
supplies, treating it as a correction.
*/
func TestUpsertMapping_MergeCorrectsOtherAxis(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	_, _, err := service.UpsertMapping(ctx, []int{1}, pointer.To(5), pointer.To(7))
	require.NoError(t, err)

	corrected, merged, err := service.UpsertMapping(ctx, []int{1}, pointer.To(5), pointer.To(9))
	require.NoError(t, err)
	assert.True(t, merged)
	require.NotNil(t, corrected.Episode2D)
	assert.Equal(t, 9, *corrected.Episode2D)
	assert.Len(t, repo.mappings, 1)
}

/*
TestUpsertMapping_Validation rejects submissions with no episode reference
or out-of-range values.
*/
func TestUpsertMapping_Validation(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	_, _, err := service.UpsertMapping(ctx, []int{1}, nil, nil)
	assert.Error(t, err, "no episode reference")

	_, _, err = service.UpsertMapping(ctx, []int{1}, pointer.To(10001), nil)
	assert.Error(t, err, "episode out of range")

	assert.Empty(t, repo.mappings, "no record persisted on validation failure")
}
