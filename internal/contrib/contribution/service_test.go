// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contribution_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tamgioi/internal/contrib/contribution"
	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/core/link"
	"github.com/taibuivan/tamgioi/internal/core/mapping"
	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/pkg/pointer"
)

// # Fakes

type fakeRepository struct {
	records map[string]*contribution.Contribution
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: make(map[string]*contribution.Contribution)}
}

func (f *fakeRepository) Insert(_ context.Context, c *contribution.Contribution) error {
	copied := *c
	f.records[c.ID] = &copied
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*contribution.Contribution, error) {
	if c, ok := f.records[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRepository) MarkReviewed(_ context.Context, id string, status contribution.Status, reviewerID int64, note string) (bool, error) {
	stored, ok := f.records[id]
	if !ok || stored.Status != contribution.StatusPending {
		return false, nil
	}
	stored.Status = status
	stored.ReviewedBy = &reviewerID
	stored.Note = note
	return true, nil
}

func (f *fakeRepository) ListByStatus(_ context.Context, status contribution.Status, limit, offset int) ([]*contribution.Contribution, int, error) {
	var matched []*contribution.Contribution
	for _, c := range f.records {
		if c.Status == status {
			matched = append(matched, c)
		}
	}
	return matched, len(matched), nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID int64, limit, offset int) ([]*contribution.Contribution, int, error) {
	var matched []*contribution.Contribution
	for _, c := range f.records {
		if c.UserID == userID {
			matched = append(matched, c)
		}
	}
	return matched, len(matched), nil
}

func (f *fakeRepository) TopContributors(_ context.Context, limit int) ([]contribution.ContributorRank, error) {
	counts := make(map[int64]int64)
	for _, c := range f.records {
		if c.Status == contribution.StatusApproved {
			counts[c.UserID]++
		}
	}
	var ranks []contribution.ContributorRank
	for userID, approved := range counts {
		ranks = append(ranks, contribution.ContributorRank{UserID: userID, Approved: approved})
	}
	return ranks, nil
}

func (f *fakeRepository) CountByStatus(_ context.Context, status contribution.Status) (int64, error) {
	var total int64
	for _, c := range f.records {
		if c.Status == status {
			total++
		}
	}
	return total, nil
}

// fakeCatalog satisfies all three catalog interfaces plus the rewarder,
// recording every merge it receives.
type fakeCatalog struct {
	mappings     []*mapping.Mapping
	chapterLinks map[int][]link.Link
	episodeLinks map[string][]link.Link
	exp          map[int64]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		chapterLinks: make(map[int][]link.Link),
		episodeLinks: make(map[string][]link.Link),
		exp:          make(map[int64]int),
	}
}

func (f *fakeCatalog) UpsertMapping(_ context.Context, chapters []int, episode3D, episode2D *int) (*mapping.Mapping, bool, error) {
	m := &mapping.Mapping{ID: "m-fake", Chapters: chapters, Episode3D: episode3D, Episode2D: episode2D}
	f.mappings = append(f.mappings, m)
	return m, false, nil
}

func (f *fakeCatalog) AppendLink(_ context.Context, number int, l link.Link) (bool, error) {
	if link.ContainsURL(f.chapterLinks[number], l.URL) {
		return false, nil
	}
	f.chapterLinks[number] = append(f.chapterLinks[number], l)
	return true, nil
}

func (f *fakeCatalog) AppendEpisodeLink(_ context.Context, axis episode.Axis, number int, l link.Link) (bool, error) {
	key := string(axis)
	if link.ContainsURL(f.episodeLinks[key], l.URL) {
		return false, nil
	}
	f.episodeLinks[key] = append(f.episodeLinks[key], l)
	return true, nil
}

func (f *fakeCatalog) AddExp(_ context.Context, userID int64, amount int) error {
	f.exp[userID] += amount
	return nil
}

// episodeCatalogAdapter exposes the episode append under the interface's
// method name.
type episodeCatalogAdapter struct{ catalog *fakeCatalog }

func (a episodeCatalogAdapter) AppendLink(ctx context.Context, axis episode.Axis, number int, l link.Link) (bool, error) {
	return a.catalog.AppendEpisodeLink(ctx, axis, number, l)
}

func newTestService(repo *fakeRepository, catalog *fakeCatalog) *contribution.Service {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return contribution.NewService(repo, catalog, catalog, episodeCatalogAdapter{catalog}, catalog, logger)
}

// # Tests

/*
TestSubmitMapping_BothEpisodesEmpty verifies a proposal with no episode
reference is rejected without creating a record.
*/
func TestSubmitMapping_BothEpisodesEmpty(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, newFakeCatalog())

	_, err := service.SubmitMapping(context.Background(), 1, "alice", []int{1, 2}, nil, nil)

	require.Error(t, err)
	assert.Empty(t, repo.records)
}

/*
TestSubmitMapping_NoChapters verifies an episode-only proposal is
accepted; the chapter list may be filled in by a later submission.
*/
func TestSubmitMapping_NoChapters(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, newFakeCatalog())

	submitted, err := service.SubmitMapping(context.Background(), 1, "alice",
		nil, pointer.To(10), pointer.To(20))

	require.NoError(t, err)
	assert.Equal(t, contribution.StatusPending, submitted.Status)
	assert.Len(t, repo.records, 1)
}

/*
TestApprove_MergesAndRewards verifies approval merges into the catalog,
flips the status and credits the contributor.
*/
func TestApprove_MergesAndRewards(t *testing.T) {
	repo := newFakeRepository()
	catalog := newFakeCatalog()
	service := newTestService(repo, catalog)
	ctx := context.Background()

	submitted, err := service.SubmitMapping(ctx, 1, "alice", []int{1, 2}, pointer.To(10), nil)
	require.NoError(t, err)

	approved, err := service.Approve(ctx, submitted.ID, 99, "looks right")
	require.NoError(t, err)

	assert.Equal(t, contribution.StatusApproved, approved.Status)
	assert.Len(t, catalog.mappings, 1)
	assert.Equal(t, 1, catalog.exp[1])
}

/*
TestApprove_Twice verifies a second approval is rejected as already
processed and the catalog is mutated only once.
*/
func TestApprove_Twice(t *testing.T) {
	repo := newFakeRepository()
	catalog := newFakeCatalog()
	service := newTestService(repo, catalog)
	ctx := context.Background()

	submitted, err := service.SubmitMapping(ctx, 1, "alice", []int{1}, pointer.To(10), nil)
	require.NoError(t, err)

	_, err = service.Approve(ctx, submitted.ID, 99, "")
	require.NoError(t, err)

	_, err = service.Approve(ctx, submitted.ID, 99, "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "CONFLICT"))
	assert.Contains(t, err.Error(), "approved")
	assert.Len(t, catalog.mappings, 1)
	assert.Equal(t, 1, catalog.exp[1], "reward credited exactly once")
}

/*
TestApprove_DuplicateLinkStaysPending verifies a link whose URL is already
catalogued surfaces as Duplicate and leaves the record pending.
*/
func TestApprove_DuplicateLinkStaysPending(t *testing.T) {
	repo := newFakeRepository()
	catalog := newFakeCatalog()
	service := newTestService(repo, catalog)
	ctx := context.Background()

	l := link.Link{Source: "Readhub", URL: "https://example.com/c/5"}
	catalog.chapterLinks[5] = []link.Link{l}

	submitted, err := service.SubmitLink(ctx, 1, "alice", contribution.TargetChapter, 5, l)
	require.NoError(t, err)

	_, err = service.Approve(ctx, submitted.ID, 99, "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "DUPLICATE"))

	stored, err := service.GetContribution(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, contribution.StatusPending, stored.Status)
	assert.Zero(t, catalog.exp[1], "no reward for a no-op merge")
}

/*
TestApprove_EpisodeLink verifies episode link contributions land on the
right axis.
*/
func TestApprove_EpisodeLink(t *testing.T) {
	repo := newFakeRepository()
	catalog := newFakeCatalog()
	service := newTestService(repo, catalog)
	ctx := context.Background()

	l := link.Link{Source: "Streamhub", URL: "https://example.com/e/3"}
	submitted, err := service.SubmitLink(ctx, 2, "bob", contribution.TargetEpisode2D, 3, l)
	require.NoError(t, err)

	_, err = service.Approve(ctx, submitted.ID, 99, "")
	require.NoError(t, err)

	assert.Len(t, catalog.episodeLinks["2d"], 1)
	assert.Empty(t, catalog.episodeLinks["3d"])
}

/*
TestReject_DoesNotTouchCatalog verifies rejection only flips status.
*/
func TestReject_DoesNotTouchCatalog(t *testing.T) {
	repo := newFakeRepository()
	catalog := newFakeCatalog()
	service := newTestService(repo, catalog)
	ctx := context.Background()

	submitted, err := service.SubmitMapping(ctx, 1, "alice", []int{1}, pointer.To(10), nil)
	require.NoError(t, err)

	rejected, err := service.Reject(ctx, submitted.ID, 99, "bogus numbers")
	require.NoError(t, err)

	assert.Equal(t, contribution.StatusRejected, rejected.Status)
	assert.Empty(t, catalog.mappings)
	assert.Zero(t, catalog.exp[1])

	// A rejected record cannot be approved afterwards.
	_, err = service.Approve(ctx, submitted.ID, 99, "")
	assert.Error(t, err)
}

/*
TestSubmitLink_Validation rejects malformed submissions up front.
*/
func TestSubmitLink_Validation(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, newFakeCatalog())
	ctx := context.Background()

	_, err := service.SubmitLink(ctx, 1, "alice", contribution.TargetKind("poster"), 5,
		link.Link{Source: "Readhub", URL: "https://example.com"})
	assert.Error(t, err, "unknown target")

	_, err = service.SubmitLink(ctx, 1, "alice", contribution.TargetChapter, 0,
		link.Link{Source: "Readhub", URL: "https://example.com"})
	assert.Error(t, err, "number out of range")

	assert.Empty(t, repo.records)
}
