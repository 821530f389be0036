// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tamgioi/internal/contrib/contribution"
	"github.com/taibuivan/tamgioi/internal/contrib/session"
	"github.com/taibuivan/tamgioi/internal/core/link"
)

// # Fakes

type fakeRepository struct {
	sessions map[int64]*session.Session
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{sessions: make(map[int64]*session.Session)}
}

func (f *fakeRepository) Find(_ context.Context, userID int64) (*session.Session, error) {
	if s, ok := f.sessions[userID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRepository) Save(_ context.Context, s *session.Session) error {
	copied := *s
	f.sessions[s.UserID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, userID int64) error {
	delete(f.sessions, userID)
	return nil
}

type fakeSubmitter struct {
	mappings []contribution.MappingPayload
	links    []contribution.LinkPayload
}

func (f *fakeSubmitter) SubmitMapping(_ context.Context, userID int64, username string,
	chapters []int, episode3D, episode2D *int) (*contribution.Contribution, error) {
	f.mappings = append(f.mappings, contribution.MappingPayload{
		Chapters: chapters, Episode3D: episode3D, Episode2D: episode2D,
	})
	return &contribution.Contribution{ID: "c-1", UserID: userID, Username: username,
		Kind: contribution.KindMapping, Status: contribution.StatusPending}, nil
}

func (f *fakeSubmitter) SubmitLink(_ context.Context, userID int64, username string,
	target contribution.TargetKind, number int, l link.Link) (*contribution.Contribution, error) {
	f.links = append(f.links, contribution.LinkPayload{Target: target, Number: number, Link: l})
	return &contribution.Contribution{ID: "c-2", UserID: userID, Username: username,
		Kind: contribution.KindLink, Status: contribution.StatusPending}, nil
}

func newTestService(repo *fakeRepository, submitter *fakeSubmitter) *session.Service {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return session.NewService(repo, submitter, logger)
}

// feed pushes a sequence of answers through the form, requiring each one
// to be accepted.
func feed(t *testing.T, service *session.Service, userID int64, answers ...string) *session.Result {
	t.Helper()
	var result *session.Result
	var err error
	for _, answer := range answers {
		result, err = service.Input(context.Background(), userID, answer)
		require.NoError(t, err, "answer %q", answer)
	}
	return result
}

// # Tests

/*
TestMappingFlow walks the full mapping form and checks the auto-submitted
payload.
*/
func TestMappingFlow(t *testing.T) {
	repo := newFakeRepository()
	submitter := &fakeSubmitter{}
	service := newTestService(repo, submitter)
	ctx := context.Background()

	s, err := service.Start(ctx, 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, session.StateChooseKind, s.State)

	result := feed(t, service, 1, "mapping", "10", "121-123", "skip")

	require.NotNil(t, result.Submitted)
	require.Len(t, submitter.mappings, 1)
	payload := submitter.mappings[0]
	assert.Equal(t, []int{121, 122, 123}, payload.Chapters)
	require.NotNil(t, payload.Episode3D)
	assert.Equal(t, 10, *payload.Episode3D)
	assert.Nil(t, payload.Episode2D)

	// Form is gone once submitted.
	_, err = service.Current(ctx, 1)
	assert.Error(t, err)
}

/*
TestLinkFlow walks the full link form.
*/
func TestLinkFlow(t *testing.T) {
	repo := newFakeRepository()
	submitter := &fakeSubmitter{}
	service := newTestService(repo, submitter)

	_, err := service.Start(context.Background(), 2, "bob")
	require.NoError(t, err)

	result := feed(t, service, 2, "link", "episode_2d", "4", "Streamhub", "https://example.com/e/4")

	require.NotNil(t, result.Submitted)
	require.Len(t, submitter.links, 1)
	payload := submitter.links[0]
	assert.Equal(t, contribution.TargetEpisode2D, payload.Target)
	assert.Equal(t, 4, payload.Number)
	assert.Equal(t, "https://example.com/e/4", payload.Link.URL)
}

/*
TestInput_InvalidKeepsState verifies a bad answer does not advance the
form.
*/
func TestInput_InvalidKeepsState(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeSubmitter{})
	ctx := context.Background()

	_, err := service.Start(ctx, 3, "carol")
	require.NoError(t, err)

	_, err = service.Input(ctx, 3, "banana")
	require.Error(t, err)

	s, err := service.Current(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, session.StateChooseKind, s.State)

	// The same question accepts a valid answer afterwards.
	result, err := service.Input(ctx, 3, "mapping")
	require.NoError(t, err)
	assert.Equal(t, session.StateMappingEpisode3D, result.Session.State)
	assert.NotEmpty(t, result.Prompt)
}

/*
TestMappingFlow_ChaptersSkipped verifies the chapter question accepts
'skip', submitting an episode-only correspondence.
*/
func TestMappingFlow_ChaptersSkipped(t *testing.T) {
	repo := newFakeRepository()
	submitter := &fakeSubmitter{}
	service := newTestService(repo, submitter)

	_, err := service.Start(context.Background(), 6, "frank")
	require.NoError(t, err)

	result := feed(t, service, 6, "mapping", "10", "skip", "20")

	require.NotNil(t, result.Submitted)
	require.Len(t, submitter.mappings, 1)
	payload := submitter.mappings[0]
	assert.Empty(t, payload.Chapters)
	require.NotNil(t, payload.Episode3D)
	assert.Equal(t, 10, *payload.Episode3D)
	require.NotNil(t, payload.Episode2D)
	assert.Equal(t, 20, *payload.Episode2D)
}

/*
TestMappingFlow_BothSkipped verifies skipping both episodes is refused at
the last step instead of producing an unanchored submission.
*/
func TestMappingFlow_BothSkipped(t *testing.T) {
	repo := newFakeRepository()
	submitter := &fakeSubmitter{}
	service := newTestService(repo, submitter)
	ctx := context.Background()

	_, err := service.Start(ctx, 4, "dave")
	require.NoError(t, err)
	feed(t, service, 4, "mapping", "skip", "12,13")

	_, err = service.Input(ctx, 4, "skip")
	require.Error(t, err)
	assert.Empty(t, submitter.mappings)

	// The form is still waiting at the 2D question and accepts a number.
	result, err := service.Input(ctx, 4, "5")
	require.NoError(t, err)
	require.NotNil(t, result.Submitted)
	require.Len(t, submitter.mappings, 1)
	require.NotNil(t, submitter.mappings[0].Episode2D)
	assert.Equal(t, 5, *submitter.mappings[0].Episode2D)
}

/*
TestInput_NoSession verifies input without a form is NotFound.
*/
func TestInput_NoSession(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeSubmitter{})

	_, err := service.Input(context.Background(), 9, "mapping")

	assert.Error(t, err)
}

/*
TestStart_DiscardsPrevious verifies restarting resets the form.
*/
func TestStart_DiscardsPrevious(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeSubmitter{})
	ctx := context.Background()

	_, err := service.Start(ctx, 5, "erin")
	require.NoError(t, err)
	feed(t, service, 5, "link", "chapter")

	s, err := service.Start(ctx, 5, "erin")
	require.NoError(t, err)
	assert.Equal(t, session.StateChooseKind, s.State)
	assert.Empty(t, s.Draft.Target)
}
