// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tamgioi/internal/admin"
	"github.com/taibuivan/tamgioi/internal/contrib/contribution"
	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/users/account"
)

// # Fakes

type fixedCounts struct{}

func (fixedCounts) CountChapters(_ context.Context) (int64, error) { return 12, nil }
func (fixedCounts) CountEpisodes(_ context.Context, axis episode.Axis) (int64, error) {
	if axis == episode.Axis3D {
		return 5, nil
	}
	return 3, nil
}
func (fixedCounts) CountMappings(_ context.Context) (int64, error) { return 4, nil }
func (fixedCounts) CountByStatus(_ context.Context, status contribution.Status) (int64, error) {
	if status == contribution.StatusPending {
		return 2, nil
	}
	return 9, nil
}

type fakeDirectory struct {
	accounts []*account.Account
}

func (f *fakeDirectory) CountAccounts(_ context.Context) (int64, error) {
	return int64(len(f.accounts)), nil
}

func (f *fakeDirectory) CountActiveSince(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(f.accounts)), nil
}

func (f *fakeDirectory) ListAccounts(_ context.Context, limit, offset int) ([]*account.Account, int, error) {
	if offset >= len(f.accounts) {
		return nil, len(f.accounts), nil
	}
	end := offset + limit
	if end > len(f.accounts) {
		end = len(f.accounts)
	}
	return f.accounts[offset:end], len(f.accounts), nil
}

// flakyNotifier fails for one specific recipient.
type flakyNotifier struct {
	failFor   int64
	delivered []int64
}

func (n *flakyNotifier) Notify(_ context.Context, userID int64, _ string) error {
	if userID == n.failFor {
		return errors.New("gateway refused")
	}
	n.delivered = append(n.delivered, userID)
	return nil
}

func newTestService(directory *fakeDirectory, notifier admin.Notifier) *admin.Service {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	counts := fixedCounts{}
	return admin.NewService(counts, counts, counts, counts, directory, notifier, logger)
}

// # Tests

/*
TestGetStatistics assembles the snapshot from every source.
*/
func TestGetStatistics(t *testing.T) {
	directory := &fakeDirectory{accounts: []*account.Account{{UserID: 1}, {UserID: 2}}}
	service := newTestService(directory, &flakyNotifier{})

	stats, err := service.GetStatistics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.Chapters)
	assert.Equal(t, int64(5), stats.Episodes3D)
	assert.Equal(t, int64(3), stats.Episodes2D)
	assert.Equal(t, int64(2), stats.PendingContributions)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(2), stats.ActiveToday)
	assert.Equal(t, int64(2), stats.ActiveLastWeek)
	assert.Equal(t, int64(2), stats.ActiveLastMonth)
}

/*
TestBroadcast_ContinuesOnFailure verifies one failed delivery never aborts
the fan-out and the tally is honest.
*/
func TestBroadcast_ContinuesOnFailure(t *testing.T) {
	directory := &fakeDirectory{accounts: []*account.Account{
		{UserID: 1}, {UserID: 2}, {UserID: 3},
	}}
	notifier := &flakyNotifier{failFor: 2}
	service := newTestService(directory, notifier)

	report, err := service.Broadcast(context.Background(), "catalog updated")

	require.NoError(t, err)
	assert.Equal(t, 3, report.Recipients)
	assert.Equal(t, 2, report.Delivered)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []int64{1, 3}, notifier.delivered)
}

/*
TestBroadcast_EmptyMessage is refused before any delivery.
*/
func TestBroadcast_EmptyMessage(t *testing.T) {
	directory := &fakeDirectory{accounts: []*account.Account{{UserID: 1}}}
	notifier := &flakyNotifier{}
	service := newTestService(directory, notifier)

	_, err := service.Broadcast(context.Background(), "   ")

	require.Error(t, err)
	assert.Empty(t, notifier.delivered)
}
