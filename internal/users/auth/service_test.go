// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/internal/platform/sec"
	"github.com/taibuivan/tamgioi/internal/users/account"
	"github.com/taibuivan/tamgioi/internal/users/auth"
)

// fakeDirectory is an in-memory account directory for auth tests.
type fakeDirectory struct {
	accounts map[int64]*account.Account
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{accounts: make(map[int64]*account.Account)}
}

func (f *fakeDirectory) GetAccount(_ context.Context, userID int64) (*account.Account, error) {
	if acct, ok := f.accounts[userID]; ok {
		copied := *acct
		return &copied, nil
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeDirectory) SetAdmin(_ context.Context, userID int64, isAdmin bool) error {
	if acct, ok := f.accounts[userID]; ok {
		acct.IsAdmin = isAdmin
		return nil
	}
	return apperr.NotFound("Account")
}

func (f *fakeDirectory) SetPasswordHash(_ context.Context, userID int64, hash string) (bool, error) {
	acct, ok := f.accounts[userID]
	if !ok {
		return false, nil
	}
	acct.PasswordHash = hash
	return true, nil
}

func newTestService(directory *fakeDirectory) *auth.Service {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return auth.NewService(directory, directory, nil, 1000, logger)
}

// # Tests

/*
TestLogin_UnknownAccount verifies an unknown user id is answered with the
same Unauthorized as a bad password, not NotFound.
*/
func TestLogin_UnknownAccount(t *testing.T) {
	service := newTestService(newFakeDirectory())

	_, err := service.Login(context.Background(), 42, "whatever")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
}

/*
TestLogin_WrongPassword verifies a bad password is refused.
*/
func TestLogin_WrongPassword(t *testing.T) {
	directory := newFakeDirectory()
	hash, err := sec.HashPassword("correct-horse")
	require.NoError(t, err)
	directory.accounts[7] = &account.Account{UserID: 7, Username: "grace", PasswordHash: hash}
	service := newTestService(directory)

	_, err = service.Login(context.Background(), 7, "wrong-horse")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
}

/*
TestLogin_NoCredentials verifies an account that was never provisioned
with a password cannot log in, even with an empty password.
*/
func TestLogin_NoCredentials(t *testing.T) {
	directory := newFakeDirectory()
	directory.accounts[8] = &account.Account{UserID: 8, Username: "heidi"}
	service := newTestService(directory)

	_, err := service.Login(context.Background(), 8, "")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
}

/*
TestSetCredentials verifies provisioning stores a hash that verifies
against the original password.
*/
func TestSetCredentials(t *testing.T) {
	directory := newFakeDirectory()
	directory.accounts[9] = &account.Account{UserID: 9, Username: "ivan"}
	service := newTestService(directory)

	err := service.SetCredentials(context.Background(), 9, "s3cret-enough")

	require.NoError(t, err)
	stored := directory.accounts[9].PasswordHash
	require.NotEmpty(t, stored)
	assert.NotEqual(t, "s3cret-enough", stored)
	assert.True(t, sec.CheckPasswordHash("s3cret-enough", stored))
}

/*
TestSetCredentials_TooShort verifies the minimum password length is
enforced before anything is hashed or stored.
*/
func TestSetCredentials_TooShort(t *testing.T) {
	directory := newFakeDirectory()
	directory.accounts[9] = &account.Account{UserID: 9}
	service := newTestService(directory)

	err := service.SetCredentials(context.Background(), 9, "short")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	assert.Empty(t, directory.accounts[9].PasswordHash)
}

/*
TestSetCredentials_UnknownAccount verifies provisioning an absent account
is NotFound.
*/
func TestSetCredentials_UnknownAccount(t *testing.T) {
	service := newTestService(newFakeDirectory())

	err := service.SetCredentials(context.Background(), 404, "s3cret-enough")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}
