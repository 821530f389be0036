// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tamgioi/internal/platform/apperr"
	"github.com/taibuivan/tamgioi/internal/platform/constants"
)

// # Redis Repository

// sessionRepository stores forms as JSON values with a TTL. Redis expiry
// is the abandonment logic; there is no sweeper.
type sessionRepository struct {
	client *redis.Client
}

// NewRepository constructs a Redis backed session store.
func NewRepository(client *redis.Client) Repository {
	return &sessionRepository{client: client}
}

func sessionKey(userID int64) string {
	return constants.RedisPrefixSession + strconv.FormatInt(userID, 10)
}

/*
Find returns the user's form, or nil when absent or expired.
*/
func (repository *sessionRepository) Find(context context.Context, userID int64) (*Session, error) {

	raw, err := repository.client.Get(context, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.StoreUnavailable(fmt.Errorf("session: redis get: %w", err))
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, apperr.Internal(fmt.Errorf("session: corrupt session payload: %w", err))
	}

	return &s, nil
}

/*
Save persists the form and resets its TTL.
*/
func (repository *sessionRepository) Save(context context.Context, s *Session) error {

	raw, err := json.Marshal(s)
	if err != nil {
		return apperr.Internal(fmt.Errorf("session: marshal session: %w", err))
	}

	if err := repository.client.Set(context, sessionKey(s.UserID), raw, constants.SessionTTL).Err(); err != nil {
		return apperr.StoreUnavailable(fmt.Errorf("session: redis set: %w", err))
	}

	return nil
}

/*
Delete discards the form.
*/
func (repository *sessionRepository) Delete(context context.Context, userID int64) error {
	if err := repository.client.Del(context, sessionKey(userID)).Err(); err != nil {
		return apperr.StoreUnavailable(fmt.Errorf("session: redis del: %w", err))
	}
	return nil
}
