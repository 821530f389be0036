// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Catalog Rules: Numeric bounds for chapters, episodes and link labels.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tamgioi-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "tamgioi.app"

	// AccessTokenTTL is the lifetime of a reviewer access token.
	AccessTokenTTL = 12 * time.Hour

	// MinPasswordLen is the minimum length for moderator passwords.
	MinPasswordLen = 8
)

// # Catalog Rules

const (
	// MinEntryNumber is the smallest valid chapter or episode number.
	MinEntryNumber = 1

	// MaxEntryNumber is the largest accepted chapter or episode number.
	MaxEntryNumber = 10000

	// MinSourceLabelLen and MaxSourceLabelLen bound a link's source label.
	MinSourceLabelLen = 2
	MaxSourceLabelLen = 50

	// MaxTitleLen bounds chapter and episode titles.
	MaxTitleLen = 200

	// MaxChaptersPerMapping caps how many chapters one submission may cover.
	MaxChaptersPerMapping = 100

	// ContributionReward is the experience credited for an approved contribution.
	ContributionReward = 1

	// DefaultLeaderboardSize and MaxLeaderboardSize bound the top-contributors listing.
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldError = "error"
	FieldCode  = "code"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixSession stores in-progress moderation session forms.
	RedisPrefixSession = "contrib:session:"
)

// # Session Timing

const (
	// SessionTTL is how long a half-finished submission form survives
	// before it is discarded.
	SessionTTL = 30 * time.Minute
)
