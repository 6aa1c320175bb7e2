package constants

import "time"

// Ranked queue IDs as assigned by Riot.
const (
	QueueSoloDuo = 420
	QueueFlex    = 440
)

const (
	// MatchIDPageSize is the maximum page size accepted by match-v5.
	MatchIDPageSize = 100

	// RateLimitMaxAttempts bounds retries on 429 responses.
	RateLimitMaxAttempts = 4

	// RateLimitFallbackWait is used when a 429 carries no Retry-After header.
	RateLimitFallbackWait = 10 * time.Second
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	UserFetchTimeout   = 15 * time.Minute
	DVCTimeout         = 10 * time.Minute
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)
