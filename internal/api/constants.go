package api

import "time"

// API limits and constants.
const (
	// MaxBodySize caps request bodies (64 KB); descriptions are the largest field.
	MaxBodySize = 64 << 10

	// DefaultAuthRatePerMinute applies when Options.AuthRatePerMinute is zero.
	DefaultAuthRatePerMinute = 20

	// healthTimeout bounds the store ping behind /health.
	healthTimeout = 2 * time.Second
)

// Cache-Control header values.
const (
	CacheNoStore = "no-store"
)
