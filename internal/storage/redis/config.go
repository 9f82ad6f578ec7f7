package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// ResultsTTL is refreshed on every write; an idle archive expires as a whole
	ResultsTTL time.Duration
	// MaxResults caps the archive list length
	MaxResults int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		ResultsTTL:   24 * time.Hour,
		MaxResults:   200,
	}
}
