package search

import (
	"os"
	"strconv"
)

// Config bounds search result sizes.
type Config struct {
	DefaultLimit int // Results returned when the caller passes no limit
	MaxLimit     int // Hard cap on requested limits
}

// NewConfig reads from environment variables.
func NewConfig() Config {
	defaultLimit := 10
	if v := os.Getenv("SEARCH_DEFAULT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			defaultLimit = n
		}
	}

	maxLimit := 50
	if v := os.Getenv("SEARCH_MAX_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= defaultLimit {
			maxLimit = n
		}
	}

	return Config{DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}
