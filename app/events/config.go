package events

import (
	"errors"
	"time"
)

var (
	ErrInvalidWinnerThreshold = errors.New("winner confidence threshold must be within (0, 100]")
	ErrInvalidPageLimits      = errors.New("page limits must be positive and default <= max")
	ErrInvalidPollInterval    = errors.New("poll interval must be positive")
	ErrInvalidFeedPath        = errors.New("primary feed path must not be empty")
)

// Config represents the configuration for the events module
type Config struct {
	// WinnerConfidenceThreshold is the 0-100 scaled price a resolved
	// outcome must reach before it is marked as the winner. The upstream
	// gives no guarantee about resolution prices, so this stays tunable.
	WinnerConfidenceThreshold float64 `env:"WINNER_CONFIDENCE_THRESHOLD" env-default:"99"`

	DefaultPageLimit int `env:"EVENTS_DEFAULT_PAGE_LIMIT" env-default:"20"`
	MaxPageLimit     int `env:"EVENTS_MAX_PAGE_LIMIT" env-default:"100"`

	// CacheTTL bounds how stale a served page can be between polls.
	CacheTTL     time.Duration `env:"EVENTS_CACHE_TTL" env-default:"120s"`
	PollInterval time.Duration `env:"EVENTS_POLL_INTERVAL" env-default:"30s"`

	PrimaryFeedPath  string `env:"EVENTS_PRIMARY_FEED_PATH" env-default:"/events"`
	PrimaryFeedLimit int    `env:"EVENTS_PRIMARY_FEED_LIMIT" env-default:"100"`

	MaxInjectedURLs int `env:"EVENTS_MAX_INJECTED_URLS" env-default:"25"`
}

// Validate validates the events configuration
func (c *Config) Validate() error {
	if c.WinnerConfidenceThreshold <= 0 || c.WinnerConfidenceThreshold > 100 {
		return ErrInvalidWinnerThreshold
	}
	if c.DefaultPageLimit <= 0 || c.MaxPageLimit <= 0 || c.DefaultPageLimit > c.MaxPageLimit {
		return ErrInvalidPageLimits
	}
	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	if c.PrimaryFeedPath == "" {
		return ErrInvalidFeedPath
	}
	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		WinnerConfidenceThreshold: 99,
		DefaultPageLimit:          20,
		MaxPageLimit:              100,
		CacheTTL:                  120 * time.Second,
		PollInterval:              30 * time.Second,
		PrimaryFeedPath:           "/events",
		PrimaryFeedLimit:          100,
		MaxInjectedURLs:           25,
	}
}
