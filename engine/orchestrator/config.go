package orchestrator

import (
	"fmt"
	"time"
)

// Config configures how the orchestrator retries transient faults.
type Config struct {
	// MaxAttempts is the total number of attempts per operation, including
	// the first one. 1 disables retries.
	MaxAttempts uint
	// RetryBase is the initial wait between attempts, doubled after each retry.
	RetryBase time.Duration
	// RetryMax caps the wait between two attempts.
	RetryMax time.Duration
	// RetryJitterPercent is the jitter applied to each wait. 0 disables jitter.
	RetryJitterPercent uint64
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:        3,
		RetryBase:          500 * time.Millisecond,
		RetryMax:           10 * time.Second,
		RetryJitterPercent: 25,
	}
}

func (c Config) validate() error {
	if c.MaxAttempts == 0 {
		return fmt.Errorf("max attempts must be at least 1")
	}
	if c.RetryBase <= 0 {
		return fmt.Errorf("retry base must be positive, got %s", c.RetryBase)
	}
	if c.RetryMax < c.RetryBase {
		return fmt.Errorf("retry max (%s) must not be below retry base (%s)", c.RetryMax, c.RetryBase)
	}
	if c.RetryJitterPercent > 100 {
		return fmt.Errorf("retry jitter must be a percentage, got %d", c.RetryJitterPercent)
	}
	return nil
}
