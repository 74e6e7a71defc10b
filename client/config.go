package client

import (
	"fmt"
	"net/url"
	"time"
)

// Config configures the HTTP ledger client.
type Config struct {
	// URL is the base URL of the ledger REST API, without the /v1 prefix.
	URL string
	// Timeout bounds a single request. Submissions block until the call is
	// confirmed, so it must cover proving and confirmation time.
	Timeout time.Duration
	// BreakerFailures is the number of consecutive failed requests that open
	// the circuit breaker.
	BreakerFailures uint32
	// BreakerTimeout is how long the breaker stays open before a probe request
	// is let through.
	BreakerTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		URL:             "http://127.0.0.1:8088",
		Timeout:         2 * time.Minute,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

func (c Config) baseURL() (*url.URL, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger url %q: %w", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid ledger url %q: scheme must be http or https", c.URL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid ledger url %q: missing host", c.URL)
	}
	return u, nil
}
