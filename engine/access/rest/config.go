package rest

import "time"

// Config defines the configurable options for the REST server.
type Config struct {
	ListenAddress string
	WriteTimeout  time.Duration
	ReadTimeout   time.Duration
	IdleTimeout   time.Duration

	// MaxEventSubscriptions bounds the number of concurrent event streams.
	MaxEventSubscriptions uint64
	// MaxEventsPerSecond bounds the rate at which events are sent on each
	// stream.
	MaxEventsPerSecond float64
}

func DefaultConfig() Config {
	return Config{
		ListenAddress:         "127.0.0.1:8088",
		WriteTimeout:          15 * time.Second,
		ReadTimeout:           15 * time.Second,
		IdleTimeout:           60 * time.Second,
		MaxEventSubscriptions: 100,
		MaxEventsPerSecond:    100,
	}
}
