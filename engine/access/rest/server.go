// Package rest serves a ledger backend over HTTP: contract deployment, state
// queries, circuit calls, transaction lookups and websocket event streams.
package rest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/verichain/verichain/module"
)

// NewServer returns an HTTP server initialized with the REST API handler
func NewServer(
	backend Backend,
	config Config,
	logger zerolog.Logger,
	restCollector module.RestMetrics,
	gatherer prometheus.Gatherer,
) *http.Server {
	router := NewRouter(backend, logger.With().Str("component", "rest").Logger(), config, restCollector, gatherer)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
			http.MethodHead},
	})

	return &http.Server{
		Addr:         config.ListenAddress,
		Handler:      c.Handler(router),
		WriteTimeout: config.WriteTimeout,
		ReadTimeout:  config.ReadTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
}
