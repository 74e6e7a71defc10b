// Package server runs an emulated ledger behind the REST access API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/verichain/verichain/emulator"
	"github.com/verichain/verichain/emulator/storage/badger"
	"github.com/verichain/verichain/engine/access/rest"
	"github.com/verichain/verichain/module/metrics"
)

const shutdownTimeout = 5 * time.Second

// Config is the configuration of an emulator server.
type Config struct {
	// DataDir is the badger database directory. State is kept in memory when
	// it is empty.
	DataDir          string
	ReceiptCacheSize int
	EventBufferSize  int
	Rest             rest.Config
}

// EmulatorServer serves an emulated ledger over the REST access API. The
// prometheus metrics of the ledger and the API are exposed at /metrics.
type EmulatorServer struct {
	log        zerolog.Logger
	ledger     *emulator.EmulatedLedger
	httpServer *http.Server
	closers    []func() error

	ready chan struct{}
	addr  net.Addr
}

func NewEmulatorServer(log zerolog.Logger, config Config) (*EmulatorServer, error) {
	log = log.With().Str("component", "emulator_server").Logger()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []emulator.Option{
		emulator.WithLogger(log),
		emulator.WithMetrics(metrics.NewLedgerCollector(registry)),
		emulator.WithReceiptCacheSize(config.ReceiptCacheSize),
		emulator.WithEventBufferSize(config.EventBufferSize),
	}

	s := &EmulatorServer{
		log:   log,
		ready: make(chan struct{}),
	}

	if config.DataDir != "" {
		store, err := badger.Open(config.DataDir)
		if err != nil {
			return nil, fmt.Errorf("could not open store at %s: %w", config.DataDir, err)
		}
		s.closers = append(s.closers, store.Close)
		opts = append(opts, emulator.WithStore(store))
		log.Info().Str("datadir", config.DataDir).Msg("using persistent store")
	}

	ledger, err := emulator.NewEmulatedLedger(opts...)
	if err != nil {
		return nil, multierror.Append(err, s.close()).ErrorOrNil()
	}
	// the ledger is closed before the store it writes to
	s.closers = append([]func() error{ledger.Close}, s.closers...)
	s.ledger = ledger

	s.httpServer = rest.NewServer(ledger, config.Rest, log, metrics.NewRestCollector(registry), registry)
	return s, nil
}

// Ledger returns the served ledger.
func (s *EmulatorServer) Ledger() *emulator.EmulatedLedger {
	return s.ledger
}

// Ready is closed once the server accepts connections.
func (s *EmulatorServer) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the address the server listens on. It must only be called
// after Ready was closed.
func (s *EmulatorServer) Addr() net.Addr {
	return s.addr
}

// Start serves the API until ctx is cancelled, then shuts down gracefully and
// releases the ledger. The server cannot be restarted.
func (s *EmulatorServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return multierror.Append(fmt.Errorf("could not listen on %s: %w", s.httpServer.Addr, err), s.close()).ErrorOrNil()
	}
	s.addr = lis.Addr()
	close(s.ready)
	s.log.Info().Str("address", s.addr.String()).Msg("emulator server started")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.httpServer.Serve(lis)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	var result *multierror.Error
	if err != nil {
		result = multierror.Append(result, err)
	}
	if err := s.close(); err != nil {
		result = multierror.Append(result, err)
	}
	s.log.Info().Msg("emulator server stopped")
	return result.ErrorOrNil()
}

func (s *EmulatorServer) close() error {
	var result *multierror.Error
	for _, closer := range s.closers {
		if err := closer(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
