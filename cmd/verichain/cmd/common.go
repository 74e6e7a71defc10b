package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/verichain/verichain/client"
	"github.com/verichain/verichain/engine/orchestrator"
	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
	"github.com/verichain/verichain/module/metrics"
	"github.com/verichain/verichain/module/trace"
	"github.com/verichain/verichain/session"
	"github.com/verichain/verichain/witness"
)

var (
	registryMetrics module.RegistryMetrics = metrics.NewNoopCollector()
	metricsServer   *metrics.Server
)

// startMetrics serves the registry metrics when a metrics address is configured.
func startMetrics() error {
	if conf.Metrics.Address == "" || metricsServer != nil {
		return nil
	}
	registry := prometheus.NewRegistry()
	registryMetrics = metrics.NewRegistryCollector(registry)
	metricsServer = metrics.NewServer(log, conf.Metrics.Address, registry)
	<-metricsServer.Ready()
	return nil
}

func stopMetrics() {
	if metricsServer == nil {
		return
	}
	<-metricsServer.Done()
	metricsServer = nil
	registryMetrics = metrics.NewNoopCollector()
}

func ledgerClient() (*client.Client, error) {
	c, err := client.New(log, conf.ClientConfig())
	if err != nil {
		return nil, fmt.Errorf("could not create ledger client: %w", err)
	}
	return c, nil
}

func sessionConfig() session.Config {
	return session.Config{
		Orchestrator: conf.OrchestratorConfig(),
		Metrics:      registryMetrics,
		Tracer:       trace.NewTracer(),
	}
}

// connect returns a session bound to the configured contract.
func connect(ctx context.Context, address string) (*session.Session, error) {
	if address == "" {
		return nil, errors.New("no registry contract configured, use --contract or VERICHAIN_LEDGER_CONTRACT")
	}
	c, err := ledgerClient()
	if err != nil {
		return nil, err
	}
	return session.Connect(ctx, log, session.NewCapabilities(c), sessionConfig(), product.Address(address))
}

func deploy(ctx context.Context) (*session.Session, error) {
	c, err := ledgerClient()
	if err != nil {
		return nil, err
	}
	return session.Deploy(ctx, log, session.NewCapabilities(c), sessionConfig())
}

// execute runs op and prints the resulting transaction hash. If the outcome
// is ambiguous, the ledger is queried to find out whether op was applied.
func execute(ctx context.Context, w io.Writer, s *session.Session, op witness.Operation) error {
	result, err := s.Execute(ctx, op)
	if err == nil {
		fmt.Fprintf(w, "%s product %s: tx %s\n", op.Circuit(), op.Product(), result.TxHash)
		return nil
	}
	if !orchestrator.IsAmbiguousOutcomeError(err) {
		return err
	}

	// the operation context may be the reason for the ambiguity
	reconcileCtx, cancel := context.WithTimeout(context.Background(), conf.Ledger.Timeout)
	defer cancel()
	outcome, rerr := s.Reconcile(reconcileCtx, op)
	if rerr != nil {
		log.Warn().Err(rerr).Msg("could not reconcile ambiguous outcome")
		return err
	}
	switch outcome {
	case orchestrator.OutcomeApplied:
		fmt.Fprintf(w, "%s product %s: applied, transaction hash unknown\n", op.Circuit(), op.Product())
		return nil
	case orchestrator.OutcomeNotApplied:
		return fmt.Errorf("%s product %s was not applied, it is safe to run it again: %w", op.Circuit(), op.Product(), err)
	default:
		return err
	}
}

// describeError renders err for the terminal. Witness rejections are printed
// as they are, transient faults invite the user to try again.
func describeError(err error) string {
	switch orchestrator.KindOf(err) {
	case orchestrator.KindPrecondition:
		return fmt.Sprintf("rejected: %v", err)
	case orchestrator.KindTransient:
		if orchestrator.IsContractNotFoundError(err) {
			return fmt.Sprintf("error: %v", err)
		}
		return fmt.Sprintf("transient failure, try again: %v", err)
	case orchestrator.KindAmbiguous:
		return fmt.Sprintf("outcome unknown: %v", err)
	default:
		return fmt.Sprintf("error: %v", err)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bytes))
	return err
}

func parseProof(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("missing proof")
	}
	proof, err := product.DecodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid proof: %w", err)
	}
	return proof, nil
}
