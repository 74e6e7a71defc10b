// Package session binds the registry operations to one deployed contract.
package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/verichain/verichain/engine/orchestrator"
	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
	"github.com/verichain/verichain/module/commitment"
	"github.com/verichain/verichain/module/metrics"
	"github.com/verichain/verichain/module/trace"
	"github.com/verichain/verichain/witness"
)

// Capabilities are the ledger collaborators a session operates through.
// Deployer is only needed by Deploy and Committer defaults to SHA3-256.
type Capabilities struct {
	Querier   module.LedgerQuerier
	Submitter module.Submitter
	Deployer  module.Deployer
	Committer module.Committer
}

// NewCapabilities returns capabilities backed by a single ledger backend.
func NewCapabilities(ledger module.Ledger) Capabilities {
	return Capabilities{
		Querier:   ledger,
		Submitter: ledger,
		Deployer:  ledger,
		Committer: commitment.NewSHA3Committer(),
	}
}

// Config configures the orchestrator behind a session. Nil metrics and tracer
// default to no-ops.
type Config struct {
	Orchestrator orchestrator.Config
	Metrics      module.RegistryMetrics
	Tracer       module.Tracer
}

func DefaultConfig() Config {
	return Config{Orchestrator: orchestrator.DefaultConfig()}
}

// Session is a handle on one registry contract. It holds no mutable state and
// may be shared between goroutines.
type Session struct {
	log          zerolog.Logger
	address      product.Address
	querier      module.LedgerQuerier
	committer    module.Committer
	orchestrator *orchestrator.Orchestrator
}

// Deploy creates a new registry contract and returns a session bound to it.
func Deploy(ctx context.Context, log zerolog.Logger, caps Capabilities, config Config) (*Session, error) {
	if caps.Deployer == nil {
		return nil, fmt.Errorf("deploying a contract requires a deployer")
	}
	address, err := caps.Deployer.Deploy(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not deploy registry contract: %w", err)
	}

	s, err := newSession(log, caps, config, address)
	if err != nil {
		return nil, err
	}
	s.log.Info().Msg("deployed registry contract")
	return s, nil
}

// Connect returns a session bound to an existing contract.
//
// Expected errors during normal operations:
//   - orchestrator.ContractNotFoundError if address does not resolve to a contract
//   - orchestrator.LedgerUnavailableError if the ledger could not be queried
func Connect(ctx context.Context, log zerolog.Logger, caps Capabilities, config Config, address product.Address) (*Session, error) {
	if caps.Querier == nil {
		return nil, fmt.Errorf("connecting to a contract requires a querier")
	}
	state, err := caps.Querier.ContractState(ctx, address)
	if err != nil {
		return nil, orchestrator.NewLedgerUnavailableError(address, err)
	}
	if state == nil {
		return nil, orchestrator.ContractNotFoundError{Address: address}
	}

	s, err := newSession(log, caps, config, address)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Uint64("total_products", state.TotalProducts()).
		Uint64("total_nfts", state.TotalNFTs()).
		Msg("connected to registry contract")
	return s, nil
}

func newSession(log zerolog.Logger, caps Capabilities, config Config, address product.Address) (*Session, error) {
	if caps.Querier == nil || caps.Submitter == nil {
		return nil, fmt.Errorf("a session requires a querier and a submitter")
	}
	committer := caps.Committer
	if committer == nil {
		committer = commitment.NewSHA3Committer()
	}
	registryMetrics := config.Metrics
	if registryMetrics == nil {
		registryMetrics = metrics.NewNoopCollector()
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = trace.NewNoopTracer()
	}

	log = log.With().Str("contract", address.String()).Logger()
	orch, err := orchestrator.New(log, caps.Querier, caps.Submitter, registryMetrics, tracer, config.Orchestrator)
	if err != nil {
		return nil, fmt.Errorf("could not create orchestrator: %w", err)
	}

	return &Session{
		log:          log.With().Str("component", "session").Logger(),
		address:      address,
		querier:      caps.Querier,
		committer:    committer,
		orchestrator: orch,
	}, nil
}

// Address returns the address of the bound contract.
func (s *Session) Address() product.Address {
	return s.address
}

// Execute runs any registry operation against the bound contract.
func (s *Session) Execute(ctx context.Context, op witness.Operation) (*product.TransactionResult, error) {
	return s.orchestrator.Execute(ctx, s.address, op)
}

// RegisterProduct anchors a 32-byte commitment for a new product.
func (s *Session) RegisterProduct(ctx context.Context, productID product.ID, ownerID uint64, commitment []byte) (*product.TransactionResult, error) {
	return s.orchestrator.Execute(ctx, s.address, witness.RegisterProduct{
		ProductID:  productID,
		OwnerID:    ownerID,
		Commitment: commitment,
	})
}

// RegisterProductMetadata registers a product under the commitment of its
// metadata and returns that commitment along with the transaction.
func (s *Session) RegisterProductMetadata(ctx context.Context, productID product.ID, ownerID uint64, metadata []byte) (product.Commitment, *product.TransactionResult, error) {
	c := s.committer.Commit(metadata)
	result, err := s.RegisterProduct(ctx, productID, ownerID, c.Bytes())
	return c, result, err
}

// MintNFT mints the NFT of a registered product.
func (s *Session) MintNFT(ctx context.Context, productID product.ID) (*product.TransactionResult, error) {
	return s.orchestrator.Execute(ctx, s.address, witness.MintNFT{ProductID: productID})
}

// VerifyProduct submits a 32-byte authenticity proof for a minted product.
func (s *Session) VerifyProduct(ctx context.Context, productID product.ID, proof []byte) (*product.TransactionResult, error) {
	return s.orchestrator.Execute(ctx, s.address, witness.VerifyAuthenticity{
		ProductID: productID,
		Proof:     proof,
	})
}

// DiscloseESG submits a 64-byte ESG proof for a registered product.
func (s *Session) DiscloseESG(ctx context.Context, productID product.ID, proof []byte) (*product.TransactionResult, error) {
	return s.orchestrator.Execute(ctx, s.address, witness.DiscloseESG{
		ProductID: productID,
		Proof:     proof,
	})
}

// State returns the current snapshot of the contract without validation.
func (s *Session) State(ctx context.Context) (*product.LedgerState, error) {
	state, err := s.querier.ContractState(ctx, s.address)
	if err != nil {
		return nil, orchestrator.NewLedgerUnavailableError(s.address, err)
	}
	if state == nil {
		return nil, orchestrator.ContractNotFoundError{Address: s.address}
	}
	return state, nil
}

// Stage returns the lifecycle stage of a product.
func (s *Session) Stage(ctx context.Context, productID product.ID) (product.Stage, error) {
	state, err := s.State(ctx)
	if err != nil {
		return product.StageUnknown, err
	}
	return state.Stage(productID), nil
}

// Reconcile reports whether the effect of op is visible on the ledger. Use it
// after an ambiguous outcome instead of retrying op.
func (s *Session) Reconcile(ctx context.Context, op witness.Operation) (orchestrator.Outcome, error) {
	return s.orchestrator.Reconcile(ctx, s.address, op)
}
