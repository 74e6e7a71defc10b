// Package emulator provides an in-process ledger that enforces the circuit
// assertions of the registry contract. It backs local development, the
// emulator server and integration tests.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/verichain/verichain/emulator/storage"
	"github.com/verichain/verichain/emulator/storage/badger"
	"github.com/verichain/verichain/emulator/types"
	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
	"github.com/verichain/verichain/module/metrics"
	"github.com/verichain/verichain/utils/logging"
)

// EmulatedLedger applies circuit calls to registry contracts.
//
// Calls are applied one at a time: every call is checked against the latest
// committed contract state and either applied atomically or rejected with a
// CircuitAssertionError. Of two concurrent calls that both pass local
// validation, the ledger therefore applies at most one if they conflict.
type EmulatedLedger struct {
	log     zerolog.Logger
	store   storage.Store
	metrics module.LedgerMetrics

	// serializes state transitions
	mu sync.Mutex

	receipts *lru.Cache[string, *types.Transaction]
	events   *eventBroker
	now      func() time.Time
	closers  []func() error
}

var _ module.Ledger = (*EmulatedLedger)(nil)

// Config is a set of configuration options for an emulated ledger.
type Config struct {
	Store            storage.Store
	Logger           zerolog.Logger
	Metrics          module.LedgerMetrics
	ReceiptCacheSize int
	EventBufferSize  int
}

var defaultConfig = Config{
	Logger:           zerolog.Nop(),
	ReceiptCacheSize: 1000,
	EventBufferSize:  64,
}

// Option is a function applying a change to the emulator config.
type Option func(*Config)

// WithStore sets the persistent storage provider.
func WithStore(store storage.Store) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithMetrics sets the ledger metrics collector.
func WithMetrics(m module.LedgerMetrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithReceiptCacheSize sets how many recent transactions are served from
// memory.
func WithReceiptCacheSize(size int) Option {
	return func(c *Config) {
		c.ReceiptCacheSize = size
	}
}

// WithEventBufferSize sets the channel buffer of each event subscription.
func WithEventBufferSize(size int) Option {
	return func(c *Config) {
		c.EventBufferSize = size
	}
}

// NewEmulatedLedger instantiates a new ledger. Without a store, state is kept
// in an in-memory badger database owned by the ledger.
func NewEmulatedLedger(opts ...Option) (*EmulatedLedger, error) {
	config := defaultConfig
	for _, opt := range opts {
		opt(&config)
	}
	if config.Metrics == nil {
		config.Metrics = metrics.NewNoopCollector()
	}

	l := &EmulatedLedger{
		log:     config.Logger.With().Str("component", "emulator").Logger(),
		metrics: config.Metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}

	// NOTE: the in-memory store is not created in defaultConfig, otherwise the
	// same instance would be shared between ledgers
	if config.Store == nil {
		store, err := badger.NewInMemory()
		if err != nil {
			return nil, err
		}
		config.Store = store
		l.closers = append(l.closers, store.Close)
	}
	l.store = config.Store

	receipts, err := lru.New[string, *types.Transaction](config.ReceiptCacheSize)
	if err != nil {
		return nil, fmt.Errorf("could not create receipt cache: %w", err)
	}
	l.receipts = receipts
	l.events = newEventBroker(l.log, config.EventBufferSize)

	return l, nil
}

// Deploy creates a new, empty registry contract.
func (l *EmulatedLedger) Deploy(ctx context.Context) (product.Address, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	seed := uuid.New()
	contract := types.NewContract(contractAddress(seed[:]), l.now())

	err := l.store.InsertContract(contract)
	if err != nil {
		return "", &StorageError{err}
	}

	l.metrics.ContractDeployed()
	l.log.Info().Str("contract", contract.Address.String()).Msg("contract deployed")
	return contract.Address, nil
}

// ContractState returns the public state of the contract at address, or nil
// if no contract is deployed there.
func (l *EmulatedLedger) ContractState(ctx context.Context, address product.Address) (*product.LedgerState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contract, err := l.store.ContractByAddress(address)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{err}
	}
	return contract.LedgerState(), nil
}

// Submit applies call and returns the hash of the resulting transaction.
//
// Expected errors during normal operations:
//   - CircuitAssertionError if the call violates a circuit assertion
//   - ContractNotFoundError if no contract is deployed at the call's address
func (l *EmulatedLedger) Submit(ctx context.Context, call *product.Call) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	apply, ok := circuits[call.Circuit]
	if !ok {
		return "", &CircuitAssertionError{Circuit: call.Circuit, ProductID: call.Args.ProductID, Message: "unknown circuit"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	stored, err := l.store.ContractByAddress(call.Contract)
	if errors.Is(err, storage.ErrNotFound) {
		return "", &ContractNotFoundError{Address: call.Contract}
	}
	if err != nil {
		return "", &StorageError{err}
	}

	contract := stored.Copy()
	err = apply(contract, call.Args)
	if err != nil {
		l.metrics.CallRejected(call.Circuit)
		callLog := logging.Call(l.log, call)
		callLog.Debug().Err(err).Msg("call rejected")
		return "", err
	}
	contract.Nonce++

	hash, err := transactionHash(call, contract.Nonce)
	if err != nil {
		return "", err
	}
	tx := &types.Transaction{
		Hash:      hash,
		Call:      *call,
		Nonce:     contract.Nonce,
		AppliedAt: l.now(),
	}

	err = l.store.CommitTransaction(contract, tx)
	if err != nil {
		return "", &StorageError{err}
	}
	l.receipts.Add(hash, tx)
	l.events.publish(types.EventFromTransaction(tx))
	l.metrics.CallApplied(call.Circuit)

	callLog := logging.Call(l.log, call)
	callLog.Info().
		Str("tx_hash", hash).
		Uint64("nonce", contract.Nonce).
		Msg("call applied")

	return hash, nil
}

// Transaction returns an applied transaction by hash.
func (l *EmulatedLedger) Transaction(hash string) (*types.Transaction, error) {
	if tx, ok := l.receipts.Get(hash); ok {
		return tx, nil
	}

	tx, err := l.store.TransactionByHash(hash)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, &TransactionNotFoundError{TxHash: hash}
	}
	if err != nil {
		return nil, &StorageError{err}
	}
	l.receipts.Add(hash, tx)
	return tx, nil
}

// Subscribe returns a channel receiving an event for every transaction applied
// to the contract at address. The returned function ends the subscription and
// closes the channel.
func (l *EmulatedLedger) Subscribe(address product.Address) (<-chan types.Event, func(), error) {
	_, err := l.store.ContractByAddress(address)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, &ContractNotFoundError{Address: address}
	}
	if err != nil {
		return nil, nil, &StorageError{err}
	}

	events, unsubscribe := l.events.subscribe(address)
	return events, unsubscribe, nil
}

// Close releases the resources owned by the ledger.
func (l *EmulatedLedger) Close() error {
	var result *multierror.Error
	for _, closer := range l.closers {
		if err := closer(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
