// Package orchestrator drives registry operations against a ledger: it reads a
// fresh snapshot, runs the operation's witness, and submits the call.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"

	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
	"github.com/verichain/verichain/witness"
)

// Orchestrator executes witness-guarded circuit calls.
//
// Local validation is advisory. Two orchestrators may validate against the same
// snapshot and both submit; the ledger's circuit assertions decide which call
// is applied. The orchestrator holds no mutable state and is safe for
// concurrent use.
type Orchestrator struct {
	log       zerolog.Logger
	querier   module.LedgerQuerier
	submitter module.Submitter
	metrics   module.RegistryMetrics
	tracer    module.Tracer
	config    Config
}

func New(
	log zerolog.Logger,
	querier module.LedgerQuerier,
	submitter module.Submitter,
	metrics module.RegistryMetrics,
	tracer module.Tracer,
	config Config,
) (*Orchestrator, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid orchestrator config: %w", err)
	}
	return &Orchestrator{
		log:       log.With().Str("component", "orchestrator").Logger(),
		querier:   querier,
		submitter: submitter,
		metrics:   metrics,
		tracer:    tracer,
		config:    config,
	}, nil
}

// Execute runs op against the contract at address and returns the hash of the
// confirmed transaction.
//
// Expected errors during normal operations:
//   - witness.PreconditionError if the operation's witness rejected the snapshot
//   - ContractNotFoundError if address does not resolve to a contract
//   - LedgerUnavailableError if the snapshot could not be read
//   - SubmissionFailedError if the ledger did not apply the call
//   - AmbiguousOutcomeError if the call may have been applied
//   - RetriesExhaustedError wrapping one of the transient errors above once
//     more than one attempt was made
//
// Transient faults are retried from a fresh snapshot, so an operation that
// lost a race surfaces the precondition error on its next attempt.
func (o *Orchestrator) Execute(ctx context.Context, address product.Address, op witness.Operation) (*product.TransactionResult, error) {
	circuit := op.Circuit()
	log := o.log.With().
		Str("op_id", uuid.New().String()).
		Str("circuit", circuit.String()).
		Str("product_id", op.Product().String()).
		Str("contract", address.String()).
		Logger()

	backoff := o.backoff()

	start := time.Now()
	var (
		result   *product.TransactionResult
		lastErr  error
		failures *multierror.Error
		attempt  int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			o.metrics.SubmissionRetried(circuit)
		}

		res, err := o.attempt(ctx, log, address, op)
		if err == nil {
			result = res
			return nil
		}
		lastErr = err

		if !isRetryable(err) || ctx.Err() != nil {
			return err
		}
		failures = multierror.Append(failures, fmt.Errorf("attempt %d: %w", attempt, err))
		log.Warn().Err(err).Int("attempt", attempt).Msg("transient failure, retrying from a fresh snapshot")
		return retry.RetryableError(err)
	})

	if err == nil {
		duration := time.Since(start)
		o.metrics.OperationSubmitted(circuit, duration)
		log.Info().
			Str("tx_hash", result.TxHash).
			Int("attempts", attempt).
			Dur("duration", duration).
			Msg("operation confirmed")
		return result, nil
	}

	// retry.Do checks the context before each attempt and reports a
	// cancellation as the bare context error. Neither case reached the ledger.
	if attempt == 0 && isContextError(err) {
		err = NewLedgerUnavailableError(address, err)
	}
	if !isRetryable(err) && isContextError(err) && lastErr != nil && isRetryable(lastErr) {
		err = fmt.Errorf("operation interrupted while waiting to retry (%v): %w", err, lastErr)
	}
	if failures != nil && len(failures.Errors) > 1 && isRetryable(err) {
		err = &RetriesExhaustedError{attempts: failures, last: err}
	}

	var rejection witness.PreconditionError
	if errors.As(err, &rejection) {
		o.metrics.OperationRejected(circuit, rejection.Reason())
		log.Info().Str("reason", rejection.Reason()).Msg("operation rejected by witness")
		return nil, err
	}

	kind := KindOf(err)
	o.metrics.OperationFailed(circuit, kind.String())
	log.Error().Err(err).Str("kind", kind.String()).Int("attempts", attempt).Msg("operation failed")
	return nil, err
}

// attempt performs one fetch, validate and submit cycle.
func (o *Orchestrator) attempt(ctx context.Context, log zerolog.Logger, address product.Address, op witness.Operation) (*product.TransactionResult, error) {
	span, ctx := o.tracer.StartOperationSpan(ctx, op.Circuit(), op.Product())
	defer span.End()

	result, err := o.submitOnce(ctx, log, address, op)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, KindOf(err).String())
	}
	return result, err
}

func (o *Orchestrator) submitOnce(ctx context.Context, log zerolog.Logger, address product.Address, op witness.Operation) (*product.TransactionResult, error) {
	state, err := o.querier.ContractState(ctx, address)
	if err != nil {
		return nil, NewLedgerUnavailableError(address, err)
	}
	if state == nil {
		return nil, ContractNotFoundError{Address: address}
	}

	args, err := op.Validate(state)
	if err != nil {
		return nil, err
	}

	call := &product.Call{
		Circuit:  op.Circuit(),
		Contract: address,
		Args:     args,
	}

	log.Debug().Uint64("nonce", state.Nonce()).Msg("witness passed, submitting call")

	txHash, err := o.submitter.Submit(ctx, call)
	if err != nil {
		if ctx.Err() != nil || isContextError(err) || errors.Is(err, module.ErrOutcomeUnknown) {
			return nil, NewAmbiguousOutcomeError(call, err)
		}
		return nil, NewSubmissionFailedError(call, err)
	}

	return &product.TransactionResult{TxHash: txHash}, nil
}

func (o *Orchestrator) backoff() retry.Backoff {
	b := retry.NewExponential(o.config.RetryBase)
	b = retry.WithCappedDuration(o.config.RetryMax, b)
	// WithJitterPercent panics on a zero percentage.
	if o.config.RetryJitterPercent > 0 {
		b = retry.WithJitterPercent(o.config.RetryJitterPercent, b)
	}
	return retry.WithMaxRetries(uint64(o.config.MaxAttempts-1), b)
}

// isRetryable returns true for faults that are known to have had no effect on
// the ledger. A missing contract does not appear by waiting, so it is not
// retried.
func isRetryable(err error) bool {
	if IsAmbiguousOutcomeError(err) {
		return false
	}
	return IsLedgerUnavailableError(err) || IsSubmissionFailedError(err)
}
