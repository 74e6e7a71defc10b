// Package client implements the ledger capabilities over the REST API served
// by a ledger access node or the emulator.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"path"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"go.uber.org/atomic"

	"github.com/verichain/verichain/engine/access/rest/models"
	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
	"github.com/verichain/verichain/utils/logging"
)

const maxResponseSize = 1 << 20

// Client talks to the ledger REST API. It is safe for concurrent use.
type Client struct {
	log     zerolog.Logger
	baseURL *url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

var _ module.Ledger = (*Client)(nil)

func New(log zerolog.Logger, config Config) (*Client, error) {
	base, err := config.baseURL()
	if err != nil {
		return nil, err
	}
	if config.BreakerFailures == 0 {
		return nil, fmt.Errorf("breaker failures must be positive")
	}

	log = log.With().Str("component", "ledger_client").Str("ledger_url", base.String()).Logger()
	c := &Client{
		log:     log,
		baseURL: base,
		http:    &http.Client{Timeout: config.Timeout},
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "ledger",
		Timeout: config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.BreakerFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker changed state")
		},
		IsSuccessful: func(err error) bool {
			if errors.Is(err, context.Canceled) {
				return true
			}
			return !isServerFailure(err)
		},
	})
	return c, nil
}

// Deploy creates a new registry contract.
func (c *Client) Deploy(ctx context.Context) (product.Address, error) {
	var deployment models.Deployment
	_, err := c.do(ctx, http.MethodPost, "contracts", nil, &deployment)
	if err != nil {
		return "", fmt.Errorf("could not deploy contract: %w", err)
	}
	return product.Address(deployment.Address), nil
}

// ContractState returns the public state of the contract at address, or nil
// if no contract is deployed there.
func (c *Client) ContractState(ctx context.Context, address product.Address) (*product.LedgerState, error) {
	var state models.ContractState
	_, err := c.do(ctx, http.MethodGet, path.Join("contracts", address.String(), "state"), nil, &state)
	if IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get contract state: %w", err)
	}
	return state.LedgerState()
}

// Submit sends a circuit call and blocks until the ledger has applied it.
// Transport failures and 5xx answers after the request was fully written wrap
// module.ErrOutcomeUnknown: the call may have reached the ledger. Rejections
// (4xx) are definite.
func (c *Client) Submit(ctx context.Context, call *product.Call) (string, error) {
	var req models.CallRequest
	req.Build(call)

	var result models.TransactionResult
	written, err := c.do(ctx, http.MethodPost, path.Join("contracts", call.Contract.String(), "calls"), req, &result)
	if err != nil {
		if written && outcomeUnknown(err) {
			return "", fmt.Errorf("%w: could not submit %s: %w", module.ErrOutcomeUnknown, call.Circuit, err)
		}
		return "", fmt.Errorf("could not submit %s: %w", call.Circuit, err)
	}
	callLog := logging.Call(c.log, call)
	callLog.Debug().
		Str("tx_hash", result.TxHash).
		Msg("call applied")
	return result.TxHash, nil
}

// Transaction returns an applied transaction by its hash.
func (c *Client) Transaction(ctx context.Context, hash string) (*models.Transaction, error) {
	var tx models.Transaction
	_, err := c.do(ctx, http.MethodGet, path.Join("transactions", hash), nil, &tx)
	if err != nil {
		return nil, fmt.Errorf("could not get transaction %s: %w", hash, err)
	}
	return &tx, nil
}

// do sends a request to the v1 API and decodes the response into out. It
// reports whether the request was completely written to the connection.
func (c *Client) do(ctx context.Context, method string, endpoint string, body interface{}, out interface{}) (bool, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("could not encode request: %w", err)
		}
	}

	written := atomic.NewBool(false)
	trace := &httptrace.ClientTrace{
		WroteRequest: func(info httptrace.WroteRequestInfo) {
			if info.Err == nil {
				written.Store(true)
			}
		},
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(httptrace.WithClientTrace(ctx, trace), method, c.endpoint(endpoint), bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("could not build request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return nil, fmt.Errorf("could not read response: %w", err)
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, statusError(resp.StatusCode, data)
		}
		if out != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return nil, fmt.Errorf("could not decode response: %w", err)
			}
		}
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false, fmt.Errorf("ledger unavailable: %w", err)
	}
	return written.Load(), err
}

func (c *Client) endpoint(endpoint string) string {
	u := *c.baseURL
	u.Path = path.Join(u.Path, "v1", endpoint)
	return u.String()
}

func statusError(code int, body []byte) *StatusError {
	var modelErr models.ModelError
	if err := json.Unmarshal(body, &modelErr); err != nil || modelErr.Message == "" {
		return &StatusError{StatusCode: code, Message: string(bytes.TrimSpace(body))}
	}
	return &StatusError{StatusCode: code, Message: modelErr.Message}
}
