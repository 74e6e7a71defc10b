package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/http/httputil"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/verichain/verichain/client"
	"github.com/verichain/verichain/emulator"
	"github.com/verichain/verichain/engine/orchestrator"
	"github.com/verichain/verichain/engine/access/rest"
	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
	"github.com/verichain/verichain/module/metrics"
	"github.com/verichain/verichain/session"
	"github.com/verichain/verichain/utils/unittest"
	"github.com/verichain/verichain/witness"
)

func newLedgerServer(t *testing.T) *httptest.Server {
	ledger, err := emulator.NewEmulatedLedger(emulator.WithLogger(unittest.Logger()))
	require.NoError(t, err)
	server := httptest.NewServer(rest.NewRouter(ledger, unittest.Logger(), rest.DefaultConfig(), metrics.NewNoopCollector(), nil))
	t.Cleanup(func() {
		server.Close()
		require.NoError(t, ledger.Close())
	})
	return server
}

func newClient(t *testing.T, url string) *client.Client {
	config := client.DefaultConfig()
	config.URL = url
	config.Timeout = 5 * time.Second
	c, err := client.New(unittest.Logger(), config)
	require.NoError(t, err)
	return c
}

func registerCall(address product.Address, id product.ID) *product.Call {
	return &product.Call{
		Circuit:  product.CircuitRegisterProduct,
		Contract: address,
		Args:     product.Arguments{ProductID: id, OwnerID: 7, Commitment: unittest.CommitmentFixture()},
	}
}

func TestClient_Lifecycle(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newLedgerServer(t).URL)

	address, err := c.Deploy(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, address)

	state, err := c.ContractState(ctx, address)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Zero(t, state.Nonce())

	call := registerCall(address, 21)
	hash, err := c.Submit(ctx, call)
	require.NoError(t, err)

	state, err = c.ContractState(ctx, address)
	require.NoError(t, err)
	assert.True(t, state.IsRegistered(21))
	assert.Equal(t, uint64(1), state.TotalProducts())

	tx, err := c.Transaction(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, hash, tx.Hash)
	assert.Equal(t, address.String(), tx.Contract)

	_, err = c.Transaction(ctx, unittest.TxHashFixture())
	assert.True(t, client.IsNotFoundError(err))

	t.Run("rejected call", func(t *testing.T) {
		_, err := c.Submit(ctx, call)
		require.Error(t, err)
		assert.True(t, client.IsCallRejectedError(err))
		assert.False(t, errors.Is(err, module.ErrOutcomeUnknown))
	})
}

func TestClient_UnknownContract(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newLedgerServer(t).URL)

	state, err := c.ContractState(ctx, unittest.AddressFixture())
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestClient_OutcomeUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.ReadAll(r.Body)
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
	defer server.Close()

	c := newClient(t, server.URL)
	_, err := c.Submit(context.Background(), registerCall(unittest.AddressFixture(), 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, module.ErrOutcomeUnknown)
}

// newGatewayTimeoutProxy forwards every request to target and answers applied
// calls with 504, the way a load balancer does when the upstream is slow.
func newGatewayTimeoutProxy(t *testing.T, target string) *httptest.Server {
	upstream, err := url.Parse(target)
	require.NoError(t, err)
	proxy := httputil.NewSingleHostReverseProxy(upstream)
	proxy.ModifyResponse = func(resp *http.Response) error {
		if resp.Request.Method == http.MethodPost && strings.HasSuffix(resp.Request.URL.Path, "/calls") {
			_ = resp.Body.Close()
			resp.StatusCode = http.StatusGatewayTimeout
			resp.Status = http.StatusText(http.StatusGatewayTimeout)
			resp.Body = io.NopCloser(strings.NewReader("upstream timed out"))
			resp.ContentLength = -1
			resp.Header.Del("Content-Length")
		}
		return nil
	}
	server := httptest.NewServer(proxy)
	t.Cleanup(server.Close)
	return server
}

func TestClient_GatewayTimeoutIsOutcomeUnknown(t *testing.T) {
	ctx := context.Background()
	ledger := newLedgerServer(t)
	direct := newClient(t, ledger.URL)
	proxied := newClient(t, newGatewayTimeoutProxy(t, ledger.URL).URL)

	address, err := direct.Deploy(ctx)
	require.NoError(t, err)

	_, err = proxied.Submit(ctx, registerCall(address, 4))
	require.Error(t, err)
	assert.ErrorIs(t, err, module.ErrOutcomeUnknown)
	statusErr, ok := client.IsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusGatewayTimeout, statusErr.StatusCode)

	state, err := direct.ContractState(ctx, address)
	require.NoError(t, err)
	assert.True(t, state.IsRegistered(4))
	assert.Equal(t, uint64(1), state.Nonce())
}

func TestClient_GatewayTimeoutIsNotResubmitted(t *testing.T) {
	ctx := context.Background()
	ledger := newLedgerServer(t)
	direct := newClient(t, ledger.URL)
	proxied := newClient(t, newGatewayTimeoutProxy(t, ledger.URL).URL)

	s, err := session.Deploy(ctx, unittest.Logger(), session.NewCapabilities(direct), session.DefaultConfig())
	require.NoError(t, err)
	_, err = s.RegisterProduct(ctx, 1, 42, unittest.CommitmentFixture())
	require.NoError(t, err)
	_, err = s.MintNFT(ctx, 1)
	require.NoError(t, err)

	config := session.DefaultConfig()
	config.Orchestrator.RetryBase = time.Millisecond
	config.Orchestrator.RetryMax = 10 * time.Millisecond
	viaProxy, err := session.Connect(ctx, unittest.Logger(), session.NewCapabilities(proxied), config, s.Address())
	require.NoError(t, err)

	_, err = viaProxy.VerifyProduct(ctx, 1, unittest.AuthenticityProofFixture())
	require.Error(t, err)
	assert.True(t, orchestrator.IsAmbiguousOutcomeError(err))
	assert.Equal(t, orchestrator.KindAmbiguous, orchestrator.KindOf(err))

	state, err := direct.ContractState(ctx, s.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), state.Nonce())
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := newClient(t, url)
	_, err := c.Submit(context.Background(), registerCall(unittest.AddressFixture(), 1))
	require.Error(t, err)
	assert.False(t, errors.Is(err, module.ErrOutcomeUnknown))

	_, err = c.ContractState(context.Background(), unittest.AddressFixture())
	require.Error(t, err)
}

func TestClient_CircuitBreaker(t *testing.T) {
	hits := atomic.NewInt32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Inc()
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":500,"message":"internal server error"}`))
	}))
	defer server.Close()

	config := client.DefaultConfig()
	config.URL = server.URL
	config.BreakerFailures = 2
	config.BreakerTimeout = time.Minute
	c, err := client.New(unittest.Logger(), config)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := c.ContractState(ctx, unittest.AddressFixture())
		statusErr, ok := client.IsStatusError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.Equal(t, "internal server error", statusErr.Message)
	}

	_, err = c.ContractState(ctx, unittest.AddressFixture())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_ClientErrorsKeepBreakerClosed(t *testing.T) {
	hits := atomic.NewInt32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Inc()
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":409,"message":"product already registered"}`))
	}))
	defer server.Close()

	config := client.DefaultConfig()
	config.URL = server.URL
	config.BreakerFailures = 1
	c, err := client.New(unittest.Logger(), config)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.Submit(context.Background(), registerCall(unittest.AddressFixture(), 1))
		assert.True(t, client.IsCallRejectedError(err))
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_CancellationsKeepBreakerClosed(t *testing.T) {
	hits := atomic.NewInt32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Inc()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	config := client.DefaultConfig()
	config.URL = server.URL
	config.BreakerFailures = 1
	c, err := client.New(unittest.Logger(), config)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 3; i++ {
		_, err := c.ContractState(cancelled, unittest.AddressFixture())
		require.ErrorIs(t, err, context.Canceled)
	}

	_, err = c.Deploy(context.Background())
	assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Subscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := newClient(t, newLedgerServer(t).URL)

	address, err := c.Deploy(ctx)
	require.NoError(t, err)

	sub, err := c.Subscribe(ctx, address)
	require.NoError(t, err)

	hash, err := c.Submit(ctx, registerCall(address, 5))
	require.NoError(t, err)

	nextCtx, nextCancel := context.WithTimeout(ctx, 5*time.Second)
	defer nextCancel()
	event, err := sub.Next(nextCtx)
	require.NoError(t, err)
	assert.Equal(t, hash, event.TxHash)
	assert.Equal(t, uint64(5), event.ProductID)

	cancel()
	for range sub.Events() {
	}
	assert.NoError(t, sub.Err())
}

func TestClient_SubscribeUnknownContract(t *testing.T) {
	c := newClient(t, newLedgerServer(t).URL)
	_, err := c.Subscribe(context.Background(), unittest.AddressFixture())
	require.Error(t, err)
	assert.True(t, client.IsNotFoundError(err))
}

func TestNew_InvalidConfig(t *testing.T) {
	for name, url := range map[string]string{
		"no scheme":    "127.0.0.1:8088",
		"bad scheme":   "ftp://127.0.0.1",
		"missing host": "http://",
	} {
		t.Run(name, func(t *testing.T) {
			config := client.DefaultConfig()
			config.URL = url
			_, err := client.New(unittest.Logger(), config)
			assert.Error(t, err)
		})
	}
}

func TestClient_Session(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newLedgerServer(t).URL)

	s, err := session.Deploy(ctx, unittest.Logger(), session.NewCapabilities(c), session.DefaultConfig())
	require.NoError(t, err)

	_, err = s.RegisterProduct(ctx, 3, 1, unittest.CommitmentFixture())
	require.NoError(t, err)
	_, err = s.MintNFT(ctx, 3)
	require.NoError(t, err)
	_, err = s.VerifyProduct(ctx, 3, unittest.AuthenticityProofFixture())
	require.NoError(t, err)

	_, err = s.MintNFT(ctx, 3)
	assert.True(t, witness.IsAlreadyMintedError(err))

	stage, err := s.Stage(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, product.StageMinted, stage)
}
