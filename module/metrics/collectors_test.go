package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verichain/verichain/model/product"
)

func TestRegistryCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewRegistryCollector(registry)

	c.OperationSubmitted(product.CircuitMintNFT, time.Second)
	c.OperationRejected(product.CircuitMintNFT, "already_minted")
	c.OperationRejected(product.CircuitMintNFT, "already_minted")
	c.OperationFailed(product.CircuitRegisterProduct, "transient")
	c.SubmissionRetried(product.CircuitRegisterProduct)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.submitted.WithLabelValues("mint_nft")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.rejected.WithLabelValues("mint_nft", "already_minted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.failed.WithLabelValues("register_product", "transient")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.submissionRetried.WithLabelValues("register_product")))

	count, err := testutil.GatherAndCount(registry, "registry_orchestrator_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLedgerCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewLedgerCollector(registry)

	c.ContractDeployed()
	c.CallApplied(product.CircuitRegisterProduct)
	c.CallRejected(product.CircuitRegisterProduct)

	expected := `
# HELP emulator_ledger_contracts_deployed_total number of deployed registry contracts
# TYPE emulator_ledger_contracts_deployed_total counter
emulator_ledger_contracts_deployed_total 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "emulator_ledger_contracts_deployed_total"))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.applied.WithLabelValues("register_product")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.rejected.WithLabelValues("register_product")))
}

func TestRestCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewRestCollector(registry)

	c.ObserveHTTPRequestDuration("submitCall", "POST", 409, 20*time.Millisecond)

	count, err := testutil.GatherAndCount(registry, "access_rest_api_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
