package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verichain/verichain/emulator"
	"github.com/verichain/verichain/engine/orchestrator"
	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module/commitment"
	mockmodule "github.com/verichain/verichain/module/mock"
	"github.com/verichain/verichain/session"
	"github.com/verichain/verichain/utils/unittest"
	"github.com/verichain/verichain/witness"
)

func testConfig() session.Config {
	return session.Config{
		Orchestrator: orchestrator.Config{
			MaxAttempts:        3,
			RetryBase:          time.Millisecond,
			RetryMax:           5 * time.Millisecond,
			RetryJitterPercent: 10,
		},
	}
}

func newLedger(t *testing.T) *emulator.EmulatedLedger {
	l, err := emulator.NewEmulatedLedger(emulator.WithLogger(unittest.Logger()))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, l.Close()) })
	return l
}

func deploySession(t *testing.T, ledger *emulator.EmulatedLedger) *session.Session {
	s, err := session.Deploy(context.Background(), unittest.Logger(), session.NewCapabilities(ledger), testConfig())
	require.NoError(t, err)
	return s
}

// Registering on a fresh contract updates the product counters.
func TestRegisterProduct(t *testing.T) {
	ctx := context.Background()
	s := deploySession(t, newLedger(t))

	result, err := s.RegisterProduct(ctx, 1, 100, unittest.CommitmentFixture())
	require.NoError(t, err)
	assert.NotEmpty(t, result.TxHash)

	state, err := s.State(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsRegistered(1))
	assert.Equal(t, uint64(1), state.TotalProducts())
}

// A second mint is rejected locally.
func TestMintTwice(t *testing.T) {
	ctx := context.Background()
	s := deploySession(t, newLedger(t))

	_, err := s.RegisterProduct(ctx, 1, 100, unittest.CommitmentFixture())
	require.NoError(t, err)
	_, err = s.MintNFT(ctx, 1)
	require.NoError(t, err)

	_, err = s.MintNFT(ctx, 1)
	require.Error(t, err)
	assert.True(t, witness.IsAlreadyMintedError(err))
	assert.Equal(t, orchestrator.KindPrecondition, orchestrator.KindOf(err))

	state, err := s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), state.TotalNFTs())
}

// Verification requires a minted product.
func TestVerifyBeforeMint(t *testing.T) {
	ctx := context.Background()
	s := deploySession(t, newLedger(t))

	_, err := s.RegisterProduct(ctx, 1, 100, unittest.CommitmentFixture())
	require.NoError(t, err)

	_, err = s.VerifyProduct(ctx, 1, unittest.AuthenticityProofFixture())
	require.Error(t, err)
	assert.True(t, witness.IsNotMintedError(err))

	_, err = s.MintNFT(ctx, 1)
	require.NoError(t, err)
	_, err = s.VerifyProduct(ctx, 1, unittest.AuthenticityProofFixture())
	require.NoError(t, err)
}

// Two sessions race to mint the same product. Exactly one mint is
// applied and the loser observes the precondition error.
func TestConcurrentMint(t *testing.T) {
	ctx := context.Background()
	ledger := newLedger(t)
	first := deploySession(t, ledger)
	second, err := session.Connect(ctx, unittest.Logger(), session.NewCapabilities(ledger), testConfig(), first.Address())
	require.NoError(t, err)

	_, err = first.RegisterProduct(ctx, 1, 100, unittest.CommitmentFixture())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, s := range []*session.Session{first, second} {
		wg.Add(1)
		go func(i int, s *session.Session) {
			defer wg.Done()
			_, errs[i] = s.MintNFT(ctx, 1)
		}(i, s)
	}
	unittest.RequireReturnsBefore(t, wg.Wait, 5*time.Second)

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, witness.IsAlreadyMintedError(err), err.Error())
	}
	assert.Equal(t, 1, succeeded)

	state, err := first.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), state.TotalNFTs())
}

func TestLifecycle(t *testing.T) {
	zero32 := make([]byte, product.CommitmentLength)

	type step struct {
		op       witness.Operation
		rejected func(error) bool
	}
	cases := []struct {
		name     string
		steps    []step
		products uint64
		nfts     uint64
		nonce    uint64
	}{
		{
			name: "register mint verify",
			steps: []step{
				{op: witness.RegisterProduct{ProductID: 1, OwnerID: 42, Commitment: zero32}},
				{op: witness.MintNFT{ProductID: 1}},
				{op: witness.VerifyAuthenticity{ProductID: 1, Proof: zero32}},
			},
			products: 1,
			nfts:     1,
			nonce:    3,
		},
		{
			name: "mint unregistered",
			steps: []step{
				{op: witness.MintNFT{ProductID: 5}, rejected: witness.IsNotRegisteredError},
			},
		},
		{
			name: "register twice",
			steps: []step{
				{op: witness.RegisterProduct{ProductID: 7, OwnerID: 42, Commitment: zero32}},
				{op: witness.RegisterProduct{ProductID: 7, OwnerID: 42, Commitment: zero32}, rejected: witness.IsAlreadyRegisteredError},
			},
			products: 1,
			nonce:    1,
		},
		{
			name: "mint twice",
			steps: []step{
				{op: witness.RegisterProduct{ProductID: 9, OwnerID: 42, Commitment: zero32}},
				{op: witness.MintNFT{ProductID: 9}},
				{op: witness.MintNFT{ProductID: 9}, rejected: witness.IsAlreadyMintedError},
			},
			products: 1,
			nfts:     1,
			nonce:    2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			s := deploySession(t, newLedger(t))

			for i, step := range tc.steps {
				result, err := s.Execute(ctx, step.op)
				if step.rejected == nil {
					require.NoError(t, err, "step %d", i)
					assert.NotEmpty(t, result.TxHash)
					continue
				}
				require.Error(t, err, "step %d", i)
				assert.True(t, step.rejected(err), err.Error())
				assert.Equal(t, orchestrator.KindPrecondition, orchestrator.KindOf(err))
			}

			state, err := s.State(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.products, state.TotalProducts())
			assert.Equal(t, tc.nfts, state.TotalNFTs())
			assert.Equal(t, tc.nonce, state.Nonce())
		})
	}
}

// A rejected operation never reaches the submitter.
func TestMintUnregistered_NotSubmitted(t *testing.T) {
	ctx := context.Background()
	ledger := newLedger(t)
	submitter := mockmodule.NewSubmitter(t)
	caps := session.Capabilities{
		Querier:   ledger,
		Submitter: submitter,
		Deployer:  ledger,
		Committer: commitment.NewSHA3Committer(),
	}
	s, err := session.Deploy(ctx, unittest.Logger(), caps, testConfig())
	require.NoError(t, err)

	_, err = s.MintNFT(ctx, 5)
	require.Error(t, err)
	assert.True(t, witness.IsNotRegisteredError(err))
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestDiscloseESG(t *testing.T) {
	ctx := context.Background()
	s := deploySession(t, newLedger(t))

	_, err := s.DiscloseESG(ctx, 1, unittest.ESGProofFixture())
	require.Error(t, err)
	assert.True(t, witness.IsNotRegisteredError(err))

	_, err = s.RegisterProduct(ctx, 1, 100, unittest.CommitmentFixture())
	require.NoError(t, err)

	_, err = s.DiscloseESG(ctx, 1, unittest.AuthenticityProofFixture())
	require.Error(t, err)
	assert.True(t, witness.IsInvalidProofLengthError(err))

	// disclosure does not require minting and may be repeated
	for i := 0; i < 2; i++ {
		_, err = s.DiscloseESG(ctx, 1, unittest.ESGProofFixture())
		require.NoError(t, err)
	}
}

func TestRegisterProductMetadata(t *testing.T) {
	ctx := context.Background()
	s := deploySession(t, newLedger(t))
	metadata := []byte(`{"name":"Trail Runner","batch":"2024-07"}`)

	c, result, err := s.RegisterProductMetadata(ctx, 9, 100, metadata)
	require.NoError(t, err)
	assert.NotEmpty(t, result.TxHash)
	assert.Equal(t, commitment.NewSHA3Committer().Commit(metadata), c)

	_, _, err = s.RegisterProductMetadata(ctx, 9, 100, metadata)
	assert.True(t, witness.IsAlreadyRegisteredError(err))
}

func TestStage(t *testing.T) {
	ctx := context.Background()
	s := deploySession(t, newLedger(t))

	stage, err := s.Stage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, product.StageUnknown, stage)

	_, err = s.RegisterProduct(ctx, 1, 100, unittest.CommitmentFixture())
	require.NoError(t, err)
	stage, err = s.Stage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, product.StageRegistered, stage)

	_, err = s.MintNFT(ctx, 1)
	require.NoError(t, err)
	stage, err = s.Stage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, product.StageMinted, stage)
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	s := deploySession(t, newLedger(t))

	outcome, err := s.Reconcile(ctx, witness.RegisterProduct{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, orchestrator.OutcomeNotApplied, outcome)

	_, err = s.RegisterProduct(ctx, 1, 100, unittest.CommitmentFixture())
	require.NoError(t, err)

	outcome, err = s.Reconcile(ctx, witness.RegisterProduct{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, orchestrator.OutcomeApplied, outcome)
}

func TestConnect_ContractNotFound(t *testing.T) {
	ledger := newLedger(t)

	_, err := session.Connect(context.Background(), unittest.Logger(), session.NewCapabilities(ledger), testConfig(), unittest.AddressFixture())
	require.Error(t, err)
	assert.True(t, orchestrator.IsContractNotFoundError(err))
}

func TestConnect_LedgerUnavailable(t *testing.T) {
	address := unittest.AddressFixture()
	querier := mockmodule.NewLedgerQuerier(t)
	querier.On("ContractState", mock.Anything, address).Return(nil, fmt.Errorf("connection refused")).Once()

	caps := session.Capabilities{Querier: querier, Submitter: mockmodule.NewSubmitter(t)}
	_, err := session.Connect(context.Background(), unittest.Logger(), caps, testConfig(), address)
	require.Error(t, err)
	assert.True(t, orchestrator.IsLedgerUnavailableError(err))
}

func TestDeploy_Failure(t *testing.T) {
	deployer := mockmodule.NewDeployer(t)
	deployer.On("Deploy", mock.Anything).Return(product.Address(""), fmt.Errorf("out of funds")).Once()

	caps := session.Capabilities{
		Querier:   mockmodule.NewLedgerQuerier(t),
		Submitter: mockmodule.NewSubmitter(t),
		Deployer:  deployer,
	}
	_, err := session.Deploy(context.Background(), unittest.Logger(), caps, testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of funds")

	_, err = session.Deploy(context.Background(), unittest.Logger(), session.Capabilities{}, testConfig())
	assert.Error(t, err)
}

func TestSession_CustomCommitter(t *testing.T) {
	ctx := context.Background()
	ledger := newLedger(t)
	fixed := product.Commitment{1, 2, 3}

	committer := mockmodule.NewCommitter(t)
	committer.On("Commit", []byte("data")).Return(fixed).Once()

	caps := session.NewCapabilities(ledger)
	caps.Committer = committer
	s, err := session.Deploy(ctx, unittest.Logger(), caps, testConfig())
	require.NoError(t, err)

	c, _, err := s.RegisterProductMetadata(ctx, 1, 1, []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, fixed, c)
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	s := deploySession(t, newLedger(t))

	ops := []witness.Operation{
		witness.RegisterProduct{ProductID: 9, Commitment: unittest.CommitmentFixture()},
		witness.MintNFT{ProductID: 9},
		witness.VerifyAuthenticity{ProductID: 9, Proof: unittest.AuthenticityProofFixture()},
		witness.DiscloseESG{ProductID: 9, Proof: unittest.ESGProofFixture()},
	}
	for _, op := range ops {
		result, err := s.Execute(ctx, op)
		require.NoError(t, err, op.Circuit())
		assert.NotEmpty(t, result.TxHash)
	}

	state, err := s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), state.Nonce())
}
