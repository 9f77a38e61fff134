package app_test

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	abci "github.com/cometbft/cometbft/abci/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/hydra-chain/hydra/app"
	keepertest "github.com/hydra-chain/hydra/testutil/keeper"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	feepaytypes "github.com/hydra-chain/hydra/x/feepay/types"
	xykkeeper "github.com/hydra-chain/hydra/x/xyk/keeper"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

const (
	native = assetstypes.NativeAssetID
	dot    = assetstypes.AssetID(1)
	isle   = assetstypes.AssetID(5)
)

var (
	alice = sdk.AccAddress([]byte("alice_______________"))
	bob   = sdk.AccAddress([]byte("bob_________________"))
	carol = sdk.AccAddress([]byte("carol_______________"))
	admin = sdk.AccAddress([]byte("admin_______________"))
)

func TestMain(m *testing.M) {
	app.SetConfig()
	os.Exit(m.Run())
}

func testGenesis() app.GenesisDoc {
	balance := func(addr sdk.AccAddress, id assetstypes.AssetID, amount int64) assetstypes.Balance {
		return assetstypes.Balance{Address: addr.String(), AssetID: id, Amount: math.NewInt(amount)}
	}

	state := app.NewDefaultGenesisState()
	state[assetstypes.ModuleName] = mustJSON(assetstypes.GenesisState{
		Assets: []assetstypes.Asset{
			{ID: native, Name: assetstypes.NativeAssetName},
			{ID: dot, Name: "DOT"},
			{ID: isle, Name: "ISLE"},
		},
		Balances: []assetstypes.Balance{
			balance(alice, native, 1_000_000_000),
			balance(alice, dot, 1_000_000_000),
			balance(bob, dot, 1_000_000),
			balance(carol, native, 1_000_000),
			balance(carol, isle, 1_000_000),
			balance(admin, native, 1_000_000),
		},
	})
	state[feepaytypes.ModuleName] = mustJSON(feepaytypes.GenesisState{
		Params:     feepaytypes.DefaultParams(),
		Currencies: []assetstypes.AssetID{dot, isle},
	})

	return app.GenesisDoc{ChainID: "hydra-test", AppState: state}
}

func mustJSON(v any) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}

func newTestApp(t testing.TB) *app.HydraApp {
	t.Helper()

	hydra, err := app.NewHydraApp(
		log.NewNopLogger(),
		dbm.NewMemDB(),
		true,
		app.WithInvariantCheck(true),
		app.WithAuthority(admin.String()),
	)
	require.NoError(t, err)
	require.NoError(t, hydra.InitChain(testGenesis()))
	return hydra
}

func deliver(t testing.TB, hydra *app.HydraApp, txs ...app.Tx) *app.BlockResult {
	t.Helper()

	res, err := hydra.DeliverBlock(app.Block{Txs: txs})
	require.NoError(t, err)
	_, err = hydra.Commit()
	require.NoError(t, err)
	return res
}

func createPoolTx() app.Tx {
	return app.NewTx(alice, xyktypes.NewMsgCreatePool(alice.String(), native, dot, math.NewInt(1_000_000), math.LegacyOneDec()))
}

func hasEvent(events []abci.Event, eventType string) bool {
	for _, ev := range events {
		if ev.Type == eventType {
			return true
		}
	}
	return false
}

type AppTestSuite struct {
	suite.Suite
	app *app.HydraApp
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.app = newTestApp(s.T())
}

func (s *AppTestSuite) deliver(txs ...app.Tx) *app.BlockResult {
	return deliver(s.T(), s.app, txs...)
}

func (s *AppTestSuite) requireCode(res *abci.ExecTxResult, err *errorsRef) {
	s.Require().Equal(err.codespace, res.Codespace, res.Log)
	s.Require().Equal(err.code, res.Code, res.Log)
}

// errorsRef names the ABCI classification of a registered error.
type errorsRef struct {
	codespace string
	code      uint32
}

func ref(err error) *errorsRef {
	codespace, code, _ := app.ABCIInfo(err)
	return &errorsRef{codespace: codespace, code: code}
}

func (s *AppTestSuite) TestCreatePoolAndSell() {
	res := s.deliver(createPoolTx())
	s.Require().Len(res.TxResults, 1)
	s.Require().Zero(res.TxResults[0].Code, res.TxResults[0].Log)
	s.Require().Equal(int64(1), res.Height)
	s.Require().True(hasEvent(res.TxResults[0].Events, feepaytypes.EventTypeFeePaid))
	s.Require().True(hasEvent(res.TxResults[0].Events, xyktypes.EventTypePoolCreated))
	s.Require().Positive(res.TxResults[0].GasUsed)

	pool, err := s.app.QueryPool(native, dot)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(1_000_000), pool.ReserveA)
	s.Require().Equal(math.NewInt(1_000_000), pool.ReserveB)

	// one message: 1000 base + 100
	s.Require().Equal(math.NewInt(1_000_000_000-1_000_000-1100), s.app.QueryBalance(alice, native))
	s.Require().Equal(math.NewInt(1100), s.app.QueryBalance(s.app.FeepayKeeper.FeeCollector(), native))

	quote, err := s.app.QuerySellQuote(native, dot, math.NewInt(1000))
	s.Require().NoError(err)

	res = s.deliver(app.NewTx(alice, xyktypes.NewMsgSell(alice.String(), native, dot, math.NewInt(1000), quote.AmountOut(), false)))
	s.Require().Zero(res.TxResults[0].Code, res.TxResults[0].Log)
	s.Require().True(hasEvent(res.TxResults[0].Events, xyktypes.EventTypeSwapped))
	s.Require().Equal(int64(2), res.Height)

	pool, err = s.app.QueryPool(native, dot)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(1_001_000), pool.ReserveA)
	s.Require().Equal(math.NewInt(1_000_000).Sub(quote.AmountOut()), pool.ReserveB)
}

func (s *AppTestSuite) TestFailedMessagesKeepFee() {
	s.deliver(createPoolTx())
	before := s.app.QueryBalance(alice, native)
	poolBefore, err := s.app.QueryPool(native, dot)
	s.Require().NoError(err)

	// min bought far above what the pool can pay
	sell := xyktypes.NewMsgSell(alice.String(), native, dot, math.NewInt(1000), math.NewInt(999_999), false)
	res := s.deliver(app.NewTx(alice, sell))

	s.requireCode(res.TxResults[0], ref(xyktypes.ErrSlippageExceeded))
	s.Require().True(hasEvent(res.TxResults[0].Events, feepaytypes.EventTypeFeePaid))
	s.Require().False(hasEvent(res.TxResults[0].Events, xyktypes.EventTypeSwapped))

	s.Require().Equal(before.SubRaw(1100), s.app.QueryBalance(alice, native))
	poolAfter, err := s.app.QueryPool(native, dot)
	s.Require().NoError(err)
	s.Require().Equal(poolBefore, poolAfter)
}

func (s *AppTestSuite) TestOneFailingMessageRevertsTheOthers() {
	s.deliver(createPoolTx())
	before := s.app.QueryBalance(alice, dot)

	good := xyktypes.NewMsgSell(alice.String(), native, dot, math.NewInt(1000), math.NewInt(1), false)
	bad := xyktypes.NewMsgSell(alice.String(), native, dot, math.NewInt(1000), math.NewInt(999_999), false)
	res := s.deliver(app.NewTx(alice, good, bad))

	s.requireCode(res.TxResults[0], ref(xyktypes.ErrSlippageExceeded))
	s.Require().Equal(before, s.app.QueryBalance(alice, dot))
}

func (s *AppTestSuite) TestRejectedTxHasNoEffect() {
	s.deliver(createPoolTx())
	collected := s.app.QueryBalance(s.app.FeepayKeeper.FeeCollector(), native)

	// bob holds no native and has not chosen another currency
	sell := xyktypes.NewMsgSell(bob.String(), dot, native, math.NewInt(1000), math.NewInt(1), false)
	res := s.deliver(app.NewTx(bob, sell))

	s.requireCode(res.TxResults[0], ref(assetstypes.ErrInsufficientBalance))
	s.Require().Empty(res.TxResults[0].Events)
	s.Require().Equal(math.NewInt(1_000_000), s.app.QueryBalance(bob, dot))
	s.Require().Equal(collected, s.app.QueryBalance(s.app.FeepayKeeper.FeeCollector(), native))
}

func (s *AppTestSuite) TestFeePaidInAcceptedCurrency() {
	s.deliver(createPoolTx())

	quote, err := s.app.QueryBuyQuote(dot, native, math.NewInt(1100))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(1106), quote.AmountIn())

	setCurrency := app.NewTx(bob, feepaytypes.NewMsgSetCurrency(bob.String(), dot)).WithFeeAsset(dot)
	res := s.deliver(setCurrency)
	s.Require().Zero(res.TxResults[0].Code, res.TxResults[0].Log)
	s.Require().True(hasEvent(res.TxResults[0].Events, feepaytypes.EventTypeFeePaidInAsset))

	s.Require().Equal(math.NewInt(1_000_000-1106), s.app.QueryBalance(bob, dot))
	s.Require().Equal(math.NewInt(1100*2), s.app.QueryBalance(s.app.FeepayKeeper.FeeCollector(), native))

	currency, err := s.app.QueryFeeCurrency(bob)
	s.Require().NoError(err)
	s.Require().Equal(dot, currency)

	// later transactions pay in dot without an override
	sell := xyktypes.NewMsgSell(bob.String(), dot, native, math.NewInt(10_000), math.NewInt(1), false)
	res = s.deliver(app.NewTx(bob, sell))
	s.Require().Zero(res.TxResults[0].Code, res.TxResults[0].Log)
	s.Require().True(hasEvent(res.TxResults[0].Events, feepaytypes.EventTypeFeePaidInAsset))
	s.Require().True(s.app.QueryBalance(bob, native).IsPositive())
}

func (s *AppTestSuite) TestFeeAssetWithoutRouteRejectsTx() {
	s.deliver(createPoolTx())

	// isle is accepted for fees but no pool connects it to the native asset
	sell := xyktypes.NewMsgSell(carol.String(), native, dot, math.NewInt(1000), math.NewInt(1), false)
	res := s.deliver(app.NewTx(carol, sell).WithFeeAsset(isle))

	s.requireCode(res.TxResults[0], ref(xyktypes.ErrNoRouteFound))
	s.Require().Empty(res.TxResults[0].Events)
	s.Require().Equal(math.NewInt(1_000_000), s.app.QueryBalance(carol, isle))
	s.Require().Equal(math.NewInt(1_000_000), s.app.QueryBalance(carol, native))
	s.Require().True(s.app.QueryBalance(carol, dot).IsZero())
}

func (s *AppTestSuite) TestMessageSignedBySomeoneElse() {
	s.deliver(createPoolTx())
	before := s.app.QueryBalance(alice, native)

	sell := xyktypes.NewMsgSell(bob.String(), dot, native, math.NewInt(1000), math.NewInt(1), false)
	res := s.deliver(app.NewTx(alice, sell))

	s.requireCode(res.TxResults[0], ref(sdkerrors.ErrUnauthorized))
	s.Require().Equal(before.SubRaw(1100), s.app.QueryBalance(alice, native))
	s.Require().Equal(math.NewInt(1_000_000), s.app.QueryBalance(bob, dot))
}

func (s *AppTestSuite) TestInvalidMessageFailsAfterFee() {
	before := s.app.QueryBalance(alice, native)

	sell := xyktypes.NewMsgSell(alice.String(), dot, dot, math.NewInt(1000), math.NewInt(1), false)
	res := s.deliver(app.NewTx(alice, sell))

	s.requireCode(res.TxResults[0], ref(xyktypes.ErrSameAssets))
	s.Require().Equal(before.SubRaw(1100), s.app.QueryBalance(alice, native))
}

func (s *AppTestSuite) TestGovernanceMessages() {
	newParams := feepaytypes.DefaultParams()
	newParams.BaseFee = math.NewInt(500)

	res := s.deliver(
		app.NewTx(admin, feepaytypes.NewMsgUpdateParams(admin.String(), newParams)),
		app.NewTx(alice, feepaytypes.NewMsgRemoveCurrency(alice.String(), dot)),
	)
	s.Require().Zero(res.TxResults[0].Code, res.TxResults[0].Log)
	s.requireCode(res.TxResults[1], ref(govtypes.ErrInvalidSigner))

	fee, err := s.app.QueryFee(1)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(600), fee)
	// alice paid under the new params: update is earlier in the block
	s.Require().Equal(math.NewInt(1_000_000_000-600), s.app.QueryBalance(alice, native))
}

func (s *AppTestSuite) TestSimulateDoesNotWrite() {
	s.deliver(createPoolTx())
	before := s.app.QueryBalance(alice, native)

	res := s.app.Simulate(app.NewTx(alice, xyktypes.NewMsgSell(alice.String(), native, dot, math.NewInt(1000), math.NewInt(1), false)))
	s.Require().Zero(res.Code, res.Log)
	s.Require().True(hasEvent(res.Events, xyktypes.EventTypeSwapped))
	s.Require().Equal(before, s.app.QueryBalance(alice, native))
}

func (s *AppTestSuite) TestBlockTimeMustNotDecrease() {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.app.DeliverBlock(app.Block{Time: t0})
	s.Require().NoError(err)
	_, err = s.app.Commit()
	s.Require().NoError(err)

	_, err = s.app.DeliverBlock(app.Block{Time: t0.Add(-time.Second)})
	s.Require().ErrorIs(err, app.ErrAppState)
}

func (s *AppTestSuite) TestLifecycleOrder() {
	_, err := s.app.Commit()
	s.Require().NoError(err, "genesis commits with the first block")

	_, err = s.app.Commit()
	s.Require().ErrorIs(err, app.ErrAppState)

	s.Require().ErrorIs(s.app.InitChain(testGenesis()), app.ErrAppState)

	// a second block cannot be delivered before the first is committed
	_, err = s.app.DeliverBlock(app.Block{})
	s.Require().NoError(err)
	_, err = s.app.DeliverBlock(app.Block{})
	s.Require().ErrorIs(err, app.ErrAppState)
	_, err = s.app.Commit()
	s.Require().NoError(err)
	s.Require().Equal(int64(2), s.app.LastBlockHeight())

	// a block breaking an invariant leaves nothing to commit
	broken := false
	s.app.Invariants().RegisterRoute("test", "switch", func(sdk.Context) (string, bool) {
		return "switched off", broken
	})
	before := s.app.QueryBalance(alice, native)
	broken = true
	_, err = s.app.DeliverBlock(app.Block{Txs: []app.Tx{createPoolTx()}})
	s.Require().ErrorContains(err, "test/switch")
	_, err = s.app.Commit()
	s.Require().ErrorIs(err, app.ErrAppState)
	s.Require().Equal(int64(2), s.app.LastBlockHeight())
	s.Require().Equal(before, s.app.QueryBalance(alice, native))

	// the app accepts the next block once the invariant holds again
	broken = false
	deliver(s.T(), s.app)
	s.Require().Equal(int64(3), s.app.LastBlockHeight())
}

func (s *AppTestSuite) TestMetricsFollowCommittedTxs() {
	metrics := xykkeeper.NewXYKMetrics()
	poolsBefore := keepertest.MetricValue(s.T(), metrics.PoolsTotal)

	// the pool is created by the first message and discarded with the second
	failing := app.NewTx(alice,
		xyktypes.NewMsgCreatePool(alice.String(), native, dot, math.NewInt(1_000_000), math.LegacyOneDec()),
		xyktypes.NewMsgSell(alice.String(), native, isle, math.NewInt(1000), math.NewInt(1), false),
	)
	res := s.deliver(failing)
	s.Require().NotZero(res.TxResults[0].Code)
	s.Require().Equal(poolsBefore, keepertest.MetricValue(s.T(), metrics.PoolsTotal))

	// simulation never counts
	s.Require().Zero(s.app.Simulate(createPoolTx()).Code)
	s.Require().Equal(poolsBefore, keepertest.MetricValue(s.T(), metrics.PoolsTotal))

	res = s.deliver(createPoolTx())
	s.Require().Zero(res.TxResults[0].Code, res.TxResults[0].Log)
	s.Require().Equal(poolsBefore+1, keepertest.MetricValue(s.T(), metrics.PoolsTotal))

	pair, err := xyktypes.NewAssetPair(native, dot)
	s.Require().NoError(err)
	reserve := metrics.PoolReserves.WithLabelValues(pair.String(), dot.String())
	s.Require().Equal(float64(1_000_000), keepertest.MetricValue(s.T(), reserve))

	// a rejected sell leaves the gauge at the committed reserve
	res = s.deliver(app.NewTx(alice, xyktypes.NewMsgSell(alice.String(), dot, native, math.NewInt(1000), math.NewInt(1_000_000), false)))
	s.Require().NotZero(res.TxResults[0].Code)
	s.Require().Equal(float64(1_000_000), keepertest.MetricValue(s.T(), reserve))
}

func (s *AppTestSuite) TestExportImport() {
	s.deliver(createPoolTx())
	s.deliver(app.NewTx(alice, xyktypes.NewMsgSell(alice.String(), dot, native, math.NewInt(5000), math.NewInt(1), false)))

	exported, err := s.app.ExportGenesis()
	s.Require().NoError(err)
	s.Require().NoError(exported.Validate())

	imported, err := app.NewHydraApp(log.NewNopLogger(), dbm.NewMemDB(), true, app.WithInvariantCheck(true))
	s.Require().NoError(err)
	s.Require().NoError(imported.InitChain(app.GenesisDoc{ChainID: "hydra-test", AppState: exported}))
	deliver(s.T(), imported)

	pools, err := s.app.QueryPools()
	s.Require().NoError(err)
	importedPools, err := imported.QueryPools()
	s.Require().NoError(err)
	s.Require().Equal(pools, importedPools)

	for _, addr := range []sdk.AccAddress{alice, bob, carol, s.app.FeepayKeeper.FeeCollector()} {
		for _, id := range []assetstypes.AssetID{native, dot, isle} {
			s.Require().True(s.app.QueryBalance(addr, id).Equal(imported.QueryBalance(addr, id)), "%s %d", addr, id)
		}
	}
}

func TestInitChainRejectsInvalidGenesis(t *testing.T) {
	hydra, err := app.NewHydraApp(log.NewNopLogger(), dbm.NewMemDB(), true)
	require.NoError(t, err)

	doc := testGenesis()
	doc.AppState["bank"] = []byte(`{}`)
	require.Error(t, hydra.InitChain(doc))

	// a failed InitChain leaves the app uninitialized
	require.NoError(t, hydra.InitChain(testGenesis()))
}

func TestReplicasAgreeOnAppHash(t *testing.T) {
	blocks := [][]app.Tx{
		{createPoolTx()},
		{
			app.NewTx(alice, xyktypes.NewMsgSell(alice.String(), native, dot, math.NewInt(10_000), math.NewInt(1), false)),
			app.NewTx(bob, feepaytypes.NewMsgSetCurrency(bob.String(), dot)).WithFeeAsset(dot),
			app.NewTx(carol, xyktypes.NewMsgSell(carol.String(), native, dot, math.NewInt(1000), math.NewInt(1), false)).WithFeeAsset(isle),
		},
		{
			app.NewTx(bob, xyktypes.NewMsgBuy(bob.String(), native, dot, math.NewInt(500), math.NewInt(1000), false)),
			app.NewTx(alice, xyktypes.NewMsgRemoveLiquidity(alice.String(), native, dot, math.NewInt(100_000))),
		},
	}

	replicaA, replicaB := newTestApp(t), newTestApp(t)
	for i, txs := range blocks {
		resA, err := replicaA.DeliverBlock(app.Block{Txs: txs})
		require.NoError(t, err)
		resB, err := replicaB.DeliverBlock(app.Block{Txs: txs})
		require.NoError(t, err)
		require.Equal(t, resA, resB, "block %d results", i)

		hashA, err := replicaA.Commit()
		require.NoError(t, err)
		hashB, err := replicaB.Commit()
		require.NoError(t, err)
		require.NotEmpty(t, hashA)
		require.Equal(t, hashA, hashB, "block %d app hash", i)
	}
}

func TestReopenFromDisk(t *testing.T) {
	db := dbm.NewMemDB()

	hydra, err := app.NewHydraApp(log.NewNopLogger(), db, true)
	require.NoError(t, err)
	require.NoError(t, hydra.InitChain(testGenesis()))
	deliver(t, hydra, createPoolTx())
	commit := hydra.LastCommitID()

	reopened, err := app.NewHydraApp(log.NewNopLogger(), db, true)
	require.NoError(t, err)
	require.Equal(t, commit, reopened.LastCommitID())
	require.Equal(t, int64(1), reopened.LastBlockHeight())

	pool, err := reopened.QueryPool(dot, native)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), pool.ReserveA)
}
