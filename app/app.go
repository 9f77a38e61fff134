package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	abci "github.com/cometbft/cometbft/abci/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"github.com/hydra-chain/hydra/app/ante"
	"github.com/hydra-chain/hydra/app/telemetry"
	assetskeeper "github.com/hydra-chain/hydra/x/assets/keeper"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	feepaykeeper "github.com/hydra-chain/hydra/x/feepay/keeper"
	feepaytypes "github.com/hydra-chain/hydra/x/feepay/types"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
	xykkeeper "github.com/hydra-chain/hydra/x/xyk/keeper"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

const (
	// Name is the name of the application.
	Name = "hydra"
)

// DefaultNodeHome is the default home directory for the application daemon.
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultNodeHome = filepath.Join(userHomeDir, ".hydra")
}

// ErrAppState is returned when the app is driven out of order, e.g. a second
// InitChain or a Commit without a block.
var ErrAppState = errors.New("invalid app state")

// HydraApp executes blocks of transactions sequentially against a
// CommitMultiStore. Each transaction pays its fee first; the fee is kept even
// when the transaction's messages fail.
type HydraApp struct {
	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore

	encodingConfig EncodingConfig

	// keys to access the substores
	keys map[string]*storetypes.KVStoreKey

	// keepers
	AssetsKeeper assetskeeper.Keeper
	XYKKeeper    xykkeeper.Keeper
	FeepayKeeper feepaykeeper.Keeper

	router      map[string]sharedkeeper.Handler
	anteHandler ante.AnteHandler
	invariants  *InvariantRegistry
	metrics     *AppMetrics

	authority       string
	checkInvariants bool
	maxMemoBytes    int
	maxMsgsPerTx    int

	chainID       string
	lastBlockTime time.Time
	deliverState  *deliverState
	// delivered is set between a DeliverBlock and its Commit.
	delivered bool
}

// deliverState is the branch of the multistore the current block writes to.
type deliverState struct {
	ms  storetypes.CacheMultiStore
	ctx sdk.Context
}

// Option configures a HydraApp.
type Option func(*HydraApp)

// WithAuthority sets the account allowed to send governance messages.
func WithAuthority(authority string) Option {
	return func(app *HydraApp) { app.authority = authority }
}

// WithInvariantCheck asserts all registered invariants at the end of every
// block.
func WithInvariantCheck(enabled bool) Option {
	return func(app *HydraApp) { app.checkInvariants = enabled }
}

// WithTxLimits bounds the memo size and the number of messages per tx.
func WithTxLimits(maxMemoBytes, maxMsgsPerTx int) Option {
	return func(app *HydraApp) {
		app.maxMemoBytes = maxMemoBytes
		app.maxMsgsPerTx = maxMsgsPerTx
	}
}

// NewHydraApp returns an initialized hydra application over db. With
// loadLatest the last committed version is loaded; otherwise the store starts
// empty.
func NewHydraApp(logger log.Logger, db dbm.DB, loadLatest bool, opts ...Option) (*HydraApp, error) {
	// Set SDK config before creating any addresses
	SetConfig()

	keys := storetypes.NewKVStoreKeys(
		assetstypes.StoreKey,
		xyktypes.StoreKey,
		feepaytypes.StoreKey,
	)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if loadLatest {
		if err := cms.LoadLatestVersion(); err != nil {
			return nil, fmt.Errorf("load latest version: %w", err)
		}
	} else if err := cms.LoadVersion(0); err != nil {
		return nil, fmt.Errorf("load initial version: %w", err)
	}

	app := &HydraApp{
		logger:         logger.With("module", "app"),
		db:             db,
		cms:            cms,
		encodingConfig: MakeEncodingConfig(),
		keys:           keys,
		invariants:     &InvariantRegistry{},
		metrics:        NewAppMetrics(),
		authority:      authtypes.NewModuleAddress(govtypes.ModuleName).String(),
	}
	for _, opt := range opts {
		opt(app)
	}

	cdc := app.encodingConfig.Amino
	app.AssetsKeeper = assetskeeper.NewKeeper(cdc, keys[assetstypes.StoreKey])
	app.XYKKeeper = xykkeeper.NewKeeper(cdc, keys[xyktypes.StoreKey], app.AssetsKeeper, app.AssetsKeeper)
	app.FeepayKeeper = feepaykeeper.NewKeeper(
		cdc,
		keys[feepaytypes.StoreKey],
		app.AssetsKeeper,
		app.AssetsKeeper,
		app.XYKKeeper,
		app.authority,
	)

	app.router = map[string]sharedkeeper.Handler{
		xyktypes.RouterKey:    xykkeeper.NewHandler(app.XYKKeeper),
		feepaytypes.RouterKey: feepaykeeper.NewHandler(app.FeepayKeeper),
	}

	xykkeeper.RegisterInvariants(app.invariants, app.XYKKeeper)

	anteHandler, err := ante.NewAnteHandler(ante.HandlerOptions{
		FeeKeeper:    app.FeepayKeeper,
		MaxMemoBytes: app.maxMemoBytes,
		MaxMsgsPerTx: app.maxMsgsPerTx,
	})
	if err != nil {
		return nil, err
	}
	app.anteHandler = anteHandler

	return app, nil
}

// Name returns the name of the App
func (app *HydraApp) Name() string { return Name }

// EncodingConfig returns the transaction codec of the app.
func (app *HydraApp) EncodingConfig() EncodingConfig { return app.encodingConfig }

// Invariants returns the invariant registry of the app.
func (app *HydraApp) Invariants() *InvariantRegistry { return app.invariants }

// ChainID returns the chain id set at InitChain. It is empty for an app
// reopened from disk.
func (app *HydraApp) ChainID() string { return app.chainID }

// GetKey returns the KVStoreKey for the provided store key.
func (app *HydraApp) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// LastBlockHeight returns the height of the last committed block.
func (app *HydraApp) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

// LastCommitID returns the last committed version and app hash.
func (app *HydraApp) LastCommitID() storetypes.CommitID {
	return app.cms.LastCommitID()
}

func (app *HydraApp) setDeliverState(header cmtproto.Header) {
	ms := app.cms.CacheMultiStore()
	ctx := sdk.NewContext(ms, header, false, app.logger).
		WithBlockGasMeter(storetypes.NewInfiniteGasMeter())
	app.deliverState = &deliverState{ms: ms, ctx: ctx}
}

// InitChain validates the genesis document and initializes every module from
// it. The genesis state is committed together with the first block.
func (app *HydraApp) InitChain(doc GenesisDoc) error {
	if app.LastBlockHeight() != 0 || app.deliverState != nil {
		return fmt.Errorf("%w: chain already initialized at height %d", ErrAppState, app.LastBlockHeight())
	}
	if err := doc.AppState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	app.chainID = doc.ChainID
	app.lastBlockTime = doc.GenesisTime
	app.setDeliverState(cmtproto.Header{ChainID: doc.ChainID, Time: doc.GenesisTime})

	if err := app.initGenesis(app.deliverState.ctx, doc.AppState); err != nil {
		app.deliverState = nil
		return err
	}
	if err := app.invariants.Assert(app.deliverState.ctx); err != nil {
		app.deliverState = nil
		return fmt.Errorf("genesis: %w", err)
	}

	app.logger.Info("initialized chain", "chain_id", doc.ChainID)
	return nil
}

func (app *HydraApp) initGenesis(ctx sdk.Context, gs GenesisState) error {
	assets, err := gs.Assets()
	if err != nil {
		return err
	}
	if err := app.AssetsKeeper.InitGenesis(ctx, assets); err != nil {
		return fmt.Errorf("%s genesis: %w", assetstypes.ModuleName, err)
	}

	xyk, err := gs.XYK()
	if err != nil {
		return err
	}
	if err := app.XYKKeeper.InitGenesis(ctx, xyk); err != nil {
		return fmt.Errorf("%s genesis: %w", xyktypes.ModuleName, err)
	}

	feepay, err := gs.Feepay()
	if err != nil {
		return err
	}
	if err := app.FeepayKeeper.InitGenesis(ctx, feepay); err != nil {
		return fmt.Errorf("%s genesis: %w", feepaytypes.ModuleName, err)
	}
	return nil
}

// BlockResult reports the outcome of every transaction of a block, in order.
type BlockResult struct {
	Height    int64                `json:"height"`
	TxResults []*abci.ExecTxResult `json:"tx_results"`
}

// DeliverBlock executes the transactions of block in order. Failing
// transactions do not abort the block; an error is returned only when the
// block itself cannot be applied (out-of-order time, broken invariant).
func (app *HydraApp) DeliverBlock(block Block) (*BlockResult, error) {
	if app.delivered {
		return nil, fmt.Errorf("%w: block %d delivered but not committed", ErrAppState, app.LastBlockHeight()+1)
	}
	if !block.Time.IsZero() && block.Time.Before(app.lastBlockTime) {
		return nil, fmt.Errorf("%w: block time %s is before previous block time %s", ErrAppState, block.Time, app.lastBlockTime)
	}

	height := app.LastBlockHeight() + 1
	header := cmtproto.Header{ChainID: app.chainID, Height: height, Time: block.Time}
	if app.deliverState == nil {
		app.setDeliverState(header)
	} else {
		app.deliverState.ctx = app.deliverState.ctx.WithBlockHeader(header)
	}
	ctx := app.deliverState.ctx

	spanCtx, span := telemetry.StartBlockSpan(context.Background(), height, len(block.Txs))
	defer span.End()

	result := &BlockResult{Height: height, TxResults: make([]*abci.ExecTxResult, len(block.Txs))}
	for i, tx := range block.Txs {
		_, txSpan := telemetry.StartTxSpan(spanCtx, height, i, len(tx.Msgs))
		res := app.runTx(ctx, tx, false)
		telemetry.EndTxSpan(txSpan, res.Code, res.Codespace, res.GasUsed)
		result.TxResults[i] = res
	}

	if app.checkInvariants {
		app.metrics.InvariantsRun.Inc()
		if err := app.invariants.Assert(ctx); err != nil {
			app.logger.Error("invariant broken", "height", height, "error", err)
			// nothing of this block, nor a pending genesis, may be committed
			app.deliverState = nil
			return nil, err
		}
	}

	if !block.Time.IsZero() {
		app.lastBlockTime = block.Time
	}
	app.delivered = true
	app.metrics.BlocksTotal.Inc()
	app.metrics.BlockHeight.Set(float64(height))
	app.metrics.BlockTxs.Observe(float64(len(block.Txs)))
	app.logger.Debug("executed block", "height", height, "txs", len(block.Txs))
	return result, nil
}

// Commit writes the state of the delivered block (and of genesis, for the
// first block) and returns the new app hash.
func (app *HydraApp) Commit() ([]byte, error) {
	if app.deliverState == nil {
		return nil, fmt.Errorf("%w: nothing to commit", ErrAppState)
	}
	app.deliverState.ms.Write()
	app.deliverState = nil
	app.delivered = false

	id := app.cms.Commit()
	app.logger.Info("committed state", "height", id.Version, "app_hash", fmt.Sprintf("%X", id.Hash))
	return id.Hash, nil
}

// Simulate executes tx against the last committed state and discards every
// effect.
func (app *HydraApp) Simulate(tx Tx) *abci.ExecTxResult {
	return app.runTx(app.queryContext(), tx, true)
}

// runTx executes one transaction in two nested branches of ctx. The ante
// chain (fee) runs in the outer branch: if it fails the transaction is
// rejected with no effect. The messages run in the inner branch, which is
// discarded on failure while the fee is kept.
func (app *HydraApp) runTx(ctx sdk.Context, tx Tx, simulate bool) *abci.ExecTxResult {
	gasMeter := storetypes.NewInfiniteGasMeter()
	ctx = ctx.WithGasMeter(gasMeter).WithEventManager(sdk.NewEventManager())

	feeMS := ctx.MultiStore().CacheMultiStore()
	feeCtx, err := app.anteHandler(ctx.WithMultiStore(feeMS), tx, simulate)
	if err != nil {
		res := txResult(err, gasMeter.GasConsumed(), nil, nil)
		app.recordTx(txOutcomeRejected, res)
		return res
	}
	feeEvents := feeCtx.EventManager().Events()

	msgMS := feeMS.CacheMultiStore()
	msgCtx := feeCtx.WithMultiStore(msgMS).WithEventManager(sdk.NewEventManager())
	data, err := app.runMsgs(msgCtx, tx)

	outcome := txOutcomeOK
	events := feeEvents
	if err == nil {
		msgMS.Write()
		events = append(events, msgCtx.EventManager().Events()...)
	} else {
		outcome = txOutcomeFailed
		app.logger.Debug("tx messages failed, fee kept", "signer", tx.Signer.String(), "error", err)
	}
	if !simulate {
		feeMS.Write()
		if err == nil {
			app.XYKKeeper.RecordCommitted(ctx, msgCtx.EventManager().Events())
		}
	}

	res := txResult(err, gasMeter.GasConsumed(), data, events.ToABCIEvents())
	app.recordTx(outcome, res)
	return res
}

func (app *HydraApp) runMsgs(ctx sdk.Context, tx Tx) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorsmod.Wrapf(sdkerrors.ErrPanic, "%v", r)
		}
	}()

	responses := make([]any, len(tx.Msgs))
	for i, msg := range tx.Msgs {
		if err := msg.ValidateBasic(); err != nil {
			return nil, errorsmod.Wrapf(err, "message %d", i)
		}
		if !signedBy(msg, tx.Signer) {
			return nil, sdkerrors.ErrUnauthorized.Wrapf("message %d is not signed by %s", i, tx.Signer)
		}
		handler, ok := app.router[msg.Route()]
		if !ok {
			return nil, sdkerrors.ErrUnknownRequest.Wrapf("no handler for route %q", msg.Route())
		}

		res, err := handler(ctx, msg)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "message %d (%s)", i, MsgName(msg))
		}
		responses[i] = res

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				sdk.EventTypeMessage,
				sdk.NewAttribute(sdk.AttributeKeyModule, msg.Route()),
				sdk.NewAttribute(sdk.AttributeKeyAction, msg.Type()),
				sdk.NewAttribute(sdk.AttributeKeySender, tx.Signer.String()),
			),
		)
	}

	data, err = json.Marshal(responses)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return data, nil
}

func signedBy(msg sharedkeeper.Msg, signer sdk.AccAddress) bool {
	signers := msg.GetSigners()
	return len(signers) == 1 && signers[0].Equals(signer)
}

func (app *HydraApp) recordTx(outcome string, res *abci.ExecTxResult) {
	app.metrics.TxsTotal.WithLabelValues(outcome, res.Codespace).Inc()
	app.metrics.TxGasUsed.Observe(float64(res.GasUsed))
}

// txResult builds the ABCI result of a transaction. Errors registered with
// cosmossdk.io/errors keep their codespace and code through any wrapping.
func txResult(err error, gasUsed storetypes.Gas, data []byte, events []abci.Event) *abci.ExecTxResult {
	res := &abci.ExecTxResult{
		Data:    data,
		GasUsed: int64(gasUsed),
		Events:  events,
	}
	if err != nil {
		res.Codespace, res.Code, res.Log = ABCIInfo(err)
	}
	return res
}

// ABCIInfo returns the codespace, code and log of err.
func ABCIInfo(err error) (codespace string, code uint32, log string) {
	var coded *errorsmod.Error
	if errors.As(err, &coded) {
		return coded.Codespace(), coded.ABCICode(), err.Error()
	}
	return errorsmod.ABCIInfo(err, false)
}
