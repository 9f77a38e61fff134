package simapp

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"cosmossdk.io/math"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"

	"github.com/hydra-chain/hydra/app"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	feepaytypes "github.com/hydra-chain/hydra/x/feepay/types"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

// Simulation generates a random genesis and random blocks of exchange
// transactions. The same seed and params always yield the same chain.
type Simulation struct {
	r      *rand.Rand
	params SimulationParams

	Accounts    []simtypes.Account
	Assets      []assetstypes.AssetID
	GenesisTime time.Time

	blockTime time.Time
}

// NewSimulation creates a simulation drawing from r.
func NewSimulation(r *rand.Rand, params SimulationParams) *Simulation {
	genesisTime := simtypes.RandTimestamp(r).UTC().Truncate(time.Second)

	assets := make([]assetstypes.AssetID, 0, params.NumAssets+1)
	assets = append(assets, assetstypes.NativeAssetID)
	for i := 1; i <= params.NumAssets; i++ {
		assets = append(assets, assetstypes.AssetID(i))
	}

	return &Simulation{
		r:           r,
		params:      params,
		Accounts:    simtypes.RandomAccounts(r, params.NumAccounts),
		Assets:      assets,
		GenesisTime: genesisTime,
		blockTime:   genesisTime,
	}
}

// GenesisDoc returns a genesis registering the simulation assets, funding
// every account in every asset and accepting a random subset of the assets
// for fee payment.
func (s *Simulation) GenesisDoc(chainID string) app.GenesisDoc {
	assets := assetstypes.GenesisState{}
	for _, id := range s.Assets {
		name := assetstypes.NativeAssetName
		if id != assetstypes.NativeAssetID {
			name = fmt.Sprintf("SIM%d", id)
		}
		assets.Assets = append(assets.Assets, assetstypes.Asset{ID: id, Name: name})
	}
	for _, acc := range s.Accounts {
		for _, id := range s.Assets {
			assets.Balances = append(assets.Balances, assetstypes.Balance{
				Address: acc.Address.String(),
				AssetID: id,
				Amount:  s.params.InitialBalance,
			})
		}
	}

	feepay := *feepaytypes.DefaultGenesis()
	for _, id := range s.Assets[1:] {
		if s.r.Intn(2) == 0 {
			feepay.Currencies = append(feepay.Currencies, id)
		}
	}

	state := app.NewDefaultGenesisState()
	state[assetstypes.ModuleName] = mustMarshalJSON(assets)
	state[feepaytypes.ModuleName] = mustMarshalJSON(feepay)

	return app.GenesisDoc{ChainID: chainID, GenesisTime: s.GenesisTime, AppState: state}
}

// SeedBlock returns a block creating a pool between the native asset and
// every other asset, so later trades have liquidity to route through.
func (s *Simulation) SeedBlock() app.Block {
	creator := s.Accounts[0].Address
	block := app.Block{Time: s.nextBlockTime()}
	for _, id := range s.Assets[1:] {
		price := math.LegacyNewDec(int64(simtypes.RandIntBetween(s.r, 1, 5)))
		msg := xyktypes.NewMsgCreatePool(creator.String(), assetstypes.NativeAssetID, id, s.params.InitialLiquidity, price)
		block.Txs = append(block.Txs, app.NewTx(creator, msg))
	}
	return block
}

// RandomBlock returns a block of TxsPerBlock random transactions. Many of
// them are expected to fail; failures are part of the simulated workload.
func (s *Simulation) RandomBlock() app.Block {
	block := app.Block{Time: s.nextBlockTime(), Txs: make([]app.Tx, s.params.TxsPerBlock)}
	for i := range block.Txs {
		block.Txs[i] = s.randomTx()
	}
	return block
}

// Blocks returns the seed block followed by n-1 random blocks.
func (s *Simulation) Blocks(n int) []app.Block {
	if n <= 0 {
		return nil
	}
	blocks := []app.Block{s.SeedBlock()}
	for len(blocks) < n {
		blocks = append(blocks, s.RandomBlock())
	}
	return blocks
}

func (s *Simulation) nextBlockTime() time.Time {
	s.blockTime = s.blockTime.Add(s.params.BlockInterval)
	return s.blockTime
}

func (s *Simulation) randomTx() app.Tx {
	acc, _ := simtypes.RandomAcc(s.r, s.Accounts)
	tx := app.NewTx(acc.Address, s.randomMsg(acc.Address.String()))

	if simtypes.RandomDecAmount(s.r, math.LegacyOneDec()).LT(s.params.FeeOverrideProb) {
		tx = tx.WithFeeAsset(s.randomAsset())
	}
	return tx
}

func (s *Simulation) randomMsg(addr string) sharedkeeper.Msg {
	w := s.params.Weights
	pick := s.r.Intn(max(w.total(), 1))

	a, b := s.randomPair()
	amount := s.randomAmount()

	switch {
	case pick < w.CreatePool:
		price := math.LegacyNewDecWithPrec(int64(simtypes.RandIntBetween(s.r, 1, 1000)), 2)
		return xyktypes.NewMsgCreatePool(addr, a, b, s.params.InitialLiquidity, price)
	case pick < w.CreatePool+w.AddLiquidity:
		return xyktypes.NewMsgAddLiquidity(addr, a, b, amount, amount.MulRaw(20))
	case pick < w.CreatePool+w.AddLiquidity+w.RemoveLiquidity:
		return xyktypes.NewMsgRemoveLiquidity(addr, a, b, amount)
	case pick < w.CreatePool+w.AddLiquidity+w.RemoveLiquidity+w.Sell:
		return xyktypes.NewMsgSell(addr, a, b, amount, math.ZeroInt(), s.r.Intn(4) == 0)
	case pick < w.CreatePool+w.AddLiquidity+w.RemoveLiquidity+w.Sell+w.Buy:
		return xyktypes.NewMsgBuy(addr, a, b, amount, amount.MulRaw(20), s.r.Intn(4) == 0)
	case pick < w.CreatePool+w.AddLiquidity+w.RemoveLiquidity+w.Sell+w.Buy+w.RouteSell:
		return xyktypes.NewMsgRouteSell(addr, a, b, amount, math.ZeroInt(), nil)
	case pick < w.total()-w.SetCurrency:
		return xyktypes.NewMsgRouteBuy(addr, a, b, amount, amount.MulRaw(20), nil)
	default:
		return feepaytypes.NewMsgSetCurrency(addr, s.randomAsset())
	}
}

func (s *Simulation) randomAsset() assetstypes.AssetID {
	return s.Assets[s.r.Intn(len(s.Assets))]
}

func (s *Simulation) randomPair() (assetstypes.AssetID, assetstypes.AssetID) {
	a := s.randomAsset()
	b := s.randomAsset()
	for b == a {
		b = s.randomAsset()
	}
	return a, b
}

func (s *Simulation) randomAmount() math.Int {
	return simtypes.RandomAmount(s.r, s.params.MaxTradeAmount).AddRaw(1)
}

func mustMarshalJSON(v any) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal genesis state: %v", err))
	}
	return bz
}
