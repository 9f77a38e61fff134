package simapp

import (
	"math/rand"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/simulation"
)

// OperationWeights are the relative frequencies of the generated messages.
type OperationWeights struct {
	CreatePool      int
	AddLiquidity    int
	RemoveLiquidity int
	Sell            int
	Buy             int
	RouteSell       int
	RouteBuy        int
	SetCurrency     int
}

func (w OperationWeights) total() int {
	return w.CreatePool + w.AddLiquidity + w.RemoveLiquidity + w.Sell + w.Buy + w.RouteSell + w.RouteBuy + w.SetCurrency
}

// SimulationParams defines the parameters for the simulation
type SimulationParams struct {
	NumAccounts int
	// NumAssets is the number of registered assets besides the native one.
	NumAssets int
	// InitialBalance is credited to every account in every asset.
	InitialBalance math.Int
	// InitialLiquidity seeds the pools created in the first block.
	InitialLiquidity math.Int
	// MaxTradeAmount bounds generated trade and deposit amounts.
	MaxTradeAmount math.Int
	TxsPerBlock    int
	BlockInterval  time.Duration
	// FeeOverrideProb is the probability a tx overrides its fee asset.
	FeeOverrideProb math.LegacyDec
	Weights         OperationWeights
}

// DefaultSimulationParams returns default simulation parameters
func DefaultSimulationParams() SimulationParams {
	return SimulationParams{
		NumAccounts:      20,
		NumAssets:        4,
		InitialBalance:   math.NewInt(1_000_000_000_000), // 1M tokens
		InitialLiquidity: math.NewInt(10_000_000_000),    // 10k tokens per pool
		MaxTradeAmount:   math.NewInt(100_000_000),
		TxsPerBlock:      25,
		BlockInterval:    6 * time.Second,
		FeeOverrideProb:  math.LegacyNewDecWithPrec(20, 2), // 20%
		Weights: OperationWeights{
			CreatePool:      2,
			AddLiquidity:    10,
			RemoveLiquidity: 10,
			Sell:            30,
			Buy:             20,
			RouteSell:       10,
			RouteBuy:        10,
			SetCurrency:     5,
		},
	}
}

// RandomizedParams creates randomized simulation parameters
func RandomizedParams(r *rand.Rand) SimulationParams {
	params := DefaultSimulationParams()
	params.NumAccounts = simulation.RandIntBetween(r, 5, 50)
	params.NumAssets = simulation.RandIntBetween(r, 2, 8)
	params.InitialLiquidity = simulation.RandomAmount(r, math.NewInt(100_000_000_000)).Add(math.NewInt(1_000_000))
	params.MaxTradeAmount = simulation.RandomAmount(r, math.NewInt(1_000_000_000)).Add(math.NewInt(1_000))
	params.TxsPerBlock = simulation.RandIntBetween(r, 1, 50)
	params.FeeOverrideProb = simulation.RandomDecAmount(r, math.LegacyNewDecWithPrec(50, 2))
	params.Weights = OperationWeights{
		CreatePool:      simulation.RandIntBetween(r, 0, 5),
		AddLiquidity:    simulation.RandIntBetween(r, 1, 20),
		RemoveLiquidity: simulation.RandIntBetween(r, 1, 20),
		Sell:            simulation.RandIntBetween(r, 1, 40),
		Buy:             simulation.RandIntBetween(r, 1, 40),
		RouteSell:       simulation.RandIntBetween(r, 0, 20),
		RouteBuy:        simulation.RandIntBetween(r, 0, 20),
		SetCurrency:     simulation.RandIntBetween(r, 0, 10),
	}
	return params
}
