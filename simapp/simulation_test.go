package simapp_test

import (
	"encoding/json"
	"math/rand"
	"os"
	"testing"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/hydra-chain/hydra/app"
	"github.com/hydra-chain/hydra/simapp"
)

func TestMain(m *testing.M) {
	app.SetConfig()
	os.Exit(m.Run())
}

func newSimApp(t *testing.T, doc app.GenesisDoc) *app.HydraApp {
	t.Helper()
	hydra, err := app.NewHydraApp(log.NewNopLogger(), dbm.NewMemDB(), true, app.WithInvariantCheck(true))
	require.NoError(t, err)
	require.NoError(t, hydra.InitChain(doc))
	return hydra
}

func TestSimulationIsDeterministic(t *testing.T) {
	params := simapp.DefaultSimulationParams()
	simA := simapp.NewSimulation(rand.New(rand.NewSource(7)), params)
	simB := simapp.NewSimulation(rand.New(rand.NewSource(7)), params)

	docA, docB := simA.GenesisDoc("sim"), simB.GenesisDoc("sim")
	require.Equal(t, docA, docB)
	require.Equal(t, simA.Blocks(5), simB.Blocks(5))
}

func TestRandomBlocksKeepInvariants(t *testing.T) {
	for _, seed := range []int64{1, 42, 1234} {
		r := rand.New(rand.NewSource(seed))
		params := simapp.RandomizedParams(r)
		sim := simapp.NewSimulation(r, params)
		doc := sim.GenesisDoc("sim")
		require.NoError(t, doc.AppState.Validate(), "seed %d", seed)

		replicaA, replicaB := newSimApp(t, doc), newSimApp(t, doc)

		succeeded := 0
		for i, block := range sim.Blocks(10) {
			resA, err := replicaA.DeliverBlock(block)
			require.NoError(t, err, "seed %d block %d", seed, i)
			resB, err := replicaB.DeliverBlock(block)
			require.NoError(t, err, "seed %d block %d", seed, i)
			require.Equal(t, resA, resB)

			for _, res := range resA.TxResults {
				if res.Code == 0 {
					succeeded++
				}
			}

			hashA, err := replicaA.Commit()
			require.NoError(t, err)
			hashB, err := replicaB.Commit()
			require.NoError(t, err)
			require.Equal(t, hashA, hashB, "seed %d block %d app hash", seed, i)
		}
		require.Positive(t, succeeded, "seed %d", seed)

		pools, err := replicaA.QueryPools()
		require.NoError(t, err)
		require.NotEmpty(t, pools, "seed %d", seed)
	}
}

func TestSimulatedStateExportImport(t *testing.T) {
	sim := simapp.NewSimulation(rand.New(rand.NewSource(99)), simapp.DefaultSimulationParams())
	hydra := newSimApp(t, sim.GenesisDoc("sim"))
	for _, block := range sim.Blocks(5) {
		_, err := hydra.DeliverBlock(block)
		require.NoError(t, err)
		_, err = hydra.Commit()
		require.NoError(t, err)
	}

	exported, err := hydra.ExportGenesis()
	require.NoError(t, err)
	require.NoError(t, exported.Validate())

	imported := newSimApp(t, app.GenesisDoc{ChainID: "sim", GenesisTime: sim.GenesisTime, AppState: exported})
	_, err = imported.DeliverBlock(app.Block{})
	require.NoError(t, err)
	_, err = imported.Commit()
	require.NoError(t, err)

	reexported, err := imported.ExportGenesis()
	require.NoError(t, err)

	want, err := json.Marshal(exported)
	require.NoError(t, err)
	got, err := json.Marshal(reexported)
	require.NoError(t, err)
	require.JSONEq(t, string(want), string(got))
}
