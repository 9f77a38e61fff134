package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/hydra-chain/hydra/app"
	"github.com/hydra-chain/hydra/app/health"
)

func TestMain(m *testing.M) {
	app.SetConfig()
	os.Exit(m.Run())
}

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCmd()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--log-level", "disabled"))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, args...)
	require.NoError(t, err, "hydrad %s", strings.Join(args, " "))
	return out
}

func TestInitCmd(t *testing.T) {
	home := t.TempDir()

	mustExecute(t, "init", "--home", home, "--chain-id", "hydra-cli-1")
	require.FileExists(t, filepath.Join(home, "config", "app.toml"))
	require.FileExists(t, filepath.Join(home, "config", "genesis.yaml"))

	doc, err := readGenesis(filepath.Join(home, "config", "genesis.yaml"))
	require.NoError(t, err)
	require.Equal(t, "hydra-cli-1", doc.ChainID)
	require.NoError(t, doc.AppState.Validate())

	_, err = executeCmd(t, "init", "--home", home)
	require.ErrorContains(t, err, "already exists")

	mustExecute(t, "init", "--home", home, "--overwrite")
}

func TestGenesisCommands(t *testing.T) {
	home := t.TempDir()
	alice := sdk.AccAddress([]byte("alice_______________")).String()

	mustExecute(t, "init", "--home", home)
	mustExecute(t, "genesis", "add-asset", "1", "DOT", "--home", home)
	mustExecute(t, "genesis", "add-balance", alice, "1", "500", "--home", home)
	mustExecute(t, "genesis", "add-balance", alice, "1", "250", "--home", home)
	mustExecute(t, "genesis", "add-currency", "1", "--home", home)

	out := mustExecute(t, "genesis", "validate", "--home", home)
	require.Contains(t, out, "is valid")

	doc, err := readGenesis(filepath.Join(home, "config", "genesis.yaml"))
	require.NoError(t, err)
	assets, err := doc.AppState.Assets()
	require.NoError(t, err)
	require.Len(t, assets.Balances, 1)
	require.Equal(t, "750", assets.Balances[0].Amount.String())
	feepay, err := doc.AppState.Feepay()
	require.NoError(t, err)
	require.Len(t, feepay.Currencies, 1)

	tests := []struct {
		name string
		args []string
	}{
		{"duplicate asset", []string{"genesis", "add-asset", "1", "DOT"}},
		{"bad asset id", []string{"genesis", "add-asset", "one", "DOT"}},
		{"unregistered asset balance", []string{"genesis", "add-balance", alice, "7", "1"}},
		{"bad address", []string{"genesis", "add-balance", "hydra1nope", "1", "1"}},
		{"bad amount", []string{"genesis", "add-balance", alice, "1", "-3"}},
		{"duplicate currency", []string{"genesis", "add-currency", "1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := executeCmd(t, append(tc.args, "--home", home)...)
			require.Error(t, err)
		})
	}
}

func TestRunQueryAndExport(t *testing.T) {
	home := t.TempDir()
	alice := sdk.AccAddress([]byte("alice_______________")).String()

	mustExecute(t, "init", "--home", home, "--chain-id", "hydra-run-1")
	mustExecute(t, "genesis", "add-asset", "1", "DOT", "--home", home)
	mustExecute(t, "genesis", "add-balance", alice, "0", "1000000000", "--home", home)
	mustExecute(t, "genesis", "add-balance", alice, "1", "1000000000", "--home", home)

	blocks := fmt.Sprintf(`
- time: "2024-05-01T12:00:00Z"
  txs:
    - signer: %[1]s
      msgs:
        - type: xyk/MsgCreatePool
          value:
            creator: %[1]s
            asset_a: 0
            asset_b: 1
            amount: "1000000"
            initial_price: "2"
    - signer: %[1]s
      msgs:
        - type: xyk/MsgSell
          value:
            trader: %[1]s
            asset_in: 1
            asset_out: 0
            amount: "1000"
            min_bought: "999999"
`, alice)
	blocksFile := filepath.Join(home, "blocks.yaml")
	require.NoError(t, os.WriteFile(blocksFile, []byte(blocks), 0o600))

	out := mustExecute(t, "run", "--home", home, "--blocks", blocksFile)
	var block blockOutput
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &block))
	require.Equal(t, int64(1), block.Height)
	require.NotEmpty(t, block.AppHash)
	require.Len(t, block.TxResults, 2)
	require.Zero(t, block.TxResults[0].Code, block.TxResults[0].Log)
	// the slippage limit fails the sell after its fee is paid
	require.Equal(t, "xyk", block.TxResults[1].Codespace)
	require.Equal(t, uint32(5), block.TxResults[1].Code)

	out = mustExecute(t, "query", "pool", "1", "0", "--home", home)
	require.Contains(t, out, `"reserve_a":"1000000"`)
	require.Contains(t, out, `"reserve_b":"2000000"`)

	out = mustExecute(t, "query", "balance", alice, "0", "--home", home)
	require.Contains(t, out, fmt.Sprintf(`"amount":"%d"`, 1_000_000_000-1_000_000-1100-1100))

	out = mustExecute(t, "query", "fee", "3", "--home", home)
	require.Contains(t, out, `"fee":"1300"`)

	out = mustExecute(t, "quote", "sell", "0", "1", "1000", "--home", home, "-o", "yaml")
	require.Contains(t, out, "direction: sell")
	require.Contains(t, out, "amount_out:")

	_, err := executeCmd(t, "quote", "buy", "0", "7", "10", "--home", home)
	require.Error(t, err)

	out = mustExecute(t, "export", "--home", home)
	exported, err := app.DecodeGenesisDoc([]byte(out))
	require.NoError(t, err)
	require.NoError(t, exported.AppState.Validate())
	xyk, err := exported.AppState.XYK()
	require.NoError(t, err)
	require.Len(t, xyk.Pools, 1)

	// a second run continues from the committed height
	emptyBlock := filepath.Join(home, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyBlock, []byte(`[{"time": "2024-05-01T12:00:06Z", "txs": []}]`), 0o600))
	out = mustExecute(t, "run", "--home", home, "--blocks", emptyBlock)
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &block))
	require.Equal(t, int64(2), block.Height)
}

func TestSimulateCmd(t *testing.T) {
	home := t.TempDir()
	alice := sdk.AccAddress([]byte("alice_______________")).String()

	mustExecute(t, "init", "--home", home)
	mustExecute(t, "genesis", "add-balance", alice, "0", "5000", "--home", home)
	mustExecute(t, "run", "--home", home)

	txFile := filepath.Join(home, "tx.yaml")
	tx := fmt.Sprintf("signer: %[1]s\nmsgs:\n  - type: feepay/MsgSetCurrency\n    value:\n      account: %[1]s\n      asset_id: 0\n", alice)
	require.NoError(t, os.WriteFile(txFile, []byte(tx), 0o600))

	out := mustExecute(t, "simulate", txFile, "--home", home)
	require.Contains(t, out, "fee_paid")

	out = mustExecute(t, "query", "balance", alice, "0", "--home", home)
	require.Contains(t, out, `"amount":"5000"`)
}

func TestGenerateAndRun(t *testing.T) {
	home, simDir := t.TempDir(), t.TempDir()

	mustExecute(t, "generate", "--seed", "3", "--num-blocks", "4", "--out-dir", simDir, "--home", home)
	genFile := filepath.Join(simDir, "genesis.yaml")
	blocksFile := filepath.Join(simDir, "blocks.yaml")
	require.FileExists(t, genFile)
	require.FileExists(t, blocksFile)
	mustExecute(t, "genesis", "validate", "--genesis", genFile, "--home", home)

	// same seed, same files
	otherDir := t.TempDir()
	mustExecute(t, "generate", "--seed", "3", "--num-blocks", "4", "--out-dir", otherDir, "--home", home)
	for _, name := range []string{"genesis.yaml", "blocks.yaml"} {
		want, err := os.ReadFile(filepath.Join(simDir, name))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(otherDir, name))
		require.NoError(t, err)
		require.Equal(t, string(want), string(got), name)
	}

	out := mustExecute(t, "run", "--genesis", genFile, "--blocks", blocksFile, "--home", home)
	require.Equal(t, 4, strings.Count(out, `"height"`))

	out = mustExecute(t, "query", "pools", "--home", home)
	require.Contains(t, out, "reserve_a")

	_, err := executeCmd(t, "generate", "--num-blocks", "0", "--out-dir", simDir, "--home", home)
	require.ErrorContains(t, err, "must be positive")
}

func TestLoadNodeConfig(t *testing.T) {
	home := t.TempDir()
	cfg := DefaultNodeConfig(home)
	cfg.MetricsPort = 26660
	cfg.LogFormat = logFormatJSON
	require.NoError(t, WriteDefaultAppConfig(cfg, false))
	// existing files are kept unless overwritten
	require.Error(t, WriteDefaultAppConfig(cfg, false))

	t.Setenv("HYDRA_TRACE_SAMPLE_RATE", "0.25")

	rootCmd := NewRootCmd()
	runCmd, _, err := rootCmd.Find([]string{"run"})
	require.NoError(t, err)
	flags := runCmd.Flags()
	flags.AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, flags.Set(flagHome, home))
	require.NoError(t, flags.Set(flagInvariants, "false"))

	loaded, err := LoadNodeConfig(newViper(), flags)
	require.NoError(t, err)
	require.Equal(t, home, loaded.Home)
	require.Equal(t, 26660, loaded.MetricsPort)
	require.Equal(t, logFormatJSON, loaded.LogFormat)
	require.Equal(t, 0.25, loaded.TraceSampleRate)
	require.False(t, loaded.CheckInvariants)
	require.Equal(t, time.Minute, loaded.MaxCommitAge)
}

func TestNodeConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *NodeConfig)
	}{
		{"log format", func(c *NodeConfig) { c.LogFormat = "xml" }},
		{"metrics port", func(c *NodeConfig) { c.MetricsPort = 70000 }},
		{"sample rate", func(c *NodeConfig) { c.TraceSampleRate = 1.5 }},
		{"tx limits", func(c *NodeConfig) { c.MaxMsgsPerTx = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultNodeConfig(t.TempDir())
			require.NoError(t, cfg.Validate())
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(io.Discard, "loud", logFormatPlain)
	require.Error(t, err)

	out := new(bytes.Buffer)
	logger, err := newLogger(out, "INFO", logFormatJSON)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "height", 3)
	require.NotContains(t, out.String(), "hidden")
	require.Contains(t, out.String(), `"height":3`)
}

func TestHTTPServerRoutes(t *testing.T) {
	checker := health.NewChecker(log.NewNopLogger(), health.DefaultConfig())
	server := httptest.NewServer(newHTTPServer(0, checker).Handler)
	defer server.Close()

	get := func(path string) int {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusOK, get("/metrics"))
	require.Equal(t, http.StatusOK, get("/health"))
	require.Equal(t, http.StatusServiceUnavailable, get("/health/ready"))

	checker.RecordCommit(1, []byte{0xab})
	require.Equal(t, http.StatusOK, get("/health/ready"))
}
