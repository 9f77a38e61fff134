package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/log"
	abci "github.com/cometbft/cometbft/abci/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"

	"github.com/hydra-chain/hydra/app"
	"github.com/hydra-chain/hydra/app/health"
	"github.com/hydra-chain/hydra/app/telemetry"
)

// blockOutput is the report printed for every committed block.
type blockOutput struct {
	Height    int64                `json:"height"`
	AppHash   string               `json:"app_hash"`
	TxResults []*abci.ExecTxResult `json:"tx_results"`
}

// RunCmd returns the command executing block files against the node state.
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute blocks from a file and commit them",
		Long: `Execute blocks from a YAML or JSON file and commit them to the node database.

The chain is initialized from the genesis file on first run. Every committed
block is reported on stdout with its app hash and transaction results.

Example:
  hydrad run --blocks blocks.yaml --metrics-port 26660
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			cfg, logger := nc.Config, nc.Logger

			hydra, db, err := openApp(cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			checker := health.NewChecker(logger.With("module", "health"), health.Config{MaxCommitAge: cfg.MaxCommitAge})
			if height := hydra.LastBlockHeight(); height > 0 {
				checker.RecordCommit(height, hydra.LastCommitID().Hash)
			}
			if cfg.MetricsPort > 0 {
				server := newHTTPServer(cfg.MetricsPort, checker)
				startHTTPServer(server, logger)
				defer shutdownHTTPServer(server, logger)
			}

			var blocks []app.Block
			if path, _ := cmd.Flags().GetString(flagBlocks); path != "" {
				bz, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read blocks: %w", err)
				}
				if blocks, err = hydra.EncodingConfig().DecodeBlocks(bz); err != nil {
					return err
				}
			}

			if hydra.LastBlockHeight() == 0 {
				genFile, _ := cmd.Flags().GetString(flagGenesis)
				if genFile == "" {
					genFile = cfg.GenesisFile()
				}
				doc, err := readGenesis(genFile)
				if err != nil {
					return err
				}
				if err := hydra.InitChain(*doc); err != nil {
					return err
				}
				// genesis is committed with the first block
				if len(blocks) == 0 {
					blocks = []app.Block{{Time: doc.GenesisTime}}
				}
			}

			provider, err := telemetry.NewProvider(telemetry.Config{
				Enabled:      cfg.OTLPEndpoint != "",
				OTLPEndpoint: cfg.OTLPEndpoint,
				SampleRate:   cfg.TraceSampleRate,
				ChainID:      hydra.ChainID(),
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := provider.Shutdown(context.Background()); err != nil {
					logger.Error("failed to shut down tracing", "error", err)
				}
			}()

			if err := runBlocks(cmd, hydra, checker, blocks); err != nil {
				return err
			}

			if serve, _ := cmd.Flags().GetBool(flagServe); serve && cfg.MetricsPort > 0 {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				logger.Info("blocks executed, serving until interrupted", "height", hydra.LastBlockHeight())
				<-ctx.Done()
			}
			return nil
		},
	}

	cmd.Flags().String(flagBlocks, "", "YAML or JSON file with the blocks to execute")
	cmd.Flags().String(flagGenesis, "", "genesis file (default <home>/config/genesis.yaml)")
	cmd.Flags().Int(flagMetricsPort, 0, "port serving /metrics and /health (0 disables)")
	cmd.Flags().String(flagOTLPEndpoint, "", "OTLP HTTP endpoint receiving traces (empty disables tracing)")
	cmd.Flags().Float64(flagSampleRate, 1.0, "trace sample rate in [0, 1]")
	cmd.Flags().Bool(flagInvariants, true, "assert module invariants after every block")
	cmd.Flags().String(flagAuthority, "", "governance address (default gov module account)")
	cmd.Flags().Int(flagMaxMemoBytes, 0, "maximum memo size in bytes")
	cmd.Flags().Int(flagMaxMsgsPerTx, 0, "maximum messages per transaction")
	cmd.Flags().Duration(flagMaxCommitAge, 0, "report the node degraded when no block was committed for longer")
	cmd.Flags().Bool(flagServe, false, "keep serving metrics and health after the last block")
	return cmd
}

func runBlocks(cmd *cobra.Command, hydra *app.HydraApp, checker *health.Checker, blocks []app.Block) error {
	for _, block := range blocks {
		res, err := hydra.DeliverBlock(block)
		if err != nil {
			checker.RecordBlockError(err)
			return fmt.Errorf("block %d: %w", hydra.LastBlockHeight()+1, err)
		}
		hash, err := hydra.Commit()
		if err != nil {
			checker.RecordBlockError(err)
			return err
		}
		checker.RecordBlockError(nil)
		checker.RecordCommit(res.Height, hash)

		if err := printOutput(cmd, blockOutput{
			Height:    res.Height,
			AppHash:   hex.EncodeToString(hash),
			TxResults: res.TxResults,
		}); err != nil {
			return err
		}
	}
	return nil
}

// openApp opens the node database and loads the latest committed state.
func openApp(cfg NodeConfig, logger log.Logger) (*app.HydraApp, dbm.DB, error) {
	db, err := dbm.NewDB(dbName, cfg.DBBackend, cfg.DataDir())
	if err != nil {
		return nil, nil, fmt.Errorf("open %s database: %w", cfg.DBBackend, err)
	}
	hydra, err := app.NewHydraApp(logger, db, true, cfg.AppOptions()...)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return hydra, db, nil
}
