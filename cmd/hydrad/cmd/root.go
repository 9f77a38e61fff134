package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hydra-chain/hydra/app"
)

type nodeContextKey struct{}

// nodeContext carries the resolved configuration and logger to subcommands.
type nodeContext struct {
	Config NodeConfig
	Logger log.Logger
}

// NewRootCmd creates the root command of hydrad. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	// bech32 prefixes must be set before any address is parsed
	app.SetConfig()

	rootCmd := &cobra.Command{
		Use:   "hydrad",
		Short: "Hydra constant-product exchange node",
		Long: `Hydra runs a constant-product (x*y=k) exchange over a multi-asset ledger.
Blocks of transactions are read from YAML or JSON files, executed in order and
committed to the node database.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			cfg, err := LoadNodeConfig(newViper(), cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, nodeContextKey{}, &nodeContext{Config: cfg, Logger: logger}))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagHome, app.DefaultNodeHome, "directory for config and data")
	flags.String(flagLogLevel, "info", "log level (trace|debug|info|warn|error|disabled)")
	flags.String(flagLogFormat, logFormatPlain, "log format (plain|json)")
	flags.String(flagDBBackend, string(dbm.GoLevelDBBackend), "database backend (goleveldb|memdb|...)")
	flags.StringP(flagOutput, "o", "json", "output format (json|yaml)")

	rootCmd.AddCommand(
		InitCmd(),
		GenesisCmd(),
		RunCmd(),
		QueryCmd(),
		QuoteCmd(),
		ExportCmd(),
		SimulateCmd(),
		GenerateCmd(),
	)
	return rootCmd
}

// getNodeContext returns the context set up by the root command.
func getNodeContext(cmd *cobra.Command) (*nodeContext, error) {
	if ctx := cmd.Context(); ctx != nil {
		if nc, ok := ctx.Value(nodeContextKey{}).(*nodeContext); ok {
			return nc, nil
		}
	}
	return nil, errors.New("node context not initialized")
}

// newLogger builds the node logger. level accepts zerolog level names.
func newLogger(out io.Writer, level, format string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := []log.Option{log.LevelOption(lvl)}
	if format == logFormatJSON {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(out, opts...), nil
}
