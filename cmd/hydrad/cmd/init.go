package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hydra-chain/hydra/app"
)

// InitCmd returns a command that writes the default app.toml and genesis
// file under the node home.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the node configuration and genesis files",
		Long: `Initialize the node configuration and genesis files.

Example:
  hydrad init --chain-id hydra-testnet-1 --home ~/.hydra
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			cfg := nc.Config

			chainID, _ := cmd.Flags().GetString(flagChainID)
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)

			genFile := cfg.GenesisFile()
			if !overwrite && fileExists(genFile) {
				return fmt.Errorf("genesis file already exists: %v", genFile)
			}

			if err := WriteDefaultAppConfig(cfg, overwrite); err != nil {
				var exists viper.ConfigFileAlreadyExistsError
				if !errors.As(err, &exists) {
					return fmt.Errorf("write app config: %w", err)
				}
			}

			doc := app.NewDefaultGenesisDoc(chainID)
			doc.GenesisTime = time.Now().UTC().Truncate(time.Second)
			if err := writeGenesis(genFile, doc); err != nil {
				return err
			}

			nc.Logger.Info("initialized node", "home", cfg.Home, "chain_id", doc.ChainID, "genesis", genFile)
			return nil
		},
	}

	cmd.Flags().String(flagChainID, app.DefaultChainID, "genesis chain id")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite existing config and genesis files")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
