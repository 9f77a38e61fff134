package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/hydra-chain/hydra/app"
	"github.com/hydra-chain/hydra/simapp"
)

const (
	generatedGenesisFile = "genesis.yaml"
	generatedBlocksFile  = "blocks.yaml"
)

// GenerateCmd returns a command that writes a random genesis and a file of
// random blocks, suitable as input to the run command.
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random genesis and random blocks of exchange transactions",
		Long: `Generate a random genesis and random blocks of exchange transactions.

The same seed always produces the same files.

Example:
  hydrad generate --seed 42 --num-blocks 100 --out-dir ./sim
  hydrad run --genesis ./sim/genesis.yaml --blocks ./sim/blocks.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}

			seed, _ := cmd.Flags().GetInt64(flagSeed)
			numBlocks, _ := cmd.Flags().GetInt(flagNumBlocks)
			outDir, _ := cmd.Flags().GetString(flagOutDir)
			randomParams, _ := cmd.Flags().GetBool(flagRandomParams)
			chainID, _ := cmd.Flags().GetString(flagChainID)
			if numBlocks <= 0 {
				return fmt.Errorf("--%s must be positive", flagNumBlocks)
			}

			r := rand.New(rand.NewSource(seed))
			params := simapp.DefaultSimulationParams()
			if randomParams {
				params = simapp.RandomizedParams(r)
			}
			sim := simapp.NewSimulation(r, params)
			doc := sim.GenesisDoc(chainID)
			blocks := sim.Blocks(numBlocks)

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			genFile := filepath.Join(outDir, generatedGenesisFile)
			if err := writeGenesis(genFile, &doc); err != nil {
				return err
			}

			js, err := app.MakeEncodingConfig().EncodeBlocks(blocks)
			if err != nil {
				return fmt.Errorf("encode blocks: %w", err)
			}
			bz, err := yaml.JSONToYAML(js)
			if err != nil {
				return fmt.Errorf("encode blocks: %w", err)
			}
			blocksFile := filepath.Join(outDir, generatedBlocksFile)
			if err := os.WriteFile(blocksFile, bz, 0o600); err != nil {
				return fmt.Errorf("write blocks: %w", err)
			}

			nc.Logger.Info("generated simulation",
				"seed", seed, "accounts", params.NumAccounts, "assets", params.NumAssets+1, "blocks", len(blocks),
				"genesis", genFile, "blocks_file", blocksFile)
			return nil
		},
	}

	cmd.Flags().Int64(flagSeed, 1, "random seed")
	cmd.Flags().Int(flagNumBlocks, 10, "number of blocks to generate, including the pool seeding block")
	cmd.Flags().String(flagOutDir, ".", "output directory")
	cmd.Flags().Bool(flagRandomParams, false, "randomize the simulation parameters")
	cmd.Flags().String(flagChainID, app.DefaultChainID, "genesis chain id")
	return cmd
}
