package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/hydra-chain/hydra/app"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	feepaytypes "github.com/hydra-chain/hydra/x/feepay/types"
)

// GenesisCmd groups the commands editing and checking the genesis file.
func GenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "genesis",
		Short:                      "Genesis file subcommands",
		SuggestionsMinimumDistance: 2,
	}

	cmd.PersistentFlags().String(flagGenesis, "", "genesis file (default <home>/config/genesis.yaml)")
	cmd.AddCommand(
		genesisValidateCmd(),
		genesisAddAssetCmd(),
		genesisAddBalanceCmd(),
		genesisAddCurrencyCmd(),
	)
	return cmd
}

func genesisValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the genesis file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := genesisPath(cmd)
			if err != nil {
				return err
			}
			doc, err := readGenesis(path)
			if err != nil {
				return err
			}
			if err := doc.AppState.Validate(); err != nil {
				return fmt.Errorf("invalid genesis %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "genesis %s is valid (chain %s)\n", path, doc.ChainID)
			return nil
		},
	}
}

func genesisAddAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add-asset [id] [name]",
		Short:   "Register an asset in genesis",
		Example: "hydrad genesis add-asset 1 DOT",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAssetID(args[0])
			if err != nil {
				return err
			}
			asset := assetstypes.Asset{ID: id, Name: args[1]}
			if err := asset.Validate(); err != nil {
				return err
			}

			return editModuleGenesis(cmd, func(doc *app.GenesisDoc) error {
				gs, err := doc.AppState.Assets()
				if err != nil {
					return err
				}
				for _, a := range gs.Assets {
					if a.ID == id {
						return fmt.Errorf("asset %d already registered as %s", id, a.Name)
					}
				}
				gs.Assets = append(gs.Assets, asset)
				return setModuleGenesis(doc, assetstypes.ModuleName, gs)
			})
		},
	}
}

func genesisAddBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add-balance [address] [asset-id] [amount]",
		Short:   "Credit a genesis balance",
		Example: "hydrad genesis add-balance hydra1... 0 1000000000",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid address: %w", err)
			}
			id, err := parseAssetID(args[1])
			if err != nil {
				return err
			}
			amount, ok := math.NewIntFromString(args[2])
			if !ok || !amount.IsPositive() {
				return fmt.Errorf("invalid amount %q", args[2])
			}

			return editModuleGenesis(cmd, func(doc *app.GenesisDoc) error {
				gs, err := doc.AppState.Assets()
				if err != nil {
					return err
				}
				merged := false
				for i, b := range gs.Balances {
					if b.Address == addr.String() && b.AssetID == id {
						gs.Balances[i].Amount = b.Amount.Add(amount)
						merged = true
						break
					}
				}
				if !merged {
					gs.Balances = append(gs.Balances, assetstypes.Balance{Address: addr.String(), AssetID: id, Amount: amount})
				}
				if err := gs.Validate(); err != nil {
					return err
				}
				return setModuleGenesis(doc, assetstypes.ModuleName, gs)
			})
		},
	}
}

func genesisAddCurrencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-currency [asset-id]",
		Short: "Accept an asset for fee payment in genesis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAssetID(args[0])
			if err != nil {
				return err
			}

			return editModuleGenesis(cmd, func(doc *app.GenesisDoc) error {
				gs, err := doc.AppState.Feepay()
				if err != nil {
					return err
				}
				for _, c := range gs.Currencies {
					if c == id {
						return fmt.Errorf("asset %d already accepted", id)
					}
				}
				gs.Currencies = append(gs.Currencies, id)
				if err := gs.Validate(); err != nil {
					return err
				}
				return setModuleGenesis(doc, feepaytypes.ModuleName, gs)
			})
		},
	}
}

func parseAssetID(s string) (assetstypes.AssetID, error) {
	id, err := cast.ToUint64E(s)
	if err != nil {
		return 0, fmt.Errorf("invalid asset id %q: %w", s, err)
	}
	return assetstypes.AssetID(id), nil
}

func genesisPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString(flagGenesis); path != "" {
		return path, nil
	}
	nc, err := getNodeContext(cmd)
	if err != nil {
		return "", err
	}
	return nc.Config.GenesisFile(), nil
}

func editModuleGenesis(cmd *cobra.Command, edit func(doc *app.GenesisDoc) error) error {
	path, err := genesisPath(cmd)
	if err != nil {
		return err
	}
	doc, err := readGenesis(path)
	if err != nil {
		return err
	}
	if err := edit(doc); err != nil {
		return err
	}
	return writeGenesis(path, doc)
}

func setModuleGenesis(doc *app.GenesisDoc, module string, v any) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s genesis: %w", module, err)
	}
	doc.AppState[module] = bz
	return nil
}

func readGenesis(path string) (*app.GenesisDoc, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis: %w", err)
	}
	return app.DecodeGenesisDoc(bz)
}

func writeGenesis(path string, doc *app.GenesisDoc) error {
	bz, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal genesis: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o600)
}
