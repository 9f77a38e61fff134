package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/hydra-chain/hydra/app"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

// QueryCmd groups the queries against the committed node state.
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		SuggestionsMinimumDistance: 2,
	}

	cmd.AddCommand(
		queryBalanceCmd(),
		queryPoolCmd(),
		queryPoolsCmd(),
		querySpotPriceCmd(),
		queryFeeCmd(),
		queryFeeCurrencyCmd(),
	)
	return cmd
}

// withApp opens the node state for the duration of fn.
func withApp(cmd *cobra.Command, fn func(hydra *app.HydraApp) error) error {
	nc, err := getNodeContext(cmd)
	if err != nil {
		return err
	}
	hydra, db, err := openApp(nc.Config, nc.Logger)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(hydra)
}

// printOutput writes v to stdout as JSON, or YAML with --output yaml.
func printOutput(cmd *cobra.Command, v any) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if format, _ := cmd.Flags().GetString(flagOutput); format == "yaml" {
		if bz, err = yaml.JSONToYAML(bz); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(bz))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return nil
}

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok || amount.IsNegative() {
		return math.ZeroInt(), fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

func parsePair(a, b string) (assetstypes.AssetID, assetstypes.AssetID, error) {
	idA, err := parseAssetID(a)
	if err != nil {
		return 0, 0, err
	}
	idB, err := parseAssetID(b)
	if err != nil {
		return 0, 0, err
	}
	return idA, idB, nil
}

func queryBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address] [asset-id]",
		Short: "Query the balance of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid address: %w", err)
			}
			id, err := parseAssetID(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(hydra *app.HydraApp) error {
				return printOutput(cmd, assetstypes.Balance{
					Address: addr.String(),
					AssetID: id,
					Amount:  hydra.QueryBalance(addr, id),
				})
			})
		},
	}
}

func queryPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool [asset-a] [asset-b]",
		Short: "Query the pool of an asset pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parsePair(args[0], args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(hydra *app.HydraApp) error {
				pool, err := hydra.QueryPool(a, b)
				if err != nil {
					return err
				}
				return printOutput(cmd, pool)
			})
		},
	}
}

func queryPoolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pools",
		Short: "Query all pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(hydra *app.HydraApp) error {
				pools, err := hydra.QueryPools()
				if err != nil {
					return err
				}
				if pools == nil {
					pools = []xyktypes.Pool{}
				}
				return printOutput(cmd, pools)
			})
		},
	}
}

func querySpotPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spot-price [asset-in] [asset-out] [amount]",
		Short: "Query the value of an amount of asset-in in asset-out at the current reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out, err := parsePair(args[0], args[1])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			return withApp(cmd, func(hydra *app.HydraApp) error {
				price, err := hydra.QuerySpotPrice(in, out, amount)
				if err != nil {
					return err
				}
				return printOutput(cmd, map[string]string{"amount": price.String()})
			})
		},
	}
}

func queryFeeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fee [num-msgs]",
		Short: "Query the transaction fee in the reference asset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			numMsgs := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid message count %q", args[0])
				}
				numMsgs = n
			}
			return withApp(cmd, func(hydra *app.HydraApp) error {
				fee, err := hydra.QueryFee(numMsgs)
				if err != nil {
					return err
				}
				return printOutput(cmd, map[string]string{"fee": fee.String()})
			})
		},
	}
}

func queryFeeCurrencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fee-currency [address]",
		Short: "Query the asset an account pays fees in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid address: %w", err)
			}
			return withApp(cmd, func(hydra *app.HydraApp) error {
				id, err := hydra.QueryFeeCurrency(addr)
				if err != nil {
					return err
				}
				return printOutput(cmd, map[string]assetstypes.AssetID{"asset_id": id})
			})
		},
	}
}

// QuoteCmd returns the commands pricing trades over the best route.
func QuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a trade over the best route without executing it",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "sell [asset-in] [asset-out] [amount-in]",
			Short: "Quote selling an exact amount",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runQuote(cmd, args, xyktypes.DirectionSell)
			},
		},
		&cobra.Command{
			Use:   "buy [asset-in] [asset-out] [amount-out]",
			Short: "Quote buying an exact amount",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runQuote(cmd, args, xyktypes.DirectionBuy)
			},
		},
	)
	return cmd
}

type quoteOutput struct {
	Direction string         `json:"direction"`
	Route     xyktypes.Route `json:"route"`
	Amounts   []math.Int     `json:"amounts"`
	AmountIn  math.Int       `json:"amount_in"`
	AmountOut math.Int       `json:"amount_out"`
}

func runQuote(cmd *cobra.Command, args []string, direction xyktypes.Direction) error {
	in, out, err := parsePair(args[0], args[1])
	if err != nil {
		return err
	}
	amount, err := parseAmount(args[2])
	if err != nil {
		return err
	}

	return withApp(cmd, func(hydra *app.HydraApp) error {
		var quote xyktypes.RouteQuote
		if direction == xyktypes.DirectionBuy {
			quote, err = hydra.QueryBuyQuote(in, out, amount)
		} else {
			quote, err = hydra.QuerySellQuote(in, out, amount)
		}
		if err != nil {
			return err
		}
		return printOutput(cmd, quoteOutput{
			Direction: direction.String(),
			Route:     quote.Route,
			Amounts:   quote.Amounts,
			AmountIn:  quote.AmountIn(),
			AmountOut: quote.AmountOut(),
		})
	})
}

// ExportCmd returns the command exporting the committed state as genesis.
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the committed state as a genesis document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chainID, _ := cmd.Flags().GetString(flagChainID)
			return withApp(cmd, func(hydra *app.HydraApp) error {
				state, err := hydra.ExportGenesis()
				if err != nil {
					return err
				}
				doc := &app.GenesisDoc{ChainID: chainID, AppState: state}
				bz, err := yaml.Marshal(doc)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(bz))
				return nil
			})
		},
	}
	cmd.Flags().String(flagChainID, app.DefaultChainID, "chain id of the exported genesis")
	return cmd
}

// SimulateCmd returns the command executing a transaction against the
// committed state without writing it.
func SimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate [tx-file]",
		Short: "Simulate a YAML or JSON transaction against the committed state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read tx: %w", err)
			}
			return withApp(cmd, func(hydra *app.HydraApp) error {
				tx, err := hydra.EncodingConfig().DecodeTx(bz)
				if err != nil {
					return err
				}
				return printOutput(cmd, hydra.Simulate(tx))
			})
		},
	}
}
