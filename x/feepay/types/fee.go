package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

// FeeCharge is the settled fee of one transaction. Fee is denominated in the
// reference asset; Amount is what the payer actually paid in Asset.
type FeeCharge struct {
	Payer  sdk.AccAddress
	Asset  AssetID
	Amount math.Int
	Fee    math.Int
	// Route is set when the fee was converted through the pools.
	Route xyktypes.Route
}

func (c FeeCharge) String() string {
	if len(c.Route) == 0 {
		return fmt.Sprintf("%s paid %s of %d", c.Payer, c.Amount, c.Asset)
	}
	return fmt.Sprintf("%s paid %s of %d for a fee of %s via %s", c.Payer, c.Amount, c.Asset, c.Fee, c.Route)
}
