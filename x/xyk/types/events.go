package types

// Event types for the xyk module
const (
	EventTypePoolCreated      = "pool_created"
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeSwapped          = "swapped"
	EventTypeRouteExecuted    = "route_executed"
	EventTypeDiscountBurned   = "discount_burned"

	AttributeKeyPool        = "pool"
	AttributeKeyAccount     = "account"
	AttributeKeyTrader      = "trader"
	AttributeKeyAssetA      = "asset_a"
	AttributeKeyAssetB      = "asset_b"
	AttributeKeyAmountA     = "amount_a"
	AttributeKeyAmountB     = "amount_b"
	AttributeKeyShares      = "shares"
	AttributeKeyShareAsset  = "share_asset"
	AttributeKeyAssetIn     = "asset_in"
	AttributeKeyAssetOut    = "asset_out"
	AttributeKeyAmountIn    = "amount_in"
	AttributeKeyAmountOut   = "amount_out"
	AttributeKeyFeeCharged  = "fee_charged"
	AttributeKeyDirection   = "direction"
	AttributeKeyRoute       = "route"
	AttributeKeyHops        = "hops"
	AttributeKeyNativeAsset = "native_asset"
	AttributeKeyBurned      = "burned"
)
