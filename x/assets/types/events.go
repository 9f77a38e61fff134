package types

// Event types for the assets module
const (
	EventTypeAssetRegistered = "asset_registered"

	AttributeKeyAssetID   = "asset_id"
	AttributeKeyAssetName = "name"
)
