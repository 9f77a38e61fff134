package types

// Event types for the feepay module
const (
	EventTypeFeePaid         = "fee_paid"
	EventTypeFeePaidInAsset  = "fee_paid_in_asset"
	EventTypeCurrencyAdded   = "currency_added"
	EventTypeCurrencyRemoved = "currency_removed"
	EventTypeCurrencySet     = "currency_set"

	AttributeKeyPayer    = "payer"
	AttributeKeyAccount  = "account"
	AttributeKeyAsset    = "asset"
	AttributeKeyAmount   = "amount"
	AttributeKeyFee      = "fee"
	AttributeKeyRoute    = "route"
	AttributeKeyCurrency = "currency"
)
