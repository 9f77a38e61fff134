package keeper

import (
	"context"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	"github.com/hydra-chain/hydra/x/feepay/types"
)

// AddCurrency accepts id for fee payment.
func (k Keeper) AddCurrency(ctx context.Context, id types.AssetID) error {
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if id == params.ReferenceAsset {
		return types.ErrReferenceCurrency.Wrapf("asset %d", id)
	}
	if !k.registry.Exists(ctx, id) {
		return assetstypes.ErrUnknownAsset.Wrapf("asset %d", id)
	}
	if k.IsAccepted(ctx, id) {
		return types.ErrCurrencyAlreadyAccepted.Wrapf("asset %d", id)
	}

	k.getStore(ctx).Set(types.CurrencyKey(id), []byte{0x01})
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCurrencyAdded,
			sdk.NewAttribute(types.AttributeKeyCurrency, id.String()),
		),
	)
	return nil
}

// RemoveCurrency stops accepting id. Accounts that selected it fall back to
// the reference asset.
func (k Keeper) RemoveCurrency(ctx context.Context, id types.AssetID) error {
	if !k.IsAccepted(ctx, id) {
		return types.ErrCurrencyNotAccepted.Wrapf("asset %d", id)
	}

	k.getStore(ctx).Delete(types.CurrencyKey(id))
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCurrencyRemoved,
			sdk.NewAttribute(types.AttributeKeyCurrency, id.String()),
		),
	)
	return nil
}

// IsAccepted reports whether id was added as a fee currency. The reference
// asset is always payable but is not listed.
func (k Keeper) IsAccepted(ctx context.Context, id types.AssetID) bool {
	return k.getStore(ctx).Has(types.CurrencyKey(id))
}

// IterateCurrencies iterates over accepted currencies in id order
func (k Keeper) IterateCurrencies(ctx context.Context, cb func(id types.AssetID) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.CurrencyKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		id := assetstypes.AssetIDFromBytes(iterator.Key()[len(types.CurrencyKeyPrefix):])
		if cb(id) {
			break
		}
	}
}

// SetCurrency selects the asset addr pays fees in. Selecting the reference
// asset clears the choice.
func (k Keeper) SetCurrency(ctx context.Context, addr sdk.AccAddress, id types.AssetID) error {
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}

	store := k.getStore(ctx)
	if id == params.ReferenceAsset {
		store.Delete(types.AccountCurrencyKey(addr))
	} else {
		if !k.IsAccepted(ctx, id) {
			return types.ErrCurrencyNotAccepted.Wrapf("asset %d", id)
		}
		store.Set(types.AccountCurrencyKey(addr), id.Bytes())
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCurrencySet,
			sdk.NewAttribute(types.AttributeKeyAccount, addr.String()),
			sdk.NewAttribute(types.AttributeKeyCurrency, id.String()),
		),
	)
	return nil
}

// GetCurrency returns the asset addr pays fees in. Accounts without a choice,
// or whose choice is no longer accepted, pay in the reference asset.
func (k Keeper) GetCurrency(ctx context.Context, addr sdk.AccAddress) (types.AssetID, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, err
	}

	bz := k.getStore(ctx).Get(types.AccountCurrencyKey(addr))
	if bz == nil {
		return params.ReferenceAsset, nil
	}
	id := assetstypes.AssetIDFromBytes(bz)
	if !k.IsAccepted(ctx, id) {
		return params.ReferenceAsset, nil
	}
	return id, nil
}

// IterateAccountCurrencies iterates over stored account choices
func (k Keeper) IterateAccountCurrencies(ctx context.Context, cb func(addr sdk.AccAddress, id types.AssetID) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.AccountCurrencyKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()[len(types.AccountCurrencyKeyPrefix):]
		addr := sdk.AccAddress(key[1 : 1+int(key[0])])
		if cb(addr, assetstypes.AssetIDFromBytes(iterator.Value())) {
			break
		}
	}
}
