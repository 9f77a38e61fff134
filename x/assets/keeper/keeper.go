package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
	"github.com/hydra-chain/hydra/x/assets/types"
)

// Keeper owns the asset registry and the multi-currency ledger.
type Keeper struct {
	cdc      *codec.LegacyAmino
	storeKey storetypes.StoreKey
}

// NewKeeper creates a new assets Keeper instance
func NewKeeper(cdc *codec.LegacyAmino, key storetypes.StoreKey) Keeper {
	return Keeper{cdc: cdc, storeKey: key}
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// RegisterAsset adds a new asset to the registry.
func (k Keeper) RegisterAsset(ctx context.Context, id types.AssetID, name string) error {
	asset := types.Asset{ID: id, Name: name}
	if err := asset.Validate(); err != nil {
		return err
	}
	if k.Exists(ctx, id) {
		return types.ErrAssetAlreadyExists.Wrapf("asset %d", id)
	}
	if err := k.setAsset(ctx, asset); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAssetRegistered,
			sdk.NewAttribute(types.AttributeKeyAssetID, id.String()),
			sdk.NewAttribute(types.AttributeKeyAssetName, name),
		),
	)
	return nil
}

// EnsureAsset registers the asset unless it is already present. It is the
// get-or-create entry point used for derived assets such as pool shares.
func (k Keeper) EnsureAsset(ctx context.Context, id types.AssetID, name string) error {
	if k.Exists(ctx, id) {
		return nil
	}
	return k.RegisterAsset(ctx, id, name)
}

// Exists reports whether the asset is registered.
func (k Keeper) Exists(ctx context.Context, id types.AssetID) bool {
	return k.getStore(ctx).Has(types.AssetKey(id))
}

// GetAsset returns the registry record of an asset.
func (k Keeper) GetAsset(ctx context.Context, id types.AssetID) (types.Asset, bool) {
	bz := k.getStore(ctx).Get(types.AssetKey(id))
	if bz == nil {
		return types.Asset{}, false
	}
	var asset types.Asset
	if err := k.cdc.Unmarshal(bz, &asset); err != nil {
		k.Logger(ctx).Error("corrupted asset record", "asset_id", id, "error", err)
		return types.Asset{}, false
	}
	return asset, true
}

func (k Keeper) setAsset(ctx context.Context, asset types.Asset) error {
	bz, err := k.cdc.Marshal(asset)
	if err != nil {
		return fmt.Errorf("setAsset: marshal asset %d: %w", asset.ID, err)
	}
	k.getStore(ctx).Set(types.AssetKey(asset.ID), bz)
	return nil
}

// IterateAssets iterates over registered assets in id order.
func (k Keeper) IterateAssets(ctx context.Context, cb func(asset types.Asset) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.AssetKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var asset types.Asset
		if err := k.cdc.Unmarshal(iterator.Value(), &asset); err != nil {
			return fmt.Errorf("IterateAssets: unmarshal asset: %w", err)
		}
		if cb(asset) {
			break
		}
	}
	return nil
}

// GetBalance returns the free balance of an account.
func (k Keeper) GetBalance(ctx context.Context, addr sdk.AccAddress, id types.AssetID) math.Int {
	return k.readInt(ctx, types.BalanceKey(addr, id))
}

// GetTotalIssuance returns the sum of all balances of an asset.
func (k Keeper) GetTotalIssuance(ctx context.Context, id types.AssetID) math.Int {
	return k.readInt(ctx, types.IssuanceKey(id))
}

// Credit adds amount to the account balance and to the asset's issuance.
func (k Keeper) Credit(ctx context.Context, addr sdk.AccAddress, id types.AssetID, amount math.Int) error {
	if err := k.checkTransfer(ctx, id, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	balance, err := fixedpoint.CheckedAdd(k.GetBalance(ctx, addr, id), amount)
	if err != nil {
		return fmt.Errorf("credit %s of asset %d: %w", amount, id, err)
	}
	issuance, err := fixedpoint.CheckedAdd(k.GetTotalIssuance(ctx, id), amount)
	if err != nil {
		return fmt.Errorf("credit %s of asset %d: issuance: %w", amount, id, err)
	}

	if err := k.writeInt(ctx, types.BalanceKey(addr, id), balance); err != nil {
		return err
	}
	return k.writeInt(ctx, types.IssuanceKey(id), issuance)
}

// Debit removes amount from the account balance and from the asset's issuance.
func (k Keeper) Debit(ctx context.Context, addr sdk.AccAddress, id types.AssetID, amount math.Int) error {
	if err := k.checkTransfer(ctx, id, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	current := k.GetBalance(ctx, addr, id)
	if current.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("account %s has %s of asset %d, needs %s", addr, current, id, amount)
	}
	issuance, err := fixedpoint.CheckedSub(k.GetTotalIssuance(ctx, id), amount)
	if err != nil {
		return fmt.Errorf("debit %s of asset %d: issuance: %w", amount, id, err)
	}

	if err := k.writeInt(ctx, types.BalanceKey(addr, id), current.Sub(amount)); err != nil {
		return err
	}
	return k.writeInt(ctx, types.IssuanceKey(id), issuance)
}

// Transfer moves amount between two accounts. The debit is validated before
// anything is written, so a failed transfer leaves both balances unchanged.
func (k Keeper) Transfer(ctx context.Context, from, to sdk.AccAddress, id types.AssetID, amount math.Int) error {
	if from.Equals(to) {
		return k.checkTransfer(ctx, id, amount)
	}
	if k.GetBalance(ctx, from, id).LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("account %s cannot transfer %s of asset %d", from, amount, id)
	}
	if _, err := fixedpoint.CheckedAdd(k.GetBalance(ctx, to, id), amount); err != nil {
		return fmt.Errorf("transfer %s of asset %d: %w", amount, id, err)
	}
	if err := k.Debit(ctx, from, id, amount); err != nil {
		return err
	}
	return k.Credit(ctx, to, id, amount)
}

// IterateBalances iterates over all non-zero balances in store order.
func (k Keeper) IterateBalances(ctx context.Context, cb func(addr sdk.AccAddress, id types.AssetID, amount math.Int) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.BalanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()[len(types.BalanceKeyPrefix):]
		addrLen := int(key[0])
		addr := sdk.AccAddress(key[1 : 1+addrLen])
		id := types.AssetIDFromBytes(key[1+addrLen:])

		var amount math.Int
		if err := k.cdc.Unmarshal(iterator.Value(), &amount); err != nil {
			return fmt.Errorf("IterateBalances: unmarshal balance: %w", err)
		}
		if cb(addr, id, amount) {
			break
		}
	}
	return nil
}

func (k Keeper) checkTransfer(ctx context.Context, id types.AssetID, amount math.Int) error {
	if !k.Exists(ctx, id) {
		return types.ErrUnknownAsset.Wrapf("asset %d", id)
	}
	if err := fixedpoint.Validate(amount); err != nil {
		return types.ErrInvalidAmount.Wrapf("%s: %v", amount, err)
	}
	return nil
}

func (k Keeper) readInt(ctx context.Context, key []byte) math.Int {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var v math.Int
	if err := k.cdc.Unmarshal(bz, &v); err != nil {
		panic(fmt.Errorf("corrupted integer at key %X: %w", key, err))
	}
	return v
}

func (k Keeper) writeInt(ctx context.Context, key []byte, v math.Int) error {
	store := k.getStore(ctx)
	if v.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := k.cdc.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal integer at key %X: %w", key, err)
	}
	store.Set(key, bz)
	return nil
}
