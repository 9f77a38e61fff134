package types

import (
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
)

// LedgerKeeper is the balance ledger the pools settle against. Share assets
// are ordinary ledger assets, so total issuance doubles as share supply.
type LedgerKeeper = sharedkeeper.LedgerKeeperV1Extended

// AssetRegistry validates trade assets and registers share assets.
type AssetRegistry = sharedkeeper.AssetRegistryV1Extended
