package types

// GenesisState defines the xyk module's genesis state. Pool reserves and share
// balances are ledger state and are seeded through the assets genesis.
type GenesisState struct {
	Params Params `json:"params"`
	Pools  []Pool `json:"pools"`
}

// DefaultGenesis returns default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		Pools:  []Pool{},
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	seen := make(map[AssetPair]struct{}, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return ErrInvalidGenesis.Wrapf("pool %s: %v", pool.Pair(), err)
		}
		if _, dup := seen[pool.Pair()]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pool %s", pool.Pair())
		}
		seen[pool.Pair()] = struct{}{}
	}
	return nil
}
