package app

import (
	"encoding/json"
	"fmt"
	"time"

	"sigs.k8s.io/yaml"

	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	feepaytypes "github.com/hydra-chain/hydra/x/feepay/types"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

// GenesisState represents the genesis state of the hydra chain, a map from
// module name to module genesis state.
type GenesisState map[string]json.RawMessage

// GenesisDoc is the genesis file: chain identity plus the initial app state.
type GenesisDoc struct {
	ChainID     string       `json:"chain_id"`
	GenesisTime time.Time    `json:"genesis_time"`
	AppState    GenesisState `json:"app_state"`
}

// NewDefaultGenesisState generates the default state for the application:
// the native asset only, default pool and fee parameters, no pools.
func NewDefaultGenesisState() GenesisState {
	genesis := make(GenesisState)
	genesis[assetstypes.ModuleName] = mustMarshalJSON(assetstypes.DefaultGenesis())
	genesis[xyktypes.ModuleName] = mustMarshalJSON(xyktypes.DefaultGenesis())
	genesis[feepaytypes.ModuleName] = mustMarshalJSON(feepaytypes.DefaultGenesis())
	return genesis
}

// NewDefaultGenesisDoc returns a genesis document over the default state.
func NewDefaultGenesisDoc(chainID string) *GenesisDoc {
	if chainID == "" {
		chainID = DefaultChainID
	}
	return &GenesisDoc{ChainID: chainID, AppState: NewDefaultGenesisState()}
}

// DecodeGenesisDoc parses a genesis document from YAML or JSON.
func DecodeGenesisDoc(bz []byte) (*GenesisDoc, error) {
	var doc GenesisDoc
	if err := yaml.Unmarshal(bz, &doc); err != nil {
		return nil, fmt.Errorf("decode genesis: %w", err)
	}
	if doc.ChainID == "" {
		doc.ChainID = DefaultChainID
	}
	if doc.AppState == nil {
		doc.AppState = NewDefaultGenesisState()
	}
	return &doc, nil
}

// Assets returns the assets module genesis, or its default when absent.
func (gs GenesisState) Assets() (assetstypes.GenesisState, error) {
	state := *assetstypes.DefaultGenesis()
	err := gs.unmarshal(assetstypes.ModuleName, &state)
	return state, err
}

// XYK returns the xyk module genesis, or its default when absent.
func (gs GenesisState) XYK() (xyktypes.GenesisState, error) {
	state := *xyktypes.DefaultGenesis()
	err := gs.unmarshal(xyktypes.ModuleName, &state)
	return state, err
}

// Feepay returns the feepay module genesis, or its default when absent.
func (gs GenesisState) Feepay() (feepaytypes.GenesisState, error) {
	state := *feepaytypes.DefaultGenesis()
	err := gs.unmarshal(feepaytypes.ModuleName, &state)
	return state, err
}

func (gs GenesisState) unmarshal(module string, v any) error {
	bz, ok := gs[module]
	if !ok || len(bz) == 0 {
		return nil
	}
	if err := json.Unmarshal(bz, v); err != nil {
		return fmt.Errorf("%s genesis: %w", module, err)
	}
	return nil
}

// Validate performs the stateless validation of every module genesis.
func (gs GenesisState) Validate() error {
	for module := range gs {
		switch module {
		case assetstypes.ModuleName, xyktypes.ModuleName, feepaytypes.ModuleName:
		default:
			return fmt.Errorf("genesis for unknown module %q", module)
		}
	}

	assets, err := gs.Assets()
	if err != nil {
		return err
	}
	if err := assets.Validate(); err != nil {
		return fmt.Errorf("%s genesis: %w", assetstypes.ModuleName, err)
	}
	xyk, err := gs.XYK()
	if err != nil {
		return err
	}
	if err := xyk.Validate(); err != nil {
		return fmt.Errorf("%s genesis: %w", xyktypes.ModuleName, err)
	}
	feepay, err := gs.Feepay()
	if err != nil {
		return err
	}
	if err := feepay.Validate(); err != nil {
		return fmt.Errorf("%s genesis: %w", feepaytypes.ModuleName, err)
	}
	return nil
}

// mustMarshalJSON marshals v to JSON, panicking on error
func mustMarshalJSON(v any) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal genesis state: %v", err))
	}
	return bz
}
