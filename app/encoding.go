package app

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/codec"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"sigs.k8s.io/yaml"

	feepaytypes "github.com/hydra-chain/hydra/x/feepay/types"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

// EncodingConfig holds the amino codec that knows every message of the
// application. Messages are encoded as {"type": "<module>/Msg...", "value": {...}}.
type EncodingConfig struct {
	Amino *codec.LegacyAmino
}

// MakeEncodingConfig creates an EncodingConfig knowing every message of the
// application.
func MakeEncodingConfig() EncodingConfig {
	cdc := codec.NewLegacyAmino()
	RegisterLegacyAminoCodec(cdc)
	cdc.Seal()
	return EncodingConfig{Amino: cdc}
}

// RegisterLegacyAminoCodec registers the Msg interface and the messages of
// all modules.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterInterface((*sharedkeeper.Msg)(nil), nil)
	xyktypes.RegisterLegacyAminoCodec(cdc)
	feepaytypes.RegisterLegacyAminoCodec(cdc)
}

// MsgName returns a short label for msg used in error messages.
func MsgName(msg sharedkeeper.Msg) string {
	return msg.Route() + "/" + msg.Type()
}

// EncodeTx returns the JSON encoding of tx.
func (cfg EncodingConfig) EncodeTx(tx Tx) ([]byte, error) {
	bz, err := cfg.Amino.MarshalJSON(toTxJSON(tx))
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return bz, nil
}

// DecodeTx decodes a transaction from JSON or YAML.
func (cfg EncodingConfig) DecodeTx(bz []byte) (Tx, error) {
	js, err := yaml.YAMLToJSON(bz)
	if err != nil {
		return Tx{}, errorsmod.Wrap(sdkerrors.ErrTxDecode, err.Error())
	}
	var raw txJSON
	if err := cfg.Amino.UnmarshalJSON(js, &raw); err != nil {
		return Tx{}, errorsmod.Wrap(sdkerrors.ErrTxDecode, err.Error())
	}
	return fromTxJSON(raw)
}

// DecodeBlocks decodes a YAML or JSON list of blocks.
func (cfg EncodingConfig) DecodeBlocks(bz []byte) ([]Block, error) {
	js, err := yaml.YAMLToJSON(bz)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrTxDecode, err.Error())
	}
	var raw []blockJSON
	if err := cfg.Amino.UnmarshalJSON(js, &raw); err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrTxDecode, err.Error())
	}

	blocks := make([]Block, len(raw))
	for i, rb := range raw {
		blocks[i].Time = rb.Time
		blocks[i].Txs = make([]Tx, len(rb.Txs))
		for j, rt := range rb.Txs {
			tx, err := fromTxJSON(rt)
			if err != nil {
				return nil, fmt.Errorf("block %d tx %d: %w", i, j, err)
			}
			blocks[i].Txs[j] = tx
		}
	}
	return blocks, nil
}

// EncodeBlocks returns the JSON encoding of blocks.
func (cfg EncodingConfig) EncodeBlocks(blocks []Block) ([]byte, error) {
	raw := make([]blockJSON, len(blocks))
	for i, b := range blocks {
		raw[i].Time = b.Time.UTC()
		raw[i].Txs = make([]txJSON, len(b.Txs))
		for j, tx := range b.Txs {
			raw[i].Txs[j] = toTxJSON(tx)
		}
	}
	bz, err := cfg.Amino.MarshalJSON(raw)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return bz, nil
}
