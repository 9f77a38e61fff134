package app

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/hydra-chain/hydra/app/ante"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
)

// Tx is a signed list of messages. The signer pays the fee and must be the
// signer of every message.
type Tx struct {
	Signer sdk.AccAddress
	// FeeAsset overrides the signer's fee currency when set.
	FeeAsset *assetstypes.AssetID
	Memo     string
	Msgs     []sharedkeeper.Msg
}

var _ ante.Tx = Tx{}

// NewTx creates a transaction signed by signer.
func NewTx(signer sdk.AccAddress, msgs ...sharedkeeper.Msg) Tx {
	return Tx{Signer: signer, Msgs: msgs}
}

// WithFeeAsset returns a copy of tx paying its fee in id.
func (tx Tx) WithFeeAsset(id assetstypes.AssetID) Tx {
	tx.FeeAsset = &id
	return tx
}

// WithMemo returns a copy of tx carrying memo.
func (tx Tx) WithMemo(memo string) Tx {
	tx.Memo = memo
	return tx
}

func (tx Tx) GetMsgs() []sharedkeeper.Msg        { return tx.Msgs }
func (tx Tx) GetSigner() sdk.AccAddress          { return tx.Signer }
func (tx Tx) GetFeeAsset() *assetstypes.AssetID { return tx.FeeAsset }
func (tx Tx) GetMemo() string                    { return tx.Memo }

// Block is an ordered list of transactions executed at one height.
type Block struct {
	Time time.Time
	Txs  []Tx
}

type txJSON struct {
	Signer   string               `json:"signer"`
	FeeAsset *assetstypes.AssetID `json:"fee_asset,omitempty"`
	Memo     string               `json:"memo,omitempty"`
	Msgs     []sharedkeeper.Msg   `json:"msgs"`
}

type blockJSON struct {
	Time time.Time `json:"time"`
	Txs  []txJSON  `json:"txs"`
}

func toTxJSON(tx Tx) txJSON {
	return txJSON{
		Signer:   tx.Signer.String(),
		FeeAsset: tx.FeeAsset,
		Memo:     tx.Memo,
		Msgs:     tx.Msgs,
	}
}

func fromTxJSON(raw txJSON) (Tx, error) {
	signer, err := sdk.AccAddressFromBech32(raw.Signer)
	if err != nil {
		return Tx{}, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "signer: %v", err)
	}
	for i, msg := range raw.Msgs {
		if msg == nil {
			return Tx{}, sdkerrors.ErrTxDecode.Wrapf("message %d is empty", i)
		}
	}
	return Tx{Signer: signer, FeeAsset: raw.FeeAsset, Memo: raw.Memo, Msgs: raw.Msgs}, nil
}
