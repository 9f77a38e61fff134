package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Msg is a state transition request routed to a module handler.
type Msg interface {
	// Route returns the name of the module handling the message.
	Route() string
	// Type returns the message action.
	Type() string
	// ValidateBasic performs stateless validation.
	ValidateBasic() error
	// GetSigners returns the accounts that authorized the message.
	GetSigners() []sdk.AccAddress
}

// Handler executes messages of one module and returns a response value.
type Handler func(ctx sdk.Context, msg Msg) (any, error)

